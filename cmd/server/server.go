package main

import (
	"time"

	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/infrastructure"
	"github.com/JaimeStill/biaslens/internal/jobs"
)

type Server struct {
	infra     *infrastructure.Infrastructure
	modules   *Modules
	http      *httpServer
	scheduler *jobs.Scheduler
}

func NewServer(cfg *config.Config) (*Server, error) {
	infra, err := infrastructure.New(cfg)
	if err != nil {
		return nil, err
	}

	modules, err := NewModules(infra.Lifecycle.Context(), infra, cfg)
	if err != nil {
		return nil, err
	}

	var scheduler *jobs.Scheduler
	if cfg.Jobs.Schedule != "" {
		scheduler, err = jobs.NewScheduler(modules.Domain.Jobs, cfg.Jobs.Schedule, infra.Logger)
		if err != nil {
			return nil, err
		}
	}

	router := buildRouter(infra)
	modules.Mount(router)

	infra.Logger.Info(
		"server initialized",
		"addr", cfg.Server.Addr(),
		"version", cfg.Version,
		"providers", modules.Domain.Analysis.Providers(),
	)

	return &Server{
		infra:     infra,
		modules:   modules,
		http:      newHTTPServer(&cfg.Server, router, infra.Logger),
		scheduler: scheduler,
	}, nil
}

func (s *Server) Start() error {
	s.infra.Logger.Info("starting service")

	if err := s.infra.Start(); err != nil {
		return err
	}

	if err := s.http.Start(s.infra.Lifecycle); err != nil {
		return err
	}

	if s.scheduler != nil {
		if err := s.scheduler.Start(s.infra.Lifecycle); err != nil {
			return err
		}
	}

	go func() {
		if err := s.infra.Lifecycle.WaitForStartup(); err != nil {
			s.infra.Logger.Error("startup incomplete", "error", err)
			return
		}
		s.infra.Logger.Info("all subsystems ready")
	}()

	return nil
}

func (s *Server) Shutdown(timeout time.Duration) error {
	s.infra.Logger.Info("initiating shutdown")
	return s.infra.Lifecycle.Shutdown(timeout)
}
