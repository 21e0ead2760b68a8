package main

import (
	"context"

	"github.com/JaimeStill/biaslens/internal/api"
	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/infrastructure"
	"github.com/JaimeStill/biaslens/pkg/module"
)

type Modules struct {
	API    *module.Module
	Domain *api.Domain
}

func NewModules(ctx context.Context, infra *infrastructure.Infrastructure, cfg *config.Config) (*Modules, error) {
	apiModule, domain, err := api.NewModule(ctx, cfg, infra)
	if err != nil {
		return nil, err
	}

	return &Modules{
		API:    apiModule,
		Domain: domain,
	}, nil
}

func (m *Modules) Mount(router *module.Router) {
	router.Mount(m.API)
}

func buildRouter(infra *infrastructure.Infrastructure) *module.Router {
	router := module.NewRouter()
	router.HandleHealth(infra.Lifecycle)
	return router
}
