package api

import (
	"net/http"

	"github.com/JaimeStill/biaslens/internal/analysis"
	"github.com/JaimeStill/biaslens/internal/archive"
	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/jobs"
	"github.com/JaimeStill/biaslens/pkg/routes"
)

func registerRoutes(
	mux *http.ServeMux,
	domain *Domain,
	cfg *config.Config,
	runtime *Runtime,
) {
	children := []routes.Group{
		archive.NewHandler(domain.Archive, runtime.Logger).Routes(),
	}
	if runtime.Storage != nil {
		children = append(children, newSnapshotHandler(runtime.Storage, runtime.Logger).routes())
	}

	routes.Register(
		mux,
		domain.Categories.Handler().Routes(),
		domain.Media.Handler().Routes(),
		domain.Scores.Handler().Routes(),
		analysis.NewHandler(
			domain.Analysis,
			domain.Media,
			domain.Extractor,
			runtime.Logger,
			cfg.API.MaxRequestSizeBytes(),
		).Routes(),
		jobs.NewHandler(
			domain.Jobs,
			cfg.Jobs.Secret,
			runtime.Logger,
			children...,
		).Routes(),
	)
}
