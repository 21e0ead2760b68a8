// Command seed upserts bias and news categories from a YAML catalog.
package main

import (
	"context"
	"flag"
	"log"

	"github.com/JaimeStill/biaslens/internal/categories"
	"github.com/JaimeStill/biaslens/internal/config"
	"github.com/JaimeStill/biaslens/internal/infrastructure"
	"github.com/JaimeStill/biaslens/pkg/database"
)

func main() {
	file := flag.String("file", "categories.yaml", "Category catalog to load")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config load failed: %v", err)
	}
	logger := infrastructure.NewLogger(cfg)

	catalog, err := categories.LoadCatalog(*file)
	if err != nil {
		log.Fatalf("catalog load failed: %v", err)
	}

	db, err := database.New(&cfg.Database, logger)
	if err != nil {
		log.Fatalf("database init failed: %v", err)
	}
	defer db.Close()

	ctx := context.Background()
	if err := db.Ping(ctx); err != nil {
		log.Fatalf("database ping failed: %v", err)
	}

	result, err := categories.New(db.Connection(), logger).Seed(ctx, catalog)
	if err != nil {
		log.Fatalf("seed failed: %v", err)
	}

	logger.Info("categories seeded", "bias", result.Bias, "news", result.News, "file", *file)
}
