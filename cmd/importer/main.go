package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"skillswap/internal/app"
	"skillswap/internal/config"
	"skillswap/internal/database/migration"
	"skillswap/internal/importer"
	"skillswap/internal/repository"
)

const importLockKey = "catalog:import:lock"

func main() {
	catalogURL := flag.String("catalog-url", "", "skill catalog page URL (defaults to CATALOG_URL)")
	workers := flag.Int("workers", 0, "upsert workers (defaults to CATALOG_WORKERS)")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	c, err := app.NewContainer(cfg, log.Default())
	if err != nil {
		log.Fatalf("failed to init container: %v", err)
	}
	defer func() {
		_ = c.Close()
	}()

	migCtx, migCancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer migCancel()
	r := migration.Runner{Dir: "migrations"}
	if err := r.Run(migCtx, c.DB.SQLDB()); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	url := strings.TrimSpace(*catalogURL)
	if url == "" {
		url = cfg.Importer.CatalogURL
	}
	if url == "" {
		log.Fatalf("provide -catalog-url or set CATALOG_URL")
	}

	n := *workers
	if n <= 0 {
		n = cfg.Importer.Workers
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// One import run at a time across instances.
	acquired, err := c.Cache.SetIfNotExists(ctx, importLockKey, time.Now().UTC().Format(time.RFC3339), 10*time.Minute)
	if err != nil {
		log.Fatalf("import lock failed: %v", err)
	}
	if !acquired {
		log.Fatalf("another catalog import is already running")
	}
	defer func() {
		_ = c.Cache.Delete(context.Background(), importLockKey)
	}()

	skills := repository.NewPostgresSkillRepository(c.DB)
	imp := importer.NewCatalogImporter(skills, c.Logger)

	stored, err := imp.Import(ctx, url, n)
	if err != nil {
		log.Fatalf("catalog import failed: %v", err)
	}
	log.Printf("catalog import finished | url=%s stored=%d", url, stored)
}
