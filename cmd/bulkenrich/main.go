// Command bulkenrich runs a bulk enrichment over a product file without the
// HTTP server, writing the output artifact through the configured store.
// Usage: go run ./cmd/bulkenrich -file products.xlsx [-images] [-batch 25] [-format csv]
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/gemini"
	"enrichly/internal/imagesearch/cse"
	"enrichly/internal/port"
	"enrichly/internal/service"
	"enrichly/internal/storage/local"
	s3storage "enrichly/internal/storage/s3"
	"enrichly/internal/taxonomy"
)

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	filePath := flag.String("file", "", "CSV or XLSX product file (required)")
	includeImages := flag.Bool("images", false, "include product image lookups")
	batchSize := flag.Int("batch", 0, "rows enriched concurrently per window (0 = config default)")
	format := flag.String("format", "", "output format: csv or xlsx (default xlsx)")
	flag.Parse()

	if *filePath == "" {
		flag.Usage()
		return fmt.Errorf("-file is required")
	}

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	taxSource := taxonomy.NewSource()
	if cfg.Taxonomy.Path != "" {
		if n, lerr := taxSource.LoadWorkbook(cfg.Taxonomy.Path); lerr != nil {
			log.Printf("taxonomy: workbook %s not loaded, using built-in defaults: %v", cfg.Taxonomy.Path, lerr)
		} else {
			log.Printf("taxonomy: loaded %d categories from %s", n, cfg.Taxonomy.Path)
		}
	}

	store, err := newArtifactStore(cfg)
	if err != nil {
		return fmt.Errorf("initializing artifact store: %w", err)
	}

	enrichSvc := service.NewEnrichmentService(gemini.NewClient(cfg), cse.NewClient(cfg), taxSource, cfg.Enrichment)
	bulkSvc := service.NewBulkService(enrichSvc, store, cfg.Enrichment)

	f, err := os.Open(*filePath)
	if err != nil {
		return fmt.Errorf("opening input file: %w", err)
	}
	defer func() { _ = f.Close() }()

	location, err := bulkSvc.RunToCompletion(context.Background(), &service.BulkEnrichInput{
		Filename:      filepath.Base(*filePath),
		File:          f,
		IncludeImages: *includeImages,
		BatchSize:     *batchSize,
		Format:        domain.TableFormat(*format),
	})
	if err != nil {
		return fmt.Errorf("bulk enrichment: %w", err)
	}

	log.Printf("Output written to %s", location)
	return nil
}

func newArtifactStore(cfg *config.Config) (port.ArtifactStore, error) {
	switch domain.StorageBackend(cfg.Storage.Backend) {
	case domain.StorageBackendS3:
		return s3storage.NewArtifactStore(&cfg.S3)
	default:
		return local.NewStore(cfg.Storage.OutputDir), nil
	}
}
