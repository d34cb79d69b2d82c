package main

import (
	"fmt"
	"log"
	"os"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/gemini"
	"enrichly/internal/handler"
	"enrichly/internal/imagesearch/cse"
	"enrichly/internal/port"
	"enrichly/internal/router"
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
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if err := preflight(cfg); err != nil {
		return err
	}

	// Attribute taxonomy: built-in defaults, optionally extended from a workbook.
	taxSource := taxonomy.NewSource()
	if cfg.Taxonomy.Path != "" {
		if n, lerr := taxSource.LoadWorkbook(cfg.Taxonomy.Path); lerr != nil {
			log.Printf("taxonomy: workbook %s not loaded, using built-in defaults: %v", cfg.Taxonomy.Path, lerr)
		} else {
			log.Printf("taxonomy: loaded %d categories from %s", n, cfg.Taxonomy.Path)
		}
	}

	// External clients
	generator := gemini.NewClient(cfg)
	searcher := cse.NewClient(cfg)
	if !cfg.Google.SearchConfigured() {
		log.Printf("image search: GOOGLE_API_KEY or GOOGLE_CSE_ID missing, image lookups disabled")
	}

	// Artifact storage
	store, err := newArtifactStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize artifact store: %w", err)
	}

	// Initialize services
	enrichSvc := service.NewEnrichmentService(generator, searcher, taxSource, cfg.Enrichment)
	bulkSvc := service.NewBulkService(enrichSvc, store, cfg.Enrichment)

	// Initialize handlers
	enrichH := handler.NewEnrichHandler(enrichSvc)
	bulkH := handler.NewBulkEnrichHandler(bulkSvc)
	healthH := handler.NewHealthHandler()

	// Setup router
	r := router.Setup(enrichH, bulkH, healthH, cfg.CORS.AllowedOrigins)

	log.Printf("Server starting on %s", cfg.Server.Port)
	if err := r.Run(cfg.Server.Port); err != nil {
		return fmt.Errorf("server failed: %w", err)
	}

	return nil
}

// preflight verifies the runtime environment before the server accepts
// traffic. Missing credentials degrade enrichment rather than block startup,
// so they are logged as warnings only.
func preflight(cfg *config.Config) error {
	if domain.StorageBackend(cfg.Storage.Backend) == domain.StorageBackendLocal {
		if err := os.MkdirAll(cfg.Storage.OutputDir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory %s: %w", cfg.Storage.OutputDir, err)
		}
	}
	if cfg.Google.APIKey == "" {
		log.Printf("preflight: GOOGLE_API_KEY is not set, attribute extraction will return placeholder responses")
	}
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
