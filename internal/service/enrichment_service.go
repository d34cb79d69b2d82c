package service

import (
	"context"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"enrichly/internal/config"
	"enrichly/internal/domain"
	"enrichly/internal/enrich"
	"enrichly/internal/port"
)

// defaultPromptCategory is the prompt variant used when a request carries
// no category at all. Most of the catalog this service was built for is
// electrical stock, so that variant is the least-wrong guess.
const defaultPromptCategory = "Electrical"

// EnrichInput is the DTO for enriching a single product.
type EnrichInput struct {
	MPN                 string
	Manufacturer        string
	Category            string
	Subcategory         string
	RequestedAttributes []string
	IncludeImages       bool
	RequestID           string
}

// EnrichmentService defines the single-product enrichment contract.
type EnrichmentService interface {
	Enrich(ctx context.Context, input *EnrichInput) (*domain.EnrichmentRecord, error)
}

type enrichmentService struct {
	generator  port.TextGenerator
	searcher   port.ImageSearcher
	attrSource port.AttributeSource
	cfg        config.EnrichmentConfig
}

// NewEnrichmentService creates an EnrichmentService implementation.
func NewEnrichmentService(
	generator port.TextGenerator,
	searcher port.ImageSearcher,
	attrSource port.AttributeSource,
	cfg config.EnrichmentConfig,
) EnrichmentService {
	return &enrichmentService{
		generator:  generator,
		searcher:   searcher,
		attrSource: attrSource,
		cfg:        cfg,
	}
}

// Enrich looks up a product image and extracts attributes for one product.
// The two lookups run concurrently; neither blocks or fails the other.
// External-service trouble degrades the result (empty attributes, no
// image, LOW confidence) instead of erroring: the only hard failure is a
// missing part number.
func (s *enrichmentService) Enrich(ctx context.Context, input *EnrichInput) (*domain.EnrichmentRecord, error) {
	if strings.TrimSpace(input.MPN) == "" {
		return nil, domain.ErrMissingMPN
	}
	start := time.Now()

	attrs := input.RequestedAttributes
	if len(attrs) == 0 && s.attrSource != nil {
		attrs = s.attrSource.AttributesFor(input.Category, input.Subcategory)
	}

	record := &domain.EnrichmentRecord{
		MPN:                 input.MPN,
		Manufacturer:        input.Manufacturer,
		Category:            input.Category,
		Subcategory:         input.Subcategory,
		Attributes:          map[string]any{},
		Confidence:          domain.ConfidenceLow,
		RequestedAttributes: attrs,
	}

	var (
		wg        sync.WaitGroup
		match     domain.ImageMatch
		searchErr error
		gen       *port.GenerationResult
		genErr    error
	)

	if input.IncludeImages {
		wg.Add(1)
		go func() {
			defer wg.Done()
			candidates, err := s.searcher.Search(ctx, port.ImageSearchInput{
				PartNumber:   input.MPN,
				Manufacturer: input.Manufacturer,
			})
			if err != nil {
				searchErr = err
				return
			}
			match = enrich.SelectBestImage(candidates, input.Manufacturer)
		}()
	}

	if len(attrs) > 0 {
		prompt := s.buildPrompt(input, attrs)
		wg.Add(1)
		go func() {
			defer wg.Done()
			gen, genErr = s.generator.Generate(ctx, prompt)
		}()
	}

	wg.Wait()

	if searchErr != nil {
		log.Printf("enrichmentService: [%s] image search failed for %s: %v", input.RequestID, input.MPN, searchErr)
	} else if match.ImageURL != "" {
		record.ImageURL = match.ImageURL
		if match.ManufacturerMatch {
			log.Printf("enrichmentService: [%s] found manufacturer-hosted image for %s", input.RequestID, input.MPN)
		}
	}

	switch {
	case genErr != nil:
		log.Printf("enrichmentService: [%s] attribute extraction failed for %s: %v", input.RequestID, input.MPN, genErr)
	case gen != nil:
		record.TokenData = gen.Usage
		if s.cfg.IncludeRawResponse {
			record.RawResponse = gen.Text
		}
		extracted := enrich.ExtractJSON(gen.Text)
		record.Attributes = filterAttributes(extracted, attrs)
		record.Confidence = enrich.ScoreConfidence(attrs, record.Attributes)
	}

	record.ProcessingTimeSeconds = math.Round(time.Since(start).Seconds()*100) / 100

	log.Printf("enrichmentService: [%s] enriched %s in %.2fs (attributes=%d, confidence=%s)",
		input.RequestID, input.MPN, record.ProcessingTimeSeconds, len(record.Attributes), record.Confidence)
	return record, nil
}

func (s *enrichmentService) buildPrompt(input *EnrichInput, attrs []string) string {
	promptCategory := input.Category
	if promptCategory == "" {
		promptCategory = defaultPromptCategory
	}
	catSubcat := ""
	if input.Category != "" && input.Subcategory != "" {
		catSubcat = input.Category + "," + input.Subcategory
	}
	return enrich.BuildPrompt(promptCategory, enrich.PromptInput{
		MPN:          input.MPN,
		Manufacturer: input.Manufacturer,
		CatSubcat:    catSubcat,
	}, attrs)
}

// filterAttributes drops extracted keys the caller did not ask for. With
// no requested list everything passes through.
func filterAttributes(extracted map[string]any, requested []string) map[string]any {
	if len(requested) == 0 {
		return extracted
	}
	allowed := make(map[string]bool, len(requested))
	for _, attr := range requested {
		allowed[attr] = true
	}
	filtered := make(map[string]any)
	for key, value := range extracted {
		if allowed[key] {
			filtered[key] = value
		}
	}
	return filtered
}
