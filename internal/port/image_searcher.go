package port

import (
	"context"

	"enrichly/internal/domain"
)

// ImageSearchInput carries the query fields for a product image search.
type ImageSearchInput struct {
	PartNumber   string
	Manufacturer string
}

// ImageSearcher abstracts product image lookup.
type ImageSearcher interface {
	Search(ctx context.Context, input ImageSearchInput) ([]domain.ImageCandidate, error)
}
