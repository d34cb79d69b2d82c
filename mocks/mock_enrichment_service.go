package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enrichly/internal/domain"
	"enrichly/internal/service"
)

// MockEnrichmentService is a mock implementation of service.EnrichmentService.
type MockEnrichmentService struct {
	mock.Mock
}

func (m *MockEnrichmentService) Enrich(ctx context.Context, input *service.EnrichInput) (*domain.EnrichmentRecord, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.EnrichmentRecord), args.Error(1)
}
