package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enrichly/internal/service"
)

// MockBulkService is a mock implementation of service.BulkService.
type MockBulkService struct {
	mock.Mock
}

func (m *MockBulkService) StartBulkEnrichment(ctx context.Context, input *service.BulkEnrichInput) (*service.BulkEnrichResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.BulkEnrichResult), args.Error(1)
}

func (m *MockBulkService) RunToCompletion(ctx context.Context, input *service.BulkEnrichInput) (string, error) {
	args := m.Called(ctx, input)
	return args.String(0), args.Error(1)
}
