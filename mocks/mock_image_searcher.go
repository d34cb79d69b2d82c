package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"enrichly/internal/domain"
	"enrichly/internal/port"
)

// MockImageSearcher is a mock implementation of port.ImageSearcher.
type MockImageSearcher struct {
	mock.Mock
}

func (m *MockImageSearcher) Search(ctx context.Context, input port.ImageSearchInput) ([]domain.ImageCandidate, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ImageCandidate), args.Error(1)
}
