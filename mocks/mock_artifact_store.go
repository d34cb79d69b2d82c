package mocks

import (
	"context"
	"io"

	"github.com/stretchr/testify/mock"
)

// MockArtifactStore is a mock implementation of port.ArtifactStore.
type MockArtifactStore struct {
	mock.Mock
}

func (m *MockArtifactStore) Save(ctx context.Context, filename string, body io.Reader, contentType string) (string, error) {
	args := m.Called(ctx, filename, body, contentType)
	return args.String(0), args.Error(1)
}
