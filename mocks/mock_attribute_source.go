package mocks

import (
	"github.com/stretchr/testify/mock"
)

// MockAttributeSource is a mock implementation of port.AttributeSource.
type MockAttributeSource struct {
	mock.Mock
}

func (m *MockAttributeSource) AttributesFor(category, subcategory string) []string {
	args := m.Called(category, subcategory)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]string)
}
