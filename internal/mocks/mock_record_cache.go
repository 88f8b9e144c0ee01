package mocks

import (
	"context"
	"encoding/json"

	"github.com/stretchr/testify/mock"
)

// MockRecordCache is a mock implementation of recordCache.Service
type MockRecordCache struct {
	mock.Mock
}

// Get mocks the Get method of recordCache.Service
func (m *MockRecordCache) Get(ctx context.Context, location, language, keyword string) (json.RawMessage, error) {
	args := m.Called(ctx, location, language, keyword)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

// Set mocks the Set method of recordCache.Service
func (m *MockRecordCache) Set(ctx context.Context, location, language, keyword string, payload json.RawMessage) error {
	args := m.Called(ctx, location, language, keyword, payload)
	return args.Error(0)
}

// Delete mocks the Delete method of recordCache.Service
func (m *MockRecordCache) Delete(ctx context.Context, location, language, keyword string) error {
	args := m.Called(ctx, location, language, keyword)
	return args.Error(0)
}
