package study

import (
	"context"
)

// MockService is a mock implementation of the Service interface for testing.
type MockService struct {
	BuildSessionFunc func(ctx context.Context, req SessionRequest) (*SessionResult, error)
}

// BuildSession delegates to BuildSessionFunc when set.
func (m *MockService) BuildSession(
	ctx context.Context,
	req SessionRequest,
) (*SessionResult, error) {
	if m.BuildSessionFunc != nil {
		return m.BuildSessionFunc(ctx, req)
	}
	return &SessionResult{}, nil
}
