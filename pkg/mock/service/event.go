package mock

import (
	"context"

	"github.com/stretchr/testify/mock"
)

type MockEventService struct {
	mock.Mock
}

func (m *MockEventService) Emit(ctx context.Context, busName, detailType string, detail any) error {
	args := m.Called(ctx, busName, detailType, detail)
	return args.Error(0)
}
