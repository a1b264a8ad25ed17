package mock

import (
	"context"

	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/stretchr/testify/mock"
)

type MockRegistryService struct {
	mock.Mock
}

func (m *MockRegistryService) Token(ctx context.Context, registryId string) (string, error) {
	args := m.Called(ctx, registryId)
	return args.String(0), args.Error(1)
}

func (m *MockRegistryService) PutRepository(ctx context.Context, registryId, repositoryName string) (bool, error) {
	args := m.Called(ctx, registryId, repositoryName)
	return args.Bool(0), args.Error(1)
}

func (m *MockRegistryService) List(ctx context.Context, registryId, repositoryName string) ([]ecrtypes.ImageDetail, error) {
	args := m.Called(ctx, registryId, repositoryName)
	return args.Get(0).([]ecrtypes.ImageDetail), args.Error(1)
}

func (m *MockRegistryService) Digest(ctx context.Context, registryId, repositoryName, tag string) (string, error) {
	args := m.Called(ctx, registryId, repositoryName, tag)
	return args.String(0), args.Error(1)
}
