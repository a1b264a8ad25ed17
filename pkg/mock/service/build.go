package mock

import (
	"context"

	"github.com/linecard/ship/pkg/service/docker"

	dockertypes "github.com/docker/docker/api/types"
	"github.com/stretchr/testify/mock"
)

// MockBuildService stands in for the docker CLI.
type MockBuildService struct {
	mock.Mock
}

func (m *MockBuildService) Login(ctx context.Context, registryUrl, username, password string) error {
	args := m.Called(ctx, registryUrl, username, password)
	return args.Error(0)
}

func (m *MockBuildService) Build(ctx context.Context, i docker.BuildInput) error {
	args := m.Called(ctx, i)
	return args.Error(0)
}

func (m *MockBuildService) Tag(ctx context.Context, source, target string) error {
	args := m.Called(ctx, source, target)
	return args.Error(0)
}

func (m *MockBuildService) Push(ctx context.Context, ref string) error {
	args := m.Called(ctx, ref)
	return args.Error(0)
}

func (m *MockBuildService) InspectByRef(ctx context.Context, ref string) (dockertypes.ImageInspect, error) {
	args := m.Called(ctx, ref)
	return args.Get(0).(dockertypes.ImageInspect), args.Error(1)
}

func MockImageInspect(architecture string) dockertypes.ImageInspect {
	return dockertypes.ImageInspect{
		ID:           "sha256:4c1d0e5f",
		Architecture: architecture,
		Os:           "linux",
	}
}
