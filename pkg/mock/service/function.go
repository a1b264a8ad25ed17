package mock

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/lambda/types"
	"github.com/stretchr/testify/mock"
)

// MockFunctionService is a mock of FunctionService interface
type MockFunctionService struct {
	mock.Mock
}

func (m *MockFunctionService) Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	args := m.Called(ctx, name)
	return args.Get(0).(*lambda.GetFunctionOutput), args.Error(1)
}

func (m *MockFunctionService) UpdateCode(ctx context.Context, name, imageUri string) (*lambda.UpdateFunctionCodeOutput, error) {
	args := m.Called(ctx, name, imageUri)
	return args.Get(0).(*lambda.UpdateFunctionCodeOutput), args.Error(1)
}

func (m *MockFunctionService) WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error {
	args := m.Called(ctx, name, maxWait)
	return args.Error(0)
}

func (m *MockFunctionService) PatchConfiguration(ctx context.Context, name string, environment map[string]string, timeout, memory int32) (*lambda.UpdateFunctionConfigurationOutput, error) {
	args := m.Called(ctx, name, environment, timeout, memory)
	return args.Get(0).(*lambda.UpdateFunctionConfigurationOutput), args.Error(1)
}

func MockGetFunctionOutput(name, imageUri string) *lambda.GetFunctionOutput {
	return &lambda.GetFunctionOutput{
		Code: &types.FunctionCodeLocation{
			ImageUri:       aws.String(imageUri),
			RepositoryType: aws.String("ECR"),
		},
		Configuration: &types.FunctionConfiguration{
			FunctionName:     aws.String(name),
			PackageType:      types.PackageTypeImage,
			LastUpdateStatus: types.LastUpdateStatusSuccessful,
		},
	}
}
