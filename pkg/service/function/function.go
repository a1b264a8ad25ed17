package function

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

type LambdaClient interface {
	GetFunction(ctx context.Context, params *lambda.GetFunctionInput, optFns ...func(*lambda.Options)) (*lambda.GetFunctionOutput, error)
	UpdateFunctionCode(ctx context.Context, params *lambda.UpdateFunctionCodeInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionCodeOutput, error)
	UpdateFunctionConfiguration(ctx context.Context, params *lambda.UpdateFunctionConfigurationInput, optFns ...func(*lambda.Options)) (*lambda.UpdateFunctionConfigurationOutput, error)
}

type Clients struct {
	Lambda LambdaClient
}

type Service struct {
	Client Clients
}

func FromClients(lambdaClient LambdaClient) Service {
	return Service{
		Client: Clients{
			Lambda: lambdaClient,
		},
	}
}
