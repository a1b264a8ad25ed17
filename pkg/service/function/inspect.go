package function

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
)

func (s Service) Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error) {
	getFunctionInput := &lambda.GetFunctionInput{
		FunctionName: aws.String(name),
	}

	output, err := s.Client.Lambda.GetFunction(ctx, getFunctionInput)
	return output, notFound(name, err)
}
