package secret

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/smithy-go"
)

type SsmClient interface {
	GetParameter(ctx context.Context, params *ssm.GetParameterInput, optFns ...func(*ssm.Options)) (*ssm.GetParameterOutput, error)
}

type Client struct {
	Ssm SsmClient
}

type Service struct {
	Client Client
}

func FromClients(ssmClient SsmClient) Service {
	return Service{
		Client: Client{
			Ssm: ssmClient,
		},
	}
}

// Parameter reads and decrypts a parameter. A missing parameter is not an error.
func (s Service) Parameter(ctx context.Context, name string) (string, bool, error) {
	var apiErr smithy.APIError

	getParameterInput := &ssm.GetParameterInput{
		Name:           aws.String(name),
		WithDecryption: aws.Bool(true),
	}

	output, err := s.Client.Ssm.GetParameter(ctx, getParameterInput)
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "ParameterNotFound":
			return "", false, nil
		}
	}

	if err != nil {
		return "", false, err
	}

	if output.Parameter == nil || output.Parameter.Value == nil {
		return "", false, nil
	}

	return *output.Parameter.Value, true, nil
}
