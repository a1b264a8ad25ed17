package umwelt

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

func GetRegion(configured string, fallback aws.Config) string {
	if configured != "" {
		return configured
	}

	return fallback.Region
}

func GetCaller(ctx context.Context, stsc STSClient) (ThisCaller, error) {
	whoAmI, err := stsc.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return ThisCaller{}, fmt.Errorf("failed to discover account id: %w", err)
	}

	return ThisCaller{
		Arn:     aws.ToString(whoAmI.Arn),
		Account: aws.ToString(whoAmI.Account),
	}, nil
}
