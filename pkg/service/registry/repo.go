package registry

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/smithy-go"
)

// PutRepository creates repositoryName in registryId unless it already exists. Reports whether it was created.
func (s Service) PutRepository(ctx context.Context, registryId, repositoryName string) (bool, error) {
	var apiErr smithy.APIError

	_, err := s.Client.Ecr.DescribeRepositories(ctx, &ecr.DescribeRepositoriesInput{
		RegistryId:      aws.String(registryId),
		RepositoryNames: []string{repositoryName},
	})

	if err == nil {
		return false, nil
	}

	if !errors.As(err, &apiErr) || apiErr.ErrorCode() != "RepositoryNotFoundException" {
		return false, err
	}

	_, err = s.Client.Ecr.CreateRepository(ctx, &ecr.CreateRepositoryInput{
		RegistryId:     aws.String(registryId),
		RepositoryName: aws.String(repositoryName),
	})

	if errors.As(err, &apiErr) && apiErr.ErrorCode() == "RepositoryAlreadyExistsException" {
		return false, nil
	}

	if err != nil {
		return false, err
	}

	return true, nil
}
