package registry

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
)

func (s Service) List(ctx context.Context, registryId, repositoryName string) ([]types.ImageDetail, error) {
	var details []types.ImageDetail

	paginator := ecr.NewDescribeImagesPaginator(s.Client.Ecr, &ecr.DescribeImagesInput{
		RegistryId:     aws.String(registryId),
		RepositoryName: aws.String(repositoryName),
	})

	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		details = append(details, page.ImageDetails...)
	}

	return details, nil
}

// Digest resolves the manifest digest currently behind tag.
func (s Service) Digest(ctx context.Context, registryId, repositoryName, tag string) (string, error) {
	output, err := s.Client.Ecr.BatchGetImage(ctx, &ecr.BatchGetImageInput{
		RegistryId:     aws.String(registryId),
		RepositoryName: aws.String(repositoryName),
		ImageIds: []types.ImageIdentifier{
			{
				ImageTag: aws.String(tag),
			},
		},
	})

	if err != nil {
		return "", err
	}

	if len(output.Images) == 0 || output.Images[0].ImageId == nil {
		return "", fmt.Errorf("no image found for tag %s in %s", tag, repositoryName)
	}

	return aws.ToString(output.Images[0].ImageId.ImageDigest), nil
}
