package registry

import (
	"context"
	"encoding/base64"
	"testing"

	clientmock "github.com/linecard/ship/pkg/mock/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

const (
	registryId     = "123456789012"
	repositoryName = "lambda-s3-processor"
)

func TestToken(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		token *string
		test  func(*testing.T, string, error)
	}{
		{
			name:  "strips the AWS user",
			token: aws.String(base64.StdEncoding.EncodeToString([]byte("AWS:password"))),
			test: func(t *testing.T, token string, err error) {
				assert.NoError(t, err)
				assert.Equal(t, "password", token)
			},
		},
		{
			name:  "malformed token",
			token: aws.String(base64.StdEncoding.EncodeToString([]byte("password"))),
			test: func(t *testing.T, token string, err error) {
				assert.ErrorContains(t, err, "malformed")
			},
		},
		{
			name: "no data",
			test: func(t *testing.T, token string, err error) {
				assert.ErrorContains(t, err, "no authorization data")
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &clientmock.MockECRClient{}
			output := &ecr.GetAuthorizationTokenOutput{}
			if tc.token != nil {
				output.AuthorizationData = []types.AuthorizationData{{AuthorizationToken: tc.token}}
			}

			m.On("GetAuthorizationToken", ctx, &ecr.GetAuthorizationTokenInput{
				RegistryIds: []string{registryId},
			}).Return(output, nil)

			token, err := FromClients(m).Token(ctx, registryId)
			tc.test(t, token, err)
		})
	}
}

func TestPutRepository(t *testing.T) {
	ctx := context.Background()

	cases := []struct {
		name  string
		setup func(*clientmock.MockECRClient)
		test  func(*testing.T, bool, error, *clientmock.MockECRClient)
	}{
		{
			name: "existing repository is left alone",
			setup: func(m *clientmock.MockECRClient) {
				m.On("DescribeRepositories", ctx, mock.Anything).Return(&ecr.DescribeRepositoriesOutput{}, nil)
			},
			test: func(t *testing.T, created bool, err error, m *clientmock.MockECRClient) {
				assert.NoError(t, err)
				assert.False(t, created)
				m.AssertNotCalled(t, "CreateRepository", mock.Anything, mock.Anything)
			},
		},
		{
			name: "missing repository is created",
			setup: func(m *clientmock.MockECRClient) {
				m.On("DescribeRepositories", ctx, mock.Anything).Return((*ecr.DescribeRepositoriesOutput)(nil), &types.RepositoryNotFoundException{})
				m.On("CreateRepository", ctx, &ecr.CreateRepositoryInput{
					RegistryId:     aws.String(registryId),
					RepositoryName: aws.String(repositoryName),
				}).Return(&ecr.CreateRepositoryOutput{}, nil)
			},
			test: func(t *testing.T, created bool, err error, m *clientmock.MockECRClient) {
				assert.NoError(t, err)
				assert.True(t, created)
			},
		},
		{
			name: "lost creation race",
			setup: func(m *clientmock.MockECRClient) {
				m.On("DescribeRepositories", ctx, mock.Anything).Return((*ecr.DescribeRepositoriesOutput)(nil), &types.RepositoryNotFoundException{})
				m.On("CreateRepository", ctx, mock.Anything).Return((*ecr.CreateRepositoryOutput)(nil), &types.RepositoryAlreadyExistsException{})
			},
			test: func(t *testing.T, created bool, err error, m *clientmock.MockECRClient) {
				assert.NoError(t, err)
				assert.False(t, created)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := &clientmock.MockECRClient{}
			tc.setup(m)

			created, err := FromClients(m).PutRepository(ctx, registryId, repositoryName)
			tc.test(t, created, err, m)
		})
	}
}

func TestDigest(t *testing.T) {
	ctx := context.Background()
	m := &clientmock.MockECRClient{}

	m.On("BatchGetImage", ctx, mock.Anything).Return(&ecr.BatchGetImageOutput{
		Images: []types.Image{
			{ImageId: &types.ImageIdentifier{ImageDigest: aws.String("sha256:abc"), ImageTag: aws.String("v0.10")}},
		},
	}, nil).Once()
	m.On("BatchGetImage", ctx, mock.Anything).Return(&ecr.BatchGetImageOutput{}, nil).Once()

	digest, err := FromClients(m).Digest(ctx, registryId, repositoryName, "v0.10")
	assert.NoError(t, err)
	assert.Equal(t, "sha256:abc", digest)

	_, err = FromClients(m).Digest(ctx, registryId, repositoryName, "v0.11")
	assert.ErrorContains(t, err, "no image found")
}
