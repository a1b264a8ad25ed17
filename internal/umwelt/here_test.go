package umwelt

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	clientmock "github.com/linecard/ship/pkg/mock/client"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestDiscover(t *testing.T) {
	ctx := context.Background()
	awsConfig := aws.Config{Region: "us-west-2"}

	cases := []struct {
		name  string
		known Known
		setup func(*clientmock.MockSTSClient)
		test  func(*testing.T, Here, error, *clientmock.MockSTSClient)
	}{
		{
			name:  "account discovered from caller identity when not given",
			known: Known{Tag: "v0.10", ContextDir: t.TempDir()},
			setup: func(msts *clientmock.MockSTSClient) {
				msts.On("GetCallerIdentity", ctx, mock.Anything).Return(&sts.GetCallerIdentityOutput{
					Account: aws.String("123456789012"),
					Arn:     aws.String("arn:aws:iam::123456789012:user/test"),
				}, nil)
			},
			test: func(t *testing.T, here Here, err error, msts *clientmock.MockSTSClient) {
				assert.NoError(t, err)
				assert.Equal(t, "123456789012", here.Caller.Account)
				assert.Equal(t, "us-west-2", here.Caller.Region)
				msts.AssertNumberOfCalls(t, "GetCallerIdentity", 1)
			},
		},
		{
			name:  "given account and region skip discovery",
			known: Known{Region: "us-east-1", Account: "210987654321", Tag: "v0.10", ContextDir: t.TempDir()},
			test: func(t *testing.T, here Here, err error, msts *clientmock.MockSTSClient) {
				assert.NoError(t, err)
				assert.Equal(t, "210987654321", here.Caller.Account)
				assert.Equal(t, "us-east-1", here.Caller.Region)
				msts.AssertNotCalled(t, "GetCallerIdentity", mock.Anything, mock.Anything)
			},
		},
		{
			name:  "caller identity failure surfaces",
			known: Known{ContextDir: t.TempDir()},
			setup: func(msts *clientmock.MockSTSClient) {
				msts.On("GetCallerIdentity", ctx, mock.Anything).Return((*sts.GetCallerIdentityOutput)(nil), errors.New("expired token"))
			},
			test: func(t *testing.T, here Here, err error, msts *clientmock.MockSTSClient) {
				assert.ErrorContains(t, err, "expired token")
			},
		},
		{
			name:  "context outside git leaves git empty",
			known: Known{Account: "123456789012", ContextDir: t.TempDir()},
			test: func(t *testing.T, here Here, err error, msts *clientmock.MockSTSClient) {
				assert.NoError(t, err)
				assert.Empty(t, here.Git.Sha)
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			msts := &clientmock.MockSTSClient{}

			if tc.setup != nil {
				tc.setup(msts)
			}

			here, err := Discover(ctx, tc.known, awsConfig, msts)
			tc.test(t, here, err, msts)
		})
	}
}

func TestCheckBuildContext(t *testing.T) {
	dir := t.TempDir()

	assert.Error(t, CheckBuildContext(dir, ""))
	assert.Error(t, CheckBuildContext(filepath.Join(dir, "missing"), ""))

	assert.NoError(t, os.WriteFile(filepath.Join(dir, "Dockerfile"), []byte("FROM scratch\n"), 0o644))
	assert.NoError(t, CheckBuildContext(dir, ""))

	assert.Error(t, CheckBuildContext(filepath.Join(dir, "Dockerfile"), ""))
	assert.Error(t, CheckBuildContext(dir, filepath.Join(dir, "Dockerfile.lambda")))
}
