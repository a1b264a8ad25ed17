package config

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func processorConfig() Config {
	return Config{
		Account: Account{Id: "123456789012", Region: "us-east-1"},
		Image: Image{
			Repository: "lambda-s3-processor",
			Tag:        "v0.10",
			Platform:   DefaultPlatform,
			Context:    DefaultContext,
		},
		Function: Function{
			Name:        "lambda-s3-processor",
			Update:      true,
			Timeout:     DefaultTimeout,
			Memory:      DefaultMemory,
			WaitTimeout: DefaultWaitTimeout,
			Environment: map[string]Secret{
				"PINECONE_API_KEY":    NewSecret("pc-secret"),
				"PINECONE_INDEX_NAME": NewSecret("documents"),
				"OPENAI_API_KEY":      NewSecret("sk-secret"),
			},
		},
	}
}

func TestDerived(t *testing.T) {
	c := processorConfig()

	assert.Equal(t, "123456789012.dkr.ecr.us-east-1.amazonaws.com", c.RegistryUrl())
	assert.Equal(t, "123456789012.dkr.ecr.us-east-1.amazonaws.com/lambda-s3-processor", c.RepositoryUrl())
	assert.Equal(t, "lambda-s3-processor:v0.10", c.LocalRef())
	assert.Equal(t, "123456789012.dkr.ecr.us-east-1.amazonaws.com/lambda-s3-processor:v0.10", c.ImageRef())
	assert.Equal(t, "Dockerfile", c.DockerfilePath())

	c.Image.Dockerfile = "build/Dockerfile.lambda"
	assert.Equal(t, "build/Dockerfile.lambda", c.DockerfilePath())

	assert.Equal(t, []string{"OPENAI_API_KEY", "PINECONE_API_KEY", "PINECONE_INDEX_NAME"}, c.EnvironmentNames())
	assert.Equal(t, "sk-secret", c.RevealEnvironment()["OPENAI_API_KEY"])
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name     string
		mutate   func(*Config)
		problems []string
	}{
		{
			name:   "valid",
			mutate: func(c *Config) {},
		},
		{
			name: "everything wrong at once",
			mutate: func(c *Config) {
				c.Account.Region = ""
				c.Account.Id = "1234"
				c.Image.Repository = "Lambda"
				c.Image.Tag = ""
				c.Image.Platform = "amd64"
				c.Function.Name = ""
				c.Function.Timeout = 901
				c.Function.Memory = 64
			},
			problems: []string{
				`account id "1234" must be 12 digits`,
				"function name is required unless function update is skipped",
				"memory 64 outside 128..10240 MB",
				`platform "amd64" must be a single os/arch[/variant]`,
				"region is required",
				`repository "Lambda" must be lowercase`,
				`tag "" is not a valid image tag`,
				"timeout 901 outside 1..900 seconds",
			},
		},
		{
			name: "function settings ignored when update skipped",
			mutate: func(c *Config) {
				c.Function.Update = false
				c.Function.Name = ""
				c.Function.Timeout = 0
				c.Function.WaitTimeout = 0
			},
		},
		{
			name: "bounds are inclusive",
			mutate: func(c *Config) {
				c.Function.Timeout = 900
				c.Function.Memory = 10240
			},
		},
		{
			name: "platform list is not a single platform",
			mutate: func(c *Config) {
				c.Image.Platform = "linux/amd64,linux/arm64"
			},
			problems: []string{`platform "linux/amd64,linux/arm64" must be a single os/arch[/variant]`},
		},
		{
			name: "platform variant",
			mutate: func(c *Config) {
				c.Image.Platform = "linux/arm64/v8"
			},
		},
		{
			name: "empty variable name",
			mutate: func(c *Config) {
				c.Function.Environment[""] = NewSecret("x")
			},
			problems: []string{"environment variable names must not be empty"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := processorConfig()
			tt.mutate(&c)

			err := c.Validate()
			if tt.problems == nil {
				assert.NoError(t, err)
				return
			}

			var inputErr *InputError
			assert.True(t, errors.As(err, &inputErr))
			assert.Equal(t, tt.problems, inputErr.Problems)
		})
	}
}

func TestJsonRedactsSecrets(t *testing.T) {
	c := processorConfig()

	cJson, err := c.Json()
	assert.NoError(t, err)

	assert.Contains(t, cJson, `"ImageRef": "123456789012.dkr.ecr.us-east-1.amazonaws.com/lambda-s3-processor:v0.10"`)
	assert.Contains(t, cJson, `"OPENAI_API_KEY": "[redacted]"`)
	assert.NotContains(t, cJson, "sk-secret")
	assert.NotContains(t, cJson, "pc-secret")

	assert.NotContains(t, fmt.Sprintf("%v %+v %#v", c, c, c), "sk-secret")
}
