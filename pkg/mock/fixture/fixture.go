package mock

import (
	"time"

	"github.com/linecard/ship/pkg/convention/config"
)

const (
	Account    = "123456789012"
	Region     = "us-east-1"
	Repository = "lambda-s3-processor"
	Tag        = "v0.10"
	Function   = "doc-pinecone-handler"
	ImageRef   = "123456789012.dkr.ecr.us-east-1.amazonaws.com/lambda-s3-processor:v0.10"
	Sha        = "0123456789abcdef0123456789abcdef01234567"
)

// Plaintext values behind Config's environment. Tests assert these never reach logs.
var Secrets = map[string]string{
	"PINECONE_API_KEY":    "pc-7f1e2d3c-fixture",
	"PINECONE_INDEX_NAME": "documents-fixture",
	"OPENAI_API_KEY":      "sk-fixture-9a8b7c6d",
}

// Config is the document processor deployment used across tests.
func Config() config.Config {
	environment := make(map[string]config.Secret, len(Secrets))
	for name, value := range Secrets {
		environment[name] = config.NewSecret(value)
	}

	return config.Config{
		Account: config.Account{
			Id:     Account,
			Region: Region,
		},
		Git: config.Git{
			Branch: "main",
			Sha:    Sha,
		},
		Image: config.Image{
			Repository: Repository,
			Tag:        Tag,
			Platform:   config.DefaultPlatform,
			Context:    config.DefaultContext,
		},
		Function: config.Function{
			Name:        Function,
			Update:      true,
			Timeout:     config.DefaultTimeout,
			Memory:      config.DefaultMemory,
			WaitTimeout: time.Minute,
			Environment: environment,
		},
	}
}
