package umwelt

import (
	"context"
	"errors"

	"github.com/linecard/ship/internal/gitlib"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog/log"
)

// https://en.wikipedia.org/wiki/Umwelt
//
// Umwelt (German for "environment" or "surroundings") fills configuration gaps from the execution context:
// the AWS caller, the shared config region and the git worktree holding the build context.

type STSClient interface {
	GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error)
}

type ThisCaller struct {
	Arn     string
	Account string
	Region  string
}

type Here struct {
	Caller ThisCaller
	Git    gitlib.DotGit
}

// Known is what the operator already supplied. Discovery only runs for what is missing.
type Known struct {
	Region     string
	Account    string
	Tag        string
	ContextDir string
}

func Discover(ctx context.Context, known Known, awsConfig aws.Config, stsc STSClient) (here Here, err error) {
	if known.Account != "" {
		here.Caller.Account = known.Account
	} else if here.Caller, err = GetCaller(ctx, stsc); err != nil {
		return here, err
	}

	here.Caller.Region = GetRegion(known.Region, awsConfig)

	git, err := gitlib.FromPath(known.ContextDir)
	switch {
	case errors.Is(err, gitlib.ErrNotRepository):
		log.Debug().Str("context", known.ContextDir).Msg("build context is not inside a git worktree")
	case err != nil && known.Tag == "":
		return here, err
	case err != nil:
		log.Debug().Err(err).Msg("ignoring git discovery failure, tag given explicitly")
	default:
		here.Git = git
	}

	return here, nil
}
