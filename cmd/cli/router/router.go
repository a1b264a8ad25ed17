package router

import (
	"context"
	"fmt"

	"github.com/linecard/ship/cmd/cli/method"
	"github.com/linecard/ship/cmd/cli/param"
	"github.com/linecard/ship/pkg/sdk"
)

type Root struct {
	param.GlobalOpts
	Deploy   *param.Deploy   `arg:"subcommand:deploy" help:"Login, build, tag, push and update the function"`
	Publish  *param.Publish  `arg:"subcommand:publish" help:"Login, build, tag and push"`
	Update   *param.Update   `arg:"subcommand:update" help:"Point the function at a pushed image and configure it"`
	Login    *param.Login    `arg:"subcommand:login" help:"Login to the registry"`
	Plan     *param.Plan     `arg:"subcommand:plan" help:"Print the steps deploy would run"`
	Releases *param.Releases `arg:"subcommand:releases" help:"List images in the repository"`
	Config   *param.Config   `arg:"subcommand:config" help:"Print configuration"`
}

func (r Root) Description() string {
	return "Build a container image, push it to ECR and roll it out to a Lambda function."
}

// TouchesFunction reports whether the command reads or changes the function.
func (r Root) TouchesFunction() bool {
	return r.Deploy != nil || r.Update != nil || r.Plan != nil || r.Config != nil
}

// NeedsEnvironment reports whether the command resolves the function environment.
func (r Root) NeedsEnvironment() bool {
	return r.Deploy != nil || r.Update != nil || r.Config != nil
}

// Builds reports whether the command needs a build context.
func (r Root) Builds() bool {
	return r.Deploy != nil || r.Publish != nil
}

func (r Root) Selected() bool {
	return r.Deploy != nil || r.Publish != nil || r.Update != nil || r.Login != nil ||
		r.Plan != nil || r.Releases != nil || r.Config != nil
}

func (r Root) Route(ctx context.Context, api sdk.API) error {
	switch {
	case r.Deploy != nil:
		return method.Deploy(ctx, api, r.Deploy)

	case r.Publish != nil:
		return method.Publish(ctx, api, r.Publish)

	case r.Update != nil:
		return method.Update(ctx, api, r.Update)

	case r.Login != nil:
		return method.Login(ctx, api, r.Login)

	case r.Plan != nil:
		return method.Plan(ctx, api, r.Plan)

	case r.Releases != nil:
		return method.ListReleases(ctx, api, r.Releases)

	case r.Config != nil:
		return method.PrintConfig(ctx, api, r.Config)

	default:
		return fmt.Errorf("no command given")
	}
}
