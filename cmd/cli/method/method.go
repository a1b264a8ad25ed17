package method

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/linecard/ship/cmd/cli/param"
	"github.com/linecard/ship/cmd/cli/view"
	"github.com/linecard/ship/pkg/convention/pipeline"
	"github.com/linecard/ship/pkg/sdk"
	"github.com/linecard/ship/pkg/service/function"

	"github.com/rs/zerolog/log"
)

var Out io.Writer = os.Stdout

func Deploy(ctx context.Context, api sdk.API, p *param.Deploy) error {
	result, err := api.Pipeline.Run(ctx)
	if err != nil {
		return err
	}

	log.Info().
		Str("image", result.ImageRef).
		Str("digest", result.Digest).
		Str("function", result.Function).
		Msg("deployed")

	return nil
}

func Publish(ctx context.Context, api sdk.API, p *param.Publish) error {
	result, err := api.Pipeline.Publish(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("image", result.ImageRef).Str("digest", result.Digest).Msg("published")
	fmt.Fprintln(Out, result.ImageRef)

	return nil
}

func Update(ctx context.Context, api sdk.API, p *param.Update) error {
	if !api.Config.Function.Update {
		return fmt.Errorf("update does nothing when function update is skipped")
	}

	result, err := api.Pipeline.Update(ctx)
	if err != nil {
		return err
	}

	log.Info().Str("image", result.ImageRef).Str("function", result.Function).Msg("updated")

	return nil
}

func Login(ctx context.Context, api sdk.API, p *param.Login) error {
	if err := api.Account.LoginToEcr(ctx); err != nil {
		return err
	}

	log.Info().Str("registry", api.Config.RegistryUrl()).Msg("logged in")

	return nil
}

func Plan(ctx context.Context, api sdk.API, p *param.Plan) error {
	preview := pipeline.Result{ImageRef: api.Config.ImageRef()}
	if api.Config.Function.Update {
		preview.Function = api.Config.Function.Name
	}

	fmt.Fprint(Out, view.Plan(api.Pipeline.Plan(), preview))

	return nil
}

func ListReleases(ctx context.Context, api sdk.API, p *param.Releases) error {
	releases, err := api.Release.List(ctx)
	if err != nil {
		return err
	}

	var deployedDigest string
	if api.Config.Function.Name != "" {
		deployment, err := api.Deployment.Find(ctx)
		switch {
		case errors.Is(err, function.ErrNotFound):
			log.Warn().Str("function", api.Config.Function.Name).Msg("function not found")
		case err != nil:
			return err
		default:
			deployedDigest = deployment.Digest()
		}
	}

	if len(releases) == 0 {
		log.Info().Str("repository", api.Config.Image.Repository).Msg("no releases")
		return nil
	}

	fmt.Fprintln(Out, view.Releases(releases, deployedDigest))

	return nil
}

func PrintConfig(ctx context.Context, api sdk.API, p *param.Config) error {
	cJson, err := api.Config.Json()
	if err != nil {
		return err
	}

	fmt.Fprintln(Out, cJson)

	return nil
}
