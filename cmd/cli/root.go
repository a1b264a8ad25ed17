package cli

import (
	"context"
	"os"

	"github.com/alexflint/go-arg"
	"github.com/linecard/ship/cmd/cli/router"
	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/internal/umwelt"
	"github.com/linecard/ship/internal/util"
	"github.com/linecard/ship/pkg/convention/config"
	"github.com/linecard/ship/pkg/convention/pipeline"
	"github.com/linecard/ship/pkg/sdk"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Invoke parses arguments, runs the selected command and returns the process exit status.
func Invoke(ctx context.Context) int {
	var root router.Root

	ctx, span := tracing.Tracer().Start(ctx, "ship")
	defer span.End()

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	parser := arg.MustParse(&root)
	if !root.Selected() {
		parser.WriteHelp(os.Stdout)
		return 2
	}

	api, err := load(ctx, root)
	if err != nil {
		log.Error().Err(err).Msg("failed to load configuration")
		return pipeline.ExitCode(err)
	}

	if err := root.Route(ctx, api); err != nil {
		log.Error().Err(err).Strs("argv", os.Args[1:]).Msg("failed command")
		return pipeline.ExitCode(err)
	}

	return 0
}

func load(ctx context.Context, root router.Root) (sdk.API, error) {
	draft, err := layer(root)
	if err != nil {
		return sdk.API{}, err
	}

	if root.Builds() {
		if err := umwelt.CheckBuildContext(draft.Context, draft.Dockerfile); err != nil {
			return sdk.API{}, err
		}
	}

	retryLogger := util.RetryLogger{
		Log: &log.Logger,
	}

	options := []func(*awsconfig.LoadOptions) error{
		awsconfig.WithLogger(&retryLogger),
		awsconfig.WithClientLogMode(aws.LogRetries),
	}

	if draft.Region != "" {
		options = append(options, awsconfig.WithRegion(draft.Region))
	}

	awsConfig, err := awsconfig.LoadDefaultConfig(ctx, options...)
	if err != nil {
		return sdk.API{}, err
	}

	clients, err := sdk.InitClients(ctx, awsConfig)
	if err != nil {
		return sdk.API{}, err
	}

	services, err := sdk.InitServices(ctx, clients)
	if err != nil {
		return sdk.API{}, err
	}

	here, err := umwelt.Discover(ctx, umwelt.Known{
		Region:     draft.Region,
		Account:    draft.Account,
		Tag:        draft.Tag,
		ContextDir: draft.Context,
	}, awsConfig, clients.StsClient)

	if err != nil {
		return sdk.API{}, err
	}

	var environment map[string]config.Secret
	if root.NeedsEnvironment() {
		refs, err := config.ParseRefs(draft.Environment)
		if err != nil {
			return sdk.API{}, err
		}

		if environment, err = config.ResolveEnvironment(ctx, refs, os.LookupEnv, services.Secret); err != nil {
			return sdk.API{}, err
		}
	}

	cfg := config.FromHere(draft, here, environment)
	if err := cfg.Validate(); err != nil {
		return sdk.API{}, err
	}

	log.Debug().
		Str("image", cfg.ImageRef()).
		Str("function", cfg.Function.Name).
		Strs("environment", cfg.EnvironmentNames()).
		Msg("configuration loaded")

	return sdk.FromServices(ctx, cfg, services)
}

// layer stacks defaults, the deploy file and flags. Commands that never touch the function skip its update.
func layer(root router.Root) (config.Draft, error) {
	var draft config.Draft

	if root.ConfigFile != "" {
		file, err := config.ReadFile(root.ConfigFile)
		if err != nil {
			return config.Draft{}, err
		}
		draft = draft.Merge(file)
	}

	draft = draft.Merge(root.GlobalOpts.Draft())

	if !root.TouchesFunction() {
		draft.SkipFunctionUpdate = aws.Bool(true)
	}

	return draft.WithDefaults(), nil
}
