package deployment

import (
	"context"
	"strings"
	"time"

	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/pkg/convention/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/rs/zerolog/log"
)

type FunctionService interface {
	Inspect(ctx context.Context, name string) (*lambda.GetFunctionOutput, error)
	UpdateCode(ctx context.Context, name, imageUri string) (*lambda.UpdateFunctionCodeOutput, error)
	WaitUpdated(ctx context.Context, name string, maxWait time.Duration) error
	PatchConfiguration(ctx context.Context, name string, environment map[string]string, timeout, memory int32) (*lambda.UpdateFunctionConfigurationOutput, error)
}

type Deployment struct {
	lambda.GetFunctionOutput
}

type Services struct {
	Function FunctionService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, f FunctionService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Function: f,
		},
	}
}

func (c Convention) Find(ctx context.Context) (Deployment, error) {
	ctx, span := tracing.Tracer().Start(ctx, "deployment.Find")
	defer span.End()

	span.SetAttributes(attribute.String("function", c.Config.Function.Name))

	output, err := c.Service.Function.Inspect(ctx, c.Config.Function.Name)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Deployment{}, err
	}

	return Deployment{*output}, nil
}

// UpdateCode points the function at the pushed image reference.
func (c Convention) UpdateCode(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "deployment.UpdateCode")
	defer span.End()

	span.SetAttributes(
		attribute.String("function", c.Config.Function.Name),
		attribute.String("image-ref", c.Config.ImageRef()),
	)

	output, err := c.Service.Function.UpdateCode(ctx, c.Config.Function.Name, c.Config.ImageRef())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	log.Debug().
		Str("function", c.Config.Function.Name).
		Str("codeSha256", aws.ToString(output.CodeSha256)).
		Msg("code update accepted")

	return nil
}

func (c Convention) Wait(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "deployment.Wait")
	defer span.End()

	span.SetAttributes(
		attribute.String("function", c.Config.Function.Name),
		attribute.String("max-wait", c.Config.Function.WaitTimeout.String()),
	)

	if err := c.Service.Function.WaitUpdated(ctx, c.Config.Function.Name, c.Config.Function.WaitTimeout); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Configure replaces the function environment and sets timeout and memory. Only variable names are traced.
func (c Convention) Configure(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "deployment.Configure")
	defer span.End()

	span.SetAttributes(
		attribute.String("function", c.Config.Function.Name),
		attribute.Int("timeout", int(c.Config.Function.Timeout)),
		attribute.Int("memory", int(c.Config.Function.Memory)),
		attribute.StringSlice("environment", c.Config.EnvironmentNames()),
	)

	_, err := c.Service.Function.PatchConfiguration(
		ctx,
		c.Config.Function.Name,
		c.Config.RevealEnvironment(),
		c.Config.Function.Timeout,
		c.Config.Function.Memory,
	)

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// ImageUri is the image the function currently runs.
func (d Deployment) ImageUri() string {
	if d.Code == nil {
		return ""
	}
	return aws.ToString(d.Code.ImageUri)
}

// Digest is the manifest digest Lambda resolved the image to.
func (d Deployment) Digest() string {
	if d.Code == nil {
		return ""
	}

	_, digest, found := strings.Cut(aws.ToString(d.Code.ResolvedImageUri), "@")
	if !found {
		return ""
	}
	return digest
}
