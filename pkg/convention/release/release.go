package release

import (
	"context"
	"errors"
	"sort"
	"strings"

	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/internal/util"
	"github.com/linecard/ship/pkg/convention/config"
	"github.com/linecard/ship/pkg/service/docker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	ecrtypes "github.com/aws/aws-sdk-go-v2/service/ecr/types"
	"github.com/aws/smithy-go"
	"github.com/docker/docker/api/types"
	"github.com/golang-module/carbon/v2"
	"github.com/rs/zerolog/log"
)

type RegistryService interface {
	PutRepository(ctx context.Context, registryId, repositoryName string) (bool, error)
	List(ctx context.Context, registryId, repositoryName string) ([]ecrtypes.ImageDetail, error)
	Digest(ctx context.Context, registryId, repositoryName, tag string) (string, error)
}

type BuildService interface {
	Build(ctx context.Context, i docker.BuildInput) error
	Tag(ctx context.Context, source, target string) error
	Push(ctx context.Context, ref string) error
	InspectByRef(ctx context.Context, ref string) (types.ImageInspect, error)
}

type Image struct {
	types.ImageInspect
}

type ReleaseSummary struct {
	Tags     []string
	Digest   string
	Pushed   string
	Released string
	Current  bool
}

type Service struct {
	Registry RegistryService
	Build    BuildService
}

type Convention struct {
	Config  config.Config
	Service Service
}

func FromServices(c config.Config, r RegistryService, b BuildService) Convention {
	return Convention{
		Config: c,
		Service: Service{
			Registry: r,
			Build:    b,
		},
	}
}

// Build builds the context into the local image {repository}:{tag}.
func (c Convention) Build(ctx context.Context) (Image, error) {
	ctx, span := tracing.Tracer().Start(ctx, "release.Build")
	defer span.End()

	input := docker.BuildInput{
		Context:    c.Config.Image.Context,
		Dockerfile: c.Config.Image.Dockerfile,
		Platform:   c.Config.Image.Platform,
		Tags:       []string{c.Config.LocalRef()},
		Labels:     c.Labels(),
		MultiArch:  c.Config.Image.MultiArch,
	}

	span.SetAttributes(
		attribute.String("build-context", input.Context),
		attribute.String("platform", input.Platform),
		attribute.String("local-ref", c.Config.LocalRef()),
		attribute.String("sha", c.Config.Git.Sha),
		attribute.Bool("dirty", c.Config.Git.Dirty),
		attribute.Bool("multi-arch", input.MultiArch),
	)

	if c.Config.Git.Dirty {
		log.Warn().Str("sha", c.Config.Git.Sha).Msg("building from a dirty worktree")
	}

	if err := c.Service.Build.Build(ctx, input); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Image{}, err
	}

	inspect, err := c.Service.Build.InspectByRef(ctx, c.Config.LocalRef())
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return Image{}, err
	}

	if want := platformArch(c.Config.Image.Platform); want != "" && inspect.Architecture != want {
		log.Warn().
			Str("platform", c.Config.Image.Platform).
			Str("architecture", inspect.Architecture).
			Msg("built image architecture does not match the requested platform")
	}

	span.SetAttributes(
		attribute.String("image-id", inspect.ID),
		attribute.String("architecture", inspect.Architecture),
	)

	return Image{inspect}, nil
}

// Tag points the registry reference at the local image.
func (c Convention) Tag(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "release.Tag")
	defer span.End()

	span.SetAttributes(
		attribute.String("local-ref", c.Config.LocalRef()),
		attribute.String("image-ref", c.Config.ImageRef()),
	)

	if err := c.Service.Build.Tag(ctx, c.Config.LocalRef(), c.Config.ImageRef()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}

// Publish pushes the registry reference and returns the digest ECR recorded for it.
func (c Convention) Publish(ctx context.Context) (string, error) {
	ctx, span := tracing.Tracer().Start(ctx, "release.Publish")
	defer span.End()

	span.SetAttributes(attribute.String("image-ref", c.Config.ImageRef()))

	if err := c.Service.Build.Push(ctx, c.Config.ImageRef()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	digest, err := c.Service.Registry.Digest(ctx, c.Config.Account.Id, c.Config.Image.Repository, c.Config.Image.Tag)
	if err != nil {
		// the push itself succeeded
		log.Warn().Err(err).Str("image", c.Config.ImageRef()).Msg("could not resolve pushed digest")
		return "", nil
	}

	span.SetAttributes(attribute.String("image-digest", digest))

	return digest, nil
}

func (c Convention) EnsureRepository(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "release.EnsureRepository")
	defer span.End()

	created, err := c.Service.Registry.PutRepository(ctx, c.Config.Account.Id, c.Config.Image.Repository)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if created {
		log.Info().Str("repository", c.Config.Image.Repository).Msg("created repository")
	}

	return nil
}

// List summarizes the images in the repository, newest first.
func (c Convention) List(ctx context.Context) ([]ReleaseSummary, error) {
	var releases []ReleaseSummary
	var apiErr smithy.APIError

	ctx, span := tracing.Tracer().Start(ctx, "release.List")
	defer span.End()

	details, err := c.Service.Registry.List(ctx, c.Config.Account.Id, c.Config.Image.Repository)
	if errors.As(err, &apiErr) {
		switch apiErr.ErrorCode() {
		case "RepositoryNotFoundException":
			return []ReleaseSummary{}, nil
		}
	}

	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return []ReleaseSummary{}, err
	}

	sort.SliceStable(details, func(i, j int) bool {
		if details[i].ImagePushedAt == nil || details[j].ImagePushedAt == nil {
			return details[j].ImagePushedAt == nil && details[i].ImagePushedAt != nil
		}
		return details[i].ImagePushedAt.After(*details[j].ImagePushedAt)
	})

	for _, image := range details {
		summary := ReleaseSummary{Tags: image.ImageTags}

		if image.ImageDigest != nil {
			summary.Digest = *image.ImageDigest
		}

		if image.ImagePushedAt != nil {
			pushed := carbon.CreateFromStdTime(*image.ImagePushedAt)
			summary.Pushed = pushed.ToDateTimeString()
			summary.Released = pushed.DiffForHumans()
		}

		for _, tag := range image.ImageTags {
			if tag == c.Config.Image.Tag {
				summary.Current = true
			}
		}

		releases = append(releases, summary)
	}

	return releases, nil
}

// Labels are the OCI annotations stamped on every image.
func (c Convention) Labels() map[string]string {
	labels := map[string]string{
		"org.opencontainers.image.version": c.Config.Image.Tag,
	}

	if c.Config.Git.Sha != "" {
		labels["org.opencontainers.image.revision"] = c.Config.Git.Sha
	}

	if c.Config.Git.Branch != "" {
		labels["org.opencontainers.image.ref.name"] = c.Config.Git.Branch
	}

	return labels
}

func platformArch(platform string) string {
	if !util.PlatformLike(platform) {
		return ""
	}
	return strings.Split(platform, "/")[1]
}
