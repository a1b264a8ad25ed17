package pipeline

import (
	"context"
	"time"

	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/pkg/convention/config"
	"github.com/linecard/ship/pkg/convention/release"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/rs/zerolog/log"
)

const (
	StepLogin            = "login"
	StepEnsureRepository = "ensure-repository"
	StepBuild            = "build"
	StepTag              = "tag"
	StepPush             = "push"
	StepUpdateCode       = "update-code"
	StepWait             = "wait"
	StepConfigure        = "configure"
	StepAnnounce         = "announce"
)

const DeployedDetailType = "Deployment Completed"

type Scope int

const (
	ScopeDeploy Scope = iota
	ScopePublish
	ScopeUpdate
)

type AccountConvention interface {
	LoginToEcr(ctx context.Context) error
}

type ReleaseConvention interface {
	EnsureRepository(ctx context.Context) error
	Build(ctx context.Context) (release.Image, error)
	Tag(ctx context.Context) error
	Publish(ctx context.Context) (string, error)
}

type DeploymentConvention interface {
	UpdateCode(ctx context.Context) error
	Wait(ctx context.Context) error
	Configure(ctx context.Context) error
}

type EventService interface {
	Emit(ctx context.Context, busName, detailType string, detail any) error
}

type Conventions struct {
	Account    AccountConvention
	Release    ReleaseConvention
	Deployment DeploymentConvention
	Event      EventService
}

type Convention struct {
	Config     config.Config
	Convention Conventions
}

// Result records what a run got through. It is populated even when the run fails.
type Result struct {
	Steps    []string
	ImageRef string
	Digest   string
	Function string
}

// Deployed is the announcement detail. It carries no environment values.
type Deployed struct {
	Function   string `json:"function"`
	ImageRef   string `json:"imageRef"`
	Digest     string `json:"digest,omitempty"`
	Repository string `json:"repository"`
	Tag        string `json:"tag"`
	Sha        string `json:"sha,omitempty"`
	Region     string `json:"region"`
	Account    string `json:"account"`
}

type step struct {
	name string
	kind Kind
	run  func(ctx context.Context, result *Result) error
}

func FromConventions(c config.Config, a AccountConvention, r ReleaseConvention, d DeploymentConvention, e EventService) Convention {
	return Convention{
		Config: c,
		Convention: Conventions{
			Account:    a,
			Release:    r,
			Deployment: d,
			Event:      e,
		},
	}
}

// Run executes the full pipeline in order and stops at the first failure.
func (c Convention) Run(ctx context.Context) (Result, error) {
	return c.execute(ctx, ScopeDeploy)
}

// Publish runs login through push.
func (c Convention) Publish(ctx context.Context) (Result, error) {
	return c.execute(ctx, ScopePublish)
}

// Update points the function at an already pushed image and configures it.
func (c Convention) Update(ctx context.Context) (Result, error) {
	return c.execute(ctx, ScopeUpdate)
}

// Plan lists the steps Run would execute, in order.
func (c Convention) Plan() []string {
	return c.PlanFor(ScopeDeploy)
}

func (c Convention) PlanFor(scope Scope) []string {
	var names []string
	for _, s := range c.steps(scope) {
		names = append(names, s.name)
	}
	return names
}

func (c Convention) steps(scope Scope) []step {
	var steps []step

	if scope != ScopeUpdate {
		steps = append(steps, step{StepLogin, KindAuth, c.login})

		if c.Config.EnsureRepository {
			steps = append(steps, step{StepEnsureRepository, KindPush, c.ensureRepository})
		}

		steps = append(steps,
			step{StepBuild, KindBuild, c.build},
			step{StepTag, KindBuild, c.tag},
			step{StepPush, KindPush, c.push},
		)
	}

	if scope == ScopePublish || !c.Config.Function.Update {
		return steps
	}

	steps = append(steps,
		step{StepUpdateCode, KindDeploy, c.updateCode},
		step{StepWait, KindDeploy, c.wait},
		step{StepConfigure, KindDeploy, c.configure},
	)

	if c.Config.EventBus != "" {
		steps = append(steps, step{StepAnnounce, KindDeploy, c.announce})
	}

	return steps
}

func (c Convention) execute(ctx context.Context, scope Scope) (Result, error) {
	ctx, span := tracing.Tracer().Start(ctx, "pipeline.Run")
	defer span.End()

	result := Result{ImageRef: c.Config.ImageRef()}
	if c.Config.Function.Update {
		result.Function = c.Config.Function.Name
	}

	span.SetAttributes(
		attribute.String("image-ref", result.ImageRef),
		attribute.String("function", result.Function),
		attribute.StringSlice("steps", c.PlanFor(scope)),
	)

	for _, s := range c.steps(scope) {
		if err := c.runStep(ctx, s, &result); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return result, err
		}
		result.Steps = append(result.Steps, s.name)
	}

	return result, nil
}

func (c Convention) runStep(ctx context.Context, s step, result *Result) error {
	if err := ctx.Err(); err != nil {
		return &StepError{Step: s.name, Kind: s.kind, Err: err}
	}

	ctx, span := tracing.Tracer().Start(ctx, "pipeline."+s.name)
	defer span.End()

	logger := log.With().
		Str("step", s.name).
		Str("image", result.ImageRef).
		Str("function", result.Function).
		Logger()

	logger.Info().Msg("starting")
	start := time.Now()

	if err := s.run(ctx, result); err != nil {
		span.SetStatus(codes.Error, err.Error())
		logger.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("failed")
		return &StepError{Step: s.name, Kind: s.kind, Err: err}
	}

	logger.Info().Dur("elapsed", time.Since(start)).Msg("done")
	return nil
}

func (c Convention) login(ctx context.Context, _ *Result) error {
	return c.Convention.Account.LoginToEcr(ctx)
}

func (c Convention) ensureRepository(ctx context.Context, _ *Result) error {
	return c.Convention.Release.EnsureRepository(ctx)
}

func (c Convention) build(ctx context.Context, _ *Result) error {
	_, err := c.Convention.Release.Build(ctx)
	return err
}

func (c Convention) tag(ctx context.Context, _ *Result) error {
	return c.Convention.Release.Tag(ctx)
}

func (c Convention) push(ctx context.Context, result *Result) error {
	digest, err := c.Convention.Release.Publish(ctx)
	result.Digest = digest
	return err
}

func (c Convention) updateCode(ctx context.Context, _ *Result) error {
	return c.Convention.Deployment.UpdateCode(ctx)
}

func (c Convention) wait(ctx context.Context, _ *Result) error {
	return c.Convention.Deployment.Wait(ctx)
}

func (c Convention) configure(ctx context.Context, _ *Result) error {
	return c.Convention.Deployment.Configure(ctx)
}

func (c Convention) announce(ctx context.Context, result *Result) error {
	detail := Deployed{
		Function:   c.Config.Function.Name,
		ImageRef:   result.ImageRef,
		Digest:     result.Digest,
		Repository: c.Config.Image.Repository,
		Tag:        c.Config.Image.Tag,
		Sha:        c.Config.Git.Sha,
		Region:     c.Config.Account.Region,
		Account:    c.Config.Account.Id,
	}

	return c.Convention.Event.Emit(ctx, c.Config.EventBus, DeployedDetailType, detail)
}
