package account

import (
	"context"

	"github.com/linecard/ship/internal/tracing"
	"github.com/linecard/ship/pkg/convention/config"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const registryUser = "AWS"

type RegistryService interface {
	Token(ctx context.Context, registryId string) (string, error)
}

type BuildService interface {
	Login(ctx context.Context, registryUrl, username, password string) error
}

type Services struct {
	Registry RegistryService
	Build    BuildService
}

type Convention struct {
	Config  config.Config
	Service Services
}

func FromServices(c config.Config, b BuildService, r RegistryService) Convention {
	return Convention{
		Config: c,
		Service: Services{
			Registry: r,
			Build:    b,
		},
	}
}

func (c Convention) LoginToEcr(ctx context.Context) error {
	ctx, span := tracing.Tracer().Start(ctx, "account.LoginToEcr")
	defer span.End()

	span.SetAttributes(
		attribute.String("registry-url", c.Config.RegistryUrl()),
		attribute.String("registry-id", c.Config.Account.Id),
	)

	token, err := c.Service.Registry.Token(ctx, c.Config.Account.Id)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	if err := c.Service.Build.Login(ctx, c.Config.RegistryUrl(), registryUser, token); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	return nil
}
