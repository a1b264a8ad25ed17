package sdk

import (
	"context"

	// config
	"github.com/linecard/ship/pkg/convention/config"

	// services
	"github.com/linecard/ship/pkg/service/docker"
	"github.com/linecard/ship/pkg/service/event"
	"github.com/linecard/ship/pkg/service/function"
	"github.com/linecard/ship/pkg/service/registry"
	"github.com/linecard/ship/pkg/service/secret"

	// conventions
	"github.com/linecard/ship/pkg/convention/account"
	"github.com/linecard/ship/pkg/convention/deployment"
	"github.com/linecard/ship/pkg/convention/pipeline"
	"github.com/linecard/ship/pkg/convention/release"

	// clients
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ecr"
	"github.com/aws/aws-sdk-go-v2/service/eventbridge"
	"github.com/aws/aws-sdk-go-v2/service/lambda"
	"github.com/aws/aws-sdk-go-v2/service/ssm"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/rs/zerolog/log"
)

type Clients struct {
	StsClient         *sts.Client
	EcrClient         *ecr.Client
	LambdaClient      *lambda.Client
	SsmClient         *ssm.Client
	EventBridgeClient *eventbridge.Client
}

type Services struct {
	Docker   docker.Service
	Registry registry.Service
	Function function.Service
	Secret   secret.Service
	Event    event.Service
}

type Conventions struct {
	Account    account.Convention
	Release    release.Convention
	Deployment deployment.Convention
	Pipeline   pipeline.Convention
}

type API struct {
	Conventions
	Config config.Config
}

func Init(ctx context.Context, awsConfig aws.Config, config config.Config) (API, error) {
	clients, err := InitClients(ctx, awsConfig)
	if err != nil {
		return API{}, err
	}

	services, err := InitServices(ctx, clients)
	if err != nil {
		return API{}, err
	}

	return FromServices(ctx, config, services)
}

// FromServices builds the API over already initialized services.
func FromServices(ctx context.Context, config config.Config, services Services) (API, error) {
	conventions, err := InitConventions(ctx, config, services)
	if err != nil {
		return API{}, err
	}

	return API{
		Conventions: conventions,
		Config:      config,
	}, nil
}

func InitConventions(ctx context.Context, config config.Config, services Services) (Conventions, error) {
	accountConvention := account.FromServices(config, services.Docker, services.Registry)
	releaseConvention := release.FromServices(config, services.Registry, services.Docker)
	deploymentConvention := deployment.FromServices(config, services.Function)

	return Conventions{
		Account:    accountConvention,
		Release:    releaseConvention,
		Deployment: deploymentConvention,
		Pipeline:   pipeline.FromConventions(config, accountConvention, releaseConvention, deploymentConvention, services.Event),
	}, nil
}

func InitServices(ctx context.Context, clients Clients) (Services, error) {
	dockerService, err := docker.FromPath(ctx)
	if err != nil {
		// read-only commands never shell out; build steps fail with the exec error
		log.Debug().Err(err).Msg("docker not found on PATH")
		dockerService = docker.FromBinary("docker")
	}

	return Services{
		Docker:   dockerService,
		Registry: registry.FromClients(clients.EcrClient),
		Function: function.FromClients(clients.LambdaClient),
		Secret:   secret.FromClients(clients.SsmClient),
		Event:    event.FromClients(clients.EventBridgeClient),
	}, nil
}

func InitClients(ctx context.Context, awsConfig aws.Config) (Clients, error) {
	return Clients{
		StsClient:         sts.NewFromConfig(awsConfig),
		EcrClient:         ecr.NewFromConfig(awsConfig),
		LambdaClient:      lambda.NewFromConfig(awsConfig),
		SsmClient:         ssm.NewFromConfig(awsConfig),
		EventBridgeClient: eventbridge.NewFromConfig(awsConfig),
	}, nil
}
