package param

import (
	"time"

	"github.com/linecard/ship/pkg/convention/config"
)

type GlobalOpts struct {
	ConfigFile         string        `arg:"--config,env:SHIP_CONFIG" help:"deploy file (yaml)"`
	Region             string        `arg:"--region,env:AWS_REGION" help:"AWS region, defaults to the shared config"`
	Account            string        `arg:"--account,env:SHIP_ACCOUNT_ID" help:"AWS account id, defaults to the caller's account"`
	Repository         string        `arg:"-r,--repository,env:SHIP_REPOSITORY" help:"ECR repository name"`
	Tag                string        `arg:"-t,--tag,env:SHIP_TAG" help:"image tag, defaults to the git short sha"`
	Function           string        `arg:"-f,--function,env:SHIP_FUNCTION" help:"Lambda function name"`
	Platform           string        `arg:"-p,--platform,env:SHIP_PLATFORM" help:"build platform (default linux/amd64)"`
	Context            string        `arg:"-c,--context,env:SHIP_CONTEXT" help:"build context directory (default .)"`
	Dockerfile         string        `arg:"--dockerfile,env:SHIP_DOCKERFILE" help:"Dockerfile path, defaults to {context}/Dockerfile"`
	MultiArch          *bool         `arg:"--multi-arch,env:SHIP_MULTI_ARCH" help:"build with docker buildx, =false overrides the deploy file"`
	SkipFunctionUpdate *bool         `arg:"--skip-function-update,env:SHIP_SKIP_FUNCTION_UPDATE" help:"stop after push, =false overrides the deploy file"`
	EnsureRepository   *bool         `arg:"--ensure-repository,env:SHIP_ENSURE_REPOSITORY" help:"create the repository if missing, =false overrides the deploy file"`
	Timeout            int32         `arg:"--timeout,env:SHIP_TIMEOUT" help:"function timeout in seconds (default 300)"`
	Memory             int32         `arg:"--memory,env:SHIP_MEMORY" help:"function memory in MB (default 1024)"`
	WaitTimeout        time.Duration `arg:"--wait-timeout,env:SHIP_WAIT_TIMEOUT" help:"bound on waiting for the code update (default 5m)"`
	Env                []string      `arg:"-e,--env,separate,env:SHIP_ENV" help:"function variable NAME, NAME=env:VAR or NAME=ssm:/param, trailing ? for optional (quote optional entries in yaml flow lists)"`
	EventBus           string        `arg:"--event-bus,env:SHIP_EVENT_BUS" help:"announce deployments on this EventBridge bus"`
}

// Draft carries the flags that were actually set.
func (o GlobalOpts) Draft() config.Draft {
	return config.Draft{
		Region:             o.Region,
		Account:            o.Account,
		Repository:         o.Repository,
		Tag:                o.Tag,
		Function:           o.Function,
		Platform:           o.Platform,
		Context:            o.Context,
		Dockerfile:         o.Dockerfile,
		MultiArch:          o.MultiArch,
		SkipFunctionUpdate: o.SkipFunctionUpdate,
		EnsureRepository:   o.EnsureRepository,
		Timeout:            o.Timeout,
		Memory:             o.Memory,
		WaitTimeout:        o.WaitTimeout,
		Environment:        o.Env,
		EventBus:           o.EventBus,
	}
}

type Deploy struct{}

type Publish struct{}

type Update struct{}

type Login struct{}

type Plan struct{}

type Releases struct{}

type Config struct{}
