package config

import (
	"bytes"
	"fmt"
	"os"
	"time"

	"github.com/linecard/ship/internal/umwelt"
	"github.com/linecard/ship/internal/util"

	"github.com/aws/aws-sdk-go-v2/aws"
	"gopkg.in/yaml.v3"
)

// Draft is configuration before discovery and secret resolution. Zero values mean unset.
type Draft struct {
	Region             string        `yaml:"region"`
	Account            string        `yaml:"account"`
	Repository         string        `yaml:"repository"`
	Tag                string        `yaml:"tag"`
	Function           string        `yaml:"function"`
	Platform           string        `yaml:"platform"`
	Context            string        `yaml:"context"`
	Dockerfile         string        `yaml:"dockerfile"`
	MultiArch          *bool         `yaml:"multiArch"`
	SkipFunctionUpdate *bool         `yaml:"skipFunctionUpdate"`
	EnsureRepository   *bool         `yaml:"ensureRepository"`
	EventBus           string        `yaml:"eventBus"`
	Timeout            int32         `yaml:"timeout"`
	Memory             int32         `yaml:"memory"`
	WaitTimeout        time.Duration `yaml:"waitTimeout"`
	Environment        []string      `yaml:"environment"`
}

func ReadFile(path string) (Draft, error) {
	var d Draft

	content, err := os.ReadFile(path)
	if err != nil {
		return Draft{}, err
	}

	decoder := yaml.NewDecoder(bytes.NewReader(content))
	decoder.KnownFields(true)

	if err := decoder.Decode(&d); err != nil {
		return Draft{}, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	return d, nil
}

// Merge layers over onto d. Set fields in over win, including booleans set to false.
func (d Draft) Merge(over Draft) Draft {
	merged := d

	setString(&merged.Region, over.Region)
	setString(&merged.Account, over.Account)
	setString(&merged.Repository, over.Repository)
	setString(&merged.Tag, over.Tag)
	setString(&merged.Function, over.Function)
	setString(&merged.Platform, over.Platform)
	setString(&merged.Context, over.Context)
	setString(&merged.Dockerfile, over.Dockerfile)
	setString(&merged.EventBus, over.EventBus)

	setBool(&merged.MultiArch, over.MultiArch)
	setBool(&merged.SkipFunctionUpdate, over.SkipFunctionUpdate)
	setBool(&merged.EnsureRepository, over.EnsureRepository)

	if over.Timeout != 0 {
		merged.Timeout = over.Timeout
	}

	if over.Memory != 0 {
		merged.Memory = over.Memory
	}

	if over.WaitTimeout != 0 {
		merged.WaitTimeout = over.WaitTimeout
	}

	if len(over.Environment) > 0 {
		merged.Environment = over.Environment
	}

	return merged
}

// WithDefaults fills every unset field that has a static default.
func (d Draft) WithDefaults() Draft {
	if d.Platform == "" {
		d.Platform = DefaultPlatform
	}

	if d.Context == "" {
		d.Context = DefaultContext
	}

	if d.Timeout == 0 {
		d.Timeout = DefaultTimeout
	}

	if d.Memory == 0 {
		d.Memory = DefaultMemory
	}

	if d.WaitTimeout == 0 {
		d.WaitTimeout = DefaultWaitTimeout
	}

	if len(d.Environment) == 0 {
		d.Environment = DefaultEnvironment
	}

	return d
}

// FromHere combines a defaulted draft with discovered surroundings and resolved secrets.
func FromHere(d Draft, here umwelt.Here, environment map[string]Secret) (c Config) {
	c.Account.Region = d.Region
	if c.Account.Region == "" {
		c.Account.Region = here.Caller.Region
	}

	c.Account.Id = d.Account
	if c.Account.Id == "" {
		c.Account.Id = here.Caller.Account
	}

	c.Git.Branch = here.Git.Branch
	c.Git.Sha = here.Git.Sha
	c.Git.Dirty = here.Git.Dirty

	c.Image.Repository = d.Repository
	c.Image.Tag = d.Tag
	if c.Image.Tag == "" && util.ShaLike(here.Git.Sha) {
		c.Image.Tag = util.ShortSha(here.Git.Sha, DefaultTagLength)
	}
	c.Image.Platform = d.Platform
	c.Image.Context = d.Context
	c.Image.Dockerfile = d.Dockerfile
	c.Image.MultiArch = aws.ToBool(d.MultiArch)

	c.Function.Name = d.Function
	c.Function.Update = !aws.ToBool(d.SkipFunctionUpdate)
	c.Function.Timeout = d.Timeout
	c.Function.Memory = d.Memory
	c.Function.WaitTimeout = d.WaitTimeout
	c.Function.Environment = environment

	c.EnsureRepository = aws.ToBool(d.EnsureRepository)
	c.EventBus = d.EventBus

	return c
}

func setString(dst *string, value string) {
	if value != "" {
		*dst = value
	}
}

func setBool(dst **bool, value *bool) {
	if value != nil {
		*dst = value
	}
}
