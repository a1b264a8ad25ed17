package config

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/linecard/ship/internal/util"
)

const (
	DefaultPlatform    = "linux/amd64"
	DefaultContext     = "."
	DefaultTimeout     = 300
	DefaultMemory      = 1024
	DefaultWaitTimeout = 5 * time.Minute
	DefaultTagLength   = 12
)

type Account struct {
	Id     string
	Region string
}

type Git struct {
	Branch string
	Sha    string
	Dirty  bool
}

type Image struct {
	Repository string
	Tag        string
	Platform   string
	Context    string
	Dockerfile string
	MultiArch  bool
}

type Function struct {
	Name        string
	Update      bool
	Timeout     int32
	Memory      int32
	WaitTimeout time.Duration
	Environment map[string]Secret
}

type Config struct {
	Account          Account
	Git              Git
	Image            Image
	Function         Function
	EnsureRepository bool
	EventBus         string
}

type InputError struct {
	Problems []string
}

func (e *InputError) Error() string {
	return "invalid configuration: " + strings.Join(e.Problems, "; ")
}

// derived information
func (c Config) RegistryUrl() string {
	return c.Account.Id + ".dkr.ecr." + c.Account.Region + ".amazonaws.com"
}

func (c Config) RepositoryUrl() string {
	return c.RegistryUrl() + "/" + c.Image.Repository
}

func (c Config) LocalRef() string {
	return c.Image.Repository + ":" + c.Image.Tag
}

func (c Config) ImageRef() string {
	return c.RepositoryUrl() + ":" + c.Image.Tag
}

func (c Config) DockerfilePath() string {
	if c.Image.Dockerfile != "" {
		return c.Image.Dockerfile
	}
	return filepath.Join(c.Image.Context, "Dockerfile")
}

// EnvironmentNames lists configured function variables in stable order.
func (c Config) EnvironmentNames() []string {
	names := make([]string, 0, len(c.Function.Environment))
	for name := range c.Function.Environment {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// RevealEnvironment returns plaintext variables for the Lambda API. Never log the result.
func (c Config) RevealEnvironment() map[string]string {
	revealed := make(map[string]string, len(c.Function.Environment))
	for name, secret := range c.Function.Environment {
		revealed[name] = secret.Reveal()
	}
	return revealed
}

func (c Config) Validate() error {
	var problems []string

	if c.Account.Region == "" {
		problems = append(problems, "region is required")
	}

	if !util.AccountLike(c.Account.Id) {
		problems = append(problems, fmt.Sprintf("account id %q must be 12 digits", c.Account.Id))
	}

	if c.Image.Repository == "" {
		problems = append(problems, "repository is required")
	} else if strings.ToLower(c.Image.Repository) != c.Image.Repository {
		problems = append(problems, fmt.Sprintf("repository %q must be lowercase", c.Image.Repository))
	}

	if !util.TagLike(c.Image.Tag) {
		problems = append(problems, fmt.Sprintf("tag %q is not a valid image tag", c.Image.Tag))
	}

	if !util.PlatformLike(c.Image.Platform) {
		problems = append(problems, fmt.Sprintf("platform %q must be a single os/arch[/variant]", c.Image.Platform))
	}

	if c.Function.Update {
		if c.Function.Name == "" {
			problems = append(problems, "function name is required unless function update is skipped")
		}

		if c.Function.Timeout < 1 || c.Function.Timeout > 900 {
			problems = append(problems, fmt.Sprintf("timeout %d outside 1..900 seconds", c.Function.Timeout))
		}

		if c.Function.Memory < 128 || c.Function.Memory > 10240 {
			problems = append(problems, fmt.Sprintf("memory %d outside 128..10240 MB", c.Function.Memory))
		}

		if c.Function.WaitTimeout <= 0 {
			problems = append(problems, "wait timeout must be positive")
		}
	}

	for name := range c.Function.Environment {
		if name == "" {
			problems = append(problems, "environment variable names must not be empty")
		}
	}

	if len(problems) > 0 {
		sort.Strings(problems)
		return &InputError{Problems: problems}
	}

	return nil
}

func (c Config) Json() (string, error) {
	view := struct {
		Config
		RegistryUrl string
		ImageRef    string
	}{c, c.RegistryUrl(), c.ImageRef()}

	cJson, err := json.MarshalIndent(view, "", "  ")
	if err != nil {
		return "", err
	}

	return string(cJson), nil
}
