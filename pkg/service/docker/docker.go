package docker

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"os/exec"
	"sort"
	"strings"

	"github.com/docker/docker/api/types"
	"github.com/rs/zerolog/log"
)

type Service struct {
	Binary string
	Stdout io.Writer
	Stderr io.Writer
}

type BuildInput struct {
	Context    string
	Dockerfile string
	Platform   string
	Tags       []string
	Labels     map[string]string
	MultiArch  bool
}

func FromPath(ctx context.Context) (Service, error) {
	binary, err := exec.LookPath("docker")
	if err != nil {
		return Service{}, err
	}

	return FromBinary(binary), nil
}

func FromBinary(binary string) Service {
	return Service{Binary: binary, Stdout: os.Stdout, Stderr: os.Stderr}
}

// Login hands the password over stdin so it never shows up in the process table.
func (s Service) Login(ctx context.Context, registryUrl, username, password string) error {
	return s.run(ctx, strings.NewReader(password), "login", "--username", username, "--password-stdin", registryUrl)
}

func (s Service) Build(ctx context.Context, i BuildInput) error {
	return s.run(ctx, nil, BuildArgs(i)...)
}

func (s Service) Tag(ctx context.Context, source, target string) error {
	return s.run(ctx, nil, "tag", source, target)
}

func (s Service) Push(ctx context.Context, ref string) error {
	return s.run(ctx, nil, "push", ref)
}

func (s Service) InspectByRef(ctx context.Context, ref string) (types.ImageInspect, error) {
	cmd := exec.CommandContext(ctx, s.Binary, "image", "inspect", ref)
	cmd.Env = os.Environ()
	cmd.Stderr = s.Stderr

	output, err := cmd.Output()
	if err != nil {
		return types.ImageInspect{}, fmt.Errorf("docker image inspect %s: %w", ref, err)
	}

	var inspectData []types.ImageInspect
	if err := json.Unmarshal(output, &inspectData); err != nil {
		return types.ImageInspect{}, err
	}

	if len(inspectData) == 0 {
		return types.ImageInspect{}, fmt.Errorf("no image found for %s", ref)
	}

	if len(inspectData) > 1 {
		return types.ImageInspect{}, fmt.Errorf("multiple images found for %s", ref)
	}

	return inspectData[0], nil
}

// BuildArgs renders the build invocation. Multi-arch builds go through buildx and are loaded back into
// the local image store so tag and push work the same either way. Lambda rejects attestation manifests.
func BuildArgs(i BuildInput) []string {
	var args []string

	if i.MultiArch {
		args = append(args, "buildx", "build", "--load", "--provenance=false")
	} else {
		args = append(args, "build")
	}

	if i.Platform != "" {
		args = append(args, "--platform", i.Platform)
	}

	if i.Dockerfile != "" {
		args = append(args, "-f", i.Dockerfile)
	}

	for _, tag := range i.Tags {
		args = append(args, "-t", tag)
	}

	keys := make([]string, 0, len(i.Labels))
	for key := range i.Labels {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		args = append(args, "--label", key+"="+i.Labels[key])
	}

	return append(args, i.Context)
}

func (s Service) run(ctx context.Context, stdin io.Reader, args ...string) error {
	cmd := exec.CommandContext(ctx, s.Binary, args...)
	cmd.Env = append(os.Environ(), "DOCKER_BUILDKIT=1")
	cmd.Stdin = stdin
	cmd.Stdout = s.Stdout
	cmd.Stderr = s.Stderr

	log.Debug().Strs("argv", args).Msg("docker")

	if err := cmd.Run(); err != nil {
		return fmt.Errorf("docker %s: %w", args[0], err)
	}

	return nil
}
