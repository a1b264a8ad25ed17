package docker

import (
	"bytes"
	"context"
	"errors"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeDocker writes a stand-in docker binary that records its argv and stdin, then exits with FAKE_DOCKER_EXIT.
func fakeDocker(t *testing.T) (Service, string) {
	t.Helper()

	dir := t.TempDir()
	record := filepath.Join(dir, "record")
	script := "#!/bin/sh\n" +
		"echo \"argv: $*\" >> " + record + "\n" +
		"if [ \"$1\" = login ]; then echo \"stdin: $(cat)\" >> " + record + "; fi\n" +
		"exit ${FAKE_DOCKER_EXIT:-0}\n"

	binary := filepath.Join(dir, "docker")
	require.NoError(t, os.WriteFile(binary, []byte(script), 0o755))

	s := FromBinary(binary)
	s.Stdout = &bytes.Buffer{}
	s.Stderr = &bytes.Buffer{}

	return s, record
}

func read(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(content)
}

func TestBuildArgs(t *testing.T) {
	cases := []struct {
		name     string
		input    BuildInput
		expected []string
	}{
		{
			name: "plain build with platform",
			input: BuildInput{
				Context:  ".",
				Platform: "linux/amd64",
				Tags:     []string{"lambda-s3-processor:v0.10"},
			},
			expected: []string{"build", "--platform", "linux/amd64", "-t", "lambda-s3-processor:v0.10", "."},
		},
		{
			name: "multi-arch build through buildx",
			input: BuildInput{
				Context:    "app",
				Dockerfile: "app/Dockerfile.lambda",
				Platform:   "linux/arm64",
				Tags:       []string{"repo:tag"},
				Labels: map[string]string{
					"org.opencontainers.image.version":  "tag",
					"org.opencontainers.image.revision": "0123abc",
				},
				MultiArch: true,
			},
			expected: []string{
				"buildx", "build", "--load", "--provenance=false", "--platform", "linux/arm64", "-f", "app/Dockerfile.lambda", "-t", "repo:tag",
				"--label", "org.opencontainers.image.revision=0123abc", "--label", "org.opencontainers.image.version=tag", "app",
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, BuildArgs(tc.input))
		})
	}
}

func TestService(t *testing.T) {
	ctx := context.Background()

	t.Run("login passes the token over stdin", func(t *testing.T) {
		s, record := fakeDocker(t)

		err := s.Login(ctx, "123456789012.dkr.ecr.us-east-1.amazonaws.com", "AWS", "s3cr3t-token")
		assert.NoError(t, err)

		got := read(t, record)
		assert.Contains(t, got, "argv: login --username AWS --password-stdin 123456789012.dkr.ecr.us-east-1.amazonaws.com")
		assert.Contains(t, got, "stdin: s3cr3t-token")
		assert.NotContains(t, strings.SplitN(got, "\n", 2)[0], "s3cr3t-token")
	})

	t.Run("tag and push", func(t *testing.T) {
		s, record := fakeDocker(t)

		assert.NoError(t, s.Tag(ctx, "repo:v1", "123456789012.dkr.ecr.us-east-1.amazonaws.com/repo:v1"))
		assert.NoError(t, s.Push(ctx, "123456789012.dkr.ecr.us-east-1.amazonaws.com/repo:v1"))

		got := read(t, record)
		assert.Contains(t, got, "argv: tag repo:v1 123456789012.dkr.ecr.us-east-1.amazonaws.com/repo:v1\n")
		assert.Contains(t, got, "argv: push 123456789012.dkr.ecr.us-east-1.amazonaws.com/repo:v1\n")
	})

	t.Run("failing command keeps its exit code", func(t *testing.T) {
		s, _ := fakeDocker(t)
		t.Setenv("FAKE_DOCKER_EXIT", "3")

		err := s.Build(ctx, BuildInput{Context: ".", Tags: []string{"repo:v1"}})
		assert.Error(t, err)

		var exitErr *exec.ExitError
		assert.True(t, errors.As(err, &exitErr))
		assert.Equal(t, 3, exitErr.ExitCode())
	})
}
