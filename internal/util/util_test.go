package util

import (
	"bytes"
	"testing"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestMatchers(t *testing.T) {
	assert.True(t, ShaLike("4eeac06a6b0d37a30bd45775b19e59a06c3b6295"))
	assert.False(t, ShaLike("4eeac06"))

	assert.True(t, TagLike("v0.10"))
	assert.True(t, TagLike("4eeac06a6b0d"))
	assert.False(t, TagLike(".hidden"))
	assert.False(t, TagLike("feature/branch"))
	assert.False(t, TagLike(""))

	assert.True(t, AccountLike("123456789012"))
	assert.False(t, AccountLike("12345678901"))
	assert.False(t, AccountLike("12345678901a"))

	assert.True(t, PlatformLike("linux/amd64"))
	assert.True(t, PlatformLike("linux/arm64/v8"))
	assert.False(t, PlatformLike("amd64"))
	assert.False(t, PlatformLike("linux/amd64,linux/arm64"))
	assert.False(t, PlatformLike("linux/arm64/v8/extra"))
	assert.False(t, PlatformLike(" linux/amd64"))
}

func TestShortSha(t *testing.T) {
	assert.Equal(t, "4eeac06a6b0d", ShortSha("4eeac06a6b0d37a30bd45775b19e59a06c3b6295", 12))
	assert.Equal(t, "abc", ShortSha("abc", 12))
}

func TestChomp(t *testing.T) {
	assert.Equal(t, "token", Chomp("  token\n"))
}

func TestRetryLogger(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf).Level(zerolog.InfoLevel)

	rl := RetryLogger{Log: &logger}
	rl.Logf(logging.Debug, "retrying request %s", "UpdateFunctionCode")
	rl.Logf(logging.Debug, "noise")
	rl.Logf(logging.Warn, "careful")

	out := buf.String()
	assert.Contains(t, out, "retrying request UpdateFunctionCode")
	assert.NotContains(t, out, "noise")
	assert.Contains(t, out, "careful")
}
