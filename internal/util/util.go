package util

import (
	"os"
	"regexp"
	"strings"
	"unicode"

	"github.com/aws/smithy-go/logging"
	"github.com/rs/zerolog"
)

var (
	shaExp     = regexp.MustCompile(`^[a-f0-9]{40}$`)
	tagExp     = regexp.MustCompile(`^[A-Za-z0-9_][A-Za-z0-9_.-]{0,127}$`)
	accountExp = regexp.MustCompile(`^[0-9]{12}$`)
	// one os/arch[/variant], never a list
	platformExp = regexp.MustCompile(`^[a-z0-9]+/[a-z0-9_]+(/[a-z0-9]+)?$`)
)

func ShaLike(str string) bool {
	return shaExp.MatchString(str)
}

// ShortSha truncates a git sha to n characters.
func ShortSha(sha string, n int) string {
	if len(sha) <= n {
		return sha
	}
	return sha[:n]
}

func TagLike(str string) bool {
	return tagExp.MatchString(str)
}

func AccountLike(str string) bool {
	return accountExp.MatchString(str)
}

func PlatformLike(str string) bool {
	return platformExp.MatchString(str)
}

func Chomp(s string) string {
	s = strings.TrimLeftFunc(s, unicode.IsSpace)
	s = strings.TrimRightFunc(s, unicode.IsSpace)
	return s
}

func OtelConfigPresent() bool {
	_, present := os.LookupEnv("OTEL_EXPORTER_OTLP_ENDPOINT")
	return present
}

func SetLogLevel() {
	level, exists := os.LookupEnv("LOG_LEVEL")
	if !exists {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
		return
	}

	switch strings.ToLower(level) {
	case "panic":
		zerolog.SetGlobalLevel(zerolog.PanicLevel)
	case "fatal":
		zerolog.SetGlobalLevel(zerolog.FatalLevel)
	case "error":
		zerolog.SetGlobalLevel(zerolog.ErrorLevel)
	case "warn":
		zerolog.SetGlobalLevel(zerolog.WarnLevel)
	case "info":
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	case "debug":
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	case "trace":
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	default:
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

// Wraps a zerolog.Logger so the AWS SDK can log retries through it.
type RetryLogger struct {
	Log *zerolog.Logger
}

func (l *RetryLogger) Logf(classification logging.Classification, format string, v ...interface{}) {
	switch classification {
	case logging.Warn:
		l.Log.Warn().Msgf(format, v...)
	case logging.Debug:
		if strings.Contains(format, "retrying request") {
			l.Log.Info().Msgf(format, v...)
		} else {
			l.Log.Debug().Msgf(format, v...)
		}
	default:
		l.Log.Error().Msgf(format, v...)
	}
}
