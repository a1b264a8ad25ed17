package tracing

import (
	"context"

	"github.com/linecard/ship/internal/util"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const TracerName = "github.com/linecard/ship"

// InitOtel installs a global tracer provider. Spans are only exported when an OTLP endpoint is configured.
func InitOtel(ctx context.Context) (shutdown func()) {
	tp := sdktrace.NewTracerProvider()
	shutdown = func() {}

	if util.OtelConfigPresent() {
		log.Debug().Msg("initializing OpenTelemetry with OTLP exporter")

		exp, err := otlptrace.New(ctx, otlptracegrpc.NewClient())
		if err != nil {
			log.Warn().Err(err).Msg("failed to create OTLP exporter, tracing disabled")
		} else {
			tp = sdktrace.NewTracerProvider(sdktrace.WithBatcher(exp))

			shutdown = func() {
				_ = tp.ForceFlush(ctx)
				_ = exp.Shutdown(ctx)
				_ = tp.Shutdown(ctx)
			}
		}
	}

	otel.SetTextMapPropagator(propagation.TraceContext{})
	otel.SetTracerProvider(tp)

	return shutdown
}

func Tracer() trace.Tracer {
	return otel.Tracer(TracerName)
}
