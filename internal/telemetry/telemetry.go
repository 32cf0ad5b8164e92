// Package telemetry bootstraps optional OpenTelemetry tracing for the CLI.
// The engines themselves are pure and emit no telemetry; spans wrap command
// execution only.
package telemetry

import (
	"context"
	"fmt"
	"io"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "github.com/zjrosen/reckon"

// Init installs a tracer provider exporting spans to w. It returns a
// shutdown function that flushes pending spans.
func Init(w io.Writer) (func(context.Context) error, error) {
	exporter, err := stdouttrace.New(
		stdouttrace.WithWriter(w),
		stdouttrace.WithPrettyPrint(),
	)
	if err != nil {
		return nil, fmt.Errorf("creating trace exporter: %w", err)
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(provider)
	return provider.Shutdown, nil
}

// Tracer returns the CLI tracer. Without Init this is the global no-op
// tracer, so callers may always start spans.
func Tracer() trace.Tracer {
	return otel.Tracer(tracerName)
}
