// Package otel wires the opt-in OpenTelemetry trace pipeline for command
// entry points.
package otel

import (
	"context"
	"os"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

// Setup installs a global tracer provider exporting OTLP over HTTP.
//
// The pipeline only starts when MINESWEEPER_OTEL_ENDPOINT names a collector
// and MINESWEEPER_OTEL_ENABLED is not set to "false"; otherwise nothing is
// registered and the returned shutdown does no work. The caller owns the
// shutdown function and must invoke it to flush buffered spans.
func Setup(ctx context.Context, serviceName string) (func(context.Context) error, error) {
	shutdownNothing := func(context.Context) error { return nil }

	endpoint, ok := exportTarget()
	if !ok {
		return shutdownNothing, nil
	}

	res, err := resource.New(ctx,
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return shutdownNothing, err
	}

	exporter, err := otlptracehttp.New(ctx,
		otlptracehttp.WithEndpointURL(endpoint),
	)
	if err != nil {
		return shutdownNothing, err
	}

	provider := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
	)

	otel.SetTracerProvider(provider)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return provider.Shutdown, nil
}

// exportTarget reads the collector endpoint, honoring the disable switch.
func exportTarget() (string, bool) {
	if strings.EqualFold(os.Getenv("MINESWEEPER_OTEL_ENABLED"), "false") {
		return "", false
	}
	endpoint := strings.TrimSpace(os.Getenv("MINESWEEPER_OTEL_ENDPOINT"))
	return endpoint, endpoint != ""
}
