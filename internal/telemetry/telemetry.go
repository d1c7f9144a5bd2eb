// Package telemetry installs OpenTelemetry tracer and meter providers that
// print spans and metrics as JSON.
//
// The engine package records through the global otel providers, which are
// no-ops until Init runs. `wick run --trace` calls Init with stderr as the
// writer so the exported telemetry never mixes with rendered results.
package telemetry

import (
	"context"
	"errors"
	"io"
	"os"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/stdout/stdoutmetric"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
)

// ErrNilContext is returned by Init when ctx is nil.
var ErrNilContext = errors.New("telemetry: nil context")

// Config describes the process being instrumented.
type Config struct {
	ServiceName    string
	ServiceVersion string

	// Writer receives the exported JSON. Default: os.Stderr.
	Writer io.Writer

	// PrettyPrint indents the exported JSON.
	PrettyPrint bool
}

// Init installs global tracer and meter providers and returns a function
// that flushes and stops them. Shutdown must be called before the process
// exits or buffered spans are lost.
func Init(ctx context.Context, cfg Config) (shutdown func(context.Context) error, err error) {
	if ctx == nil {
		return nil, ErrNilContext
	}
	w := cfg.Writer
	if w == nil {
		w = os.Stderr
	}

	res := resource.NewWithAttributes(
		"",
		attribute.String("service.name", cfg.ServiceName),
		attribute.String("service.version", cfg.ServiceVersion),
	)

	traceOpts := []stdouttrace.Option{stdouttrace.WithWriter(w)}
	metricOpts := []stdoutmetric.Option{stdoutmetric.WithWriter(w)}
	if cfg.PrettyPrint {
		traceOpts = append(traceOpts, stdouttrace.WithPrettyPrint())
		metricOpts = append(metricOpts, stdoutmetric.WithPrettyPrint())
	}

	spanExporter, err := stdouttrace.New(traceOpts...)
	if err != nil {
		return nil, err
	}
	metricExporter, err := stdoutmetric.New(metricOpts...)
	if err != nil {
		return nil, err
	}

	tp := trace.NewTracerProvider(
		trace.WithSyncer(spanExporter),
		trace.WithResource(res),
		trace.WithSampler(trace.AlwaysSample()),
	)
	mp := metric.NewMeterProvider(
		metric.WithResource(res),
		metric.WithReader(metric.NewPeriodicReader(metricExporter)),
	)
	otel.SetTracerProvider(tp)
	otel.SetMeterProvider(mp)

	shutdown = func(ctx context.Context) error {
		return errors.Join(tp.Shutdown(ctx), mp.Shutdown(ctx))
	}
	return shutdown, nil
}
