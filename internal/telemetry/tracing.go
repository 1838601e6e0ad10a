// File: internal/telemetry/tracing.go
package telemetry

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	"go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// Options selects where spans go. An empty Endpoint keeps tracing local: spans are
// created for instrumentation but never exported.
type Options struct {
	Endpoint       string
	ServiceName    string
	ServiceVersion string
}

// InitTracerProvider initializes and returns a new OpenTelemetry TracerProvider
// and installs it as the global provider.
func InitTracerProvider(ctx context.Context, opts Options) (*trace.TracerProvider, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(opts.ServiceName),
			semconv.ServiceVersion(opts.ServiceVersion),
		),
	)
	if err != nil {
		return nil, err
	}

	providerOpts := []trace.TracerProviderOption{trace.WithResource(res)}

	if opts.Endpoint != "" {
		// OTLP/HTTP exporter, plain http inside the compose network
		exporter, err := otlptracehttp.New(ctx,
			otlptracehttp.WithEndpoint(opts.Endpoint),
			otlptracehttp.WithInsecure(),
		)
		if err != nil {
			return nil, err
		}
		providerOpts = append(providerOpts, trace.WithBatcher(exporter, trace.WithBatchTimeout(time.Second)))
	}

	tp := trace.NewTracerProvider(providerOpts...)
	otel.SetTracerProvider(tp)

	if opts.Endpoint != "" {
		log.Info().Str("endpoint", opts.Endpoint).Msg("OpenTelemetry TracerProvider initialized")
	} else {
		log.Info().Msg("OpenTelemetry export disabled, spans stay local")
	}
	return tp, nil
}
