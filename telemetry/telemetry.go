// Copyright (c) 2026 Z5Labs and Contributors
//
// This software is released under the MIT License.
// https://opensource.org/licenses/MIT

// Package telemetry configures OpenTelemetry tracing for tzgen.
//
// Tracing is off unless an [Exporter] is selected. The stdout exporter
// writes human readable spans for local debugging and the otlp exporter
// ships them to a collector over gRPC.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/z5labs/tzgen/builder"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracegrpc"
	"go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// Exporter selects where spans are sent.
type Exporter int

const (
	None Exporter = iota
	Stdout
	OTLP
)

var exporterNames = map[Exporter]string{
	None:   "none",
	Stdout: "stdout",
	OTLP:   "otlp",
}

// String implements the [fmt.Stringer] interface.
func (e Exporter) String() string {
	return exporterNames[e]
}

// UnknownExporterError occurs when parsing an unsupported exporter name.
type UnknownExporterError struct {
	Name string
}

// Error implements the [builtin.error] interface.
func (e UnknownExporterError) Error() string {
	return fmt.Sprintf("unknown trace exporter %q: expected one of none, stdout or otlp", e.Name)
}

// UnmarshalText implements the [encoding.TextUnmarshaler] interface.
func (e *Exporter) UnmarshalText(b []byte) error {
	for exp, name := range exporterNames {
		if name == string(b) {
			*e = exp
			return nil
		}
	}
	return UnknownExporterError{Name: string(b)}
}

// MissingEndpointError occurs when the otlp exporter is selected
// without a collector endpoint.
type MissingEndpointError struct{}

// Error implements the [builtin.error] interface.
func (MissingEndpointError) Error() string {
	return "otlp trace exporter requires an endpoint"
}

// Config configures a [Provider].
type Config struct {
	Exporter    Exporter
	ServiceName string

	// Endpoint is the host:port of the OTLP collector.
	Endpoint string

	// Writer receives stdout spans. Defaults to [os.Stdout].
	Writer io.Writer
}

// Provider is a [trace.TracerProvider] which must be shut down to flush
// buffered spans.
type Provider struct {
	trace.TracerProvider

	shutdown func(context.Context) error
}

// Shutdown flushes and stops the exporter.
func (p *Provider) Shutdown(ctx context.Context) error {
	if p.shutdown == nil {
		return nil
	}
	return p.shutdown(ctx)
}

// Install registers p as the global tracer provider along with the
// W3C trace context and baggage propagators.
func (p *Provider) Install() {
	otel.SetTracerProvider(p.TracerProvider)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))
}

// NewProvider builds the tracer provider described by cfg.
func NewProvider(ctx context.Context, cfg Config) (*Provider, error) {
	if cfg.Exporter == None {
		return &Provider{TracerProvider: noop.NewTracerProvider()}, nil
	}

	tp, err := tracerProvider(ctx).Build(cfg)
	if err != nil {
		return nil, err
	}
	return &Provider{
		TracerProvider: tp,
		shutdown:       tp.Shutdown,
	}, nil
}

func tracerProvider(ctx context.Context) builder.Builder[Config, *sdktrace.TracerProvider] {
	return builder.BuilderFunc[Config, *sdktrace.TracerProvider](func(cfg Config) (*sdktrace.TracerProvider, error) {
		exp, err := spanExporter(ctx).Build(cfg)
		if err != nil {
			return nil, err
		}

		res, err := serviceResource.Build(cfg)
		if err != nil {
			return nil, errors.Join(err, exp.Shutdown(ctx))
		}

		tp := sdktrace.NewTracerProvider(
			sdktrace.WithResource(res),
			sdktrace.WithSampler(sdktrace.AlwaysSample()),
			sdktrace.WithBatcher(exp),
		)
		return tp, nil
	})
}

func spanExporter(ctx context.Context) builder.BuilderFunc[Config, sdktrace.SpanExporter] {
	return func(cfg Config) (sdktrace.SpanExporter, error) {
		switch cfg.Exporter {
		case Stdout:
			w := cfg.Writer
			if w == nil {
				w = os.Stdout
			}
			return stdouttrace.New(stdouttrace.WithWriter(w))
		case OTLP:
			if cfg.Endpoint == "" {
				return nil, MissingEndpointError{}
			}
			return otlptracegrpc.New(
				ctx,
				otlptracegrpc.WithEndpoint(cfg.Endpoint),
				otlptracegrpc.WithInsecure(),
			)
		default:
			return nil, UnknownExporterError{Name: cfg.Exporter.String()}
		}
	}
}

var serviceResource = builder.BuilderFunc[Config, *resource.Resource](func(cfg Config) (*resource.Resource, error) {
	name := cfg.ServiceName
	if name == "" {
		name = "tzgen"
	}
	return resource.Merge(
		resource.Default(),
		resource.NewSchemaless(attribute.String("service.name", name)),
	)
})
