package tracing

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
)

const (
	// DefaultEndpoint is the collector route of a local Phoenix instance.
	DefaultEndpoint = "http://localhost:6006/v1/traces"

	// DefaultProject is the Phoenix project traces land in when no project
	// is configured.
	DefaultProject = "hello-phoenix"
)

// Attribute keys and span kinds Phoenix understands (OpenInference
// conventions).
const (
	projectNameAttr = "openinference.project.name"
	spanKindAttr    = "openinference.span.kind"

	kindAgent = "AGENT"
	kindLLM   = "LLM"
	kindTool  = "TOOL"
)

// Config controls where spans go and how Phoenix buckets them.
type Config struct {
	// Endpoint is the OTLP/HTTP collector URL. Defaults to DefaultEndpoint.
	Endpoint string

	// Project is the Phoenix project name. Defaults to DefaultProject.
	Project string

	// Insecure forces plain HTTP for endpoints without a scheme.
	Insecure bool
}

func (c Config) withDefaults() Config {
	if c.Endpoint == "" {
		c.Endpoint = DefaultEndpoint
	}
	if c.Project == "" {
		c.Project = DefaultProject
	}

	return c
}

// Setup builds a tracer provider that exports batched OTLP/HTTP spans to the
// configured Phoenix collector. The caller owns the provider and should
// Shutdown on exit to flush pending spans.
func Setup(ctx context.Context, cfg Config) (*sdktrace.TracerProvider, error) {
	cfg = cfg.withDefaults()

	opts := []otlptracehttp.Option{otlptracehttp.WithEndpointURL(cfg.Endpoint)}
	if cfg.Insecure {
		opts = append(opts, otlptracehttp.WithInsecure())
	}

	exporter, err := otlptracehttp.New(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create otlp exporter: %w", err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(newResource(cfg.Project)),
	), nil
}

// newResource tags spans with the service identity and the project name
// Phoenix routes traces by.
func newResource(project string) *resource.Resource {
	return resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName("greetloop"),
		attribute.String(projectNameAttr, project),
	)
}
