package ports

import (
	"context"
	"io"
)

//go:generate mockgen -source=telemetry.go -destination=mocks/mock_telemetry.go -package=mocks

// Tracer opens spans around build phases.
type Tracer interface {
	// Start opens a span named after the phase and returns a context
	// carrying it, so nested phases become child spans.
	Start(ctx context.Context, name string, opts ...SpanOption) (context.Context, Span)
	// EmitSession signals that a session has resolved its configuration.
	EmitSession(ctx context.Context, product, configuration string)
}

// Span is one traced build phase. Bytes written to it are the underlying
// tool's output; they travel to the renderer as step logs.
type Span interface {
	io.Writer
	// End closes the span.
	End()
	// RecordError marks the span failed.
	RecordError(err error)
	// SetAttribute attaches one key-value pair describing the phase.
	SetAttribute(key string, value any)
}

// SpanConfig collects the options passed to Start. It has no fields yet;
// the option parameter keeps Start's signature stable.
type SpanConfig struct{}

// SpanOption configures a starting span.
type SpanOption func(*SpanConfig)
