package telemetry

import (
	"context"

	"go.trai.ch/kiln/internal/core/ports"
)

// NoOpTracer is a ports.Tracer that records nothing. Used where a session
// runs without any renderer attached.
type NoOpTracer struct{}

// NewNoOpTracer creates a tracer that discards all telemetry.
func NewNoOpTracer() *NoOpTracer {
	return &NoOpTracer{}
}

// Start returns the context unchanged and a span that does nothing.
func (t *NoOpTracer) Start(ctx context.Context, _ string, _ ...ports.SpanOption) (context.Context, ports.Span) {
	return ctx, &NoOpSpan{}
}

// EmitSession is a no-op.
func (t *NoOpTracer) EmitSession(_ context.Context, _, _ string) {}

// NoOpSpan is a ports.Span that does nothing.
type NoOpSpan struct{}

// End is a no-op.
func (s *NoOpSpan) End() {}

// RecordError is a no-op.
func (s *NoOpSpan) RecordError(_ error) {}

// SetAttribute is a no-op.
func (s *NoOpSpan) SetAttribute(_ string, _ any) {}

// Write reports the data as written and discards it.
func (s *NoOpSpan) Write(p []byte) (int, error) {
	return len(p), nil
}
