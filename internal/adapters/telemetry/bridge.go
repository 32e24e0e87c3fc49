package telemetry

import (
	"context"
	"errors"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// Bridge is the sdktrace.SpanProcessor that turns span lifecycle events into
// renderer steps. Every span the provider starts becomes a step row; its end
// closes the row with the span's error status.
type Bridge struct {
	renderer ports.Renderer
}

// NewBridge creates a Bridge feeding renderer.
func NewBridge(renderer ports.Renderer) *Bridge {
	return &Bridge{
		renderer: renderer,
	}
}

// OnStart announces the span as a started step, parented by the span found
// in the start context.
func (b *Bridge) OnStart(parent context.Context, s sdktrace.ReadWriteSpan) {
	sc := s.SpanContext()
	if b.renderer == nil || !sc.IsValid() {
		return
	}

	var parentID string
	if ps := trace.SpanFromContext(parent).SpanContext(); ps.IsValid() {
		parentID = ps.SpanID().String()
	}

	b.renderer.OnStepStart(sc.SpanID().String(), parentID, s.Name(), s.StartTime())
}

// OnEnd completes the step. An error status becomes the step's failure, with
// a fallback description when the recorder left none.
func (b *Bridge) OnEnd(s sdktrace.ReadOnlySpan) {
	sc := s.SpanContext()
	if b.renderer == nil || !sc.IsValid() {
		return
	}

	var err error
	if st := s.Status(); st.Code == codes.Error {
		desc := st.Description
		if desc == "" {
			desc = "step failed"
		}
		err = errors.New(desc)
	}

	b.renderer.OnStepComplete(sc.SpanID().String(), s.EndTime(), err)
}

// ForceFlush is a no-op; steps are delivered synchronously.
func (b *Bridge) ForceFlush(_ context.Context) error {
	return nil
}

// Shutdown is a no-op.
func (b *Bridge) Shutdown(_ context.Context) error {
	return nil
}
