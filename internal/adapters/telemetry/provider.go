package telemetry

import (
	"context"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/kiln/internal/core/ports"
)

// LogBufferSize is the capacity of the channel carrying step output to the
// renderer.
const LogBufferSize = 4096

// OTelTracer implements ports.Tracer on OpenTelemetry. Step output crosses
// from build goroutines to the renderer through a buffered channel, so a
// chatty compiler never waits on the UI.
type OTelTracer struct {
	tracer   trace.Tracer
	renderer ports.Renderer
	logChan  chan MsgStepLog
	mu       sync.RWMutex
}

// NewOTelTracer returns a tracer registered under the given instrumentation
// name and starts its forwarding loop.
func NewOTelTracer(name string) *OTelTracer {
	t := &OTelTracer{
		tracer:  otel.Tracer(name),
		logChan: make(chan MsgStepLog, LogBufferSize),
	}
	go t.forward()
	return t
}

// forward drains logChan into whichever renderer is attached at delivery time.
func (t *OTelTracer) forward() {
	for msg := range t.logChan {
		if r := t.currentRenderer(); r != nil {
			r.OnStepLog(msg.SpanID, msg.Data)
		}
	}
}

func (t *OTelTracer) currentRenderer() ports.Renderer {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.renderer
}

// Shutdown closes the log channel. Chunks already queued are still delivered
// before the forwarding loop exits.
func (t *OTelTracer) Shutdown(_ context.Context) error {
	close(t.logChan)
	return nil
}

// WithRenderer attaches the renderer that receives step output and session
// announcements.
func (t *OTelTracer) WithRenderer(r ports.Renderer) *OTelTracer {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.renderer = r
	return t
}

// Start opens a span. With a renderer attached, the returned span batches
// its writes and streams them, keyed by span ID, through the log channel.
func (t *OTelTracer) Start(ctx context.Context, name string, opts ...ports.SpanOption) (context.Context, ports.Span) {
	cfg := &ports.SpanConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	ctx, span := t.tracer.Start(ctx, name)

	var batcher *Batcher
	if t.currentRenderer() != nil {
		batcher = t.newStepBatcher(span.SpanContext().SpanID().String())
	}
	return ctx, &OTelSpan{span: span, batcher: batcher}
}

// newStepBatcher builds a Batcher whose flushes are queued on the log
// channel. A full channel drops the chunk rather than blocking the build.
func (t *OTelTracer) newStepBatcher(spanID string) *Batcher {
	return NewBatcher(0, 0, func(data []byte) {
		select {
		case t.logChan <- MsgStepLog{SpanID: spanID, Data: data}:
		default:
		}
	})
}

// EmitSession signals that a session has resolved its configuration by adding
// an event to the current span and announcing the session to the renderer.
// The announcement is synchronous: the UI cannot label steps before it.
func (t *OTelTracer) EmitSession(ctx context.Context, product, configuration string) {
	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.AddEvent("session_resolved", trace.WithAttributes(
			attribute.String("product", product),
			attribute.String("configuration", configuration),
		))
	}

	if r := t.currentRenderer(); r != nil {
		r.OnSessionBegin(product, configuration)
	}
}

// OTelSpan pairs an OTel span with the batcher feeding the renderer.
type OTelSpan struct {
	span    trace.Span
	batcher *Batcher
}

// Batcher returns the span's log batcher, nil when no renderer is attached.
func (s *OTelSpan) Batcher() *Batcher {
	return s.batcher
}

// End flushes any batched output, then ends the span.
func (s *OTelSpan) End() {
	if s.batcher != nil {
		_ = s.batcher.Close()
	}
	s.span.End()
}

// RecordError records err on the span and marks its status failed.
func (s *OTelSpan) RecordError(err error) {
	s.span.RecordError(err)
	s.span.SetStatus(codes.Error, err.Error())
}

// SetAttribute sets one span attribute, mapping the Go value onto the
// closest OTel attribute type.
func (s *OTelSpan) SetAttribute(key string, value any) {
	s.span.SetAttributes(toAttribute(key, value))
}

func toAttribute(key string, value any) attribute.KeyValue {
	switch v := value.(type) {
	case string:
		return attribute.String(key, v)
	case int:
		return attribute.Int(key, v)
	case int64:
		return attribute.Int64(key, v)
	case float64:
		return attribute.Float64(key, v)
	case bool:
		return attribute.Bool(key, v)
	case []string:
		return attribute.StringSlice(key, v)
	default:
		return attribute.String(key, fmt.Sprintf("%v", v))
	}
}

// Write streams p through the batcher when one is attached. Without a
// renderer the bytes become a span event instead.
func (s *OTelSpan) Write(p []byte) (n int, err error) {
	if s.batcher != nil {
		return s.batcher.Write(p)
	}
	s.span.AddEvent("log", trace.WithAttributes(attribute.String("message", string(p))))
	return len(p), nil
}
