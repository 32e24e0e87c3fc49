package telemetry_test

import (
	"context"
	"testing"

	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.trai.ch/kiln/internal/adapters/telemetry"
	"go.trai.ch/kiln/internal/core/ports/mocks"
	"go.uber.org/mock/gomock"
)

func sdkTracer() trace.Tracer {
	return sdktrace.NewTracerProvider().Tracer("bridge-test")
}

func asReadWrite(t *testing.T, span trace.Span) sdktrace.ReadWriteSpan {
	t.Helper()
	rw, ok := span.(sdktrace.ReadWriteSpan)
	if !ok {
		t.Fatalf("sdk span %T does not implement ReadWriteSpan", span)
	}
	return rw
}

func asReadOnly(t *testing.T, span trace.Span) sdktrace.ReadOnlySpan {
	t.Helper()
	ro, ok := span.(sdktrace.ReadOnlySpan)
	if !ok {
		t.Fatalf("sdk span %T does not implement ReadOnlySpan", span)
	}
	return ro
}

func TestBridge_OnStartAnnouncesRootStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	_, span := sdkTracer().Start(context.Background(), "resolve")
	defer span.End()
	rw := asReadWrite(t, span)

	// A root step carries no parent ID.
	renderer.EXPECT().OnStepStart(span.SpanContext().SpanID().String(), "", "resolve", rw.StartTime())

	bridge.OnStart(context.Background(), rw)
}

func TestBridge_OnStartParentsNestedStep(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	tracer := sdkTracer()
	sessionCtx, sessionSpan := tracer.Start(context.Background(), "session")
	defer sessionSpan.End()
	_, buildSpan := tracer.Start(sessionCtx, "build#1")
	defer buildSpan.End()
	rw := asReadWrite(t, buildSpan)

	renderer.EXPECT().OnStepStart(
		buildSpan.SpanContext().SpanID().String(),
		sessionSpan.SpanContext().SpanID().String(),
		"build#1",
		rw.StartTime(),
	)

	bridge.OnStart(sessionCtx, rw)
}

func TestBridge_OnEndReportsSuccess(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	_, span := sdkTracer().Start(context.Background(), "build#1")
	span.End()
	ro := asReadOnly(t, span)

	renderer.EXPECT().OnStepComplete(span.SpanContext().SpanID().String(), ro.EndTime(), nil)

	bridge.OnEnd(ro)
}

func TestBridge_OnEndReportsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	_, span := sdkTracer().Start(context.Background(), "build#1")
	span.SetStatus(codes.Error, "swift exited with status 1")
	span.End()
	ro := asReadOnly(t, span)

	renderer.EXPECT().OnStepComplete(span.SpanContext().SpanID().String(), ro.EndTime(), gomock.Cond(func(err error) bool {
		return err != nil && err.Error() == "swift exited with status 1"
	}))

	bridge.OnEnd(ro)
}

func TestBridge_OnEndDefaultsFailureMessage(t *testing.T) {
	ctrl := gomock.NewController(t)
	renderer := mocks.NewMockRenderer(ctrl)
	bridge := telemetry.NewBridge(renderer)

	// An error status with no description still closes the step as failed.
	_, span := sdkTracer().Start(context.Background(), "optimize")
	span.SetStatus(codes.Error, "")
	span.End()
	ro := asReadOnly(t, span)

	renderer.EXPECT().OnStepComplete(span.SpanContext().SpanID().String(), ro.EndTime(), gomock.Cond(func(err error) bool {
		return err != nil && err.Error() == "step failed"
	}))

	bridge.OnEnd(ro)
}

func TestBridge_NilRendererIgnoresSpans(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	ctx, span := sdkTracer().Start(context.Background(), "resolve")
	bridge.OnStart(ctx, asReadWrite(t, span))
	span.End()
	bridge.OnEnd(asReadOnly(t, span))
}

func TestBridge_FlushAndShutdownAreNoOps(t *testing.T) {
	bridge := telemetry.NewBridge(nil)

	if err := bridge.ForceFlush(context.Background()); err != nil {
		t.Errorf("ForceFlush() returned %v", err)
	}
	if err := bridge.Shutdown(context.Background()); err != nil {
		t.Errorf("Shutdown() returned %v", err)
	}
}
