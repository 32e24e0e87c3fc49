package telemetry_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.trai.ch/kiln/internal/adapters/telemetry"
)

func TestOTelTracer_StreamsStepLogs(t *testing.T) {
	t.Run("writes reach the renderer in order", func(t *testing.T) {
		mock := &mockRenderer{}
		tracer := telemetry.NewOTelTracer("kiln-test").WithRenderer(mock)

		_, span := tracer.Start(context.Background(), "build#1")
		_, err := span.Write([]byte("Compiling App\n"))
		require.NoError(t, err)
		_, err = span.Write([]byte("Linking App\n"))
		require.NoError(t, err)
		span.End()

		// Delivery crosses the batcher and the forwarding goroutine.
		assert.Eventually(t, func() bool {
			return mock.logged() == "Compiling App\nLinking App\n"
		}, time.Second, 10*time.Millisecond)
	})

	t.Run("a burst of writes is delivered in full", func(t *testing.T) {
		mock := &mockRenderer{}
		tracer := telemetry.NewOTelTracer("kiln-test").WithRenderer(mock)

		_, span := tracer.Start(context.Background(), "build#2")
		for range 40 {
			_, err := span.Write([]byte("swift-frontend: compiling main.swift\n"))
			require.NoError(t, err)
		}
		span.End()

		want := strings.Repeat("swift-frontend: compiling main.swift\n", 40)
		assert.Eventually(t, func() bool {
			return mock.logged() == want
		}, time.Second, 10*time.Millisecond)
	})
}

func TestBridge_ProcessorPipeline(t *testing.T) {
	mock := &mockRenderer{}
	tp := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(telemetry.NewBridge(mock)))
	tracer := tp.Tracer("kiln-test")

	// Processor callbacks run on the calling goroutine: no waiting needed.
	_, span := tracer.Start(context.Background(), "resolve")
	assert.Equal(t, 1, mock.startCount())
	span.End()
	assert.Equal(t, 1, mock.completeCount())

	_, failed := tracer.Start(context.Background(), "build#1")
	failed.RecordError(errors.New("swift exited with status 1"))
	failed.SetStatus(codes.Error, "swift exited with status 1")
	failed.End()
	assert.Equal(t, 2, mock.startCount())
	assert.Equal(t, 2, mock.completeCount())
}

func TestOTelTracer_Shutdown(t *testing.T) {
	tracer := telemetry.NewOTelTracer("kiln-test")
	require.NoError(t, tracer.Shutdown(context.Background()))
}
