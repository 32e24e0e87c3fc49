package ports

import (
	"context"
	"time"
)

// Renderer turns session progress into user-facing output. The same
// callback stream drives both the interactive step tree and the plain
// line renderer, so the collection side never knows which is attached.
//
// Callbacks arrive from multiple goroutines; implementations serialize
// internally.
//
//go:generate mockgen -source=renderer.go -destination=mocks/mock_renderer.go -package=mocks
type Renderer interface {
	// Start brings the renderer up. Asynchronous implementations launch
	// their event loop here.
	Start(ctx context.Context) error

	// Stop winds the renderer down, flushing any buffered output.
	Stop() error

	// Wait blocks until the renderer has fully terminated. Synchronous
	// implementations return immediately.
	Wait() error

	// OnSessionBegin announces the resolved product and configuration,
	// once per session.
	OnSessionBegin(product, configuration string)

	// OnStepStart opens a step. parentID names the enclosing step's
	// spanID and is empty for a root step.
	OnStepStart(spanID, parentID, name string, startTime time.Time)

	// OnStepLog delivers raw output bytes for a step. Chunks may split
	// lines and may carry ANSI sequences.
	OnStepLog(spanID string, data []byte)

	// OnStepComplete closes a step. A nil err means it succeeded.
	OnStepComplete(spanID string, endTime time.Time, err error)
}
