// Package rebuild coalesces rebuild requests into bounded build executions.
package rebuild

import (
	"context"
	"fmt"
	"sync"

	"go.trai.ch/kiln/internal/core/ports"
)

// State is the coordinator's scheduling state.
type State string

const (
	// StateIdle means no build is running and none is queued.
	StateIdle State = "Idle"

	// StateRunning means exactly one build is in flight.
	StateRunning State = "Running"

	// StateRunningQueued means one build is in flight and one follow-up is
	// queued for when it finishes.
	StateRunningQueued State = "RunningQueued"
)

// BuildFunc performs one build attempt.
type BuildFunc func(ctx context.Context) error

// operation is one scheduled build and the promise its waiters share.
type operation struct {
	ctx  context.Context
	done chan struct{}
	err  error
}

func newOperation(ctx context.Context) *operation {
	return &operation{
		// A started build always runs to completion, so cancellation is
		// stripped from the trigger context while its values stay attached.
		ctx:  context.WithoutCancel(ctx),
		done: make(chan struct{}),
	}
}

func (o *operation) complete(err error) {
	o.err = err
	close(o.done)
}

func (o *operation) wait() error {
	<-o.done
	return o.err
}

// Coordinator turns a stream of rebuild requests into a bounded sequence of
// build executions. It runs at most one build at a time; requests arriving
// while a build is in flight collapse into a single queued follow-up that
// starts when the running build finishes, so a burst of triggers costs one
// extra build, never an unbounded pile.
type Coordinator struct {
	build  BuildFunc
	logger ports.Logger

	mu       sync.Mutex
	state    State
	inFlight int
	queued   *operation
}

// NewCoordinator creates a Coordinator that serializes calls to build.
func NewCoordinator(build BuildFunc, logger ports.Logger) *Coordinator {
	return &Coordinator{
		build:  build,
		logger: logger,
		state:  StateIdle,
	}
}

// Request schedules a rebuild and blocks until the build serving this request
// completes, returning its outcome. Safe to call repeatedly and concurrently;
// callers on the hot path run it in their own goroutine. A build failure is
// reported to every waiter of that build and leaves the coordinator ready for
// the next request.
func (c *Coordinator) Request(ctx context.Context) error {
	c.mu.Lock()

	switch c.state {
	case StateRunning:
		// Open the follow-up slot. It reflects the latest state by
		// construction: it starts only after the current build finishes.
		op := newOperation(ctx)
		c.queued = op
		c.state = StateRunningQueued
		c.mu.Unlock()
		return op.wait()

	case StateRunningQueued:
		// Join the pending follow-up instead of piling up more builds.
		op := c.queued
		c.mu.Unlock()
		return op.wait()

	default:
		op := newOperation(ctx)
		c.startLocked(op)
		c.mu.Unlock()
		return op.wait()
	}
}

// State reports the current scheduling state.
func (c *Coordinator) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// startLocked launches op. The caller holds the lock.
func (c *Coordinator) startLocked(op *operation) {
	c.state = StateRunning
	c.inFlight++
	go c.run(op)
}

// run executes one build. The cleanup step runs on every exit path and
// before the waiters wake, so a caller returning from Request observes the
// post-transition state.
func (c *Coordinator) run(op *operation) {
	var err error
	defer func() {
		c.finish()
		op.complete(err)
	}()

	err = c.build(op.ctx)
}

// finish settles the accounting for a completed build and promotes the
// queued follow-up if one exists.
func (c *Coordinator) finish() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.inFlight--
	if c.inFlight != 0 {
		c.logger.Warn(fmt.Sprintf(
			"rebuild accounting out of bounds: %d builds in flight after completion, resetting",
			c.inFlight,
		))
		c.inFlight = 0
	}

	if c.queued != nil {
		next := c.queued
		c.queued = nil
		c.startLocked(next)
		return
	}

	c.state = StateIdle
}
