// Package telemetry collects span and log events and feeds them to a renderer.
package telemetry

import (
	"bytes"
	"errors"
	"sync"
	"time"
)

const (
	// DefaultSizeLimit replaces a non-positive size limit in NewBatcher.
	DefaultSizeLimit = 4096
	// DefaultTimeLimit replaces a non-positive time limit in NewBatcher.
	DefaultTimeLimit = 50 * time.Millisecond
)

// Batcher coalesces streamed subprocess output and releases it in chunks,
// whichever of the size limit and the flush interval trips first. Safe for
// concurrent use.
type Batcher struct {
	sizeLimit int
	timeLimit time.Duration
	onFlush   func([]byte)

	mu     sync.Mutex
	buffer *bytes.Buffer
	ticker *time.Ticker
	stopCh chan struct{}
	closed bool
}

// NewBatcher starts a Batcher that delivers buffered bytes to onFlush once
// sizeLimit bytes accumulate or timeLimit elapses, whichever comes first.
// Non-positive limits fall back to the defaults. Close stops the flush
// ticker.
func NewBatcher(sizeLimit int, timeLimit time.Duration, onFlush func([]byte)) *Batcher {
	if sizeLimit <= 0 {
		sizeLimit = DefaultSizeLimit
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTimeLimit
	}

	b := &Batcher{
		sizeLimit: sizeLimit,
		timeLimit: timeLimit,
		onFlush:   onFlush,
		buffer:    new(bytes.Buffer),
		stopCh:    make(chan struct{}),
	}

	b.ticker = time.NewTicker(timeLimit)
	go b.run()

	return b
}

// Write buffers p, flushing inline once the accumulated bytes reach the size
// limit. Writing to a closed Batcher fails.
func (b *Batcher) Write(p []byte) (n int, err error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return 0, errors.New("batcher is closed")
	}

	n, err = b.buffer.Write(p)
	if err != nil {
		return n, err
	}

	if b.buffer.Len() >= b.sizeLimit {
		b.flushLocked()
		// A size-triggered flush restarts the interval.
		b.ticker.Reset(b.timeLimit)
	}

	return n, nil
}

// Flush delivers whatever is buffered without waiting for a limit.
func (b *Batcher) Flush() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.flushLocked()
}

// Close flushes the remainder and stops the ticker goroutine.
func (b *Batcher) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.closed {
		return nil
	}

	b.closed = true
	close(b.stopCh)
	b.flushLocked()
	return nil
}

func (b *Batcher) run() {
	for {
		select {
		case <-b.ticker.C:
			b.Flush()
		case <-b.stopCh:
			b.ticker.Stop()
			return
		}
	}
}

// flushLocked requires mu. The callback runs with the lock held, keeping
// chunks ordered, and must not block.
func (b *Batcher) flushLocked() {
	if b.buffer.Len() == 0 {
		return
	}

	// The callback owns the copy; the buffer stays internal.
	data := make([]byte, b.buffer.Len())
	copy(data, b.buffer.Bytes())
	b.buffer.Reset()

	if b.onFlush != nil {
		b.onFlush(data)
	}
}
