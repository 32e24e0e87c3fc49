// Package linear renders build progress as plain chronological lines, for
// CI logs and piped output.
package linear

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/muesli/termenv"

	"go.trai.ch/kiln/internal/ui/output"
)

// Renderer is the ports.Renderer for non-interactive runs. Step output is
// line-buffered and printed with a [step] prefix; status lines go to stderr
// so stdout stays pipeable.
type Renderer struct {
	stdout io.Writer
	stderr io.Writer
	output *termenv.Output

	mu    sync.Mutex
	steps map[string]*stepState
}

// stepState is one running step plus the tail of its output that has not
// seen a newline yet.
type stepState struct {
	name      string
	startTime time.Time
	pending   bytes.Buffer
}

// NewRenderer builds a Renderer. Nil writers fall back to the process
// streams.
func NewRenderer(stdout, stderr io.Writer) *Renderer {
	if stdout == nil {
		stdout = os.Stdout
	}
	if stderr == nil {
		stderr = os.Stderr
	}

	return &Renderer{
		stdout: stdout,
		stderr: stderr,
		output: output.NewWithProfile(stderr, output.ColorProfileANSI),
		steps:  make(map[string]*stepState),
	}
}

// Start is a no-op; the renderer writes synchronously.
func (r *Renderer) Start(_ context.Context) error {
	return nil
}

// Stop flushes every step's unterminated output.
func (r *Renderer) Stop() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, step := range r.steps {
		r.flushPendingLocked(step)
	}
	return nil
}

// Wait is a no-op; there is no background loop to join.
func (r *Renderer) Wait() error {
	return nil
}

// OnSessionBegin prints the resolved product and configuration.
func (r *Renderer) OnSessionBegin(product, configuration string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, _ = fmt.Fprintf(r.stderr, "Session resolved: %s (%s)\n", product, configuration)
}

// OnStepStart prints a start line. Parent nesting is flattened: every step
// renders at top level.
func (r *Renderer) OnStepStart(spanID, _, name string, startTime time.Time) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.steps[spanID] = &stepState{name: name, startTime: startTime}

	prefix := r.output.String(fmt.Sprintf("[%s]", name)).Faint()
	_, _ = fmt.Fprintf(r.stderr, "%s Starting...\n", prefix)
}

// OnStepLog prints each completed line of output with the step's prefix.
// Bytes after the last newline stay pending until more output arrives or
// the step ends.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	step.pending.Write(data)

	for {
		idx := bytes.IndexByte(step.pending.Bytes(), '\n')
		if idx < 0 {
			return
		}
		r.printLineLocked(step.name, step.pending.Next(idx+1))
	}
}

// OnStepComplete flushes the step's pending output and prints its outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	step, ok := r.steps[spanID]
	if !ok {
		return
	}
	r.flushPendingLocked(step)

	duration := endTime.Sub(step.startTime)
	if err != nil {
		mark := r.output.String("✗").Foreground(termenv.ANSIRed)
		_, _ = fmt.Fprintf(r.stderr, "[%s] %s Failed after %v: %v\n", step.name, mark, duration, err)
	} else {
		mark := r.output.String("✓").Foreground(termenv.ANSIGreen)
		_, _ = fmt.Fprintf(r.stderr, "[%s] %s Completed in %v\n", step.name, mark, duration)
	}

	delete(r.steps, spanID)
}

// flushPendingLocked prints whatever tail output never saw a newline.
// Callers hold r.mu.
func (r *Renderer) flushPendingLocked(step *stepState) {
	if step.pending.Len() == 0 {
		return
	}
	r.printLineLocked(step.name, step.pending.Bytes())
	step.pending.Reset()
}

// printLineLocked writes one prefixed output line to stdout. Blank lines
// are dropped. Callers hold r.mu.
func (r *Renderer) printLineLocked(name string, line []byte) {
	line = bytes.TrimSuffix(line, []byte("\n"))
	line = bytes.TrimSuffix(line, []byte("\r"))
	if len(line) == 0 {
		return
	}

	_, _ = fmt.Fprintf(r.stdout, "[%s] %s\n", name, string(line))
}
