package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"go.trai.ch/kiln/internal/adapters/telemetry"
)

// Renderer adapts a Bubble Tea program to ports.Renderer. Each callback is
// translated into the message type the Model consumes.
type Renderer struct {
	program *tea.Program
	runErr  chan error
}

// NewRenderer wraps model in a tea.Program built with opts.
func NewRenderer(model *Model, opts ...tea.ProgramOption) *Renderer {
	return &Renderer{
		program: tea.NewProgram(model, opts...),
		runErr:  make(chan error, 1),
	}
}

// Start launches the program loop in the background. The loop's result is
// observed through Wait.
func (r *Renderer) Start(_ context.Context) error {
	go func() {
		_, err := r.program.Run()
		r.runErr <- err
	}()
	return nil
}

// Stop asks the program to quit.
func (r *Renderer) Stop() error {
	r.program.Quit()
	return nil
}

// Wait blocks until the program loop has exited.
func (r *Renderer) Wait() error {
	return <-r.runErr
}

// OnSessionBegin labels the UI with the resolved product and configuration.
func (r *Renderer) OnSessionBegin(product, configuration string) {
	r.program.Send(telemetry.MsgSessionBegin{Product: product, Configuration: configuration})
}

// OnStepStart opens a step row.
func (r *Renderer) OnStepStart(spanID, parentID, name string, startTime time.Time) {
	r.program.Send(telemetry.MsgStepStart{
		SpanID:    spanID,
		ParentID:  parentID,
		Name:      name,
		StartTime: startTime,
	})
}

// OnStepLog appends output to a step's scrollback.
func (r *Renderer) OnStepLog(spanID string, data []byte) {
	r.program.Send(telemetry.MsgStepLog{SpanID: spanID, Data: data})
}

// OnStepComplete closes a step row with its outcome.
func (r *Renderer) OnStepComplete(spanID string, endTime time.Time, err error) {
	r.program.Send(telemetry.MsgStepComplete{SpanID: spanID, EndTime: endTime, Err: err})
}

// Program exposes the underlying tea.Program for tests.
func (r *Renderer) Program() *tea.Program {
	return r.program
}
