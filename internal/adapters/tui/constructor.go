// Package tui provides the interactive terminal interface for dev sessions.
package tui

import (
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// defaultTickInterval is how often running step durations redraw.
const defaultTickInterval = 100 * time.Millisecond

// NewModel builds a session view writing to w, or stderr when w is nil.
func NewModel(w io.Writer) Model {
	if w == nil {
		w = os.Stderr
	}

	out := NewOutput(w)
	// lipgloss styles resolve colors through the global profile.
	lipgloss.SetColorProfile(out.Profile)

	return Model{
		Steps:        make([]*StepNode, 0),
		SpanMap:      make(map[string]*StepNode),
		Output:       out,
		AutoScroll:   true,
		FollowMode:   true,
		TickInterval: defaultTickInterval,
	}
}

// WithDisableTick returns a copy of the model with periodic redraws turned
// off. Tests use it to keep output deterministic.
func (m Model) WithDisableTick() Model {
	m.DisableTick = true
	return m
}
