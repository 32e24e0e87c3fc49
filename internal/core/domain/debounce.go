package domain

import (
	"sync"
	"time"
)

// DefaultDebounceWindow is the minimum interval between two accepted triggers.
const DefaultDebounceWindow = 20 * time.Millisecond

// DebounceGate is the shared rate limiter for rebuild triggers. It is a single
// global gate: it does not key by path, so rapid changes to different files
// within the window collapse into one acceptance.
//
// One gate is constructed per dev session and handed to every producer of
// triggers. The decision is synchronous and never blocks.
type DebounceGate struct {
	mu           sync.Mutex
	window       time.Duration
	lastAccepted time.Time
	accepted     bool
}

// NewDebounceGate creates a gate with the given window. A zero or negative
// window accepts every trigger.
func NewDebounceGate(window time.Duration) *DebounceGate {
	return &DebounceGate{window: window}
}

// ShouldAccept reports whether a trigger observed at now is fresh enough to
// act on. It returns true and records now as the last accepted instant iff at
// least the window has elapsed since the previous acceptance. The very first
// call always accepts. A false return leaves the gate state untouched.
func (g *DebounceGate) ShouldAccept(now time.Time) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.accepted && now.Sub(g.lastAccepted) < g.window {
		return false
	}
	g.lastAccepted = now
	g.accepted = true
	return true
}

// Window returns the configured debounce window.
func (g *DebounceGate) Window() time.Duration {
	return g.window
}
