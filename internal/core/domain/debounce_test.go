package domain_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.trai.ch/kiln/internal/core/domain"
)

func TestDebounceGate_FirstCallAlwaysAccepts(t *testing.T) {
	g := domain.NewDebounceGate(domain.DefaultDebounceWindow)
	assert.True(t, g.ShouldAccept(time.UnixMilli(0)))
}

func TestDebounceGate_Window(t *testing.T) {
	// 20ms window, triggers at t=0, t=5 and t=25.
	g := domain.NewDebounceGate(20 * time.Millisecond)

	assert.True(t, g.ShouldAccept(time.UnixMilli(0)))
	assert.False(t, g.ShouldAccept(time.UnixMilli(5)))
	assert.True(t, g.ShouldAccept(time.UnixMilli(25)))
}

func TestDebounceGate_RejectionLeavesStateUntouched(t *testing.T) {
	g := domain.NewDebounceGate(20 * time.Millisecond)

	assert.True(t, g.ShouldAccept(time.UnixMilli(100)))
	// Rejected triggers must not push the acceptance point forward.
	assert.False(t, g.ShouldAccept(time.UnixMilli(110)))
	assert.False(t, g.ShouldAccept(time.UnixMilli(119)))
	assert.True(t, g.ShouldAccept(time.UnixMilli(120)))
}

func TestDebounceGate_AcceptsExactlyAtWindowBoundary(t *testing.T) {
	g := domain.NewDebounceGate(20 * time.Millisecond)

	assert.True(t, g.ShouldAccept(time.UnixMilli(0)))
	assert.True(t, g.ShouldAccept(time.UnixMilli(20)))
}

func TestDebounceGate_AcceptanceProperty(t *testing.T) {
	// A trigger is accepted iff it arrives at least one window after the last
	// accepted one; the first trigger always passes.
	g := domain.NewDebounceGate(20 * time.Millisecond)

	times := []int64{0, 3, 19, 20, 25, 39, 40, 41, 200}
	var last int64
	accepted := false
	for _, ts := range times {
		want := !accepted || ts-last >= 20
		got := g.ShouldAccept(time.UnixMilli(ts))
		assert.Equalf(t, want, got, "trigger at t=%dms", ts)
		if got {
			last = ts
			accepted = true
		}
	}
}

func TestDebounceGate_ZeroWindowAcceptsEverything(t *testing.T) {
	g := domain.NewDebounceGate(0)

	now := time.UnixMilli(50)
	for range 5 {
		assert.True(t, g.ShouldAccept(now))
	}
}
