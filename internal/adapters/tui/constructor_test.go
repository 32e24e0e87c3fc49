package tui_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/tui"
)

func TestNewModel(t *testing.T) {
	m := tui.NewModel(nil)

	assert.Empty(t, m.Steps)
	assert.NotNil(t, m.SpanMap, "span lookup must be usable before the first step")
	assert.Empty(t, m.SpanMap)
	assert.True(t, m.AutoScroll)
	assert.True(t, m.FollowMode)
	assert.False(t, m.DisableTick)
	assert.Equal(t, 100*time.Millisecond, m.TickInterval)
	assert.NotNil(t, m.Output, "nil writer falls back to stderr")
}

func TestNewModel_UsesGivenWriter(t *testing.T) {
	var buf bytes.Buffer
	m := tui.NewModel(&buf)

	_, err := m.Output.WriteString("Compiling App")
	require.NoError(t, err)
	assert.Equal(t, "Compiling App", buf.String())
}

func TestModel_WithDisableTick(t *testing.T) {
	m := tui.NewModel(nil)
	assert.False(t, m.DisableTick)
	assert.True(t, m.WithDisableTick().DisableTick)
}
