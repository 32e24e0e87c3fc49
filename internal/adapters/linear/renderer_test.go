package linear_test

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/kiln/internal/adapters/linear"
)

// newPlainRenderer builds a renderer with NO_COLOR set, so the tests can
// assert exact bytes instead of stripping escape sequences.
func newPlainRenderer(t *testing.T) (*linear.Renderer, *bytes.Buffer, *bytes.Buffer) {
	t.Helper()
	t.Setenv("NO_COLOR", "1")
	var stdout, stderr bytes.Buffer
	return linear.NewRenderer(&stdout, &stderr), &stdout, &stderr
}

func TestRenderer_SessionFlow(t *testing.T) {
	r, stdout, stderr := newPlainRenderer(t)

	require.NoError(t, r.Start(context.Background()))

	start := time.Now()
	r.OnSessionBegin("App", "debug")
	r.OnStepStart("span-1", "", "build#1", start)
	r.OnStepLog("span-1", []byte("Compiling App\n"))
	r.OnStepLog("span-1", []byte("Linking App\n"))
	r.OnStepComplete("span-1", start.Add(250*time.Millisecond), nil)

	require.NoError(t, r.Stop())

	assert.Equal(t, "[build#1] Compiling App\n[build#1] Linking App\n", stdout.String())
	assert.Equal(t,
		"Session resolved: App (debug)\n"+
			"[build#1] Starting...\n"+
			"[build#1] ✓ Completed in 250ms\n",
		stderr.String())
}

func TestRenderer_PartialLines(t *testing.T) {
	r, stdout, _ := newPlainRenderer(t)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#1", start)

	r.OnStepLog("span-1", []byte("Compiling"))
	assert.Empty(t, stdout.String(), "a line is held back until its newline arrives")

	r.OnStepLog("span-1", []byte(" App\n"))
	assert.Equal(t, "[build#1] Compiling App\n", stdout.String())

	// A tail without a newline is flushed when the step ends.
	r.OnStepLog("span-1", []byte("wasm-strip: 412 KiB"))
	r.OnStepComplete("span-1", start.Add(50*time.Millisecond), nil)
	assert.Equal(t, "[build#1] Compiling App\n[build#1] wasm-strip: 412 KiB\n", stdout.String())
}

func TestRenderer_StepError(t *testing.T) {
	r, _, stderr := newPlainRenderer(t)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#2", start)
	r.OnStepComplete("span-1", start.Add(50*time.Millisecond), errors.New("swift exited with status 1"))

	assert.Equal(t,
		"[build#2] Starting...\n"+
			"[build#2] ✗ Failed after 50ms: swift exited with status 1\n",
		stderr.String())
}

func TestRenderer_InterleavedSteps(t *testing.T) {
	r, stdout, _ := newPlainRenderer(t)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#1", start)
	r.OnStepStart("span-2", "span-1", "optimize", start)

	r.OnStepLog("span-1", []byte("Compiling App\n"))
	r.OnStepLog("span-2", []byte("wasm-opt -Os\n"))
	r.OnStepLog("span-1", []byte("Linking App\n"))

	// Output stays chronological; each line carries its own step's prefix.
	assert.Equal(t,
		"[build#1] Compiling App\n[optimize] wasm-opt -Os\n[build#1] Linking App\n",
		stdout.String())

	end := start.Add(100 * time.Millisecond)
	r.OnStepComplete("span-2", end, nil)
	r.OnStepComplete("span-1", end, nil)
}

func TestRenderer_StylesStatusLines(t *testing.T) {
	t.Setenv("NO_COLOR", "")
	var stdout, stderr bytes.Buffer
	r := linear.NewRenderer(&stdout, &stderr)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#1", start)
	assert.Contains(t, stderr.String(), "\x1b[2m", "start prefix renders faint")

	r.OnStepComplete("span-1", start.Add(time.Millisecond), nil)
	assert.Contains(t, stderr.String(), "\x1b[32m", "success mark renders green")
}

func TestRenderer_IgnoresUnknownSpans(t *testing.T) {
	r, stdout, stderr := newPlainRenderer(t)

	r.OnStepLog("span-gone", []byte("late output\n"))
	r.OnStepComplete("span-gone", time.Now(), nil)

	assert.Empty(t, stdout.String())
	assert.Empty(t, stderr.String())
}

func TestRenderer_DropsBlankLines(t *testing.T) {
	r, stdout, _ := newPlainRenderer(t)

	r.OnStepStart("span-1", "", "build#1", time.Now())
	r.OnStepLog("span-1", []byte("\n\r\n"))

	assert.Empty(t, stdout.String())
}

func TestRenderer_StopFlushesPendingOutput(t *testing.T) {
	r, stdout, _ := newPlainRenderer(t)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#1", start)
	r.OnStepStart("span-2", "span-1", "optimize", start)
	r.OnStepLog("span-1", []byte("no trailing newline"))
	r.OnStepLog("span-2", []byte("tail"))

	require.NoError(t, r.Stop())

	assert.Contains(t, stdout.String(), "[build#1] no trailing newline\n")
	assert.Contains(t, stdout.String(), "[optimize] tail\n")
}

func TestRenderer_StartAndWaitAreNoOps(t *testing.T) {
	r, _, _ := newPlainRenderer(t)

	require.NoError(t, r.Start(context.Background()))
	require.NoError(t, r.Wait())
}

func TestRenderer_NilWritersFallBackToProcessStreams(_ *testing.T) {
	r := linear.NewRenderer(nil, nil)

	start := time.Now()
	r.OnStepStart("span-1", "", "build#1", start)
	r.OnStepComplete("span-1", start.Add(time.Second), nil)
}
