// Package detector picks the session renderer based on the environment.
package detector

import (
	"os"

	"golang.org/x/term"
)

// OutputMode selects how session progress is rendered.
type OutputMode int

const (
	// ModeAuto defers to environment detection.
	ModeAuto OutputMode = iota
	// ModeTUI is the interactive step tree.
	ModeTUI
	// ModeLinear is the plain line renderer for CI and piped output.
	ModeLinear
)

// DetectEnvironment recommends a mode: interactive terminals get the TUI,
// CI jobs and piped output get linear lines.
func DetectEnvironment() OutputMode {
	if ci := os.Getenv("CI"); ci == "true" || ci == "1" {
		return ModeLinear
	}
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return ModeLinear
	}
	return ModeTUI
}

// ResolveMode applies the --output-mode flag on top of detection. "auto",
// empty and unknown values fall back to the detected mode.
func ResolveMode(detected OutputMode, flag string) OutputMode {
	switch flag {
	case "tui":
		return ModeTUI
	case "linear", "ci":
		return ModeLinear
	default:
		return detected
	}
}
