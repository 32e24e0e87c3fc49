package tui

import (
	"io"
	"os"

	"github.com/muesli/termenv"

	"go.trai.ch/kiln/internal/ui/output"
)

// ColorProfile is the profile for the interactive session view. Color is
// forced to TrueColor rather than detected, since the step tree is only
// drawn on a terminal the user is looking at. NO_COLOR still disables
// styling entirely.
func ColorProfile() termenv.Profile {
	if os.Getenv("NO_COLOR") != "" {
		return termenv.Ascii
	}
	return termenv.TrueColor
}

// NewOutput builds the termenv.Output the session UI draws into.
func NewOutput(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return output.NewWithProfile(w, ColorProfile, opts...)
}
