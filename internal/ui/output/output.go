// Package output builds termenv.Output values so every surface of the CLI
// agrees on color handling. NO_COLOR always wins; beyond that, interactive
// surfaces detect the terminal while CI settles for plain ANSI.
package output

import (
	"io"
	"os"

	"github.com/muesli/termenv"
)

// ColorProfile detects the terminal's capabilities, honoring NO_COLOR.
func ColorProfile() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.EnvColorProfile()
}

// ColorProfileANSI settles for plain ANSI, which CI log viewers render
// reliably. NO_COLOR still wins.
func ColorProfileANSI() termenv.Profile {
	if noColor() {
		return termenv.Ascii
	}
	return termenv.ANSI
}

func noColor() bool {
	return os.Getenv("NO_COLOR") != ""
}

// New builds an Output with the detected interactive profile.
func New(w io.Writer, opts ...termenv.OutputOption) *termenv.Output {
	return NewWithProfile(w, ColorProfile, opts...)
}

// NewWithProfile builds an Output with profileFn's choice of profile and
// TTY handling forced on. A nil writer falls back to stderr.
func NewWithProfile(w io.Writer, profileFn func() termenv.Profile, opts ...termenv.OutputOption) *termenv.Output {
	if w == nil {
		w = os.Stderr
	}

	opts = append(opts,
		termenv.WithProfile(profileFn()),
		termenv.WithTTY(true),
	)

	return termenv.NewOutput(w, opts...)
}
