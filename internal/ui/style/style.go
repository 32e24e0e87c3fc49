// Package style holds the shared palette and icon set so the log handler and
// the session UI stay visually consistent.
package style

import "github.com/charmbracelet/lipgloss"

// Ember is kiln's accent color; the rest are status colors and neutrals.
var (
	Ember  = lipgloss.Color("#E25822")
	Slate  = lipgloss.Color("#6B7280")
	White  = lipgloss.Color("#FFFFFF")
	Green  = lipgloss.Color("#2F9E44")
	Red    = lipgloss.Color("#E03131")
	Yellow = lipgloss.Color("#F08C00")
)

// Status icons.
const (
	Check   = "✓"
	Cross   = "✗"
	Warning = "!"
	Dot     = "●"
	Circle  = "○"
)
