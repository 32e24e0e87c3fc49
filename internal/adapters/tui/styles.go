package tui

import (
	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/kiln/internal/ui/style"
)

var (
	stepRunningStyle = lipgloss.NewStyle().
				Foreground(style.Ember).
				Bold(true)

	stepDoneStyle = lipgloss.NewStyle().
			Foreground(style.Green)

	stepErrorStyle = lipgloss.NewStyle().
			Foreground(style.Red)

	stepIdleStyle = lipgloss.NewStyle().
			Foreground(style.Slate).
			Faint(true)

	sessionStyle = lipgloss.NewStyle().
			Foreground(style.Slate)

	selectedStyle = lipgloss.NewStyle().
			Foreground(style.Ember).
			Bold(true)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Padding(0, 1).
			Background(style.Ember).
			Foreground(style.White)

	failureTitleStyle = lipgloss.NewStyle().
				Bold(true).
				Padding(0, 1).
				Background(style.Red).
				Foreground(style.White)

	listStyle = lipgloss.NewStyle().
			Padding(0, 1)

	logStyle = lipgloss.NewStyle().
			Padding(0, 1)
)
