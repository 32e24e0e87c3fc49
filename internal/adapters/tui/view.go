package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"go.trai.ch/kiln/internal/ui/style"
)

// View draws the full frame, step list beside log pane.
func (m *Model) View() string {
	if m.ListHeight == 0 {
		return "Initializing..."
	}

	return lipgloss.JoinHorizontal(
		lipgloss.Top,
		m.stepList(),
		m.logPane(),
	)
}

// listHeader renders the pane title plus, once resolution has announced the
// session, the product line underneath it.
func (m *Model) listHeader() string {
	header := titleStyle.Render("KILN")
	if m.Product != "" {
		header += "\n" + sessionStyle.Render(fmt.Sprintf("%s (%s)", m.Product, m.Configuration))
	}
	return header + "\n\n"
}

func (m *Model) stepList() string {
	var s strings.Builder

	s.WriteString(m.listHeader())

	if len(m.Steps) == 0 {
		s.WriteString(stepIdleStyle.Render("Waiting for first build..."))
		return listStyle.Render(s.String())
	}

	start := m.ListOffset
	end := m.ListOffset + m.ListHeight
	if end > len(m.Steps) {
		end = len(m.Steps)
	}
	if start > end {
		start = end
	}

	for i := start; i < end; i++ {
		step := m.Steps[i]
		s.WriteString(m.renderStepRow(i, step) + "\n")
	}

	return listStyle.Render(s.String())
}

func (m *Model) renderStepRow(index int, step *StepNode) string {
	icon := m.stepIcon(step)
	rowStyle := m.stepStyle(step)

	var cursor string
	if index == m.SelectedIdx {
		cursor = selectedStyle.Render("> ")
		// A selected row keeps its outcome color once finished; only a
		// still-running row takes the accent.
		if step.Status != StatusDone && step.Status != StatusError {
			rowStyle = selectedStyle
		}
	} else {
		cursor = "  "
	}

	indent := strings.Repeat("  ", step.Depth)
	content := fmt.Sprintf("%s%s %s %s", indent, icon, step.Name, m.stepDuration(step))
	return cursor + rowStyle.Render(content)
}

func (m *Model) stepIcon(step *StepNode) string {
	switch step.Status {
	case StatusRunning:
		return style.Dot
	case StatusDone:
		return style.Check
	case StatusError:
		return style.Cross
	default:
		return style.Circle
	}
}

func (m *Model) stepStyle(step *StepNode) lipgloss.Style {
	switch step.Status {
	case StatusRunning:
		return stepRunningStyle
	case StatusDone:
		return stepDoneStyle
	case StatusError:
		return stepErrorStyle
	default:
		return stepIdleStyle
	}
}

func (m *Model) stepDuration(step *StepNode) string {
	switch step.Status {
	case StatusRunning:
		return fmt.Sprintf("[Running %s]", formatDuration(time.Since(step.StartTime)))
	case StatusDone:
		return fmt.Sprintf("[Took %s]", formatDuration(step.EndTime.Sub(step.StartTime)))
	case StatusError:
		return fmt.Sprintf("[Failed %s]", formatDuration(step.EndTime.Sub(step.StartTime)))
	default:
		return ""
	}
}

// formatDuration keeps sub-second durations in milliseconds and everything
// longer at one decimal.
func formatDuration(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func (m *Model) logPane() string {
	var header string
	var content string

	if node := m.selectedStep(); node != nil {
		status := ""
		if m.FollowMode {
			status = " (Following)"
		} else {
			status = " (Manual)"
		}

		title := "LOGS: " + node.Name + status
		if node.Status == StatusError {
			header = failureTitleStyle.Render(title)
		} else {
			header = titleStyle.Render(title)
		}
		content = node.Term.View()
	} else {
		header = titleStyle.Render("LOGS (Waiting...)")
	}

	return logStyle.Render(
		lipgloss.JoinVertical(
			lipgloss.Left,
			header,
			content,
		),
	)
}
