package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"go.trai.ch/kiln/internal/adapters/telemetry"
)

const (
	stepListWidthRatio = 0.3
	logPaneBorderWidth = 4
)

// StepStatus is a step's place in its lifecycle. Steps enter the timeline
// already running; there is no pending state.
type StepStatus string

const (
	StatusRunning StepStatus = "Running"
	StatusDone    StepStatus = "Done"
	StatusError   StepStatus = "Error"
)

// StepNode represents a single step in the session timeline. Steps arrive in
// start order and each one keeps its own virtual terminal holding everything
// the underlying tool wrote while the step ran.
type StepNode struct {
	SpanID    string
	Name      string
	Status    StepStatus
	Term      *Vterm
	Parent    *StepNode
	Depth     int
	StartTime time.Time
	EndTime   time.Time
}

// tickMsg drives periodic redraws so running durations stay live.
type tickMsg time.Time

// Model is the session view's state: the step timeline on the left and the
// selected step's output pane on the right.
type Model struct {
	Product       string
	Configuration string

	Steps   []*StepNode
	SpanMap map[string]*StepNode

	Output       *termenv.Output
	AutoScroll   bool
	FollowMode   bool
	DisableTick  bool
	TickInterval time.Duration

	SelectedIdx int
	ListOffset  int
	ListHeight  int
	LogWidth    int
	LogHeight   int
}

func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(m.TickInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Init starts the redraw ticker unless it is disabled.
func (m *Model) Init() tea.Cmd {
	if m.DisableTick || m.TickInterval <= 0 {
		return nil
	}
	return m.tickCmd()
}

func (m *Model) ensureVisible() {
	if m.ListHeight <= 0 {
		return
	}
	if m.SelectedIdx < m.ListOffset {
		m.ListOffset = m.SelectedIdx
	} else if m.SelectedIdx >= m.ListOffset+m.ListHeight {
		m.ListOffset = m.SelectedIdx - m.ListHeight + 1
	}
	if m.ListOffset < 0 {
		m.ListOffset = 0
	}
}

func (m *Model) selectedStep() *StepNode {
	if m.SelectedIdx >= 0 && m.SelectedIdx < len(m.Steps) {
		return m.Steps[m.SelectedIdx]
	}
	return nil
}

func (m *Model) snapToBottom() {
	if node := m.selectedStep(); node != nil && m.FollowMode && m.AutoScroll {
		node.Term.Offset = node.Term.maxOffset()
	}
}

// selectNewestRunning moves the selection onto the most recently started step
// that is still executing. The session root at the head of the timeline runs
// until the session ends, so the scan goes newest-first and lands on the root
// only when nothing else is active.
func (m *Model) selectNewestRunning() {
	for i := len(m.Steps) - 1; i >= 0; i-- {
		if m.Steps[i].Status == StatusRunning {
			m.SelectedIdx = i
			return
		}
	}
}

// Update dispatches key presses, resizes and bridge messages.
//
//nolint:cyclop // one flat switch over every message type
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit
		case "k", "up":
			if m.SelectedIdx > 0 {
				m.SelectedIdx--
				m.FollowMode = false
				m.ensureVisible()
			}
		case "j", "down":
			if m.SelectedIdx < len(m.Steps)-1 {
				m.SelectedIdx++
				m.FollowMode = false
				m.ensureVisible()
			}
		case "esc":
			m.FollowMode = true
			m.selectNewestRunning()
			m.ensureVisible()
			m.snapToBottom()

		default:
			// Remaining keys scroll the selected step's output.
			if node := m.selectedStep(); node != nil {
				node.Term.Update(msg)
			}
		}

	case tea.WindowSizeMsg:
		// The step list takes the left third; the log pane gets the rest,
		// minus its border.
		listWidth := int(float64(msg.Width) * stepListWidthRatio)
		logWidth := msg.Width - listWidth - logPaneBorderWidth

		// Probe the title style for its rendered height.
		headerHeight := lipgloss.Height(titleStyle.Render("kiln"))
		logHeight := msg.Height - headerHeight

		// Panes created for later steps reuse these dimensions.
		m.LogWidth = logWidth
		m.LogHeight = logHeight

		// The list header grows by a line once the session is announced
		m.ListHeight = msg.Height - lipgloss.Height(m.listHeader())
		m.ensureVisible()

		for _, node := range m.Steps {
			node.Term.SetWidth(logWidth)
			node.Term.SetHeight(logHeight)
		}

	case tickMsg:
		if !m.DisableTick {
			cmd = m.tickCmd()
		}

	case telemetry.MsgSessionBegin:
		m.Product = msg.Product
		m.Configuration = msg.Configuration

	case telemetry.MsgStepStart:
		m.startStep(msg)

	case telemetry.MsgStepLog:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			_, _ = node.Term.Write(msg.Data)
		}

	case telemetry.MsgStepComplete:
		if node, ok := m.SpanMap[msg.SpanID]; ok {
			node.EndTime = msg.EndTime
			if msg.Err != nil {
				node.Status = StatusError
			} else {
				node.Status = StatusDone
			}
		}
	}

	return m, cmd
}

// startStep appends a new timeline entry and, in follow mode, moves the
// selection onto it.
func (m *Model) startStep(msg telemetry.MsgStepStart) {
	term := NewVterm()
	// Before the first WindowSizeMsg the dimensions are unknown; the pane
	// is sized on the next resize instead.
	if m.LogWidth > 0 && m.LogHeight > 0 {
		term.SetWidth(m.LogWidth)
		term.SetHeight(m.LogHeight)
	}

	node := &StepNode{
		SpanID:    msg.SpanID,
		Name:      msg.Name,
		Status:    StatusRunning,
		Term:      term,
		StartTime: msg.StartTime,
	}
	if parent, ok := m.SpanMap[msg.ParentID]; ok {
		node.Parent = parent
		node.Depth = parent.Depth + 1
	}

	m.Steps = append(m.Steps, node)
	if m.SpanMap == nil {
		m.SpanMap = make(map[string]*StepNode)
	}
	m.SpanMap[msg.SpanID] = node
	m.pruneHistory()

	// Manual selection sticks; only follow mode chases new steps.
	if m.FollowMode {
		m.SelectedIdx = len(m.Steps) - 1
		m.ensureVisible()
	}
}
