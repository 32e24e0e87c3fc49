package tui

import (
	"bytes"
	"sync"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/vito/midterm"
)

// Vterm is the scrollable output pane of one step. Compiler and optimizer
// output carries ANSI control sequences, so the bytes run through a real
// terminal emulator rather than a line buffer.
type Vterm struct {
	// Offset is the first visible row. Height and Width give the viewport
	// size; Prefix is prepended to every rendered row.
	Offset int
	Height int
	Width  int
	Prefix string

	mu      sync.Mutex
	vt      *midterm.Terminal
	viewBuf *bytes.Buffer
}

// NewVterm creates an empty Vterm.
func NewVterm() *Vterm {
	return &Vterm{
		vt:      midterm.NewAutoResizingTerminal(),
		viewBuf: new(bytes.Buffer),
	}
}

// Write feeds tool output into the terminal. A reader positioned at the
// bottom follows new output; a reader scrolled up keeps their place.
func (v *Vterm) Write(p []byte) (int, error) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if v.Offset >= v.maxOffset() {
		// Pin to the bottom once the new rows exist.
		defer func() { v.Offset = v.maxOffset() }()
	}

	return v.vt.Write(p)
}

// SetHeight resizes the viewport, keeping a bottom-pinned reader pinned and
// clamping a scrolled-up reader to the new range.
func (v *Vterm) SetHeight(h int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	follow := v.Offset >= v.maxOffset()
	v.Height = max(h, 1)

	if follow {
		v.Offset = v.maxOffset()
		return
	}
	v.clampOffset()
}

// SetWidth resizes the terminal, reserving room for the row prefix.
func (v *Vterm) SetWidth(w int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	v.Width = max(w, 1)
	v.vt.ResizeX(max(v.Width-len(v.Prefix), 1))
}

// UsedHeight returns the number of rows holding content.
func (v *Vterm) UsedHeight() int {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.vt.UsedHeight()
}

// View renders the visible window.
func (v *Vterm) View() string {
	v.mu.Lock()
	defer v.mu.Unlock()
	return string(v.viewBytes())
}

func (v *Vterm) viewBytes() []byte {
	v.viewBuf.Reset()
	v.clampOffset()

	last := min(v.Offset+v.Height, v.vt.UsedHeight())
	for row := v.Offset; row < last; row++ {
		if row > v.Offset {
			_ = v.viewBuf.WriteByte('\n')
		}
		_, _ = v.viewBuf.WriteString(v.Prefix)
		_ = v.vt.RenderLine(v.viewBuf, row)
	}

	// viewBuf is reused across renders, so hand out a copy.
	return bytes.Clone(v.viewBuf.Bytes())
}

// Update scrolls the pane. The model forwards key presses that the step
// list did not consume.
func (v *Vterm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil, nil
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	switch key.String() {
	case "up", "k":
		v.scrollBy(-1)
	case "down", "j":
		v.scrollBy(1)
	case "pgup":
		v.scrollBy(-v.Height)
	case "pgdown":
		v.scrollBy(v.Height)
	case "home":
		v.Offset = 0
	case "end":
		v.Offset = v.maxOffset()
	}

	return nil, nil
}

func (v *Vterm) scrollBy(delta int) {
	v.Offset += delta
	v.clampOffset()
}

// clampOffset pulls Offset back into the valid scroll range.
func (v *Vterm) clampOffset() {
	if v.Offset < 0 {
		v.Offset = 0
		return
	}
	if limit := v.maxOffset(); v.Offset > limit {
		v.Offset = limit
	}
}

// maxOffset is the highest first-visible-row index: content height minus the
// viewport, floored at zero.
func (v *Vterm) maxOffset() int {
	return max(v.vt.UsedHeight()-v.Height, 0)
}
