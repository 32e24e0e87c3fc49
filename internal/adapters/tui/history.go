package tui

// maxRetainedSteps caps the timeline length. Dev sessions run for hours and
// every retained step keeps a virtual terminal alive, so the oldest finished
// rebuilds are dropped once the cap is exceeded.
const maxRetainedSteps = 64

// pruneHistory removes the oldest finished top-level steps, together with
// their child steps, until the timeline fits the cap again. The session root
// and steps that are still running are never pruned.
func (m *Model) pruneHistory() {
	for len(m.Steps) > maxRetainedSteps {
		start, end, ok := m.oldestFinishedSpan()
		if !ok {
			return
		}
		m.removeSteps(start, end)
	}
}

// oldestFinishedSpan locates the earliest top-level step whose subtree has
// fully finished. Child steps are contiguous behind their parent because the
// engine runs one rebuild at a time.
func (m *Model) oldestFinishedSpan() (int, int, bool) {
	for i := 0; i < len(m.Steps); i++ {
		node := m.Steps[i]
		if node.Depth != 1 {
			continue
		}

		end := i + 1
		finished := node.Status != StatusRunning
		for end < len(m.Steps) && m.Steps[end].Depth > 1 {
			if m.Steps[end].Status == StatusRunning {
				finished = false
			}
			end++
		}
		if finished {
			return i, end, true
		}
	}
	return 0, 0, false
}

func (m *Model) removeSteps(start, end int) {
	for i := start; i < end; i++ {
		delete(m.SpanMap, m.Steps[i].SpanID)
	}

	removed := end - start
	m.Steps = append(m.Steps[:start], m.Steps[end:]...)

	// Keep the selection on the same step where possible
	switch {
	case m.SelectedIdx >= end:
		m.SelectedIdx -= removed
	case m.SelectedIdx >= start:
		m.SelectedIdx = start
	}
	if m.SelectedIdx >= len(m.Steps) {
		m.SelectedIdx = len(m.Steps) - 1
	}
	if m.SelectedIdx < 0 {
		m.SelectedIdx = 0
	}
	if m.ListOffset > m.SelectedIdx {
		m.ListOffset = m.SelectedIdx
	}
	m.ensureVisible()
}
