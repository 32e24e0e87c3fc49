package tui

// MaxOffset exposes maxOffset so scroll tests can pin their expectations to
// the real scrollback bound.
func (v *Vterm) MaxOffset() int {
	return v.maxOffset()
}
