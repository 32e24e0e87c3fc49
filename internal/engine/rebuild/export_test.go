package rebuild

// SetInFlight overrides the in-flight ledger, bypassing the state machine.
// Tests use it to provoke the accounting warning.
func (c *Coordinator) SetInFlight(n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.inFlight = n
}
