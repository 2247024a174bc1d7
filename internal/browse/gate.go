package browse

// Gate is the busy flag serializing data-replacing operations. There is no
// queue: a request arriving while the gate is held is dropped by the caller.
// All access happens on the session's goroutine, so a plain bool suffices.
type Gate struct {
	busy bool
}

// TryAcquire takes the gate, reporting false if it is already held.
func (g *Gate) TryAcquire() bool {
	if g.busy {
		return false
	}
	g.busy = true
	return true
}

// Release returns the gate to idle.
func (g *Gate) Release() { g.busy = false }

// Busy reports whether an operation is outstanding.
func (g *Gate) Busy() bool { return g.busy }
