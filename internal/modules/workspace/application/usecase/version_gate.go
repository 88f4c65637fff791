package usecase

// versionGate orders remote responses against local mutations. A read is only
// adopted when no mutation was issued or pending between its request and its
// response. Mutation responses are adopted in issue order. Callers hold their
// own lock around every method.
type versionGate struct {
	issued  uint64
	adopted uint64
	pending int
}

type readMark struct {
	issued uint64
	clean  bool
}

func (g *versionGate) beginMutation() uint64 {
	g.issued++
	g.pending++
	return g.issued
}

// finishMutation reports whether the response to ticket may replace local state.
func (g *versionGate) finishMutation(ticket uint64, succeeded bool) bool {
	g.pending--
	if !succeeded || ticket <= g.adopted {
		return false
	}
	g.adopted = ticket
	return true
}

func (g *versionGate) beginRead() readMark {
	return readMark{issued: g.issued, clean: g.pending == 0}
}

// readCurrent reports whether a read started at mark is still at least as new
// as every confirmed mutation.
func (g *versionGate) readCurrent(mark readMark) bool {
	return mark.clean && mark.issued == g.issued
}
