package component

// Lives is the run-scoped life counter. Current only goes down during a
// run; Reset is reserved for starting a new run.
type Lives struct {
	Current int
	Max     int
}

// LoseLife removes one life. At zero it is a no-op.
func (l *Lives) LoseLife() {
	if l == nil || l.Current <= 0 {
		return
	}
	l.Current--
}

// Exhausted reports whether no lives remain.
func (l *Lives) Exhausted() bool {
	return l == nil || l.Current <= 0
}

// Reset restores Current to Max for a new run.
func (l *Lives) Reset() {
	if l == nil {
		return
	}
	l.Current = l.Max
}

var LivesComponent = NewComponent[Lives]()
