package component

// Health is an actor's hit points. Current stays within [0, Max].
type Health struct {
	Current int
	Max     int
}

// TakeDamage lowers Current by amount, floored at zero. Non-positive amounts
// are ignored.
func (h *Health) TakeDamage(amount int) {
	if h == nil || amount <= 0 {
		return
	}
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
}

// Reset restores Current to Max.
func (h *Health) Reset() {
	if h == nil {
		return
	}
	h.Current = h.Max
}

// Depleted reports whether no health remains.
func (h *Health) Depleted() bool {
	return h == nil || h.Current <= 0
}

var HealthComponent = NewComponent[Health]()
