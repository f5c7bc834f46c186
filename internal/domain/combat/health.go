package combat

// Health is a combatant's hit points.
type Health struct {
	Current int
	Max     int
}

// NewHealth returns full health.
func NewHealth(max int) Health {
	return Health{Current: max, Max: max}
}

// Dead reports whether the combatant has no hit points left.
func (h Health) Dead() bool { return h.Current <= 0 }

// Take subtracts amount, clamped at zero. Negative amounts heal up to Max.
func (h Health) Take(amount int) Health {
	h.Current -= amount
	if h.Current < 0 {
		h.Current = 0
	}
	if h.Current > h.Max {
		h.Current = h.Max
	}
	return h
}

// Heal adds amount up to Max and returns the new health with the amount
// actually restored.
func (h Health) Heal(amount int) (Health, int) {
	if amount <= 0 || h.Dead() {
		return h, 0
	}
	old := h.Current
	h = h.Take(-amount)
	return h, h.Current - old
}

// Ratio returns Current/Max in [0,1].
func (h Health) Ratio() float64 {
	if h.Max <= 0 {
		return 0
	}
	return float64(h.Current) / float64(h.Max)
}
