package component

import "github.com/milk9111/gumshoe/common"

// Health tracks hit points and the invulnerability countdown (seconds).
type Health struct {
	Max     int
	Current int
	Invuln  float64
	Dead    bool
}

// NewHealth creates a Health with max/current initialized.
func NewHealth(max int) Health {
	if max <= 0 {
		max = 1
	}
	return Health{Max: max, Current: max}
}

// IsAlive reports whether the entity is alive.
func (h *Health) IsAlive() bool {
	return h != nil && !h.Dead && h.Current > 0
}

// ApplyDamage subtracts amount and opens an invulnerability window. It does
// nothing while invulnerable or dead. Returns true if damage was applied.
func (h *Health) ApplyDamage(amount int, window float64) bool {
	if h == nil || h.Dead || h.Invuln > 0 || amount <= 0 {
		return false
	}
	h.Current -= amount
	if h.Current <= 0 {
		h.Current = 0
		h.Dead = true
	}
	h.Invuln = window
	return true
}

// StartInvuln extends the invulnerability window to at least d.
func (h *Health) StartInvuln(d float64) {
	if h == nil || d <= h.Invuln {
		return
	}
	h.Invuln = d
}

// Tick counts the invulnerability window down.
func (h *Health) Tick(dt float64) {
	if h == nil {
		return
	}
	h.Invuln = common.Tick(h.Invuln, dt)
}

// Heal restores health up to Max.
func (h *Health) Heal(amount int) {
	if h == nil || h.Dead || amount <= 0 {
		return
	}
	h.Current += amount
	if h.Current > h.Max {
		h.Current = h.Max
	}
}
