package combat

import (
	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// DefaultDamping is applied to velocity once when a knockback expires.
const DefaultDamping = 0.8

// Knockback is the descriptor carried by a hit-collider. It mirrors the
// knockback attributes of whatever move its weapon last started.
type Knockback struct {
	Force    float64
	Duration float64 // seconds
}

// KnockbackFor derives the descriptor from move metadata.
func KnockbackFor(m move.Metadata) Knockback {
	return Knockback{Force: m.KnockbackForce, Duration: m.KnockbackDuration()}
}

// Impulse returns the velocity to add to a target struck from source.
// Coincident positions push along +X.
func Impulse(source, target geom.Vec2, force float64) geom.Vec2 {
	dir := target.Sub(source).Normalize()
	if dir.IsZero() {
		dir = geom.V(1, 0)
	}
	return dir.Scale(force)
}

// KnockbackTimer marks an entity whose push is decaying.
type KnockbackTimer struct {
	Remaining float64
	Damping   float64
}

// NewKnockbackTimer starts a timer for k.
func NewKnockbackTimer(k Knockback, damping float64) KnockbackTimer {
	return KnockbackTimer{Remaining: k.Duration, Damping: damping}
}

// Tick counts the timer down. It reports expiry exactly once, on the
// tick the remaining time reaches zero.
func (t KnockbackTimer) Tick(dt float64) (KnockbackTimer, bool) {
	if dt <= 0 {
		return t, t.Remaining <= 0
	}
	t.Remaining -= dt
	return t, t.Remaining <= 0
}

// Stun blocks movement, AI decisions and non-interrupt move requests.
type Stun struct {
	Remaining float64
}

// Tick counts the stun down and reports whether it has worn off.
func (s Stun) Tick(dt float64) (Stun, bool) {
	if dt > 0 {
		s.Remaining -= dt
	}
	return s, s.Remaining <= 0
}
