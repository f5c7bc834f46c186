// Package animation maps a move's active-phase progress to the weapon's
// local offset and rotation relative to its rest pose.
package animation

import (
	"math"

	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

// Curve returns the weapon's local offset and rotation at progress in [0,1]
// for a move with the given radius.
type Curve func(progress, radius float64) (geom.Vec2, float64)

// Set holds at most one curve per move.
type Set struct {
	curves [move.Count + 1]Curve
}

// NewSet returns an empty set.
func NewSet() *Set { return &Set{} }

// DefaultSet binds the built-in curves to the default moves.
func DefaultSet() *Set {
	s := NewSet()
	s.Bind(move.SwingLeft, CubicSwing(1))
	s.Bind(move.SwingRight, CubicSwing(-1))
	s.Bind(move.Stub, LinearThrust)
	s.Bind(move.Parry, Guard)
	s.Bind(move.HeavySlam, Overhead)
	return s
}

// Bind sets the curve for id. Binding an invalid id is ignored.
func (s *Set) Bind(id move.ID, c Curve) {
	if !id.Valid() {
		return
	}
	s.curves[id] = c
}

// Lookup returns the curve for id.
func (s *Set) Lookup(id move.ID) (Curve, bool) {
	if !id.Valid() || s.curves[id] == nil {
		return nil, false
	}
	return s.curves[id], true
}

// CubicSwing is a U-shaped arc. side 1 sweeps toward -X, -1 toward +X.
func CubicSwing(side float64) Curve {
	return func(progress, r float64) (geom.Vec2, float64) {
		t := SmoothStep(clamp01(progress))
		p := CubicBezier(
			geom.V(0, 0),
			geom.V(0, r),
			geom.V(-side*r, r),
			geom.V(-side*r, 0),
			t,
		)
		return p, 0
	}
}

// LinearThrust pushes straight forward by radius.
func LinearThrust(progress, r float64) (geom.Vec2, float64) {
	return geom.V(0, r*clamp01(progress)), 0
}

// Guard raises the weapon crosswise in front of the owner.
func Guard(progress, r float64) (geom.Vec2, float64) {
	t := SmoothStep(clamp01(progress))
	return geom.V(0, r*t), Lerp(0, math.Pi/2, t)
}

// Overhead brings the weapon down from behind the owner to full reach.
func Overhead(progress, r float64) (geom.Vec2, float64) {
	t := EaseInOutCubic(clamp01(progress))
	p := QuadraticBezier(geom.V(0, -r/2), geom.V(0, 2*r), geom.V(0, r), t)
	return p, Lerp(math.Pi, 0, t)
}

func QuadraticBezier(p0, p1, p2 geom.Vec2, t float64) geom.Vec2 {
	u := 1 - t
	return p0.Scale(u * u).Add(p1.Scale(2 * u * t)).Add(p2.Scale(t * t))
}

// CubicBezier evaluates (1-t)^3 p0 + 3(1-t)^2 t p1 + 3(1-t) t^2 p2 + t^3 p3.
func CubicBezier(p0, p1, p2, p3 geom.Vec2, t float64) geom.Vec2 {
	u := 1 - t
	return p0.Scale(u * u * u).
		Add(p1.Scale(3 * u * u * t)).
		Add(p2.Scale(3 * u * t * t)).
		Add(p3.Scale(t * t * t))
}

func Lerp(a, b, t float64) float64 { return a + (b-a)*t }

func SmoothStep(t float64) float64 { return t * t * (3 - 2*t) }

func EaseInOutCubic(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	return 1 - math.Pow(-2*t+2, 3)/2
}

func clamp01(t float64) float64 {
	return math.Max(0, math.Min(1, t))
}
