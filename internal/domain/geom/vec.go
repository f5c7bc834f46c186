// Package geom holds the small amount of 2D math shared by the combat layers.
package geom

import "math"

// Vec2 is a 2D vector in world units (pixels).
type Vec2 struct {
	X, Y float64
}

// V is shorthand for Vec2{X: x, Y: y}.
func V(x, y float64) Vec2 { return Vec2{X: x, Y: y} }

// Add returns v + o.
func (v Vec2) Add(o Vec2) Vec2 { return Vec2{v.X + o.X, v.Y + o.Y} }

// Sub returns v - o.
func (v Vec2) Sub(o Vec2) Vec2 { return Vec2{v.X - o.X, v.Y - o.Y} }

// Scale returns v * s.
func (v Vec2) Scale(s float64) Vec2 { return Vec2{v.X * s, v.Y * s} }

// Dot returns the dot product.
func (v Vec2) Dot(o Vec2) float64 { return v.X*o.X + v.Y*o.Y }

// Len returns the Euclidean length.
func (v Vec2) Len() float64 { return math.Hypot(v.X, v.Y) }

// LenSq returns the squared length.
func (v Vec2) LenSq() float64 { return v.X*v.X + v.Y*v.Y }

// IsZero reports whether both components are zero.
func (v Vec2) IsZero() bool { return v.X == 0 && v.Y == 0 }

// Normalize returns the unit vector in the direction of v.
// The zero vector is returned unchanged.
func (v Vec2) Normalize() Vec2 {
	l := v.Len()
	if l == 0 {
		return v
	}
	return Vec2{v.X / l, v.Y / l}
}

// Rotate rotates v counter-clockwise by angle radians.
func (v Vec2) Rotate(angle float64) Vec2 {
	sin, cos := math.Sincos(angle)
	return Vec2{v.X*cos - v.Y*sin, v.X*sin + v.Y*cos}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Vec2) float64 { return b.Sub(a).Len() }

// Transform is a position and a rotation (radians, counter-clockwise).
// Rotation 0 faces +Y, matching the weapon rest pose.
type Transform struct {
	Position Vec2
	Rotation float64
}

// Apply maps a point in local space into the space of t.
func (t Transform) Apply(local Vec2) Vec2 {
	return t.Position.Add(local.Rotate(t.Rotation))
}

// Compose returns the world transform of a child whose local transform is
// child, parented to t.
func (t Transform) Compose(child Transform) Transform {
	return Transform{
		Position: t.Apply(child.Position),
		Rotation: t.Rotation + child.Rotation,
	}
}

// Forward returns the unit vector the transform faces (+Y rotated).
func (t Transform) Forward() Vec2 {
	return Vec2{0, 1}.Rotate(t.Rotation)
}

// FacingAngle returns the rotation that makes a transform at from face to.
func FacingAngle(from, to Vec2) float64 {
	d := to.Sub(from)
	return math.Atan2(d.Y, d.X) - math.Pi/2
}

// WrapAngle maps a to (-π, π].
func WrapAngle(a float64) float64 {
	a = math.Mod(a+math.Pi, 2*math.Pi)
	if a <= 0 {
		a += 2 * math.Pi
	}
	return a - math.Pi
}

// TurnToward rotates current toward target along the shorter arc by at
// most maxStep radians.
func TurnToward(current, target, maxStep float64) float64 {
	diff := WrapAngle(target - current)
	if math.Abs(diff) <= maxStep {
		return current + diff
	}
	return current + math.Copysign(maxStep, diff)
}
