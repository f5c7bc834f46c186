package arena

import (
	"math"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// Camera is the top-left corner of the view in world space.
type Camera struct {
	X, Y float64
}

// Follow centers the view on target, clamped to the world. A world
// smaller than the screen is centered instead.
func Follow(target geom.Vec2, screenW, screenH int, worldW, worldH float64) Camera {
	return Camera{
		X: followAxis(target.X, float64(screenW), worldW),
		Y: followAxis(target.Y, float64(screenH), worldH),
	}
}

func followAxis(t, screen, world float64) float64 {
	if world <= screen {
		return (world - screen) / 2
	}
	return math.Max(0, math.Min(world-screen, t-screen/2))
}

// ToScreen converts a world position.
func (c Camera) ToScreen(p geom.Vec2) (float32, float32) {
	return float32(p.X - c.X), float32(p.Y - c.Y)
}

// Shake offsets the camera by up to intensity pixels on each axis.
func (c Camera) Shake(intensity float64, rnd func() float64) Camera {
	if intensity <= 0 {
		return c
	}
	return Camera{
		X: c.X + intensity*(2*rnd()-1),
		Y: c.Y + intensity*(2*rnd()-1),
	}
}
