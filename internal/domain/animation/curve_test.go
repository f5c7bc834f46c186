package animation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/geom"
	"github.com/younwookim/brawl/internal/domain/move"
)

func assertVec(t *testing.T, want, got geom.Vec2) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, 1e-9, "x")
	assert.InDelta(t, want.Y, got.Y, 1e-9, "y")
}

func TestDefaultSet_CoversEveryMove(t *testing.T) {
	s := DefaultSet()
	for _, id := range move.All() {
		_, ok := s.Lookup(id)
		assert.True(t, ok, "%v has no curve", id)
	}
	_, ok := s.Lookup(move.None)
	assert.False(t, ok)
}

func TestSet_MissingCurve(t *testing.T) {
	s := NewSet()
	_, ok := s.Lookup(move.Stub)
	assert.False(t, ok)

	s.Bind(move.None, LinearThrust)
	_, ok = s.Lookup(move.None)
	assert.False(t, ok)
}

func TestCubicSwing_Endpoints(t *testing.T) {
	left := CubicSwing(1)
	right := CubicSwing(-1)

	p, rot := left(0, 130)
	assertVec(t, geom.V(0, 0), p)
	assert.Equal(t, 0.0, rot)

	p, _ = left(1, 130)
	assertVec(t, geom.V(-130, 0), p)

	p, _ = right(1, 130)
	assertVec(t, geom.V(130, 0), p)

	mid, _ := left(0.5, 100)
	assertVec(t, geom.V(-50, 75), mid)
}

func TestCurves_ClampProgress(t *testing.T) {
	curves := map[string]Curve{
		"swing":    CubicSwing(1),
		"thrust":   LinearThrust,
		"guard":    Guard,
		"overhead": Overhead,
	}
	for name, c := range curves {
		t.Run(name, func(t *testing.T) {
			lo, loRot := c(-3, 100)
			zero, zeroRot := c(0, 100)
			assertVec(t, zero, lo)
			assert.Equal(t, zeroRot, loRot)

			hi, hiRot := c(7, 100)
			one, oneRot := c(1, 100)
			assertVec(t, one, hi)
			assert.Equal(t, oneRot, hiRot)
		})
	}
}

func TestLinearThrust(t *testing.T) {
	p, _ := LinearThrust(0.25, 160)
	assertVec(t, geom.V(0, 40), p)
}

func TestOverhead_Endpoints(t *testing.T) {
	p, rot := Overhead(0, 150)
	assertVec(t, geom.V(0, -75), p)
	assert.InDelta(t, math.Pi, rot, 1e-9)

	p, rot = Overhead(1, 150)
	assertVec(t, geom.V(0, 150), p)
	assert.InDelta(t, 0, rot, 1e-9)
}

func TestEasing(t *testing.T) {
	for _, f := range []func(float64) float64{SmoothStep, EaseInOutCubic} {
		assert.InDelta(t, 0, f(0), 1e-12)
		assert.InDelta(t, 0.5, f(0.5), 1e-12)
		assert.InDelta(t, 1, f(1), 1e-12)
	}
	require.InDelta(t, 5.0, Lerp(0, 10, 0.5), 1e-12)
}
