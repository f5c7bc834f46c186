package ecs

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/younwookim/brawl/internal/domain/ai"
	"github.com/younwookim/brawl/internal/domain/geom"
)

// TestVelocityStabilityWhenIdle checks that an idle actor does not drift.
func TestVelocityStabilityWhenIdle(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Tunables.LinearDamping = 4
	p := SpawnPlayer(w, testSpec(geom.V(100, 100), ai.FactionPlayer), 6)

	for i := 0; i < 600; i++ {
		UpdateLocomotion(w, 1.0/60.0)
	}

	e := w.Entry(p)
	assert.Equal(t, geom.V(100, 100), TransformComponent.Get(e).Position)
	assert.True(t, VelocityComponent.Get(e).IsZero())
}

// TestVelocityDecaysMonotonically checks that a knocked-back actor slows
// every tick and never reverses.
func TestVelocityDecaysMonotonically(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Tunables.LinearDamping = 4
	p := SpawnPlayer(w, testSpec(geom.V(0, 0), ai.FactionPlayer), 6)
	e := w.Entry(p)
	VelocityComponent.Get(e).Vec2 = geom.V(800, 0)

	prev := 800.0
	prevX := 0.0
	for i := 0; i < 300; i++ {
		UpdateLocomotion(w, 1.0/60.0)
		v := VelocityComponent.Get(e)
		assert.GreaterOrEqual(t, v.X, 0.0, "tick %d", i)
		assert.Less(t, v.X, prev, "tick %d", i)
		assert.GreaterOrEqual(t, TransformComponent.Get(e).Position.X, prevX)
		prev, prevX = v.X, TransformComponent.Get(e).Position.X
	}
	assert.Less(t, prev, 1e-3)
	// Geometric series bound: total travel < v0 / damping.
	assert.Less(t, prevX, 800.0/4+800.0/60)
}

// TestVelocityStabilityLargeStep checks that a step longer than the
// damping time zeroes velocity instead of flipping it.
func TestVelocityStabilityLargeStep(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Tunables.LinearDamping = 4
	p := SpawnPlayer(w, testSpec(geom.V(0, 0), ai.FactionPlayer), 6)
	e := w.Entry(p)
	VelocityComponent.Get(e).Vec2 = geom.V(-300, 300)

	UpdateLocomotion(w, 0.5)

	assert.True(t, VelocityComponent.Get(e).IsZero())
	pos := TransformComponent.Get(e).Position
	assert.False(t, math.IsNaN(pos.X) || math.IsNaN(pos.Y))
}

// TestPositionsStayInBounds checks the arena clamp under knockback.
func TestPositionsStayInBounds(t *testing.T) {
	w, _ := newTestWorld(t)
	w.Tunables.Width, w.Tunables.Height = 200, 100
	p := SpawnPlayer(w, testSpec(geom.V(190, 50), ai.FactionPlayer), 6)
	e := w.Entry(p)
	VelocityComponent.Get(e).Vec2 = geom.V(5000, -5000)

	for i := 0; i < 10; i++ {
		UpdateLocomotion(w, 1.0/60.0)
	}
	assert.Equal(t, geom.V(200, 0), TransformComponent.Get(e).Position)
}
