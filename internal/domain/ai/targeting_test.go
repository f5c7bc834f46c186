package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/geom"
)

func TestNewTargetDetector(t *testing.T) {
	d, err := NewTargetDetector(1000, 2000, Locked)
	require.NoError(t, err)
	assert.False(t, d.HasTarget())
	assert.Equal(t, Locked, d.Lock)

	_, err = NewTargetDetector(1000, 999, Free)
	assert.ErrorIs(t, err, ErrInvalidRadii)

	_, err = NewTargetDetector(500, 500, Free)
	assert.NoError(t, err, "equal radii are allowed")
}

func TestScan_AcquiresClosestOpponent(t *testing.T) {
	d, _ := NewTargetDetector(1000, 2000, Free)
	self := geom.V(0, 0)
	candidates := []Candidate{
		{ID: 1, Faction: FactionPlayer, Position: geom.V(10, 0)}, // ally
		{ID: 2, Faction: FactionMonster, Position: geom.V(900, 0)},
		{ID: 3, Faction: FactionMonster, Position: geom.V(0, 800)},
		{ID: 4, Faction: FactionMonster, Position: geom.V(1001, 0)},
	}

	d, change := d.Scan(self, FactionPlayer, candidates)
	assert.Equal(t, Acquired, change)
	assert.Equal(t, EntityID(3), d.Target)
}

func TestScan_TieGoesToFirstSeen(t *testing.T) {
	d, _ := NewTargetDetector(100, 200, Free)
	candidates := []Candidate{
		{ID: 7, Faction: FactionMonster, Position: geom.V(50, 0)},
		{ID: 5, Faction: FactionMonster, Position: geom.V(-50, 0)},
	}

	d, _ = d.Scan(geom.V(0, 0), FactionPlayer, candidates)
	assert.Equal(t, EntityID(7), d.Target)
}

func TestScan_NothingInRange(t *testing.T) {
	d, _ := NewTargetDetector(100, 200, Free)
	d, change := d.Scan(geom.V(0, 0), FactionPlayer, []Candidate{
		{ID: 2, Faction: FactionMonster, Position: geom.V(150, 0)},
	})
	assert.Equal(t, Unchanged, change)
	assert.False(t, d.HasTarget())
}

func TestScan_StickyTarget(t *testing.T) {
	d, _ := NewTargetDetector(1000, 2000, Free)
	d.Target = 2
	candidates := []Candidate{
		{ID: 3, Faction: FactionMonster, Position: geom.V(10, 0)},
		{ID: 2, Faction: FactionMonster, Position: geom.V(900, 0)},
	}

	d, change := d.Scan(geom.V(0, 0), FactionPlayer, candidates)
	assert.Equal(t, Unchanged, change)
	assert.Equal(t, EntityID(2), d.Target, "a closer candidate does not pre-empt")
}

func TestScan_Hysteresis(t *testing.T) {
	const alert, disengage = 1000.0, 2000.0
	d, _ := NewTargetDetector(alert, disengage, Free)
	self := geom.V(0, 0)

	d, change := d.Scan(self, FactionPlayer, []Candidate{{ID: 9, Faction: FactionMonster, Position: geom.V(alert, 0)}})
	require.Equal(t, Acquired, change)

	for _, dist := range []float64{1000.5, 1500, 1999, disengage} {
		d, change = d.Scan(self, FactionPlayer, []Candidate{{ID: 9, Faction: FactionMonster, Position: geom.V(dist, 0)}})
		assert.Equal(t, Unchanged, change, "dist=%v", dist)
		assert.Equal(t, EntityID(9), d.Target, "dist=%v", dist)
	}

	d, change = d.Scan(self, FactionPlayer, []Candidate{{ID: 9, Faction: FactionMonster, Position: geom.V(disengage+1, 0)}})
	assert.Equal(t, Disengaged, change)
	assert.False(t, d.HasTarget())
}

// Alert 1000, disengage 2000, opponents at 800 and 1500. The 800 one is
// acquired; when it moves to 2100 it is dropped, and the other opponent is
// only considered on the following pass.
func TestScan_DropThenReacquireNextPass(t *testing.T) {
	d, _ := NewTargetDetector(1000, 2000, Locked)
	self := geom.V(0, 0)
	near := Candidate{ID: 1, Faction: FactionMonster, Position: geom.V(800, 0)}
	far := Candidate{ID: 2, Faction: FactionMonster, Position: geom.V(0, 1500)}

	d, change := d.Scan(self, FactionPlayer, []Candidate{near, far})
	require.Equal(t, Acquired, change)
	require.Equal(t, EntityID(1), d.Target)

	near.Position = geom.V(2100, 0)
	d, change = d.Scan(self, FactionPlayer, []Candidate{near, far})
	assert.Equal(t, Disengaged, change)
	assert.Equal(t, NoTarget, d.Target)

	far.Position = geom.V(0, 900)
	d, change = d.Scan(self, FactionPlayer, []Candidate{near, far})
	assert.Equal(t, Acquired, change)
	assert.Equal(t, EntityID(2), d.Target)
}

func TestScan_TargetGoneIsLost(t *testing.T) {
	d, _ := NewTargetDetector(100, 200, Free)
	d.Target = 4

	d, change := d.Scan(geom.V(0, 0), FactionPlayer, []Candidate{
		{ID: 5, Faction: FactionMonster, Position: geom.V(1, 0)},
	})
	assert.Equal(t, Lost, change)
	assert.False(t, d.HasTarget())
}

func TestParseFactionAndLock(t *testing.T) {
	f, err := ParseFaction("monster")
	require.NoError(t, err)
	assert.Equal(t, FactionMonster, f)
	_, err = ParseFaction("pirates")
	assert.Error(t, err)

	l, err := ParseLockPolicy("locked")
	require.NoError(t, err)
	assert.Equal(t, Locked, l)
	_, err = ParseLockPolicy("sideways")
	assert.Error(t, err)
}

func BenchmarkScan(b *testing.B) {
	d, _ := NewTargetDetector(1000, 2000, Free)
	candidates := make([]Candidate, 256)
	for i := range candidates {
		candidates[i] = Candidate{
			ID:       EntityID(i + 1),
			Faction:  Faction(i % 3),
			Position: geom.V(float64(i*13%2000), float64(i*7%2000)),
		}
	}

	for n := 0; n < b.N; n++ {
		_, _ = d.Scan(geom.V(1000, 1000), FactionPlayer, candidates)
	}
}
