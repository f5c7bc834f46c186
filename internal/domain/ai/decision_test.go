package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/brawl/internal/domain/move"
)

func TestDecisionLoop_RangeGated(t *testing.T) {
	l, err := NewDecisionLoop([]Option{
		{Move: move.SwingLeft, Range: 150},
		{Move: move.HeavySlam, Range: 100},
	})
	require.NoError(t, err)

	id, ok := l.Select(200)
	assert.False(t, ok)
	assert.Equal(t, move.None, id)
	assert.Equal(t, 0, l.Cursor(), "out of range does not advance")

	id, ok = l.Select(150)
	assert.True(t, ok)
	assert.Equal(t, move.SwingLeft, id)
	assert.Equal(t, 1, l.Cursor())

	_, ok = l.Select(120)
	assert.False(t, ok, "next option has a shorter range")
}

func TestDecisionLoop_CyclesInOrder(t *testing.T) {
	opts := []Option{
		{Move: move.SwingLeft, Range: 150},
		{Move: move.Stub, Range: 150},
		{Move: move.HeavySlam, Range: 150},
	}
	l, err := NewDecisionLoop(opts)
	require.NoError(t, err)

	var got []move.ID
	for i := 0; i < 2*len(opts); i++ {
		id, ok := l.Select(50)
		require.True(t, ok)
		got = append(got, id)
	}
	assert.Equal(t, []move.ID{
		move.SwingLeft, move.Stub, move.HeavySlam,
		move.SwingLeft, move.Stub, move.HeavySlam,
	}, got)
}

func TestNewDecisionLoop_Validation(t *testing.T) {
	_, err := NewDecisionLoop(nil)
	assert.ErrorIs(t, err, ErrEmptyOptions)

	_, err = NewDecisionLoop([]Option{{Move: move.None, Range: 10}})
	assert.ErrorIs(t, err, ErrInvalidOption)

	_, err = NewDecisionLoop([]Option{{Move: move.Stub, Range: -1}})
	assert.ErrorIs(t, err, ErrInvalidOption)
}

func TestNewDecisionLoop_CopiesOptions(t *testing.T) {
	opts := []Option{{Move: move.SwingLeft, Range: 150}}
	l, err := NewDecisionLoop(opts)
	require.NoError(t, err)

	opts[0].Move = move.HeavySlam
	o, _ := l.Peek()
	assert.Equal(t, move.SwingLeft, o.Move)
}

func TestRegistry(t *testing.T) {
	r, err := NewRegistry(map[string][]Option{
		"grunt": {{Move: move.SwingLeft, Range: 150}},
		"brute": {{Move: move.HeavySlam, Range: 160}, {Move: move.SwingLeft, Range: 140}},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"brute", "grunt"}, r.Units())

	a, err := r.Loop("brute")
	require.NoError(t, err)
	b, err := r.Loop("brute")
	require.NoError(t, err)

	_, _ = a.Select(10)
	assert.Equal(t, 1, a.Cursor())
	assert.Equal(t, 0, b.Cursor(), "each spawn gets its own cursor")

	_, err = r.Loop("dragon")
	assert.ErrorIs(t, err, ErrUnknownUnit)

	_, err = NewRegistry(map[string][]Option{"empty": nil})
	assert.ErrorIs(t, err, ErrEmptyOptions)
}
