package move

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCatalog(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)
	assert.Equal(t, Count, c.Len())

	left, err := c.Lookup(SwingLeft)
	require.NoError(t, err)
	assert.Equal(t, "SwingLeft", left.Name)
	assert.Equal(t, 0.15, left.StartupTime)
	assert.Equal(t, 0.15, left.ActiveTime)
	assert.Equal(t, 0.35, left.RecoveryTime)
	assert.Equal(t, SwingRight, left.Next)
	assert.Equal(t, InputAttack, left.AcceptInput)

	right, err := c.Lookup(SwingRight)
	require.NoError(t, err)
	assert.False(t, right.HasNext())
}

func TestCatalog_LookupReturnsCopy(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	m, err := c.Lookup(SwingLeft)
	require.NoError(t, err)
	m.StartupTime = 99

	again, err := c.Lookup(SwingLeft)
	require.NoError(t, err)
	assert.Equal(t, 0.15, again.StartupTime)
}

func TestCatalog_LookupMiss(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	_, err = c.Lookup(None)
	assert.ErrorIs(t, err, ErrMoveNotFound)

	_, err = c.Lookup(ID(200))
	assert.ErrorIs(t, err, ErrMoveNotFound)
}

func TestNewCatalog_Validation(t *testing.T) {
	mutate := func(id ID, f func(*Metadata)) []Metadata {
		defs := DefaultDefinitions()
		for i := range defs {
			if defs[i].ID == id {
				f(&defs[i])
			}
		}
		return defs
	}

	tests := []struct {
		name string
		defs []Metadata
		want error
	}{
		{
			name: "zero active time",
			defs: mutate(Stub, func(m *Metadata) { m.ActiveTime = 0 }),
			want: ErrInvalidDuration,
		},
		{
			name: "negative recovery",
			defs: mutate(Parry, func(m *Metadata) { m.RecoveryTime = -0.1 }),
			want: ErrInvalidDuration,
		},
		{
			name: "successor outside the enum",
			defs: mutate(SwingRight, func(m *Metadata) { m.Next = ID(77) }),
			want: ErrUnknownSuccessor,
		},
		{
			name: "missing definition",
			defs: DefaultDefinitions()[:2],
			want: ErrMoveNotFound,
		},
		{
			name: "duplicate definition",
			defs: append(DefaultDefinitions(), DefaultDefinitions()[0]),
			want: ErrDuplicateName,
		},
		{
			name: "definition for None",
			defs: append(DefaultDefinitions(), Metadata{ID: None, ActiveTime: 1}),
			want: ErrMoveNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewCatalog(tt.defs)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}

func TestParseID(t *testing.T) {
	for _, id := range All() {
		got, err := ParseID(id.String())
		require.NoError(t, err)
		assert.Equal(t, id, got)
	}

	_, err := ParseID("Fireball")
	assert.ErrorIs(t, err, ErrMoveNotFound)

	_, err = ParseID("None")
	assert.ErrorIs(t, err, ErrMoveNotFound)
}

func TestMetadata_KnockbackDuration(t *testing.T) {
	m := Metadata{KnockbackForce: 800}
	assert.InDelta(t, 2.25, m.KnockbackDuration(), 1e-12)
}

func TestDefaultCatalog_Categories(t *testing.T) {
	c, err := DefaultCatalog()
	require.NoError(t, err)

	tests := []struct {
		id   ID
		want Category
	}{
		{SwingLeft, CategorySwing},
		{SwingRight, CategorySwing},
		{Stub, CategoryThrust},
		{Parry, CategoryInterrupt},
		{HeavySlam, CategorySwing},
	}
	for _, tt := range tests {
		t.Run(tt.id.String(), func(t *testing.T) {
			m, err := c.Lookup(tt.id)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.Category)
		})
	}
	assert.Equal(t, "Thrust", CategoryThrust.String())
	assert.Equal(t, "Stub", Stub.String())
}
