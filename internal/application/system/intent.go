package system

import (
	"github.com/yohamta/donburi"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// Intent represents an action that an entity wants to perform
type Intent interface {
	isIntent()
}

// MoveIntent represents a walking intention. A zero Direction stands still.
type MoveIntent struct {
	Actor     donburi.Entity
	Direction geom.Vec2
}

func (MoveIntent) isIntent() {}

// ActionIntent asks for the move bound to an action code.
type ActionIntent struct {
	Actor  donburi.Entity
	Action string
}

func (ActionIntent) isIntent() {}

// Action codes bound to moves in arena.yaml.
const (
	ActionAttack = "attack"
	ActionThrust = "thrust"
	ActionSlam   = "slam"
	ActionParry  = "parry"
)

// ActionRage toggles a berserker's rage. It is not a move and needs no
// binding.
const ActionRage = "rage"
