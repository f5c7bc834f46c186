package system

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/yohamta/donburi"

	"github.com/younwookim/brawl/internal/domain/geom"
)

// InputSystem reads the keyboard
type InputSystem struct{}

// NewInputSystem creates a new input system
func NewInputSystem() *InputSystem {
	return &InputSystem{}
}

// InputState holds the current input state. Actions are true only on the
// frame their key went down.
type InputState struct {
	Left   bool
	Right  bool
	Up     bool
	Down   bool
	Attack bool
	Thrust bool
	Slam   bool
	Parry  bool
	Rage   bool
}

// GetInput reads the current input state
func (s *InputSystem) GetInput() InputState {
	return InputState{
		Left:   ebiten.IsKeyPressed(ebiten.KeyA) || ebiten.IsKeyPressed(ebiten.KeyArrowLeft),
		Right:  ebiten.IsKeyPressed(ebiten.KeyD) || ebiten.IsKeyPressed(ebiten.KeyArrowRight),
		Up:     ebiten.IsKeyPressed(ebiten.KeyW) || ebiten.IsKeyPressed(ebiten.KeyArrowUp),
		Down:   ebiten.IsKeyPressed(ebiten.KeyS) || ebiten.IsKeyPressed(ebiten.KeyArrowDown),
		Attack: inpututil.IsKeyJustPressed(ebiten.KeyJ) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft),
		Thrust: inpututil.IsKeyJustPressed(ebiten.KeyK),
		Slam:   inpututil.IsKeyJustPressed(ebiten.KeyL),
		Parry:  inpututil.IsKeyJustPressed(ebiten.KeySpace) || inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonRight),
		Rage:   inpututil.IsKeyJustPressed(ebiten.KeyR),
	}
}

// Direction is the walking direction, normalized. Screen Y grows downward.
func (in InputState) Direction() geom.Vec2 {
	var d geom.Vec2
	if in.Left {
		d.X--
	}
	if in.Right {
		d.X++
	}
	if in.Up {
		d.Y--
	}
	if in.Down {
		d.Y++
	}
	return d.Normalize()
}

// Intents converts one frame of input into the actor's intents. Parry is
// listed first so an interrupt pressed together with an attack preempts
// it rather than being dropped as busy.
func (in InputState) Intents(actor donburi.Entity) []Intent {
	intents := []Intent{MoveIntent{Actor: actor, Direction: in.Direction()}}
	for _, a := range []struct {
		pressed bool
		code    string
	}{
		{in.Parry, ActionParry},
		{in.Attack, ActionAttack},
		{in.Thrust, ActionThrust},
		{in.Slam, ActionSlam},
		{in.Rage, ActionRage},
	} {
		if a.pressed {
			intents = append(intents, ActionIntent{Actor: actor, Action: a.code})
		}
	}
	return intents
}
