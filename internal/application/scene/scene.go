// Package scene defines the Scene interface for game screens.
package scene

import (
	"errors"

	"github.com/hajimehoshi/ebiten/v2"
)

// ErrQuit is returned from Update to end the game without an error.
var ErrQuit = errors.New("quit")

// Scene is one game screen. The game loop delegates Update and Draw to
// the current scene and switches when Update returns a next scene.
type Scene interface {
	// Update advances the scene by dt seconds. A non-nil next scene
	// replaces this one; an error ends the game.
	Update(dt float64) (next Scene, err error)

	Draw(screen *ebiten.Image)

	// OnEnter is called each time the scene becomes current.
	OnEnter()

	// OnExit is called when the scene is replaced.
	OnExit()
}
