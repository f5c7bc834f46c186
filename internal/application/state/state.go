package state

// GameState represents the current state of the game
type GameState int

const (
	StateLoading GameState = iota
	StateFighting
	StatePaused
	StateGameOver
	StateVictory
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StateLoading:
		return "Loading"
	case StateFighting:
		return "Fighting"
	case StatePaused:
		return "Paused"
	case StateGameOver:
		return "GameOver"
	case StateVictory:
		return "Victory"
	default:
		return "Unknown"
	}
}

// Terminal reports whether the fight is over.
func (s GameState) Terminal() bool {
	return s == StateGameOver || s == StateVictory
}

// Outcome decides how a fight stands after a tick. Only StateFighting
// moves; a dead player loses even when the last enemy fell the same tick.
func Outcome(s GameState, playerAlive bool, enemiesLeft int) GameState {
	if s != StateFighting {
		return s
	}
	switch {
	case !playerAlive:
		return StateGameOver
	case enemiesLeft == 0:
		return StateVictory
	default:
		return StateFighting
	}
}
