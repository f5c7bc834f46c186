package replay

import "github.com/younwookim/brawl/internal/application/system"

// Version is written into every recording.
const Version = "2.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F int  `json:"f"`           // Frame number
	L bool `json:"l,omitempty"` // Left
	R bool `json:"r,omitempty"` // Right
	U bool `json:"u,omitempty"` // Up
	D bool `json:"d,omitempty"` // Down
	A bool `json:"a,omitempty"` // Attack
	T bool `json:"t,omitempty"` // Thrust
	S bool `json:"s,omitempty"` // Slam
	P bool `json:"p,omitempty"` // Parry
	B bool `json:"b,omitempty"` // Rage (berserk)
}

// ReplayData contains all data needed to replay a fight
type ReplayData struct {
	Version   string       `json:"version"`
	Seed      int64        `json:"seed"`
	Arena     string       `json:"arena"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
	// Digest is the world digest after the last frame; zero if unknown.
	Digest uint64 `json:"digest,omitempty"`
}

// Frame converts one frame of input for recording.
func Frame(f int, in system.InputState) FrameInput {
	return FrameInput{
		F: f,
		L: in.Left,
		R: in.Right,
		U: in.Up,
		D: in.Down,
		A: in.Attack,
		T: in.Thrust,
		S: in.Slam,
		P: in.Parry,
		B: in.Rage,
	}
}

// Input is the inverse of Frame.
func (fi FrameInput) Input() system.InputState {
	return system.InputState{
		Left:   fi.L,
		Right:  fi.R,
		Up:     fi.U,
		Down:   fi.D,
		Attack: fi.A,
		Thrust: fi.T,
		Slam:   fi.S,
		Parry:  fi.P,
		Rage:   fi.B,
	}
}
