package move

import "fmt"

// Phase is the stage of an executing move.
type Phase int

const (
	Startup Phase = iota
	Active
	Recovery
)

func (p Phase) String() string {
	switch p {
	case Startup:
		return "Startup"
	case Active:
		return "Active"
	case Recovery:
		return "Recovery"
	default:
		return "Unknown"
	}
}

// PhaseAt returns the phase of m after elapsed seconds, and whether the move
// has run its full duration.
func PhaseAt(m Metadata, elapsed float64) (Phase, bool) {
	switch {
	case elapsed < m.StartupTime:
		return Startup, false
	case elapsed < m.StartupTime+m.ActiveTime:
		return Active, false
	case elapsed < m.TotalDuration():
		return Recovery, false
	default:
		return Recovery, true
	}
}

// State is one in-flight execution of a move. It is a value: transitions
// return a new State and the caller stores it.
type State struct {
	Meta    Metadata
	Elapsed float64
	Phase   Phase

	next   Metadata
	queued bool
}

// Start returns a fresh State in Startup for m.
func Start(m Metadata) State {
	return State{Meta: m, Phase: Startup}
}

// Queued returns the successor waiting to run, if any.
func (s State) Queued() (Metadata, bool) {
	return s.next, s.queued
}

// Queue returns s with next waiting to run when s reaches Recovery.
func (s State) Queue(next Metadata) State {
	s.next = next
	s.queued = true
	return s
}

// CanAcceptInput reports whether a chain request with input in is accepted.
func (s State) CanAcceptInput(in InputKind) bool {
	return (s.Phase == Active || s.Phase == Recovery) &&
		s.Meta.AcceptInput != InputNone &&
		s.Meta.AcceptInput == in
}

// ActiveProgress is the normalized position inside the active window, or 0
// outside of it.
func (s State) ActiveProgress() float64 {
	if s.Phase != Active {
		return 0
	}
	p := (s.Elapsed - s.Meta.StartupTime) / s.Meta.ActiveTime
	switch {
	case p < 0:
		return 0
	case p > 1:
		return 1
	}
	return p
}

// Step describes what happened during one Advance.
type Step struct {
	// Entered lists the phases whose start was crossed, in order.
	Entered []Phase
	// Completed is set when the move ran out with nothing queued; the
	// returned State is then zero and must be discarded.
	Completed bool
	// Chained is set when the queued successor replaced the move.
	Chained bool
	// Previous is the move that was running before the step.
	Previous Metadata
}

// Advance moves s forward by dt seconds. A non-positive dt changes nothing.
//
// When a successor is queued and the move is in Recovery (or ran out during
// this step), the successor starts immediately, skipping what is left of
// the recovery.
func (s State) Advance(dt float64) (State, Step) {
	if dt <= 0 {
		return s, Step{}
	}

	step := Step{Previous: s.Meta}
	elapsed := s.Elapsed + dt
	phase, done := PhaseAt(s.Meta, elapsed)
	for p := s.Phase + 1; p <= phase; p++ {
		step.Entered = append(step.Entered, p)
	}

	if s.queued && phase == Recovery {
		step.Chained = true
		return Start(s.next), step
	}
	if done {
		step.Completed = true
		return State{}, step
	}

	s.Elapsed = elapsed
	s.Phase = phase
	return s, step
}

// Outcome is the result of an execution request.
type Outcome int

const (
	// Dropped means the weapon is busy and the request does not chain.
	Dropped Outcome = iota
	Started
	Interrupted
	Queued
)

func (o Outcome) String() string {
	switch o {
	case Dropped:
		return "Dropped"
	case Started:
		return "Started"
	case Interrupted:
		return "Interrupted"
	case Queued:
		return "Queued"
	default:
		return "Unknown"
	}
}

// Request resolves an execution request against the weapon's current state
// (nil when idle) and returns the state to store.
//
// Interrupt input always replaces the current move. Any other input only
// queues the current move's successor, and only while the current move is
// Active or Recovery and accepts that input; the requested id is not used
// for chaining. An idle weapon starts id.
func (c *Catalog) Request(current *State, id ID, in InputKind) (State, Outcome, error) {
	if in == InputInterrupt {
		m, err := c.Lookup(id)
		if err != nil {
			return State{}, Dropped, err
		}
		if current != nil {
			return Start(m), Interrupted, nil
		}
		return Start(m), Started, nil
	}

	if current != nil {
		if !current.CanAcceptInput(in) || !current.Meta.HasNext() {
			return *current, Dropped, nil
		}
		next, err := c.Lookup(current.Meta.Next)
		if err != nil {
			return *current, Dropped, fmt.Errorf("%v -> %v: %w", current.Meta.ID, current.Meta.Next, ErrUnknownSuccessor)
		}
		return current.Queue(next), Queued, nil
	}

	m, err := c.Lookup(id)
	if err != nil {
		return State{}, Dropped, err
	}
	return Start(m), Started, nil
}
