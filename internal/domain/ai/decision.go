package ai

import (
	"fmt"
	"sort"

	"github.com/younwookim/brawl/internal/domain/move"
)

// Option is one entry of a decision loop: the move to request and the
// distance at which it may fire.
type Option struct {
	Move  move.ID
	Range float64
}

// DecisionLoop cycles through its options in order. The option under the
// cursor fires only when the target is inside its range; firing advances
// the cursor, wrapping at the end.
type DecisionLoop struct {
	options []Option
	cursor  int
}

// NewDecisionLoop copies opts into a loop positioned at the first option.
func NewDecisionLoop(opts []Option) (DecisionLoop, error) {
	if len(opts) == 0 {
		return DecisionLoop{}, ErrEmptyOptions
	}
	for i, o := range opts {
		if !o.Move.Valid() || o.Range < 0 {
			return DecisionLoop{}, fmt.Errorf("option %d (%v, range %v): %w", i, o.Move, o.Range, ErrInvalidOption)
		}
	}
	cp := make([]Option, len(opts))
	copy(cp, opts)
	return DecisionLoop{options: cp}, nil
}

// Peek returns the option under the cursor.
func (l *DecisionLoop) Peek() (Option, bool) {
	if len(l.options) == 0 {
		return Option{}, false
	}
	return l.options[l.cursor], true
}

// Select returns the move to request at the given distance to the target,
// or false when the actor should keep closing in.
func (l *DecisionLoop) Select(distance float64) (move.ID, bool) {
	opt, ok := l.Peek()
	if !ok || distance > opt.Range {
		return move.None, false
	}
	l.cursor = (l.cursor + 1) % len(l.options)
	return opt.Move, true
}

// Cursor returns the index of the next option.
func (l *DecisionLoop) Cursor() int { return l.cursor }

// Len returns the number of options.
func (l *DecisionLoop) Len() int { return len(l.options) }

// Registry resolves a unit type to its option list. It is built once
// from configuration and read at spawn time.
type Registry struct {
	byType map[string][]Option
}

// NewRegistry validates every option list.
func NewRegistry(byType map[string][]Option) (*Registry, error) {
	r := &Registry{byType: make(map[string][]Option, len(byType))}
	for unit, opts := range byType {
		if _, err := NewDecisionLoop(opts); err != nil {
			return nil, fmt.Errorf("unit %q: %w", unit, err)
		}
		cp := make([]Option, len(opts))
		copy(cp, opts)
		r.byType[unit] = cp
	}
	return r, nil
}

// Loop returns a fresh decision loop for a unit type.
func (r *Registry) Loop(unit string) (DecisionLoop, error) {
	opts, ok := r.byType[unit]
	if !ok {
		return DecisionLoop{}, fmt.Errorf("%q: %w", unit, ErrUnknownUnit)
	}
	return NewDecisionLoop(opts)
}

// Units returns the registered unit types, sorted.
func (r *Registry) Units() []string {
	units := make([]string, 0, len(r.byType))
	for u := range r.byType {
		units = append(units, u)
	}
	sort.Strings(units)
	return units
}
