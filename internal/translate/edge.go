package translate

import "github.com/maun/co2key/internal/keymap"

// Edge is a logical state transition for one control.
type Edge uint8

const (
	EdgeNone Edge = iota
	EdgeRising
	EdgeFalling
)

func (e Edge) String() string {
	switch e {
	case EdgeRising:
		return "rising"
	case EdgeFalling:
		return "falling"
	}
	return "none"
}

type controlState struct {
	active bool
	raw    float64
}

// States holds the last-known logical state and raw value per control. It is
// owned exclusively by the translation loop; nothing else writes to it.
type States struct {
	m map[keymap.ControlID]controlState
}

func NewStates() *States {
	return &States{m: make(map[keymap.ControlID]controlState)}
}

// Active returns the last logical state recorded for a control. Controls
// never seen before are inactive.
func (s *States) Active(id keymap.ControlID) bool {
	return s.m[id].active
}

// Update records a new observation and reports the edge it produced.
// Replaying an unchanged state yields EdgeNone.
func (s *States) Update(id keymap.ControlID, active bool, raw float64) Edge {
	prev := s.m[id]
	s.m[id] = controlState{active: active, raw: raw}

	switch {
	case active && !prev.active:
		return EdgeRising
	case !active && prev.active:
		return EdgeFalling
	}
	return EdgeNone
}
