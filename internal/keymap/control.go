// Package keymap holds the immutable mapping from controller controls to
// simulated keyboard keys. A mapping document is loaded once at startup,
// validated, and turned into a Table that the translation loop queries for
// every input sample.
package keymap

import (
	"fmt"
	"strconv"
	"strings"
)

// ControlKind identifies the class of physical input a ControlID refers to.
type ControlKind uint8

const (
	KindButton ControlKind = iota
	KindAxis
	KindHat
)

func (k ControlKind) String() string {
	switch k {
	case KindButton:
		return "button"
	case KindAxis:
		return "axis"
	case KindHat:
		return "hat"
	}
	return "unknown"
}

// Facet narrows a ControlID beyond its index: the polarity for axes, the
// direction for hats. Buttons use FacetNone.
type Facet uint8

const (
	FacetNone Facet = iota
	FacetPos
	FacetNeg
	FacetUp
	FacetDown
	FacetLeft
	FacetRight
)

var facetNames = map[Facet]string{
	FacetPos:   "pos",
	FacetNeg:   "neg",
	FacetUp:    "up",
	FacetDown:  "down",
	FacetLeft:  "left",
	FacetRight: "right",
}

// ControlID identifies one physical input source on the controller: a button
// index, an axis index with polarity, or a hat direction. It is comparable
// and used as a map key throughout.
type ControlID struct {
	Kind  ControlKind
	Index int
	Facet Facet
}

func Button(index int) ControlID {
	return ControlID{Kind: KindButton, Index: index}
}

func Axis(index int, facet Facet) ControlID {
	return ControlID{Kind: KindAxis, Index: index, Facet: facet}
}

func Hat(index int, facet Facet) ControlID {
	return ControlID{Kind: KindHat, Index: index, Facet: facet}
}

// String renders the canonical config spelling, e.g. "button_0",
// "axis_1_pos", "hat_0_up".
func (c ControlID) String() string {
	if c.Kind == KindButton {
		return fmt.Sprintf("button_%d", c.Index)
	}
	return fmt.Sprintf("%s_%d_%s", c.Kind, c.Index, facetNames[c.Facet])
}

// ParseControl parses a control identifier as written in a mapping document.
// Accepted forms: "button_N", "axis_N_pos", "axis_N_neg", and
// "hat_N_up|down|left|right".
func ParseControl(s string) (ControlID, error) {
	parts := strings.Split(strings.ToLower(strings.TrimSpace(s)), "_")
	bad := func() (ControlID, error) {
		return ControlID{}, &ConfigError{Reason: fmt.Sprintf("invalid control %q", s)}
	}

	if len(parts) < 2 {
		return bad()
	}
	index, err := strconv.Atoi(parts[1])
	if err != nil || index < 0 {
		return bad()
	}

	switch parts[0] {
	case "button":
		if len(parts) != 2 {
			return bad()
		}
		return Button(index), nil
	case "axis":
		if len(parts) != 3 {
			return bad()
		}
		switch parts[2] {
		case "pos":
			return Axis(index, FacetPos), nil
		case "neg":
			return Axis(index, FacetNeg), nil
		}
		return bad()
	case "hat":
		if len(parts) != 3 {
			return bad()
		}
		switch parts[2] {
		case "up":
			return Hat(index, FacetUp), nil
		case "down":
			return Hat(index, FacetDown), nil
		case "left":
			return Hat(index, FacetLeft), nil
		case "right":
			return Hat(index, FacetRight), nil
		}
		return bad()
	}
	return bad()
}

// ConfigError reports an invalid or conflicting mapping document. It is
// fatal at startup; the translation loop never runs with a partial table.
type ConfigError struct {
	Reason string
}

func (e *ConfigError) Error() string {
	return "mapping config: " + e.Reason
}
