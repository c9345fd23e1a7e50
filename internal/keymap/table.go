package keymap

import "fmt"

// Axis threshold defaults. Deactivate sits closer to the rest position than
// activate so a stick hovering at the boundary cannot chatter.
const (
	DefaultActivate   = 0.5
	DefaultDeactivate = 0.3
)

// Binding ties one control to one key. Activate/Deactivate are only
// meaningful for axis controls; they carry the hysteresis band used when the
// axis is treated as a digital button.
type Binding struct {
	Control    ControlID
	Key        KeyCode
	Activate   float64
	Deactivate float64
}

// Table is the immutable control-to-key lookup built once from the mapping
// document. Several controls may share one key; one control never has more
// than one key.
type Table struct {
	bindings map[ControlID]Binding
}

// NewTable validates the bindings and builds the lookup. Two entries for the
// same control are rejected unless they agree completely (a duplicated entry
// is tolerated, a conflicting one is not).
func NewTable(bindings []Binding) (*Table, error) {
	m := make(map[ControlID]Binding, len(bindings))
	for _, b := range bindings {
		if err := b.validate(); err != nil {
			return nil, err
		}
		if prev, ok := m[b.Control]; ok {
			if prev == b {
				continue
			}
			return nil, &ConfigError{Reason: fmt.Sprintf(
				"control %s bound twice (%s and %s)",
				b.Control, KeyName(prev.Key), KeyName(b.Key))}
		}
		m[b.Control] = b
	}
	return &Table{bindings: m}, nil
}

func (b Binding) validate() error {
	if b.Key <= 0 {
		return &ConfigError{Reason: fmt.Sprintf("control %s has no valid key", b.Control)}
	}
	if b.Control.Kind != KindAxis {
		return nil
	}
	if b.Activate <= 0 || b.Activate > 1 || b.Deactivate <= 0 || b.Deactivate >= b.Activate {
		return &ConfigError{Reason: fmt.Sprintf(
			"control %s: thresholds must satisfy 0 < deactivate < activate <= 1 (got activate=%g deactivate=%g)",
			b.Control, b.Activate, b.Deactivate)}
	}
	return nil
}

// Resolve looks up the binding for a control. A miss means the control is
// legitimately unmapped and its samples are to be dropped.
func (t *Table) Resolve(c ControlID) (Binding, bool) {
	b, ok := t.bindings[c]
	return b, ok
}

// Len reports the number of bound controls.
func (t *Table) Len() int {
	return len(t.bindings)
}
