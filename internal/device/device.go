// Package device reads raw input samples from a physical game controller.
// It exposes a pull-based Source so the translation loop owns ordering and
// cancellation; the platform backends adapt their blocking reads into a
// bounded queue behind that interface.
package device

import (
	"context"
	"errors"
	"fmt"
)

// ErrDisconnected is returned by Source.Next once the controller has gone
// away. It is terminal; the caller is expected to release held keys and exit.
var ErrDisconnected = errors.New("controller disconnected")

// EventKind classifies a raw sample.
type EventKind uint8

const (
	EventButton EventKind = iota
	EventAxis
	EventHat
)

func (k EventKind) String() string {
	switch k {
	case EventButton:
		return "button"
	case EventAxis:
		return "axis"
	case EventHat:
		return "hat"
	}
	return "unknown"
}

// HatAxis selects the horizontal or vertical component of a hat sample.
type HatAxis uint8

const (
	HatX HatAxis = iota
	HatY
)

// Sample is one raw controller reading, already normalized:
//
//	EventButton: Value is 0 or 1
//	EventAxis:   Value is in [-1, 1]
//	EventHat:    Value is -1, 0 or 1 for the component named by HatAxis
type Sample struct {
	Kind    EventKind
	Index   int
	HatAxis HatAxis
	Value   float64
}

func (s Sample) String() string {
	if s.Kind == EventHat {
		c := "x"
		if s.HatAxis == HatY {
			c = "y"
		}
		return fmt.Sprintf("hat %d %s=%g", s.Index, c, s.Value)
	}
	return fmt.Sprintf("%s %d value=%g", s.Kind, s.Index, s.Value)
}

// Source delivers controller samples in the order the hardware produced
// them. Next blocks until a sample is available, the context is cancelled,
// or the device disconnects.
type Source interface {
	Next(ctx context.Context) (Sample, error)
	Close() error
}

// Options selects which controller to open. An explicit Path wins over a
// Name substring match; with neither set the first gamepad-like device is
// used. LegacyJS switches to the old /dev/input/js* interface.
type Options struct {
	Path     string
	Name     string
	LegacyJS bool
}

// Info describes one candidate controller device.
type Info struct {
	Path    string
	Name    string
	Buttons int
	Axes    int
	Hats    int
}
