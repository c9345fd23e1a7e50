// Package translate implements the event translation engine: the stateful
// pipeline from raw controller samples to a deterministic stream of
// simulated key actions.
package translate

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/maun/co2key/internal/device"
	"github.com/maun/co2key/internal/keymap"
	"github.com/maun/co2key/internal/log"
)

// MalformedSampleError marks a sample that was out of its expected range.
// Such samples are dropped without touching any runtime state.
type MalformedSampleError struct {
	Sample device.Sample
	Reason string
}

func (e *MalformedSampleError) Error() string {
	return fmt.Sprintf("malformed sample (%s): %s", e.Sample, e.Reason)
}

// Loop drives the pipeline: pull a sample from the source, normalize it,
// detect edges, resolve the binding and dispatch key actions. It is the sole
// owner of all translation state, so a single sequential consumer is both
// sufficient and required: processing samples out of order could invert a
// rising/falling pair.
type Loop struct {
	source device.Source
	table  *keymap.Table
	disp   *Dispatcher
	states *States
	logger *slog.Logger
	raw    log.RawLogger
}

func NewLoop(source device.Source, table *keymap.Table, sink Sink, logger *slog.Logger, raw log.RawLogger) *Loop {
	if raw == nil {
		raw = log.NewRaw(nil)
	}
	return &Loop{
		source: source,
		table:  table,
		disp:   NewDispatcher(sink, logger),
		states: NewStates(),
		logger: logger,
		raw:    raw,
	}
}

// Run consumes samples until the context is cancelled or the source fails.
// Every exit path releases all held keys first. Cancellation is cooperative:
// it is honored at iteration boundaries, never mid-sample.
func (l *Loop) Run(ctx context.Context) error {
	defer l.disp.ReleaseAll()

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		sample, err := l.source.Next(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return nil
			}
			return err
		}

		l.raw.Log(sample)
		if err := l.process(sample); err != nil {
			l.logger.Warn("sample dropped", "error", err)
		}
	}
}

func (l *Loop) process(s device.Sample) error {
	if math.IsNaN(s.Value) || math.IsInf(s.Value, 0) {
		return &MalformedSampleError{Sample: s, Reason: "value is not finite"}
	}
	if s.Index < 0 {
		return &MalformedSampleError{Sample: s, Reason: "negative index"}
	}

	switch s.Kind {
	case device.EventButton:
		if s.Value < 0 || s.Value > 1 {
			return &MalformedSampleError{Sample: s, Reason: "button value outside [0,1]"}
		}
		l.updateDigital(keymap.Button(s.Index), s.Value > 0.5, s.Value)

	case device.EventAxis:
		if s.Value < -1 || s.Value > 1 {
			return &MalformedSampleError{Sample: s, Reason: "axis value outside [-1,1]"}
		}
		// One physical axis is two independent controls, one per polarity.
		l.updateAxis(keymap.Axis(s.Index, keymap.FacetPos), s.Value)
		l.updateAxis(keymap.Axis(s.Index, keymap.FacetNeg), -s.Value)

	case device.EventHat:
		if s.Value != -1 && s.Value != 0 && s.Value != 1 {
			return &MalformedSampleError{Sample: s, Reason: "hat value outside {-1,0,1}"}
		}
		// Hat axes report -1 for up/left. Each direction keeps its own edge
		// state, so diagonals are just two directions active at once.
		if s.HatAxis == device.HatX {
			l.updateDigital(keymap.Hat(s.Index, keymap.FacetLeft), s.Value < 0, s.Value)
			l.updateDigital(keymap.Hat(s.Index, keymap.FacetRight), s.Value > 0, s.Value)
		} else {
			l.updateDigital(keymap.Hat(s.Index, keymap.FacetUp), s.Value < 0, s.Value)
			l.updateDigital(keymap.Hat(s.Index, keymap.FacetDown), s.Value > 0, s.Value)
		}

	default:
		return &MalformedSampleError{Sample: s, Reason: "unknown event kind"}
	}
	return nil
}

// updateDigital handles controls whose logical state needs no hysteresis:
// buttons and hat directions.
func (l *Loop) updateDigital(id keymap.ControlID, active bool, raw float64) {
	binding, ok := l.table.Resolve(id)
	if !ok {
		return
	}
	l.apply(l.states.Update(id, active, raw), binding.Key)
}

// updateAxis runs one axis polarity through its hysteresis band. The raw
// value passed in is already oriented so that "pressed" is positive.
func (l *Loop) updateAxis(id keymap.ControlID, raw float64) {
	binding, ok := l.table.Resolve(id)
	if !ok {
		return
	}
	h := Hysteresis{Activate: binding.Activate, Deactivate: binding.Deactivate}
	active := h.Next(l.states.Active(id), raw)
	l.apply(l.states.Update(id, active, raw), binding.Key)
}

func (l *Loop) apply(edge Edge, key keymap.KeyCode) {
	switch edge {
	case EdgeRising:
		l.disp.Press(key)
	case EdgeFalling:
		l.disp.Release(key)
	}
}
