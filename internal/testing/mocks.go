// Package testing provides shared test doubles for the translation pipeline.
package testing

import (
	"context"

	"github.com/maun/co2key/internal/device"
	"github.com/maun/co2key/internal/keymap"
)

// ScriptSource replays a fixed sequence of samples. Once the script is
// exhausted it returns FinalErr if set, otherwise it blocks until the
// context is cancelled, like a silent controller would.
type ScriptSource struct {
	Samples  []device.Sample
	FinalErr error

	next int
}

func (s *ScriptSource) Next(ctx context.Context) (device.Sample, error) {
	if err := ctx.Err(); err != nil {
		return device.Sample{}, err
	}
	if s.next < len(s.Samples) {
		sample := s.Samples[s.next]
		s.next++
		return sample, nil
	}
	if s.FinalErr != nil {
		return device.Sample{}, s.FinalErr
	}
	<-ctx.Done()
	return device.Sample{}, ctx.Err()
}

func (s *ScriptSource) Close() error { return nil }

// Action is one recorded key event.
type Action struct {
	Down bool
	Key  keymap.KeyCode
}

// Down and Up build expected actions for test tables.
func Down(key keymap.KeyCode) Action { return Action{Down: true, Key: key} }
func Up(key keymap.KeyCode) Action   { return Action{Down: false, Key: key} }

// RecordingSink records every injected key action in order. Err, when set,
// is returned from every call, to exercise the injection-failure path.
type RecordingSink struct {
	Actions []Action
	Err     error
}

func (r *RecordingSink) KeyDown(code keymap.KeyCode) error {
	r.Actions = append(r.Actions, Down(code))
	return r.Err
}

func (r *RecordingSink) KeyUp(code keymap.KeyCode) error {
	r.Actions = append(r.Actions, Up(code))
	return r.Err
}

func (r *RecordingSink) Close() error { return nil }
