package translate

import (
	"log/slog"
	"sort"

	"github.com/maun/co2key/internal/keymap"
)

// Sink injects simulated key events into the OS. Implementations must
// tolerate a key-up for a key that is not currently down.
type Sink interface {
	KeyDown(code keymap.KeyCode) error
	KeyUp(code keymap.KeyCode) error
}

// Dispatcher turns edges into balanced key-down/key-up pairs. It keeps a
// reference count per key so that two controls bound to the same key cannot
// release it while one of them still holds it, and it can release everything
// on shutdown so no simulated key stays stuck down.
//
// A failed injection is reported as a warning but still counted as if it
// succeeded: retrying against an unknown OS-side key state is worse than
// drifting for one press.
type Dispatcher struct {
	sink   Sink
	logger *slog.Logger
	held   map[keymap.KeyCode]int
}

func NewDispatcher(sink Sink, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{
		sink:   sink,
		logger: logger,
		held:   make(map[keymap.KeyCode]int),
	}
}

// Press registers a rising edge for key. The key-down is only injected when
// the held count goes 0 to 1.
func (d *Dispatcher) Press(key keymap.KeyCode) {
	d.held[key]++
	if d.held[key] != 1 {
		return
	}
	d.logger.Debug("key down", "key", keymap.KeyName(key))
	if err := d.sink.KeyDown(key); err != nil {
		d.logger.Warn("key down injection failed", "key", keymap.KeyName(key), "error", err)
	}
}

// Release registers a falling edge for key. The key-up is only injected when
// the held count drops back to 0. A release without a matching press is a
// no-op; the edge detector upstream never produces one.
func (d *Dispatcher) Release(key keymap.KeyCode) {
	if d.held[key] == 0 {
		return
	}
	d.held[key]--
	if d.held[key] != 0 {
		return
	}
	delete(d.held, key)
	d.logger.Debug("key up", "key", keymap.KeyName(key))
	if err := d.sink.KeyUp(key); err != nil {
		d.logger.Warn("key up injection failed", "key", keymap.KeyName(key), "error", err)
	}
}

// ReleaseAll injects exactly one key-up for every key with a nonzero held
// count, in deterministic order, and resets the counts. Called on every exit
// path of the translation loop.
func (d *Dispatcher) ReleaseAll() {
	if len(d.held) == 0 {
		return
	}

	keys := make([]keymap.KeyCode, 0, len(d.held))
	for key := range d.held {
		keys = append(keys, key)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })

	for _, key := range keys {
		d.logger.Debug("key up", "key", keymap.KeyName(key), "reason", "shutdown")
		if err := d.sink.KeyUp(key); err != nil {
			d.logger.Warn("key up injection failed", "key", keymap.KeyName(key), "error", err)
		}
	}
	d.held = make(map[keymap.KeyCode]int)
}

// HeldCount reports how many controls currently hold key down.
func (d *Dispatcher) HeldCount(key keymap.KeyCode) int {
	return d.held[key]
}
