// Package sink delivers simulated key events to the operating system.
package sink

import "github.com/maun/co2key/internal/keymap"

// Sink is the OS key-injection surface. KeyUp for a key that is not down
// must be a no-op; the dispatcher never sends unbalanced pairs, but the
// guarantee keeps the boundary safe.
type Sink interface {
	KeyDown(code keymap.KeyCode) error
	KeyUp(code keymap.KeyCode) error
	Close() error
}

var _ Sink = (*Keyboard)(nil)
