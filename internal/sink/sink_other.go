//go:build !linux

package sink

import (
	"errors"

	"github.com/maun/co2key/internal/keymap"
)

// NewKeyboard is unavailable off Linux.
func NewKeyboard() (*Keyboard, error) {
	return nil, errors.New("key injection is only supported on linux")
}

type Keyboard struct{}

func (k *Keyboard) KeyDown(code keymap.KeyCode) error { return nil }
func (k *Keyboard) KeyUp(code keymap.KeyCode) error   { return nil }
func (k *Keyboard) Close() error                      { return nil }
