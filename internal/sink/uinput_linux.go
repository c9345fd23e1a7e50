//go:build linux

package sink

import (
	"fmt"

	"github.com/bendahl/uinput"

	"github.com/maun/co2key/internal/keymap"
)

const (
	uinputPath = "/dev/uinput"
	deviceName = "co2key"
)

// Keyboard is a uinput virtual keyboard. Creating it requires write access
// to /dev/uinput; it must be closed when the loop stops so the virtual
// device is removed.
type Keyboard struct {
	dev uinput.Keyboard
}

func NewKeyboard() (*Keyboard, error) {
	dev, err := uinput.CreateKeyboard(uinputPath, []byte(deviceName))
	if err != nil {
		return nil, fmt.Errorf("create virtual keyboard: %w", err)
	}
	return &Keyboard{dev: dev}, nil
}

func (k *Keyboard) KeyDown(code keymap.KeyCode) error {
	if err := k.dev.KeyDown(int(code)); err != nil {
		return fmt.Errorf("key down %s: %w", keymap.KeyName(code), err)
	}
	return nil
}

func (k *Keyboard) KeyUp(code keymap.KeyCode) error {
	if err := k.dev.KeyUp(int(code)); err != nil {
		return fmt.Errorf("key up %s: %w", keymap.KeyName(code), err)
	}
	return nil
}

func (k *Keyboard) Close() error {
	if err := k.dev.Close(); err != nil {
		return fmt.Errorf("close virtual keyboard: %w", err)
	}
	return nil
}
