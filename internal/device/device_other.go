//go:build !linux

package device

import (
	"errors"
	"log/slog"
)

var errUnsupported = errors.New("controller input is only supported on linux")

// Open is unavailable off Linux; the engine and mapping tooling still build.
func Open(logger *slog.Logger, opts Options) (Source, error) {
	return nil, errUnsupported
}

func List() ([]Info, error) {
	return nil, errUnsupported
}
