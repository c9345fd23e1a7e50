//go:build linux

package device

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"path/filepath"

	"golang.org/x/sys/unix"
)

// Legacy /dev/input/js* event record: 4 bytes timestamp, 2 bytes value,
// 1 byte type, 1 byte number.
const jsEventSize = 8

const (
	jsEventButton = 0x01
	jsEventAxis   = 0x02
	jsEventInit   = 0x80
)

// joystickSource reads the old joystick interface. It has no hat events
// (hats show up as axes) and no name-based matching, but works on kernels
// or permission setups where the evdev node is unavailable.
type joystickSource struct {
	fd      int
	path    string
	results chan result
	closed  chan struct{}
}

func openJoystick(logger *slog.Logger, opts Options) (Source, error) {
	if opts.Name != "" {
		return nil, fmt.Errorf("name matching is not supported with the legacy joystick interface, set an explicit path")
	}

	path := opts.Path
	if path == "" {
		matches, err := filepath.Glob("/dev/input/js*")
		if err != nil || len(matches) == 0 {
			return nil, fmt.Errorf("no controller found")
		}
		path = matches[0]
	}

	fd, err := unix.Open(path, unix.O_RDONLY, 0)
	if err != nil {
		return nil, fmt.Errorf("open controller %s: %w", path, err)
	}

	logger.Info("controller opened", "path", path, "interface", "js")

	s := &joystickSource{
		fd:      fd,
		path:    path,
		results: make(chan result, 64),
		closed:  make(chan struct{}),
	}
	go s.read()
	return s, nil
}

func (s *joystickSource) Next(ctx context.Context) (Sample, error) {
	select {
	case <-ctx.Done():
		return Sample{}, ctx.Err()
	case r, ok := <-s.results:
		if !ok {
			return Sample{}, ErrDisconnected
		}
		return r.sample, r.err
	}
}

func (s *joystickSource) Close() error {
	close(s.closed)
	return unix.Close(s.fd)
}

func (s *joystickSource) read() {
	defer close(s.results)
	buf := make([]byte, jsEventSize)
	for {
		n, err := unix.Read(s.fd, buf)
		if err == unix.EINTR {
			continue
		}
		if err != nil || n < jsEventSize {
			select {
			case <-s.closed:
			case s.results <- result{err: fmt.Errorf("%w: read %s: %v", ErrDisconnected, s.path, err)}:
			}
			return
		}
		sample, ok := decodeJSEvent(buf)
		if !ok {
			continue
		}
		select {
		case <-s.closed:
			return
		case s.results <- result{sample: sample}:
		}
	}
}

// decodeJSEvent maps one raw js record to a Sample. Init events (sent by
// the kernel on open to describe current state) keep their type bit masked
// off and flow through like live samples, priming the loop's state.
func decodeJSEvent(buf []byte) (Sample, bool) {
	value := int16(binary.LittleEndian.Uint16(buf[4:6]))
	etype := buf[6] &^ jsEventInit
	num := int(buf[7])

	switch etype {
	case jsEventButton:
		v := 0.0
		if value != 0 {
			v = 1.0
		}
		return Sample{Kind: EventButton, Index: num, Value: v}, true
	case jsEventAxis:
		return Sample{Kind: EventAxis, Index: num, Value: clamp(float64(value)/32767.0, -1, 1)}, true
	}
	return Sample{}, false
}
