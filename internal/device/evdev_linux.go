//go:build linux

package device

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/holoplot/go-evdev"
)

// evdevSource reads a /dev/input/event* device. The kernel read is blocking,
// so a dedicated goroutine pumps decoded samples into a bounded channel and
// Next selects on that channel and the caller's context. Ordering is
// preserved: one goroutine reads, one channel buffers, one consumer drains.
type evdevSource struct {
	dev     *evdev.InputDevice
	results chan result
	closed  chan struct{}

	buttonIndex map[evdev.EvCode]int
	axisIndex   map[evdev.EvCode]int
	absInfo     map[evdev.EvCode]evdev.AbsInfo
}

type result struct {
	sample Sample
	err    error
}

// Open opens the controller selected by opts and starts its reader.
func Open(logger *slog.Logger, opts Options) (Source, error) {
	if opts.LegacyJS {
		return openJoystick(logger, opts)
	}

	path := opts.Path
	if path == "" {
		var err error
		path, err = findEvdevPath(opts.Name)
		if err != nil {
			return nil, err
		}
	}

	dev, err := evdev.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open controller %s: %w", path, err)
	}

	s := &evdevSource{
		dev:         dev,
		results:     make(chan result, 64),
		closed:      make(chan struct{}),
		buttonIndex: make(map[evdev.EvCode]int),
		axisIndex:   make(map[evdev.EvCode]int),
	}

	keys := sortedCodes(dev.CapableEvents(evdev.EV_KEY))
	for i, code := range keys {
		s.buttonIndex[code] = i
	}

	abs := sortedCodes(dev.CapableEvents(evdev.EV_ABS))
	axisN := 0
	for _, code := range abs {
		if isHatCode(code) {
			continue
		}
		s.axisIndex[code] = axisN
		axisN++
	}

	s.absInfo, err = dev.AbsInfos()
	if err != nil {
		_ = dev.Close()
		return nil, fmt.Errorf("query axis ranges for %s: %w", path, err)
	}

	name, _ := dev.Name()
	logger.Info("controller opened",
		"path", path,
		"name", name,
		"buttons", len(keys),
		"axes", axisN,
		"hats", (len(abs)-axisN+1)/2)

	go s.read()
	return s, nil
}

func (s *evdevSource) Next(ctx context.Context) (Sample, error) {
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

func (s *evdevSource) Close() error {
	close(s.closed)
	return s.dev.Close()
}

func (s *evdevSource) read() {
	defer close(s.results)
	for {
		ev, err := s.dev.ReadOne()
		if err != nil {
			select {
			case <-s.closed:
			case s.results <- result{err: fmt.Errorf("%w: %v", ErrDisconnected, err)}:
			}
			return
		}
		sample, ok := s.decode(ev)
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

func (s *evdevSource) decode(ev *evdev.InputEvent) (Sample, bool) {
	switch ev.Type {
	case evdev.EV_KEY:
		idx, ok := s.buttonIndex[ev.Code]
		if !ok {
			return Sample{}, false
		}
		v := 0.0
		if ev.Value != 0 { // 2 is the kernel's key-repeat, treated as held
			v = 1.0
		}
		return Sample{Kind: EventButton, Index: idx, Value: v}, true

	case evdev.EV_ABS:
		if isHatCode(ev.Code) {
			hat := int(ev.Code-evdev.ABS_HAT0X) / 2
			axis := HatX
			if (ev.Code-evdev.ABS_HAT0X)%2 == 1 {
				axis = HatY
			}
			return Sample{Kind: EventHat, Index: hat, HatAxis: axis, Value: clamp(float64(ev.Value), -1, 1)}, true
		}
		idx, ok := s.axisIndex[ev.Code]
		if !ok {
			return Sample{}, false
		}
		return Sample{Kind: EventAxis, Index: idx, Value: s.normalize(ev.Code, ev.Value)}, true
	}
	return Sample{}, false
}

// normalize rescales a raw axis value into [-1, 1] using the device's
// reported range. A degenerate range yields 0 rather than a division error.
func (s *evdevSource) normalize(code evdev.EvCode, value int32) float64 {
	info, ok := s.absInfo[code]
	if !ok || info.Maximum <= info.Minimum {
		return 0
	}
	span := float64(info.Maximum - info.Minimum)
	return clamp(2*float64(value-info.Minimum)/span-1, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func isHatCode(code evdev.EvCode) bool {
	return code >= evdev.ABS_HAT0X && code <= evdev.ABS_HAT3Y
}

func sortedCodes(codes []evdev.EvCode) []evdev.EvCode {
	out := append([]evdev.EvCode(nil), codes...)
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// isGamepad reports whether the device exposes joystick/gamepad buttons.
// Keyboards and mice carry EV_KEY too; the BTN_JOYSTICK..BTN_DIGI range is
// what marks a controller.
func isGamepad(dev *evdev.InputDevice) bool {
	for _, code := range dev.CapableEvents(evdev.EV_KEY) {
		if code >= evdev.BTN_JOYSTICK && code < evdev.BTN_DIGI {
			return true
		}
	}
	return false
}

func findEvdevPath(nameFilter string) (string, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return "", fmt.Errorf("list input devices: %w", err)
	}
	for _, p := range paths {
		if nameFilter != "" &&
			!strings.Contains(strings.ToLower(p.Name), strings.ToLower(nameFilter)) {
			continue
		}
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		ok := isGamepad(dev)
		_ = dev.Close()
		if ok {
			return p.Path, nil
		}
	}
	if nameFilter != "" {
		return "", fmt.Errorf("no controller matching %q found", nameFilter)
	}
	return "", fmt.Errorf("no controller found")
}

// List enumerates gamepad-like evdev devices for the devices command.
func List() ([]Info, error) {
	paths, err := evdev.ListDevicePaths()
	if err != nil {
		return nil, fmt.Errorf("list input devices: %w", err)
	}

	var infos []Info
	for _, p := range paths {
		dev, err := evdev.Open(p.Path)
		if err != nil {
			continue
		}
		if !isGamepad(dev) {
			_ = dev.Close()
			continue
		}

		abs := dev.CapableEvents(evdev.EV_ABS)
		hats := 0
		axes := 0
		for _, code := range abs {
			if isHatCode(code) {
				hats++
			} else {
				axes++
			}
		}
		infos = append(infos, Info{
			Path:    p.Path,
			Name:    p.Name,
			Buttons: len(dev.CapableEvents(evdev.EV_KEY)),
			Axes:    axes,
			Hats:    hats / 2,
		})
		_ = dev.Close()
	}
	return infos, nil
}
