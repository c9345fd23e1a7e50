package log

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/maun/co2key/internal/device"
)

// RawLogger traces every raw controller sample before translation.
type RawLogger interface {
	Log(s device.Sample)
}

type rawLogger struct {
	w  io.Writer
	mu sync.Mutex
}

// NewRaw creates a RawLogger writing one line per sample. A nil writer
// yields a no-op logger.
func NewRaw(w io.Writer) RawLogger {
	return &rawLogger{w: w}
}

func (r *rawLogger) Log(s device.Sample) {
	if r.w == nil {
		return
	}
	line := fmt.Sprintf("%s raw %s\n", time.Now().Format("2006/01/02 15:04:05.000"), s)

	r.mu.Lock()
	_, _ = r.w.Write([]byte(line))
	r.mu.Unlock()
}
