//go:build linux

package device

import (
	"encoding/binary"
	"testing"

	"github.com/stretchr/testify/assert"
)

func jsRecord(value int16, etype, num uint8) []byte {
	buf := make([]byte, jsEventSize)
	binary.LittleEndian.PutUint16(buf[4:6], uint16(value))
	buf[6] = etype
	buf[7] = num
	return buf
}

func TestDecodeJSEvent(t *testing.T) {
	tests := []struct {
		name   string
		buf    []byte
		want   Sample
		wantOK bool
	}{
		{
			name:   "button press",
			buf:    jsRecord(1, jsEventButton, 3),
			want:   Sample{Kind: EventButton, Index: 3, Value: 1},
			wantOK: true,
		},
		{
			name:   "button release",
			buf:    jsRecord(0, jsEventButton, 3),
			want:   Sample{Kind: EventButton, Index: 3, Value: 0},
			wantOK: true,
		},
		{
			name:   "init button keeps its state",
			buf:    jsRecord(1, jsEventButton|jsEventInit, 0),
			want:   Sample{Kind: EventButton, Index: 0, Value: 1},
			wantOK: true,
		},
		{
			name:   "axis full deflection",
			buf:    jsRecord(-32767, jsEventAxis, 1),
			want:   Sample{Kind: EventAxis, Index: 1, Value: -1},
			wantOK: true,
		},
		{
			name:   "axis centered",
			buf:    jsRecord(0, jsEventAxis, 0),
			want:   Sample{Kind: EventAxis, Index: 0, Value: 0},
			wantOK: true,
		},
		{
			name:   "unknown type ignored",
			buf:    jsRecord(1, 0x04, 0),
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := decodeJSEvent(tt.buf)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestDecodeJSEventAxisScale(t *testing.T) {
	got, ok := decodeJSEvent(jsRecord(16384, jsEventAxis, 2))
	assert.True(t, ok)
	assert.InDelta(t, 0.5, got.Value, 0.001)
}

func TestClamp(t *testing.T) {
	assert.Equal(t, 1.0, clamp(3.2, -1, 1))
	assert.Equal(t, -1.0, clamp(-3.2, -1, 1))
	assert.Equal(t, 0.25, clamp(0.25, -1, 1))
}
