package translate_test

import (
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maun/co2key/internal/keymap"
	mocks "github.com/maun/co2key/internal/testing"
	"github.com/maun/co2key/internal/translate"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func mustKey(t *testing.T, name string) keymap.KeyCode {
	t.Helper()
	code, ok := keymap.KeyCodeByName(name)
	require.True(t, ok)
	return code
}

func TestDispatcherSharedKey(t *testing.T) {
	keyA := mustKey(t, "a")
	rec := &mocks.RecordingSink{}
	d := translate.NewDispatcher(rec, discardLogger())

	// Two controls press the same key: one down.
	d.Press(keyA)
	d.Press(keyA)
	assert.Equal(t, []mocks.Action{mocks.Down(keyA)}, rec.Actions)
	assert.Equal(t, 2, d.HeldCount(keyA))

	// First release: key is still held by the other control.
	d.Release(keyA)
	assert.Equal(t, []mocks.Action{mocks.Down(keyA)}, rec.Actions)
	assert.Equal(t, 1, d.HeldCount(keyA))

	// Last release lets go.
	d.Release(keyA)
	assert.Equal(t, []mocks.Action{mocks.Down(keyA), mocks.Up(keyA)}, rec.Actions)
	assert.Equal(t, 0, d.HeldCount(keyA))
}

func TestDispatcherUnmatchedRelease(t *testing.T) {
	keyA := mustKey(t, "a")
	rec := &mocks.RecordingSink{}
	d := translate.NewDispatcher(rec, discardLogger())

	d.Release(keyA)
	assert.Empty(t, rec.Actions)
	assert.Equal(t, 0, d.HeldCount(keyA))
}

func TestDispatcherReleaseAll(t *testing.T) {
	keyA, keyB := mustKey(t, "a"), mustKey(t, "b")
	rec := &mocks.RecordingSink{}
	d := translate.NewDispatcher(rec, discardLogger())

	d.Press(keyA)
	d.Press(keyB)
	d.Press(keyB) // second control holding b

	rec.Actions = nil
	d.ReleaseAll()

	// One key-up per held key, in key order, regardless of counts.
	assert.Equal(t, []mocks.Action{mocks.Up(keyA), mocks.Up(keyB)}, rec.Actions)
	assert.Equal(t, 0, d.HeldCount(keyA))
	assert.Equal(t, 0, d.HeldCount(keyB))

	// A second release-all has nothing to do.
	rec.Actions = nil
	d.ReleaseAll()
	assert.Empty(t, rec.Actions)
}

func TestDispatcherInjectionFailureStillCounts(t *testing.T) {
	keyA := mustKey(t, "a")
	rec := &mocks.RecordingSink{Err: errors.New("no permission")}
	d := translate.NewDispatcher(rec, discardLogger())

	d.Press(keyA)
	assert.Equal(t, 1, d.HeldCount(keyA), "bookkeeping proceeds despite sink failure")

	d.Release(keyA)
	assert.Equal(t, 0, d.HeldCount(keyA))
	assert.Equal(t, []mocks.Action{mocks.Down(keyA), mocks.Up(keyA)}, rec.Actions)
}
