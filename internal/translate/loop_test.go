package translate_test

import (
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/maun/co2key/internal/device"
	"github.com/maun/co2key/internal/keymap"
	mocks "github.com/maun/co2key/internal/testing"
	"github.com/maun/co2key/internal/translate"
)

func button(index int, value float64) device.Sample {
	return device.Sample{Kind: device.EventButton, Index: index, Value: value}
}

func axis(index int, value float64) device.Sample {
	return device.Sample{Kind: device.EventAxis, Index: index, Value: value}
}

func hat(index int, a device.HatAxis, value float64) device.Sample {
	return device.Sample{Kind: device.EventHat, Index: index, HatAxis: a, Value: value}
}

func testTable(t *testing.T, bindings ...keymap.Binding) *keymap.Table {
	t.Helper()
	table, err := keymap.NewTable(bindings)
	require.NoError(t, err)
	return table
}

// runLoop plays the samples through a fresh loop and returns the recorded
// actions along with the loop's result. The source ends with finalErr, or
// blocks on the context when finalErr is nil.
func runLoop(t *testing.T, table *keymap.Table, samples []device.Sample, finalErr error) ([]mocks.Action, error) {
	t.Helper()
	src := &mocks.ScriptSource{Samples: samples, FinalErr: finalErr}
	rec := &mocks.RecordingSink{}
	loop := translate.NewLoop(src, table, rec, discardLogger(), nil)
	err := loop.Run(context.Background())
	return rec.Actions, err
}

func TestLoopScenario(t *testing.T) {
	keyA, keyB := mustKey(t, "a"), mustKey(t, "b")
	table := testTable(t,
		keymap.Binding{Control: keymap.Button(0), Key: keyA},
		keymap.Binding{Control: keymap.Button(1), Key: keyA},
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetPos), Key: keyB, Activate: 0.5, Deactivate: 0.3},
	)

	actions, err := runLoop(t, table, []device.Sample{
		button(0, 1),
		button(1, 1),
		button(0, 0),
		axis(0, 0.6),
		axis(0, 0.2),
		button(1, 0),
	}, device.ErrDisconnected)

	assert.ErrorIs(t, err, device.ErrDisconnected)
	assert.Equal(t, []mocks.Action{
		mocks.Down(keyA), // button_0: count 0 -> 1
		mocks.Down(keyB), // axis above activate
		mocks.Up(keyB),   // axis below deactivate
		mocks.Up(keyA),   // button_1 was the last holder
	}, actions)
}

func TestLoopShutdownReleasesHeldKeys(t *testing.T) {
	keyA, keyB := mustKey(t, "a"), mustKey(t, "b")
	table := testTable(t,
		keymap.Binding{Control: keymap.Button(0), Key: keyA},
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetPos), Key: keyB, Activate: 0.5, Deactivate: 0.3},
	)

	// Cancellation surfacing from the blocking read counts as a clean stop.
	actions, err := runLoop(t, table, []device.Sample{
		button(0, 1),
		axis(0, 0.8),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Equal(t, []mocks.Action{
		mocks.Down(keyA),
		mocks.Down(keyB),
		mocks.Up(keyA),
		mocks.Up(keyB),
	}, actions)
}

func TestLoopCancelledContext(t *testing.T) {
	keyA := mustKey(t, "a")
	table := testTable(t, keymap.Binding{Control: keymap.Button(0), Key: keyA})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := &mocks.ScriptSource{Samples: []device.Sample{button(0, 1)}}
	rec := &mocks.RecordingSink{}
	loop := translate.NewLoop(src, table, rec, discardLogger(), nil)

	assert.NoError(t, loop.Run(ctx))
	assert.Empty(t, rec.Actions, "no sample is processed after cancellation")
}

func TestLoopAxisHysteresisNoChatter(t *testing.T) {
	keyB := mustKey(t, "b")
	table := testTable(t,
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetPos), Key: keyB, Activate: 0.5, Deactivate: 0.3},
	)

	// Wandering around 0.4 stays inside the band: no actions at all.
	actions, err := runLoop(t, table, []device.Sample{
		axis(0, 0.35), axis(0, 0.4), axis(0, 0.45), axis(0, 0.4), axis(0, 0.35),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestLoopAxisPolarities(t *testing.T) {
	keyL, keyR := mustKey(t, "left"), mustKey(t, "right")
	table := testTable(t,
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetNeg), Key: keyL, Activate: 0.5, Deactivate: 0.3},
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetPos), Key: keyR, Activate: 0.5, Deactivate: 0.3},
	)

	// Sweeping from one side to the other releases one key and presses the
	// other within a single sample.
	actions, err := runLoop(t, table, []device.Sample{
		axis(0, -0.8),
		axis(0, 0.8),
		axis(0, 0),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Equal(t, []mocks.Action{
		mocks.Down(keyL),
		mocks.Down(keyR),
		mocks.Up(keyL),
		mocks.Up(keyR),
	}, actions)
}

func TestLoopHatDiagonals(t *testing.T) {
	keyUp, keyLeft := mustKey(t, "up"), mustKey(t, "left")
	table := testTable(t,
		keymap.Binding{Control: keymap.Hat(0, keymap.FacetUp), Key: keyUp},
		keymap.Binding{Control: keymap.Hat(0, keymap.FacetLeft), Key: keyLeft},
	)

	actions, err := runLoop(t, table, []device.Sample{
		hat(0, device.HatY, -1), // up pressed
		hat(0, device.HatX, -1), // left joins: diagonal
		hat(0, device.HatY, 0),  // up released, left still held
		hat(0, device.HatX, 0),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Equal(t, []mocks.Action{
		mocks.Down(keyUp),
		mocks.Down(keyLeft),
		mocks.Up(keyUp),
		mocks.Up(keyLeft),
	}, actions)
}

func TestLoopIdempotentSamples(t *testing.T) {
	keyA := mustKey(t, "a")
	table := testTable(t, keymap.Binding{Control: keymap.Button(0), Key: keyA})

	actions, err := runLoop(t, table, []device.Sample{
		button(0, 1), button(0, 1), button(0, 1), button(0, 0), button(0, 0),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Equal(t, []mocks.Action{mocks.Down(keyA), mocks.Up(keyA)}, actions)
}

func TestLoopUnboundControlsIgnored(t *testing.T) {
	keyA := mustKey(t, "a")
	table := testTable(t, keymap.Binding{Control: keymap.Button(0), Key: keyA})

	actions, err := runLoop(t, table, []device.Sample{
		button(5, 1), axis(3, 0.9), hat(0, device.HatX, 1), button(5, 0),
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Empty(t, actions)
}

func TestLoopMalformedSamplesDropped(t *testing.T) {
	keyA, keyB := mustKey(t, "a"), mustKey(t, "b")
	table := testTable(t,
		keymap.Binding{Control: keymap.Button(0), Key: keyA},
		keymap.Binding{Control: keymap.Axis(0, keymap.FacetPos), Key: keyB, Activate: 0.5, Deactivate: 0.3},
	)

	actions, err := runLoop(t, table, []device.Sample{
		axis(0, 0.8),                 // down(b)
		axis(0, math.NaN()),          // dropped, state untouched
		axis(0, math.Inf(1)),         // dropped
		axis(0, 1.5),                 // dropped: out of range
		button(0, 0.25),              // valid low value: inactive, no edge
		button(-1, 1),                // dropped: negative index
		hat(0, device.HatX, 0.5),     // dropped: not a hat position
		{Kind: 9, Index: 0, Value: 1}, // dropped: unknown kind
		axis(0, 0.2),                 // up(b): hysteresis state survived the noise
	}, context.Canceled)

	assert.NoError(t, err)
	assert.Equal(t, []mocks.Action{mocks.Down(keyB), mocks.Up(keyB)}, actions)
}
