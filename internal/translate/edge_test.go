package translate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/maun/co2key/internal/keymap"
	"github.com/maun/co2key/internal/translate"
)

func TestStatesUpdate(t *testing.T) {
	s := translate.NewStates()
	id := keymap.Button(0)

	assert.False(t, s.Active(id), "unseen controls start inactive")

	assert.Equal(t, translate.EdgeRising, s.Update(id, true, 1))
	assert.True(t, s.Active(id))

	// Replaying the same state is not a new edge.
	assert.Equal(t, translate.EdgeNone, s.Update(id, true, 1))
	assert.Equal(t, translate.EdgeNone, s.Update(id, true, 1))

	assert.Equal(t, translate.EdgeFalling, s.Update(id, false, 0))
	assert.False(t, s.Active(id))

	assert.Equal(t, translate.EdgeNone, s.Update(id, false, 0))
}

func TestStatesPerControlIsolation(t *testing.T) {
	s := translate.NewStates()

	assert.Equal(t, translate.EdgeRising, s.Update(keymap.Button(0), true, 1))
	assert.Equal(t, translate.EdgeRising, s.Update(keymap.Button(1), true, 1))
	assert.Equal(t, translate.EdgeRising, s.Update(keymap.Axis(0, keymap.FacetPos), true, 0.8))
	assert.Equal(t, translate.EdgeRising, s.Update(keymap.Axis(0, keymap.FacetNeg), true, 0.8))

	// One control falling does not disturb the others.
	assert.Equal(t, translate.EdgeFalling, s.Update(keymap.Button(0), false, 0))
	assert.True(t, s.Active(keymap.Button(1)))
	assert.True(t, s.Active(keymap.Axis(0, keymap.FacetPos)))
}
