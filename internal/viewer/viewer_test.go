package viewer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
)

func TestKeyBindingsAreUnique(t *testing.T) {
	scancodes := map[int]bool{}
	keys := map[int]bool{}
	for _, b := range keyBindings {
		assert.False(t, scancodes[int(b.scancode)], "scancode %d bound twice", b.scancode)
		assert.False(t, keys[int(b.key)], "key %d bound twice", b.key)
		scancodes[int(b.scancode)] = true
		keys[int(b.key)] = true
	}
	assert.Len(t, scancodeActions, len(keyBindings))
}

func TestKeyBindingsResolve(t *testing.T) {
	a, _, err := app.NewHeadless(config.Default(), 8, 8)
	require.NoError(t, err)
	defer a.Close()

	for _, b := range keyBindings {
		assert.True(t, a.Do(b.action), "action %q", b.action)
	}
}
