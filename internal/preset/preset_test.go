package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/pkg/math"
)

const redPreset = `
position: {x: 2, y: 12, z: -3}
diffuse: {r: 1, g: 0, b: 0, a: 1}
inner_cone: 20
outer_cone: 30
`

func TestParseKeepsDefaults(t *testing.T) {
	s, err := Parse([]byte(redPreset))
	require.NoError(t, err)

	assert.Equal(t, math.Vec3{X: 2, Y: 12, Z: -3}, s.Position)
	assert.Equal(t, math.RGBA(1, 0, 0, 1), s.Diffuse)
	assert.Equal(t, float32(20), s.InnerCone)
	assert.Equal(t, float32(30), s.OuterCone)

	// Not in the file.
	assert.Equal(t, lighting.DownDirection, s.Direction)
	assert.Equal(t, lighting.DefaultAmbient, s.Ambient)
}

func TestParseRejectsGarbage(t *testing.T) {
	_, err := Parse([]byte("inner_cone: [wide"))
	assert.Error(t, err)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "presets", "warm.yaml")

	want := lighting.Snapshot{
		Position:  math.Vec3{X: -4, Y: 8, Z: 1},
		Direction: math.Vec3{X: 0.5, Y: -0.5, Z: 0},
		Diffuse:   math.RGBA(1, 0.8, 0.6, 1),
		Ambient:   math.RGBA(0.05, 0.05, 0.1, 1),
		InnerCone: 12,
		OuterCone: 18,
	}
	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestEditAppliesThroughPolicy(t *testing.T) {
	s := lighting.DefaultSnapshot()
	s.Position = math.Vec3{Y: 100}
	s.InnerCone = 40
	s.OuterCone = 20

	c := lighting.NewControls(lighting.DefaultSpotlight(), lighting.DefaultLimits())
	Edit(s)(c)

	assert.Equal(t, math.Vec3{Y: 30}, c.Light().Position())
	assert.Equal(t, float32(40), c.Light().InnerCone())
	assert.Equal(t, float32(45), c.Light().OuterCone())
}

func TestNaNPresetIsClamped(t *testing.T) {
	s, err := Parse([]byte("inner_cone: .nan\nouter_cone: .nan\ndiffuse: {r: .nan, g: 1, b: 1, a: 1}\n"))
	require.NoError(t, err)

	c := lighting.NewControls(lighting.DefaultSpotlight(), lighting.DefaultLimits())
	Edit(s)(c)

	l := c.Light()
	assert.Equal(t, float32(5), l.InnerCone())
	assert.Equal(t, float32(10), l.OuterCone())
	assert.Equal(t, math.RGBA(0, 1, 1, 1), l.DiffuseColor())
}

func TestWatcherReappliesOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "light.yaml")
	require.NoError(t, Save(path, lighting.DefaultSnapshot()))

	queue := lighting.NewEditQueue(4)
	w, err := NewWatcher(path, queue)
	require.NoError(t, err)

	reloaded := make(chan lighting.Snapshot, 4)
	w.Reloaded = reloaded

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		w.Run(ctx)
		close(done)
	}()
	defer func() {
		cancel()
		<-done
	}()

	// Unrelated files in the same directory are ignored.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: 1"), 0644))
	require.NoError(t, os.WriteFile(path, []byte(redPreset), 0644))

	select {
	case s := <-reloaded:
		assert.Equal(t, math.RGBA(1, 0, 0, 1), s.Diffuse)
	case <-time.After(3 * time.Second):
		t.Fatal("preset was not reloaded")
	}

	c := lighting.NewControls(lighting.DefaultSpotlight(), lighting.DefaultLimits())
	require.GreaterOrEqual(t, queue.Drain(c), 1)
	assert.Equal(t, math.RGBA(1, 0, 0, 1), c.Light().DiffuseColor())
	assert.Equal(t, math.Vec3{X: 2, Y: 12, Z: -3}, c.Light().Position())
}
