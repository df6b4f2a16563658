// Package app wires the viewer together: it owns the light, feeds edits from
// every control source into it and drives one pipeline frame per tick.
package app

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/mesh"
	"github.com/Faultbox/spotlight/internal/engine/texture"
	"github.com/Faultbox/spotlight/internal/lighting"
	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
	"github.com/Faultbox/spotlight/internal/preset"
	"github.com/Faultbox/spotlight/internal/remote"
	"github.com/Faultbox/spotlight/pkg/math"
)

// ErrTooManyFailures is reported by Err when consecutive frames kept failing.
var ErrTooManyFailures = errors.New("too many consecutive frame failures")

// frameAborter is implemented by renderers that must undo a frame that
// failed half way.
type frameAborter interface {
	AbandonFrame()
}

// App is the composition root. Frame must be called from one thread only.
type App struct {
	cfg      *config.Config
	light    *lighting.Spotlight
	controls *lighting.Controls
	queue    *lighting.EditQueue
	animator *lighting.Animator
	camera   *camera.OrbitCamera
	geometry *mesh.Geometry
	textures *texture.Manager

	renderer pipeline.Renderer
	pipeline *pipeline.Pipeline

	clock    func() time.Time
	lastTick time.Time
	tick     func(dt float64) // per-frame hook, e.g. the FPS timer
	failures int
	stopErr  error
	quit     bool

	cancel  context.CancelFunc
	wg      sync.WaitGroup
	server  *remote.Server
	closers []func() error

	log *zap.Logger
}

// New builds the frontend independent part of the app: the light and its
// controls, the animation, the camera and the scene geometry. A frontend then
// supplies textures with UseTextures and its devices with Attach.
func New(cfg *config.Config) (*App, error) {
	a := &App{
		cfg:   cfg,
		clock: time.Now,
		log:   logger.Component("app"),
	}

	a.light = lighting.DefaultSpotlight()
	a.controls = lighting.NewControls(a.light, lighting.DefaultLimits())
	a.controls.Apply(cfg.Light)
	a.controls.SetWireframe(cfg.Graphics.Wireframe)

	if cfg.Preset.Path != "" {
		s, err := preset.Load(cfg.Preset.Path)
		if err != nil {
			return nil, err
		}
		a.controls.Apply(s)
		a.log.Info("preset applied", zap.String("path", cfg.Preset.Path))
	}

	a.queue = lighting.NewEditQueue(cfg.Remote.QueueSize)

	if cfg.Animation.Enabled {
		anim, err := lighting.NewAnimator(lighting.AnimationMode(cfg.Animation.Mode), cfg.Animation.Radius, cfg.Animation.Speed)
		if err != nil {
			return nil, err
		}
		a.animator = anim
	}

	var err error
	a.geometry, err = buildGeometry(cfg.Scene)
	if err != nil {
		return nil, err
	}

	a.camera = camera.NewOrbitCamera(cfg.Scene.CameraDistance)
	if cfg.Scene.CameraDistance <= 0 {
		lo, hi := a.geometry.Bounds.Min, a.geometry.Bounds.Max
		a.camera.FitToBounds(vec3(lo), vec3(hi), camera.DefaultLens().FovY)
	}

	return a, nil
}

func buildGeometry(sc config.SceneConfig) (*mesh.Geometry, error) {
	var (
		g   *mesh.Geometry
		err error
	)
	switch kind := mesh.Kind(sc.Mesh); kind {
	case mesh.KindSphere:
		g, err = mesh.Sphere(sc.SphereRadius, sc.SphereSlices, sc.SphereStacks)
	default:
		// The plane spans the area the light can reach.
		g, err = mesh.Build(kind, sc.SphereRadius*4, sc.SphereSlices)
	}
	if err != nil {
		return nil, fmt.Errorf("build scene mesh: %w", err)
	}
	return g, nil
}

func vec3(a [3]float32) math.Vec3 {
	return math.Vec3{X: a[0], Y: a[1], Z: a[2]}
}

// UseTextures creates the texture manager on top of uploader (nil keeps
// textures on the CPU) and fills the scene texture slot from the configured
// file, or with the procedural brick pattern.
func (a *App) UseTextures(uploader texture.Uploader) error {
	a.textures = texture.NewManager(uploader)
	a.OnClose(func() error {
		a.textures.Close()
		return nil
	})

	key := a.cfg.Scene.TextureKey
	if path := a.cfg.Scene.TexturePath; path != "" {
		if _, err := a.textures.Load(key, path); err != nil {
			return err
		}
		return nil
	}
	if _, err := a.textures.Add(key, texture.Brick(256, 256)); err != nil {
		return fmt.Errorf("create brick texture: %w", err)
	}
	return nil
}

// Attach builds the pipeline on top of the frontend's devices.
func (a *App) Attach(r pipeline.Renderer, shader pipeline.ShadingStage, m pipeline.Mesh, overlay pipeline.Overlay) error {
	p, err := pipeline.New(pipeline.Config{
		Renderer:   r,
		Shader:     shader,
		Mesh:       m,
		Textures:   a.textures,
		TextureKey: a.cfg.Scene.TextureKey,
		Controls:   a.controls,
		Overlay:    overlay,
	})
	if err != nil {
		return err
	}
	a.renderer = r
	a.pipeline = p
	return nil
}

// OnClose registers a cleanup step. Steps run in reverse order.
func (a *App) OnClose(fn func() error) {
	a.closers = append(a.closers, fn)
}

// Controls returns the light's editing surface.
func (a *App) Controls() *lighting.Controls { return a.controls }

// Queue returns the edit queue drained at the start of every frame.
func (a *App) Queue() *lighting.EditQueue { return a.queue }

// Camera returns the orbit camera.
func (a *App) Camera() *camera.OrbitCamera { return a.camera }

// Pipeline returns the frame pipeline.
func (a *App) Pipeline() *pipeline.Pipeline { return a.pipeline }

// Geometry returns the scene mesh data.
func (a *App) Geometry() *mesh.Geometry { return a.geometry }

// Config returns the configuration the app was built from.
func (a *App) Config() *config.Config { return a.cfg }

// SetClock replaces the frame clock, e.g. with a fixed step for offline
// rendering.
func (a *App) SetClock(clock func() time.Time) { a.clock = clock }

// SetTick installs a hook called every frame with the elapsed seconds.
func (a *App) SetTick(tick func(dt float64)) { a.tick = tick }

// Textures returns the texture manager.
func (a *App) Textures() *texture.Manager { return a.textures }

// RemoteAddr returns the remote control address, or "" when disabled.
func (a *App) RemoteAddr() string {
	if a.server == nil {
		return ""
	}
	return a.server.Addr()
}

// Start launches the goroutine-backed control sources: the remote control
// server and the preset watcher. They stop when ctx is cancelled or on Close.
func (a *App) Start(ctx context.Context) error {
	ctx, a.cancel = context.WithCancel(ctx)

	if a.cfg.Remote.Enabled {
		a.server = remote.NewServer(a.cfg.Remote.Listen, a.queue)
		if err := a.server.Start(ctx); err != nil {
			return err
		}
		a.OnClose(a.server.Close)
	}

	if a.cfg.Preset.Path != "" && a.cfg.Preset.Watch {
		w, err := preset.NewWatcher(a.cfg.Preset.Path, a.queue)
		if err != nil {
			return err
		}
		a.wg.Add(1)
		go func() {
			defer a.wg.Done()
			w.Run(ctx)
		}()
		a.log.Info("watching preset", zap.String("path", w.Path()))
	}
	return nil
}

// Quit makes the next Frame return false.
func (a *App) Quit() { a.quit = true }

// Err returns why the frame loop stopped, or nil for a normal quit.
func (a *App) Err() error { return a.stopErr }

// Frame runs one tick: pending edits are applied, the animation advances and
// the pipeline draws. It returns false when the loop should stop.
func (a *App) Frame() bool {
	if a.quit {
		return false
	}
	if a.pipeline == nil {
		a.stopErr = errors.New("app: no frontend attached")
		return false
	}

	now := a.clock()
	var dt float64
	if !a.lastTick.IsZero() {
		dt = now.Sub(a.lastTick).Seconds()
	}
	a.lastTick = now

	a.queue.Drain(a.controls)
	if a.animator != nil {
		a.animator.Step(dt, a.controls)
	}
	if a.tick != nil {
		a.tick(dt)
	}

	if err := a.pipeline.RenderFrame(); err != nil {
		if ab, ok := a.renderer.(frameAborter); ok {
			ab.AbandonFrame()
		}
		a.failures++
		a.log.Error("frame failed", zap.Error(err), zap.Int("consecutive", a.failures))
		if a.failures >= a.cfg.Scene.MaxFrameFailures {
			a.stopErr = fmt.Errorf("%w: %d in a row, last: %w", ErrTooManyFailures, a.failures, err)
			return false
		}
		return true
	}

	a.failures = 0
	return true
}

// Close stops the background sources and releases every resource.
func (a *App) Close() error {
	if a.cancel != nil {
		a.cancel()
	}

	var err error
	for i := len(a.closers) - 1; i >= 0; i-- {
		err = multierr.Append(err, a.closers[i]())
	}
	a.closers = nil
	a.wg.Wait()

	if err != nil {
		a.log.Warn("shutdown errors", zap.Error(err))
	}
	return err
}
