package app

import (
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/camera"
	"github.com/Faultbox/spotlight/internal/engine/raster"
)

// NewHeadless builds an app on the software rasterizer. No window or GL
// context is needed; frames land in the returned device's framebuffer.
func NewHeadless(cfg *config.Config, width, height int) (*App, *raster.Device, error) {
	a, err := New(cfg)
	if err != nil {
		return nil, nil, err
	}

	dev, err := raster.NewDevice(width, height, a.camera, camera.DefaultLens())
	if err != nil {
		return nil, nil, err
	}

	if err := a.UseTextures(nil); err != nil {
		return nil, nil, err
	}

	m := raster.NewMesh(dev, a.geometry)
	a.OnClose(func() error {
		m.Release()
		return nil
	})

	if err := a.Attach(dev, raster.NewStage(dev), m, nil); err != nil {
		return nil, nil, err
	}
	return a, dev, nil
}
