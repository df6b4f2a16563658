// Package main renders the lit scene offline with the software rasterizer
// and writes the frames as PNG files.
package main

import (
	"flag"
	"fmt"
	"image"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/spotlight/internal/app"
	"github.com/Faultbox/spotlight/internal/config"
	"github.com/Faultbox/spotlight/internal/engine/debug"
	"github.com/Faultbox/spotlight/internal/logger"
)

var (
	flagOut    = flag.String("out", "frames", "Output directory for PNG frames")
	flagFrames = flag.Int("frames", 1, "Number of frames to render")
	flagStep   = flag.Duration("step", time.Second/30, "Simulated time between frames")
)

func main() {
	config.ParseFlags()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Config error: %v\n", err)
		os.Exit(1)
	}

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		fmt.Fprintf(os.Stderr, "Logger error: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	if err := run(cfg); err != nil {
		logger.Error("render failed", zap.Error(err))
		logger.Sync()
		os.Exit(1)
	}
}

func run(cfg *config.Config) error {
	if *flagFrames < 1 {
		return fmt.Errorf("-frames must be at least 1, got %d", *flagFrames)
	}

	a, dev, err := app.NewHeadless(cfg, cfg.Graphics.Width, cfg.Graphics.Height)
	if err != nil {
		return err
	}
	defer a.Close()

	now := time.Unix(0, 0)
	a.SetClock(func() time.Time {
		now = now.Add(*flagStep)
		return now
	})

	shots := debug.NewScreenshotCapture(*flagOut, "spotlight")
	frame := 0
	dev.SetPresent(func(img *image.RGBA) error {
		path, err := shots.CaptureFrame(img, frame)
		if err != nil {
			return err
		}
		logger.Debug("frame written", zap.String("path", path))
		return nil
	})

	start := time.Now()
	for ; frame < *flagFrames; frame++ {
		if !a.Frame() {
			return a.Err()
		}
	}

	if stats := a.Pipeline().Stats(); stats.Failures > 0 {
		return fmt.Errorf("%d of %d frames failed, last: %w", stats.Failures, stats.Frames, stats.LastFailure)
	}

	logger.Info("render complete",
		zap.Int("frames", *flagFrames),
		zap.Int("width", cfg.Graphics.Width),
		zap.Int("height", cfg.Graphics.Height),
		zap.String("out", *flagOut),
		zap.Duration("elapsed", time.Since(start)),
	)
	return nil
}
