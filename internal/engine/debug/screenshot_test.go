package debug

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestFromGLPixelsFlipsRows(t *testing.T) {
	// 1x2: bottom row red, top row blue.
	pixels := []byte{
		255, 0, 0, 255,
		0, 0, 255, 255,
	}
	img, err := FromGLPixels(pixels, 1, 2)
	if err != nil {
		t.Fatalf("FromGLPixels() error = %v", err)
	}
	if got := img.RGBAAt(0, 0); got != (color.RGBA{B: 255, A: 255}) {
		t.Errorf("top row = %v, want blue", got)
	}
	if got := img.RGBAAt(0, 1); got != (color.RGBA{R: 255, A: 255}) {
		t.Errorf("bottom row = %v, want red", got)
	}

	if _, err := FromGLPixels(pixels, 2, 2); err == nil {
		t.Error("expected size mismatch error")
	}
}

func TestCaptureFromImage(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "shots")
	sc := NewScreenshotCapture(dir, "spotlight")
	sc.now = func() time.Time { return time.Date(2024, 5, 6, 7, 8, 9, 0, time.UTC) }

	path, err := sc.CaptureFromImage(image.NewRGBA(image.Rect(0, 0, 3, 2)))
	if err != nil {
		t.Fatalf("CaptureFromImage() error = %v", err)
	}
	want := filepath.Join(dir, "spotlight_2024-05-06_07-08-09.png")
	if path != want {
		t.Errorf("path = %q, want %q", path, want)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatalf("decoding written PNG: %v", err)
	}
	if img.Bounds().Dx() != 3 || img.Bounds().Dy() != 2 {
		t.Errorf("size = %v, want 3x2", img.Bounds())
	}
}

func TestCaptureFrameNumbering(t *testing.T) {
	dir := t.TempDir()
	sc := NewScreenshotCapture(dir, "frame")

	path, err := sc.CaptureFrame(image.NewRGBA(image.Rect(0, 0, 1, 1)), 7)
	if err != nil {
		t.Fatalf("CaptureFrame() error = %v", err)
	}
	if want := filepath.Join(dir, "frame_0007.png"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
}

func TestCaptureFromPixels(t *testing.T) {
	sc := NewScreenshotCapture(t.TempDir(), "gl")
	if _, err := sc.CaptureFromPixels(make([]byte, 16), 2, 2); err != nil {
		t.Fatalf("CaptureFromPixels() error = %v", err)
	}
	if _, err := sc.CaptureFromPixels(make([]byte, 3), 2, 2); err == nil {
		t.Error("expected error for short pixel data")
	}
}
