package texture

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg" // register JPEG
	_ "image/png"  // register PNG
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	_ "golang.org/x/image/bmp" // register BMP
	"golang.org/x/image/draw"
	_ "golang.org/x/image/tiff" // register TIFF

	"github.com/Faultbox/spotlight/internal/logger"
	"github.com/Faultbox/spotlight/internal/pipeline"
)

// DefaultMaxSize is the largest edge kept after decoding. Bigger images are
// scaled down before upload.
const DefaultMaxSize = 2048

// Uploader moves decoded pixels to a device.
type Uploader interface {
	Upload(img *image.RGBA) (uint32, error)
	Delete(id uint32)
}

// Manager is a keyed texture cache. It implements pipeline.TextureSource.
// Not safe for concurrent use; it lives on the frame thread.
type Manager struct {
	uploader Uploader // nil keeps textures on the CPU
	maxSize  int
	textures map[string]*Texture
	log      *zap.Logger
}

// NewManager creates an empty cache. A nil uploader keeps textures CPU-side,
// which is what the software rasterizer needs.
func NewManager(uploader Uploader) *Manager {
	return &Manager{
		uploader: uploader,
		maxSize:  DefaultMaxSize,
		textures: make(map[string]*Texture),
		log:      logger.Component("texture"),
	}
}

// SetMaxSize changes the largest kept edge. Values below 1 disable scaling.
func (m *Manager) SetMaxSize(size int) {
	m.maxSize = size
}

// Load reads and decodes the file at path and registers it under key,
// replacing any texture previously stored there.
func (m *Manager) Load(key, path string) (*Texture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read texture %s: %w", path, err)
	}
	img, err := Decode(data, path)
	if err != nil {
		return nil, fmt.Errorf("decode texture %s: %w", path, err)
	}
	return m.Add(key, img)
}

// Add registers an already decoded image under key.
func (m *Manager) Add(key string, img image.Image) (*Texture, error) {
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("texture %q: empty image", key)
	}

	rgba := m.normalize(img)
	t := &Texture{key: key, img: rgba}
	if m.uploader != nil {
		id, err := m.uploader.Upload(rgba)
		if err != nil {
			return nil, fmt.Errorf("upload texture %q: %w", key, err)
		}
		t.id = id
	}

	m.Release(key)
	m.textures[key] = t
	m.log.Debug("texture loaded",
		zap.String("key", key),
		zap.Int("width", rgba.Rect.Dx()),
		zap.Int("height", rgba.Rect.Dy()),
		zap.Uint32("gl_id", t.id))
	return t, nil
}

// Get returns the texture stored under key.
func (m *Manager) Get(key string) (*Texture, bool) {
	t, ok := m.textures[key]
	return t, ok
}

// Texture resolves key for the lighting pipeline.
func (m *Manager) Texture(key string) (pipeline.Texture, bool) {
	if m == nil {
		return nil, false
	}
	t, ok := m.textures[key]
	if !ok {
		return nil, false
	}
	return t, true
}

// Release drops the texture stored under key and frees its device memory.
// Handles still held elsewhere report Loaded() == false afterwards.
func (m *Manager) Release(key string) {
	t, ok := m.textures[key]
	if !ok {
		return
	}
	if t.id != 0 && m.uploader != nil {
		m.uploader.Delete(t.id)
	}
	t.id = 0
	t.img = nil
	delete(m.textures, key)
}

// Keys returns the registered keys.
func (m *Manager) Keys() []string {
	keys := make([]string, 0, len(m.textures))
	for k := range m.textures {
		keys = append(keys, k)
	}
	return keys
}

// Close releases every texture.
func (m *Manager) Close() {
	for key := range m.textures {
		m.Release(key)
	}
}

// normalize converts img to RGBA at the origin, scaling it down when an
// edge exceeds the size limit.
func (m *Manager) normalize(img image.Image) *image.RGBA {
	src := img.Bounds()
	w, h := src.Dx(), src.Dy()
	if m.maxSize > 0 && (w > m.maxSize || h > m.maxSize) {
		scale := float64(m.maxSize) / float64(max(w, h))
		w = max(int(float64(w)*scale), 1)
		h = max(int(float64(h)*scale), 1)
		dst := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, src, draw.Src, nil)
		m.log.Debug("texture scaled", zap.Int("from", max(src.Dx(), src.Dy())), zap.Int("to", m.maxSize))
		return dst
	}
	if rgba, ok := img.(*image.RGBA); ok && src.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(dst, dst.Bounds(), img, src.Min, draw.Src)
	return dst
}

// Decode decodes texture data, choosing the TGA decoder by extension and
// the registered image formats (PNG, JPEG, BMP, TIFF) otherwise.
func Decode(data []byte, path string) (image.Image, error) {
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		return DecodeTGA(data)
	}
	img, _, err := image.Decode(bytes.NewReader(data))
	return img, err
}
