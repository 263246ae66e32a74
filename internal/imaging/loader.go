package imaging

import (
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// FrameCache keeps decoded frames keyed by file path so repeated tool calls on the
// same frame skip disk reads and decoding.
//
// Frames stay cached until Evict or Clear is called. FrameCache is safe for
// concurrent use.
type FrameCache struct {
	mu     sync.RWMutex
	frames map[string]image.Image
}

// NewFrameCache creates an empty cache.
func NewFrameCache() *FrameCache {
	return &FrameCache{
		frames: make(map[string]image.Image),
	}
}

// Load returns the decoded frame at path, reading it from disk on first use.
//
// Parameters:
//   - path: File path of a PNG, JPEG or GIF frame. The exact string is the cache
//     key, so a relative and an absolute path to the same file are cached twice.
//
// Returns:
//   - image.Image: The decoded frame.
//   - error: Non-nil if the file cannot be opened or decoded.
func (c *FrameCache) Load(path string) (image.Image, error) {
	c.mu.RLock()
	if img, ok := c.frames[path]; ok {
		c.mu.RUnlock()
		return img, nil
	}
	c.mu.RUnlock()

	img, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.frames[path] = img
	c.mu.Unlock()

	return img, nil
}

// Len returns the number of cached frames.
func (c *FrameCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.frames)
}

// Evict drops one frame. Unknown paths are ignored.
func (c *FrameCache) Evict(path string) {
	c.mu.Lock()
	delete(c.frames, path)
	c.mu.Unlock()
}

// Clear drops every cached frame.
func (c *FrameCache) Clear() {
	c.mu.Lock()
	c.frames = make(map[string]image.Image)
	c.mu.Unlock()
}

func decodeFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open frame: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode frame: %w", err)
	}
	return img, nil
}

// FrameInfo describes a frame file.
type FrameInfo struct {
	Width         int    `json:"width"`
	Height        int    `json:"height"`
	Format        string `json:"format"` // from the file extension: png, jpeg, gif or unknown
	FileSizeBytes int64  `json:"file_size_bytes"`
	// PyramidWidth and PyramidHeight are the size after one PyrDown step, the
	// size the detector actually works on when downsampling is enabled.
	PyramidWidth  int `json:"pyramid_width"`
	PyramidHeight int `json:"pyramid_height"`
}

// LoadFrameInfo loads a frame through the cache and describes it.
func LoadFrameInfo(cache *FrameCache, path string) (*FrameInfo, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	format := "unknown"
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		format = "png"
	case ".jpg", ".jpeg":
		format = "jpeg"
	case ".gif":
		format = "gif"
	}

	b := img.Bounds()
	pw, ph := pyramidSize(b.Dx(), b.Dy())
	return &FrameInfo{
		Width:         b.Dx(),
		Height:        b.Dy(),
		Format:        format,
		FileSizeBytes: stat.Size(),
		PyramidWidth:  pw,
		PyramidHeight: ph,
	}, nil
}

// Dimensions is the width and height of a frame.
type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions loads a frame through the cache and returns only its size.
func GetDimensions(cache *FrameCache, path string) (*Dimensions, error) {
	img, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	b := img.Bounds()
	return &Dimensions{Width: b.Dx(), Height: b.Dy()}, nil
}
