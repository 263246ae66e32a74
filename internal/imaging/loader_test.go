package imaging

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"sync"
	"testing"
)

// createInMemoryImage returns a w x h image filled with c.
func createInMemoryImage(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, c)
		}
	}
	return img
}

// writeTestFrame writes a solid PNG into the test's temp dir and returns its path.
func writeTestFrame(t *testing.T, name string, width, height int, c color.Color) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	f, err := os.Create(path)
	if err != nil {
		t.Fatalf("failed to create frame file: %v", err)
	}
	defer f.Close()

	if err := png.Encode(f, createInMemoryImage(width, height, c)); err != nil {
		t.Fatalf("failed to encode frame: %v", err)
	}
	return path
}

func TestFrameCache_Load(t *testing.T) {
	path := writeTestFrame(t, "frame.png", 40, 30, color.RGBA{0, 255, 0, 255})
	cache := NewFrameCache()

	img, err := cache.Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if img.Bounds().Dx() != 40 || img.Bounds().Dy() != 30 {
		t.Errorf("dimensions: got %dx%d, want 40x30", img.Bounds().Dx(), img.Bounds().Dy())
	}
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}

	// A cached frame survives the file being removed.
	os.Remove(path)
	again, err := cache.Load(path)
	if err != nil {
		t.Fatalf("cached Load failed: %v", err)
	}
	if again != img {
		t.Error("expected the cached image instance")
	}
}

func TestFrameCache_LoadErrors(t *testing.T) {
	cache := NewFrameCache()
	if _, err := cache.Load(filepath.Join(t.TempDir(), "missing.png")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(t.TempDir(), "bad.png")
	if err := os.WriteFile(bad, []byte("not an image"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := cache.Load(bad); err == nil {
		t.Error("expected error for undecodable file")
	}
	if cache.Len() != 0 {
		t.Errorf("failed loads should not be cached, Len = %d", cache.Len())
	}
}

func TestFrameCache_EvictAndClear(t *testing.T) {
	a := writeTestFrame(t, "a.png", 4, 4, color.White)
	b := writeTestFrame(t, "b.png", 4, 4, color.Black)
	cache := NewFrameCache()
	for _, p := range []string{a, b} {
		if _, err := cache.Load(p); err != nil {
			t.Fatal(err)
		}
	}

	cache.Evict(a)
	cache.Evict("never-loaded.png")
	if cache.Len() != 1 {
		t.Errorf("after Evict: Len = %d, want 1", cache.Len())
	}
	cache.Clear()
	if cache.Len() != 0 {
		t.Errorf("after Clear: Len = %d, want 0", cache.Len())
	}
}

func TestFrameCache_ConcurrentAccess(t *testing.T) {
	path := writeTestFrame(t, "frame.png", 16, 16, color.White)
	cache := NewFrameCache()

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := cache.Load(path); err != nil {
				t.Errorf("concurrent Load failed: %v", err)
			}
		}()
	}
	wg.Wait()
	if cache.Len() != 1 {
		t.Errorf("Len: got %d, want 1", cache.Len())
	}
}

func TestLoadFrameInfo(t *testing.T) {
	path := writeTestFrame(t, "frame.PNG", 641, 480, color.White)
	info, err := LoadFrameInfo(NewFrameCache(), path)
	if err != nil {
		t.Fatalf("LoadFrameInfo failed: %v", err)
	}
	if info.Format != "png" {
		t.Errorf("Format: got %q, want png", info.Format)
	}
	if info.Width != 641 || info.Height != 480 {
		t.Errorf("size: got %dx%d", info.Width, info.Height)
	}
	if info.PyramidWidth != 321 || info.PyramidHeight != 240 {
		t.Errorf("pyramid size: got %dx%d, want 321x240", info.PyramidWidth, info.PyramidHeight)
	}
	if info.FileSizeBytes <= 0 {
		t.Errorf("FileSizeBytes: got %d", info.FileSizeBytes)
	}
}

func TestGetDimensions(t *testing.T) {
	path := writeTestFrame(t, "frame.png", 12, 7, color.White)
	dims, err := GetDimensions(NewFrameCache(), path)
	if err != nil {
		t.Fatalf("GetDimensions failed: %v", err)
	}
	if dims.Width != 12 || dims.Height != 7 {
		t.Errorf("got %dx%d, want 12x7", dims.Width, dims.Height)
	}
}
