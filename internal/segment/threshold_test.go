package segment

import (
	"image"
	"image/color"
	"testing"
)

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, c)
		}
	}
}

func TestOpenCVHSV_KnownColors(t *testing.T) {
	tests := []struct {
		name    string
		c       color.Color
		h, s, v float64
	}{
		{"red", color.RGBA{255, 0, 0, 255}, 0, 255, 255},
		{"green", color.RGBA{0, 255, 0, 255}, 60, 255, 255},
		{"blue", color.RGBA{0, 0, 255, 255}, 120, 255, 255},
		{"white", color.RGBA{255, 255, 255, 255}, 0, 0, 255},
		{"black", color.RGBA{0, 0, 0, 255}, 0, 0, 0},
		{"half green", color.RGBA{0, 128, 0, 255}, 60, 255, 128},
		{"transparent", color.RGBA{0, 0, 0, 0}, 0, 0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, s, v := OpenCVHSV(tt.c)
			if h != tt.h || s != tt.s || v != tt.v {
				t.Errorf("got (%v,%v,%v), want (%v,%v,%v)", h, s, v, tt.h, tt.s, tt.v)
			}
		})
	}
}

func TestHSVRange_Contains(t *testing.T) {
	r := DefaultHSVRange()

	tests := []struct {
		name    string
		h, s, v float64
		want    bool
	}{
		{"bright green", 60, 255, 255, true},
		{"hue too low", 15, 255, 255, false},
		{"hue lower edge", 16, 255, 255, true},
		{"hue upper edge", 137, 255, 255, true},
		{"hue too high", 138, 255, 255, false},
		{"washed out", 60, 40, 255, false},
		{"too dark", 60, 255, 60, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.Contains(tt.h, tt.s, tt.v); got != tt.want {
				t.Errorf("Contains(%v,%v,%v) = %v, want %v", tt.h, tt.s, tt.v, got, tt.want)
			}
		})
	}
}

func TestHSVThreshold(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 20, 10))
	fillRect(img, img.Bounds(), color.RGBA{255, 0, 0, 255})
	tape := image.Rect(5, 2, 9, 8)
	fillRect(img, tape, color.RGBA{0, 255, 0, 255})

	mask := HSVThreshold(img, DefaultHSVRange())
	if mask.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", mask.Bounds(), img.Bounds())
	}

	for y := 0; y < 10; y++ {
		for x := 0; x < 20; x++ {
			want := uint8(0)
			if (image.Point{X: x, Y: y}).In(tape) {
				want = 255
			}
			if got := mask.GrayAt(x, y).Y; got != want {
				t.Fatalf("pixel (%d,%d): got %d, want %d", x, y, got, want)
			}
		}
	}
}

func TestHSVThreshold_OffsetBounds(t *testing.T) {
	img := image.NewRGBA(image.Rect(10, 10, 14, 14))
	fillRect(img, img.Bounds(), color.RGBA{0, 200, 0, 255})

	mask := HSVThreshold(img, DefaultHSVRange())
	if mask.Bounds() != img.Bounds() {
		t.Fatalf("bounds: got %v, want %v", mask.Bounds(), img.Bounds())
	}
	if mask.GrayAt(10, 10).Y != 255 || mask.GrayAt(13, 13).Y != 255 {
		t.Error("expected offset pixels to be accepted")
	}
}
