package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func decodeResult(t *testing.T, enc EncodedImage) image.Image {
	t.Helper()
	if enc.MimeType != "image/png" {
		t.Errorf("MimeType: got %q", enc.MimeType)
	}
	data, err := base64.StdEncoding.DecodeString(enc.ImageBase64)
	if err != nil {
		t.Fatalf("invalid base64: %v", err)
	}
	img, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("invalid png: %v", err)
	}
	return img
}

func TestPyrDown(t *testing.T) {
	tests := []struct {
		w, h         int
		wantW, wantH int
	}{
		{640, 480, 320, 240},
		{641, 481, 321, 241},
		{1, 1, 1, 1},
		{0, 0, 0, 0},
	}
	for _, tt := range tests {
		out := PyrDown(createInMemoryImage(tt.w, tt.h, color.White))
		if out.Bounds().Dx() != tt.wantW || out.Bounds().Dy() != tt.wantH {
			t.Errorf("PyrDown(%dx%d): got %dx%d, want %dx%d", tt.w, tt.h,
				out.Bounds().Dx(), out.Bounds().Dy(), tt.wantW, tt.wantH)
		}
	}
}

func TestPyrDown_KeepsUniformColor(t *testing.T) {
	out := PyrDown(createInMemoryImage(20, 20, color.RGBA{0, 200, 0, 255}))
	c := out.NRGBAAt(5, 5)
	if c.R != 0 || c.B != 0 || c.G < 195 || c.G > 205 {
		t.Errorf("center pixel: got %v, want about (0,200,0)", c)
	}
}

func TestCropTarget(t *testing.T) {
	img := createInMemoryImage(100, 80, color.White)
	res, err := CropTarget(img, image.Rect(10, 20, 40, 60), 1.0)
	if err != nil {
		t.Fatalf("CropTarget failed: %v", err)
	}
	if res.Width != 30 || res.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 30x40", res.Width, res.Height)
	}
	if res.Region != image.Rect(10, 20, 40, 60) {
		t.Errorf("Region: got %v", res.Region)
	}
	decodeResult(t, res.EncodedImage)
}

func TestCropTarget_ClampsBufferedRegion(t *testing.T) {
	img := createInMemoryImage(100, 80, color.White)
	// A target touching the top-left corner grown by the crop buffer.
	res, err := CropTarget(img, image.Rect(-3, -3, 24, 24), 1.0)
	if err != nil {
		t.Fatalf("CropTarget failed: %v", err)
	}
	if res.Region != image.Rect(0, 0, 24, 24) {
		t.Errorf("Region: got %v, want (0,0)-(24,24)", res.Region)
	}
	if res.Width != 24 || res.Height != 24 {
		t.Errorf("dimensions: got %dx%d", res.Width, res.Height)
	}
}

func TestCropTarget_Scale(t *testing.T) {
	img := createInMemoryImage(100, 100, color.White)
	res, err := CropTarget(img, image.Rect(0, 0, 20, 10), 2.0)
	if err != nil {
		t.Fatalf("CropTarget failed: %v", err)
	}
	if res.Width != 40 || res.Height != 20 {
		t.Errorf("dimensions: got %dx%d, want 40x20", res.Width, res.Height)
	}
	if res.Region.Dx() != 20 {
		t.Errorf("Region should stay in frame coordinates, got %v", res.Region)
	}
}

func TestCropTarget_VerifyContent(t *testing.T) {
	img := createInMemoryImage(50, 50, color.Black)
	for y := 10; y < 20; y++ {
		for x := 30; x < 40; x++ {
			img.Set(x, y, color.RGBA{255, 0, 0, 255})
		}
	}
	res, err := CropTarget(img, image.Rect(30, 10, 40, 20), 0)
	if err != nil {
		t.Fatal(err)
	}
	out := decodeResult(t, res.EncodedImage)
	r, g, b, _ := out.At(5, 5).RGBA()
	if r>>8 != 255 || g != 0 || b != 0 {
		t.Errorf("crop content: got (%d,%d,%d), want red", r>>8, g>>8, b>>8)
	}
}

func TestCropTarget_OutsideFrame(t *testing.T) {
	img := createInMemoryImage(10, 10, color.White)
	if _, err := CropTarget(img, image.Rect(20, 20, 30, 30), 1.0); err == nil {
		t.Error("expected error for region outside frame")
	}
	if _, err := CropTarget(img, image.Rectangle{}, 1.0); err == nil {
		t.Error("expected error for empty region")
	}
}
