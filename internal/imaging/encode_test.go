package imaging

import (
	"bytes"
	"encoding/base64"
	"image"
	"image/color"
	"image/png"
	"testing"
)

func TestEncodePNGBase64(t *testing.T) {
	img := createSampleImage()

	result, err := EncodePNGBase64(img)
	if err != nil {
		t.Fatalf("EncodePNGBase64 failed: %v", err)
	}

	if result.Width != 40 || result.Height != 40 {
		t.Errorf("dimensions: got %dx%d, want 40x40", result.Width, result.Height)
	}
	if result.MimeType != "image/png" {
		t.Errorf("MimeType: got %s, want image/png", result.MimeType)
	}

	data, err := base64.StdEncoding.DecodeString(result.ImageBase64)
	if err != nil {
		t.Fatalf("failed to decode base64: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}

	r, g, b, _ := decoded.At(7, 7).RGBA()
	if r>>8 != 200 || g>>8 != 10 || b>>8 != 10 {
		t.Errorf("pixel (7,7): got (%d,%d,%d), want (200,10,10)", r>>8, g>>8, b>>8)
	}
}

func TestEncodePNG_Gray(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 8, 4))
	img.SetGray(3, 2, color.Gray{Y: 42})

	data, err := EncodePNG(img)
	if err != nil {
		t.Fatalf("EncodePNG failed: %v", err)
	}
	decoded, err := png.Decode(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("failed to decode PNG: %v", err)
	}
	if decoded.Bounds().Dx() != 8 || decoded.Bounds().Dy() != 4 {
		t.Errorf("bounds: got %v", decoded.Bounds())
	}
	if y := color.GrayModel.Convert(decoded.At(3, 2)).(color.Gray).Y; y != 42 {
		t.Errorf("pixel (3,2): got %d, want 42", y)
	}
}

func TestCrop(t *testing.T) {
	img := createSampleImage()

	cropped, err := Crop(img, image.Rect(5, 5, 15, 15), 0, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	if cropped.Bounds().Dx() != 10 || cropped.Bounds().Dy() != 10 {
		t.Fatalf("dimensions: got %v, want 10x10", cropped.Bounds())
	}
	for y := 0; y < 10; y++ {
		for x := 0; x < 10; x++ {
			if c := cropped.NRGBAAt(x, y); c != (color.NRGBA{200, 10, 10, 255}) {
				t.Fatalf("pixel (%d,%d): got %v, want the fill color", x, y, c)
			}
		}
	}
}

func TestCrop_PaddingClipped(t *testing.T) {
	img := createSampleImage()

	// The blue square sits 6 pixels from the right and bottom edges.
	cropped, err := Crop(img, image.Rect(30, 30, 34, 34), 8, 1.0)
	if err != nil {
		t.Fatalf("Crop failed: %v", err)
	}
	want := image.Rect(0, 0, 40-22, 40-22)
	if cropped.Bounds() != want {
		t.Errorf("bounds: got %v, want %v", cropped.Bounds(), want)
	}
}

func TestCrop_WithScale(t *testing.T) {
	img := createSampleImage()

	cropped, err := Crop(img, image.Rect(5, 5, 15, 15), 0, 2.0)
	if err != nil {
		t.Fatalf("Crop with scale failed: %v", err)
	}
	if cropped.Bounds().Dx() != 20 || cropped.Bounds().Dy() != 20 {
		t.Errorf("scaled dimensions: got %v, want 20x20", cropped.Bounds())
	}
	if c := cropped.NRGBAAt(19, 19); c != (color.NRGBA{200, 10, 10, 255}) {
		t.Errorf("nearest-neighbor resize changed the fill: %v", c)
	}
}

func TestCrop_InvalidRegion(t *testing.T) {
	img := createSampleImage()

	tests := []struct {
		name   string
		region image.Rectangle
	}{
		{"empty", image.Rect(5, 5, 5, 10)},
		{"outside", image.Rect(50, 50, 60, 60)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := Crop(img, tt.region, 0, 1.0); err == nil {
				t.Errorf("expected error for region %v", tt.region)
			}
		})
	}
}
