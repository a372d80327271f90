package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// EncodedImage is a PNG rendered into a base64 string, ready to embed in a
// JSON response.
type EncodedImage struct {
	Width       int    `json:"width"`
	Height      int    `json:"height"`
	ImageBase64 string `json:"image_base64"`
	MimeType    string `json:"mime_type"`
}

// EncodePNG encodes img as PNG.
func EncodePNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// EncodePNGBase64 encodes img as PNG and wraps it in an EncodedImage.
func EncodePNGBase64(img image.Image) (*EncodedImage, error) {
	data, err := EncodePNG(img)
	if err != nil {
		return nil, err
	}

	bounds := img.Bounds()
	return &EncodedImage{
		Width:       bounds.Dx(),
		Height:      bounds.Dy(),
		ImageBase64: base64.StdEncoding.EncodeToString(data),
		MimeType:    "image/png",
	}, nil
}

// Crop extracts a region from an image, grown by padding pixels on every side
// and clipped to the image bounds, then optionally rescaled.
//
// Parameters:
//   - img: The source image.
//   - region: The region to extract (X = column, Y = row, Max exclusive).
//   - padding: Extra pixels to include around the region. Negative values are
//     treated as zero.
//   - scale: Resize factor applied after cropping. 1.0 (or any value <= 0)
//     keeps the cropped size. Nearest-neighbor resampling keeps shape fills
//     flat.
//
// Returns an error if the region does not overlap the image or is empty.
func Crop(img image.Image, region image.Rectangle, padding int, scale float64) (*image.NRGBA, error) {
	if region.Empty() {
		return nil, fmt.Errorf("invalid crop region %v: region is empty", region)
	}
	if padding < 0 {
		padding = 0
	}

	bounds := img.Bounds()
	grown := region.Inset(-padding).Intersect(bounds)
	if grown.Empty() {
		return nil, fmt.Errorf("crop region %v outside image bounds %v", region, bounds)
	}

	cropped := imaging.Crop(img, grown)

	if scale != 1.0 && scale > 0 {
		newWidth := int(float64(cropped.Bounds().Dx()) * scale)
		newHeight := int(float64(cropped.Bounds().Dy()) * scale)
		if newWidth < 1 {
			newWidth = 1
		}
		if newHeight < 1 {
			newHeight = 1
		}
		cropped = imaging.Resize(cropped, newWidth, newHeight, imaging.NearestNeighbor)
	}

	return cropped, nil
}
