// Package imaging provides the image-side helpers around generated samples.
//
// It encodes canvases to PNG (raw or base64 for JSON transport), crops the
// region of a single label, draws bounding-box previews with category
// captions, describes fill colors in several representations, and loads and
// saves sample files through a small cache.
//
// # Coordinate System
//
// All pixel coordinates in this package follow the standard image convention:
//   - X: horizontal position, the column (0 = leftmost pixel)
//   - Y: vertical position, the row (0 = topmost pixel)
//   - For regions, Min is inclusive (top-left) and Max is exclusive
//     (bottom-right)
//
// Label bounding boxes convert to this convention with BBox.Rect.
//
// # Thread Safety
//
// The ImageCache type is safe for concurrent use. The other functions are
// stateless and never modify their input image.
//
// # Color Representation
//
// Colors are returned in multiple formats:
//   - Hex: 6-character format "#RRGGBB" (alpha excluded)
//   - RGB: 8-bit components (0-255)
//   - RGBA: 8-bit components with alpha (0-255)
//   - HSL: Hue (0-360), Saturation (0-100), Lightness (0-100)
package imaging
