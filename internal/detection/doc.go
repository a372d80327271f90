// Package detection audits rendered samples against their labels.
//
// Generated images are flat: a white background and solid fills, one color
// per shape. That makes connected-component analysis exact, so the package
// recovers every solid region with a flood fill and checks it against the
// recorded shapes instead of running a general-purpose detector.
//
// # Audit Pipeline
//
//  1. Component Finding: Group non-background pixels of equal color into
//     8-connected regions.
//  2. Attribution: Give each region to the labeled shape whose bounding box
//     contains it and whose color matches.
//  3. Verdict: A sample passes when every shape has visible pixels and no
//     region is left over.
//
// # Coordinate System
//
// Components report their extent as shapes.BBox values, so rows and columns
// can be compared with labels directly:
//   - Origin (0, 0) at top-left corner
//   - Rows increase downward, columns rightward
//   - RowMin/ColMin inclusive, RowMax/ColMax exclusive
//
// # Category Guesses
//
// Each component also gets a category guess from its fill ratio (pixels over
// box area): rectangles fill their box, disks about π/4 of it, triangles
// about half. Guesses are informational. Small shapes and occluded shapes
// are often ambiguous, so a disagreement never fails an audit.
package detection
