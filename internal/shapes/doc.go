// Package shapes synthesizes labeled raster images of random geometric
// primitives.
//
// A single call to Generate produces a canvas filled with rectangles, circles
// and triangles (and optionally ellipses) on a white background, together
// with one Label per placed shape giving its category and bounding box. The
// output is meant for building synthetic object-detection and segmentation
// datasets without any image assets.
//
// # Placement
//
// Shapes are placed by rejection sampling. For every shape slot the engine
// draws a random anchor pixel, asks the slot's Fitter for a shape that fits
// the canvas at that anchor, and accepts it if it does not touch any pixel
// already claimed by an earlier shape (unless overlap is allowed). Each slot
// gets a fixed number of trials; a slot that runs out of trials is skipped
// with a warning and the run continues. Accepted shapes are never revisited,
// so a crowded canvas simply yields fewer shapes than requested.
//
// # Coordinate System
//
// Pixels are addressed as (row, col) with the origin at the top-left. Label
// bounding boxes are half-open on the high side: a BBox with RowMin=3 and
// RowMax=8 spans rows 3 through 7. Circles follow the disk convention
// (center ± radius-1 on the low side, center + radius on the high side).
//
// # Determinism
//
// All randomness flows through one Stream seeded from a uint64. Two calls
// with identical Options and the same Seed produce byte-identical canvases
// and identical labels. Separate calls share no mutable state and can run
// concurrently as long as each has its own Options.
//
// # Errors
//
// Configuration problems (bad sizes, intensities, scenarios or categories)
// are reported as errors wrapping ErrInvalidConfiguration before anything is
// drawn. ErrGeometryInfeasible is internal to the trial loop. Slots that
// could not be placed are reported in Result.Warnings as
// *PlacementExhaustedError values.
package shapes
