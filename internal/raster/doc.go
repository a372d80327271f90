// Package raster converts shape geometry into the set of integer pixel
// coordinates it covers.
//
// The package has no notion of shape categories, colors or placement; it only
// answers "which pixels does this polygon, disk or ellipse cover on a canvas
// of this size". Every function clips its output to the Extent it is given,
// so callers never see coordinates outside [0, Rows) × [0, Cols).
//
// # Coordinate System
//
// Pixels are addressed as (Row, Col), 0-based with the origin at the top-left:
//   - Row increases downward (the image Y axis)
//   - Col increases rightward (the image X axis)
//
// Polygon vertices are given in pixel-edge coordinates: the pixel (r, c)
// occupies the unit square [r, r+1) × [c, c+1). A polygon with vertices at
// (0,0), (2,0), (2,3), (0,3) therefore covers exactly 2×3 pixels.
//
// Disks and ellipses use pixel-center membership: pixel (r, c) belongs to the
// shape when the point (r, c) lies strictly inside it.
//
// # Polygon Coverage
//
// Polygons are scan-converted with golang.org/x/image/vector, which computes
// anti-aliased coverage. A pixel is part of the set when at least half of its
// area is covered.
package raster
