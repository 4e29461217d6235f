package geounion

import "math"

// A BBox is an axis-aligned min/max bounding box. Geometries with no extent
// (empty geometries) have no BBox at all, rather than a degenerate one.
type BBox struct {
	MinX, MinY float64
	MaxX, MaxY float64
}

// Overlaps returns true iff this box and o share at least one point.
// Touching edges count as overlap, which is what makes adjacent geometries
// cluster into the same run during reduction.
func (b BBox) Overlaps(o BBox) bool {
	if b.MaxX < o.MinX || b.MaxY < o.MinY || b.MinX > o.MaxX || b.MinY > o.MaxY {
		return false
	}
	return true
}

// Extend returns the smallest box covering both this box and o.
func (b BBox) Extend(o BBox) BBox {
	return BBox{
		MinX: math.Min(b.MinX, o.MinX),
		MinY: math.Min(b.MinY, o.MinY),
		MaxX: math.Max(b.MaxX, o.MaxX),
		MaxY: math.Max(b.MaxY, o.MaxY),
	}
}

// Center returns the center point of this box.
func (b BBox) Center() (x, y float64) {
	return (b.MinX + b.MaxX) / 2, (b.MinY + b.MaxY) / 2
}

// SortableHash derives a scalar which imposes a spatial-locality total
// order on bounding boxes: boxes with nearby centers yield nearby hashes.
// The center coordinates are narrowed to float32, mapped to sortable
// unsigned form and interleaved onto a Z-order curve. The srid is accepted
// for parity with the engine contract; geodetic boxes sort by raw lon/lat
// center, which splits runs across the antimeridian but never affects
// coverage.
func (b BBox) SortableHash(srid int) uint64 {
	_ = srid
	cx, cy := b.Center()
	return interleave2(sortableBits(float32(cx)), sortableBits(float32(cy)))
}

// sortableBits maps a float32 onto a uint32 whose unsigned order matches
// the float's numeric order: non-negative values get the sign bit set,
// negative values are inverted wholesale.
func sortableBits(f float32) uint32 {
	u := math.Float32bits(f)
	if u&0x80000000 != 0 {
		return ^u
	}
	return u | 0x80000000
}

// interleave2 spreads the bits of x onto the even positions and y onto the
// odd positions of a uint64, producing a Z-order (Morton) index.
func interleave2(x, y uint32) uint64 {
	return spreadBits(x) | spreadBits(y)<<1
}

func spreadBits(v uint32) uint64 {
	x := uint64(v)
	x = (x | x<<16) & 0x0000ffff0000ffff
	x = (x | x<<8) & 0x00ff00ff00ff00ff
	x = (x | x<<4) & 0x0f0f0f0f0f0f0f0f
	x = (x | x<<2) & 0x3333333333333333
	x = (x | x<<1) & 0x5555555555555555
	return x
}
