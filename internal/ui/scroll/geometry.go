// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package scroll

import "math"

// =============================================================================
// GEOMETRY PRIMITIVES
// =============================================================================

// Point is a position in layout units.
type Point struct {
	X float64
	Y float64
}

// Size is a width/height pair in layout units.
type Size struct {
	Width  float64
	Height float64
}

// Rectangle is an axis-aligned rectangle in layout units.
type Rectangle struct {
	X      float64
	Y      float64
	Width  float64
	Height float64
}

// RectWithSize returns a rectangle at the origin with the given size.
func RectWithSize(s Size) Rectangle {
	return Rectangle{Width: s.Width, Height: s.Height}
}

// Contains reports whether p lies within r.
func (r Rectangle) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width && p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Union returns the smallest rectangle covering both r and o.
func (r Rectangle) Union(o Rectangle) Rectangle {
	x := math.Min(r.X, o.X)
	y := math.Min(r.Y, o.Y)
	return Rectangle{
		X:      x,
		Y:      y,
		Width:  math.Max(r.X+r.Width, o.X+o.Width) - x,
		Height: math.Max(r.Y+r.Height, o.Y+o.Height) - y,
	}
}

// =============================================================================
// LAYOUT LIMITS
// =============================================================================

// Limits constrain one layout pass. Items are measured against a loosened
// width limit and an unbounded height; they are never constrained by the
// viewport's visible height.
type Limits struct {
	MaxWidth  float64
	MaxHeight float64
}

// Loose returns the limits with the height constraint removed.
func (l Limits) Loose() Limits {
	return Limits{MaxWidth: l.MaxWidth, MaxHeight: math.Inf(1)}
}

// clamp bounds v to [lo, hi]. When hi < lo (content smaller than the
// viewport) the lower bound wins, which pins the offset to zero.
func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(v, hi))
}
