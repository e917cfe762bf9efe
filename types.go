// Package vtable renders large tabular datasets through a virtualized table engine.
// Only rows intersecting the viewport (plus an overscan margin) are materialized.
package vtable

// Vec2 is a point in screen pixels.
type Vec2 struct {
	X, Y float32
}

// Rect is an axis-aligned screen rectangle. Table frames are laid out as
// stacked bands (banners, toolbar, header, body) of full table width.
type Rect struct {
	X, Y float32 // Top-left position
	W, H float32
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive so adjacent cells never both claim a point.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}

func (r Rect) Right() float32 { return r.X + r.W }
func (r Rect) Bottom() float32 { return r.Y + r.H }

// Center returns the middle of r.
func (r Rect) Center() Vec2 {
	return Vec2{X: r.X + r.W/2, Y: r.Y + r.H/2}
}

// Below returns the band of height h directly under r.
func (r Rect) Below(h float32) Rect {
	return Rect{X: r.X, Y: r.Bottom(), W: r.W, H: h}
}

// Extend grows r downwards to also cover other.
func (r Rect) Extend(other Rect) Rect {
	return Rect{X: r.X, Y: r.Y, W: max(r.W, other.W), H: max(r.Bottom(), other.Bottom()) - r.Y}
}

// Column returns the slice of r spanning [x, x+w) relative to r's left edge.
func (r Rect) Column(x, w float32) Rect {
	return Rect{X: r.X + x, Y: r.Y, W: w, H: r.H}
}

// Vertex is one vertex of the table geometry.
// Memory layout matches the OpenGL vertex attributes.
type Vertex struct {
	Pos      [2]float32
	TexCoord [2]float32
	Color    uint32 // RGBA packed
}

// DrawCmd is a batch of indices sharing a texture and clip rectangle.
type DrawCmd struct {
	ElemCount    uint32
	ClipRect     [4]float32 // x1, y1, x2, y2
	TextureID    uint32     // 0 = solid color
	VertexOffset uint32
	IndexOffset  uint32
}

// Packed colors (0xAABBGGRR).
const (
	ColorWhite uint32 = 0xFFFFFFFF
	ColorGray  uint32 = 0xFF808080
)

// RGBA packs color components (0-255).
func RGBA(r, g, b, a uint8) uint32 {
	return uint32(a)<<24 | uint32(b)<<16 | uint32(g)<<8 | uint32(r)
}

// UnpackRGBA splits a packed color.
func UnpackRGBA(c uint32) (r, g, b, a uint8) {
	return uint8(c), uint8(c >> 8), uint8(c >> 16), uint8(c >> 24)
}

func clampf(v, lo, hi float32) float32 {
	return min(max(v, lo), hi)
}
