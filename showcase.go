package showcase

import (
	"image/color"
	"math/rand/v2"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// Color represents an RGBA color with components in [0, 1]. Not premultiplied.
// Premultiplication occurs at draw time.
type Color struct {
	R, G, B, A float64
}

// ColorWhite is the default tint (no color modification).
var ColorWhite = Color{1, 1, 1, 1}

// ColorBlack is opaque black.
var ColorBlack = Color{0, 0, 0, 1}

// ColorHex converts a 0xRRGGBB value to an opaque Color.
func ColorHex(rgb uint32) Color {
	return Color{
		R: float64(rgb>>16&0xff) / 255,
		G: float64(rgb>>8&0xff) / 255,
		B: float64(rgb&0xff) / 255,
		A: 1,
	}
}

// ToRGBA converts c to a premultiplied color.RGBA.
func (c Color) ToRGBA() color.RGBA {
	a := clamp01(c.A)
	return color.RGBA{
		R: uint8(clamp01(c.R)*a*255 + 0.5),
		G: uint8(clamp01(c.G)*a*255 + 0.5),
		B: uint8(clamp01(c.B)*a*255 + 0.5),
		A: uint8(a*255 + 0.5),
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Vec2 is a 2D vector used for positions, offsets and sizes.
type Vec2 struct {
	X, Y float64
}

// WhitePixel is a 1x1 white image used for solid color sprites. Scale and
// tint it to draw rectangles.
var WhitePixel *ebiten.Image

func init() {
	WhitePixel = ebiten.NewImage(1, 1)
	WhitePixel.Fill(ColorWhite.ToRGBA())
}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// ContainsRect reports whether other lies entirely inside r.
func (r Rect) ContainsRect(other Rect) bool {
	return other.X >= r.X && other.Y >= r.Y &&
		other.X+other.Width <= r.X+r.Width &&
		other.Y+other.Height <= r.Y+r.Height
}

// Rand is the random source used by every scene. *rand.Rand from
// math/rand/v2 satisfies it; tests pass a seeded one.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG-backed Rand. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range is a general-purpose min/max range.
type Range struct {
	Min, Max float64
}

// Random returns a float64 in [Min, Max) drawn from r.
func (rg Range) Random(r Rand) float64 {
	if rg.Min == rg.Max {
		return rg.Min
	}
	return rg.Min + r.Float64()*(rg.Max-rg.Min)
}

// Pick returns a uniformly chosen element of items. Panics on an empty slice.
func Pick[T any](r Rand, items []T) T {
	return items[r.IntN(len(items))]
}

// NodeType distinguishes rendering behavior for a Node.
type NodeType uint8

const (
	NodeTypeContainer NodeType = iota // group node with no visual output
	NodeTypeSprite                    // renders an image scaled by the node transform
	NodeTypeText                      // renders a TextBlock
)
