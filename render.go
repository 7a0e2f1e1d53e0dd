package showcase

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// geoM converts an affine matrix [a, b, c, d, tx, ty] into an ebiten.GeoM.
func geoM(m [6]float64) ebiten.GeoM {
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[2])
	g.SetElement(0, 2, m[4])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[3])
	g.SetElement(1, 2, m[5])
	return g
}

// scaleColor applies a straight-alpha tint to a ColorScale, premultiplying.
func scaleColor(cs *ebiten.ColorScale, c Color, alpha float64) {
	a := float32(c.A * alpha)
	cs.Scale(float32(c.R)*a, float32(c.G)*a, float32(c.B)*a, a)
}

// drawTree renders n and its descendants depth-first in child order, so later
// children draw over earlier ones.
func drawTree(dst *ebiten.Image, n *Node) {
	if !n.Visible || n.worldAlpha <= 0 {
		return
	}

	switch n.Type {
	case NodeTypeSprite:
		drawSprite(dst, n)
	case NodeTypeText:
		drawText(dst, n)
	}

	for _, child := range n.children {
		drawTree(dst, child)
	}
}

func drawSprite(dst *ebiten.Image, n *Node) {
	if n.Image == nil {
		return
	}
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM(n.worldTransform)
	scaleColor(&op.ColorScale, n.Color, n.worldAlpha)
	op.Filter = ebiten.FilterLinear
	dst.DrawImage(n.Image, op)
}

func drawText(dst *ebiten.Image, n *Node) {
	tb := n.TextBlock
	if tb == nil || tb.Font == nil {
		return
	}
	content := tb.layout()
	if content == "" {
		return
	}
	op := &text.DrawOptions{}
	op.GeoM = geoM(n.worldTransform)
	scaleColor(&op.ColorScale, Color{
		R: tb.Color.R * n.Color.R,
		G: tb.Color.G * n.Color.G,
		B: tb.Color.B * n.Color.B,
		A: tb.Color.A * n.Color.A,
	}, n.worldAlpha)
	op.LineSpacing = tb.Font.LineHeight()
	text.Draw(dst, content, tb.Font.Face(), op)
}
