package showcase

import (
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// TweenGroup animates up to 2 float64 fields on a Node simultaneously.
// Create one with TweenPosition and call Update(dt) each frame. The group
// writes values into the node and marks it dirty. If the target node is
// disposed, the group stops immediately.
type TweenGroup struct {
	tweens [2]*gween.Tween
	count  int
	fields [2]*float64
	target *Node
	Done   bool
}

// Update advances all tweens by dt seconds, writes values to the target
// fields, and marks the node dirty.
func (g *TweenGroup) Update(dt float32) {
	if g.Done {
		return
	}

	if g.target != nil && g.target.IsDisposed() {
		g.Done = true
		return
	}

	allDone := true
	for i := 0; i < g.count; i++ {
		val, finished := g.tweens[i].Update(dt)
		*g.fields[i] = float64(val)
		if !finished {
			allDone = false
		}
	}
	g.Done = allDone

	if g.target != nil {
		g.target.MarkDirty()
	}
}

// TweenPosition creates a TweenGroup that animates node.X and node.Y from
// their current values to (toX, toY) over duration seconds using fn.
func TweenPosition(node *Node, toX, toY float64, duration float32, fn ease.TweenFunc) *TweenGroup {
	g := &TweenGroup{count: 2, target: node}
	g.tweens[0] = gween.New(float32(node.X), float32(toX), duration, fn)
	g.tweens[1] = gween.New(float32(node.Y), float32(toY), duration, fn)
	g.fields[0] = &node.X
	g.fields[1] = &node.Y
	return g
}
