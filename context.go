package showcase

// SceneContext is what a scene sees of the stage while it is active. The
// router creates one per scene entry; everything registered through Timers
// is cancelled when the scene exits, and Layer is torn down with it.
type SceneContext struct {
	// Layer is the container the scene builds into. It is attached to the
	// stage root.
	Layer *Node
	// Timers scopes per-frame callbacks and timers to the scene's lifetime.
	Timers *TickerGroup
	Rand   Rand
	Assets *Assets
	Fonts  *FontSource
	// Width and Height are the design screen size.
	Width, Height float64
}

// Screen returns the visible design area.
func (c *SceneContext) Screen() Rect {
	return Rect{Width: c.Width, Height: c.Height}
}
