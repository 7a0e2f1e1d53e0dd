// Package showcase is a small retained-mode stage for [Ebitengine] and the
// menu-driven demo built on it.
//
// The root package provides the pieces the demo scenes share: a [Node] tree
// with affine transforms, sprite and TTF text rendering, a [Ticker] that
// drives per-frame callbacks and fixed-period timers from an injectable
// [Clock], scoped cancellation through [TickerGroup], linear and eased
// tweens (via [gween]), pointer and keyboard input with event injection,
// an FPS counter, a YAML asset manifest loader, and a scripted
// [TestRunner] for automated screenshots.
//
// # Quick start
//
//	stage := showcase.NewStage(1280, 720, nil)
//	box := showcase.NewSprite("box", nil)
//	box.SetSize(80, 40)
//	box.Color = showcase.ColorHex(0x301934)
//	stage.Root().AddChild(box)
//	stage.Ticker().Add(func(dt float64) {
//		box.X += 60 * dt
//		box.MarkDirty()
//	})
//	showcase.Run(stage, showcase.RunConfig{Title: "Demo", Width: 1280, Height: 720})
//
// # Scenes
//
// The demo scenes live in sub-packages: [github.com/phanxgames/showcase/cards]
// (animated card stacks), [github.com/phanxgames/showcase/collage] (random
// text and image layouts) and [github.com/phanxgames/showcase/flame]
// (particle flame). [github.com/phanxgames/showcase/app] routes between
// them and the menu. Each scene builds into a [SceneContext] and registers
// every callback through its [TickerGroup], so leaving a scene stops all of
// its timers.
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package showcase
