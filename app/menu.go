package app

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/phanxgames/showcase"
)

const (
	buttonWidth  = 250
	buttonHeight = 50
	buttonRadius = 10
	buttonFill   = 0x301934
)

var menuEntries = []struct {
	label string
	id    SceneID
	dy    float64 // offset from the vertical centre
}{
	{"Ace of Shadows", SceneCards, -100},
	{"Magic Words", SceneCollage, 0},
	{"Phoenix Flame", SceneFlame, 100},
}

// buildMenu returns a fresh menu container: the title and one button per
// scene.
func (a *App) buildMenu() *showcase.Node {
	w, h := a.Stage.ScreenSize()
	menu := showcase.NewContainer("menu")

	title := showcase.NewText("title", "Game Menu", a.Fonts.Face(36))
	title.TextBlock.Color = showcase.ColorBlack
	tw, _ := title.Size()
	title.SetPosition(w/2-tw/2, 100)
	menu.AddChild(title)

	for _, e := range menuEntries {
		id := e.id
		menu.AddChild(a.newButton(e.label, h/2+e.dy, func() { a.open(id) }))
	}
	return menu
}

// newButton returns a horizontally centred rounded button at y whose label
// is centred inside it. onClick runs on pointer press.
func (a *App) newButton(label string, y float64, onClick func()) *showcase.Node {
	w, _ := a.Stage.ScreenSize()

	btn := showcase.NewContainer("button:" + label)
	btn.SetPosition(w/2-buttonWidth/2, y)
	btn.Interactable = true
	btn.HitShape = showcase.HitRect{Width: buttonWidth, Height: buttonHeight}
	btn.OnClick = func(showcase.ClickContext) { onClick() }

	btn.AddChild(showcase.NewSprite("bg", a.button))

	text := showcase.NewText("label", label, a.Fonts.Face(24))
	lw, lh := text.Size()
	text.SetPosition(buttonWidth/2-lw/2, buttonHeight/2-lh/2)
	btn.AddChild(text)
	return btn
}

// newButtonImage draws a filled rounded rectangle: two overlapping bars for
// the straight edges and a circle at each corner.
func newButtonImage(w, h, r int, rgb uint32) *ebiten.Image {
	img := ebiten.NewImage(w, h)
	c := showcase.ColorHex(rgb).ToRGBA()
	fw, fh, fr := float32(w), float32(h), float32(r)

	vector.DrawFilledRect(img, fr, 0, fw-2*fr, fh, c, true)
	vector.DrawFilledRect(img, 0, fr, fw, fh-2*fr, c, true)
	for _, p := range [][2]float32{{fr, fr}, {fw - fr, fr}, {fr, fh - fr}, {fw - fr, fh - fr}} {
		vector.DrawFilledCircle(img, p[0], p[1], fr, c, true)
	}
	return img
}
