// Package app wires the stage, the menu and the three scenes into one
// runnable program.
package app

import (
	"fmt"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/showcase"
	"github.com/phanxgames/showcase/config"
	"golang.org/x/image/font/gofont/goregular"
)

// Options configures New. Zero values pick sensible defaults.
type Options struct {
	Config *config.Config    // nil means config.Default()
	Assets *showcase.Assets  // required by the collage and flame scenes
	Rand   showcase.Rand     // nil means a time-seeded source
	Clock  showcase.Clock    // nil means the wall clock
	Script *showcase.TestRunner
	// ScreenshotDir overrides where scripted screenshots are written.
	ScreenshotDir string
	Debug         bool
}

// App is the program state shared by the router and the scenes.
type App struct {
	Stage  *showcase.Stage
	Config *config.Config
	Assets *showcase.Assets
	Fonts  *showcase.FontSource
	Rand   showcase.Rand
	FPS    *showcase.Node
	Router *Router

	button *ebiten.Image
}

// New builds the stage, the persistent FPS overlay and the router, and
// shows the menu.
func New(opts Options) (*App, error) {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Default()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	fonts, err := showcase.LoadFontSource(goregular.TTF)
	if err != nil {
		return nil, err
	}
	rng := opts.Rand
	if rng == nil {
		rng = showcase.NewRand(0)
	}
	assets := opts.Assets
	if assets == nil {
		assets = showcase.NewAssets()
	}

	stage := showcase.NewStage(cfg.Window.Width, cfg.Window.Height, opts.Clock)
	stage.ClearColor = cfg.BackgroundColor()
	stage.SetDebugMode(opts.Debug)
	if opts.ScreenshotDir != "" {
		stage.ScreenshotDir = opts.ScreenshotDir
	}
	if opts.Script != nil {
		stage.SetTestRunner(opts.Script, true)
	}

	a := &App{
		Stage:  stage,
		Config: cfg,
		Assets: assets,
		Fonts:  fonts,
		Rand:   rng,
		button: newButtonImage(buttonWidth, buttonHeight, buttonRadius, buttonFill),
	}

	a.FPS = showcase.NewFPSCounter(fonts.Face(36), stage.Frames)
	a.FPS.TextBlock.Color = showcase.ColorBlack
	a.FPS.SetPosition(10, 10)
	stage.Root().AddChild(a.FPS)

	a.Router = newRouter(a)
	a.bindKeys()
	a.Router.ShowMenu()

	if opts.Debug {
		log.Printf("[showcase] design %dx%d, %d images loaded", cfg.Window.Width, cfg.Window.Height, len(assets.Aliases()))
	}
	return a, nil
}

// Run opens the window and blocks until it is closed.
func (a *App) Run() error {
	w := a.Config.Window
	if err := showcase.Run(a.Stage, showcase.RunConfig{
		Title:     w.Title,
		Width:     w.Width,
		Height:    w.Height,
		Resizable: w.Resizable,
	}); err != nil {
		return fmt.Errorf("showcase: run: %w", err)
	}
	return nil
}

func (a *App) bindKeys() {
	shortcuts := []struct {
		key ebiten.Key
		id  SceneID
	}{
		{ebiten.KeyDigit1, SceneCards},
		{ebiten.KeyDigit2, SceneCollage},
		{ebiten.KeyDigit3, SceneFlame},
	}
	for _, sc := range shortcuts {
		id := sc.id
		a.Stage.BindKey(sc.key, func() { a.open(id) })
	}
	a.Stage.BindKey(ebiten.KeyEscape, func() {
		if a.Router.Active() != SceneMenu {
			a.Router.ShowMenu()
		}
	})
}

// open shows a scene from an input handler, where errors can only be logged.
func (a *App) open(id SceneID) {
	if err := a.Router.ShowScene(id); err != nil {
		log.Printf("[router] %v", err)
	}
}

// sceneContext returns a fresh context for a scene building into layer.
func (a *App) sceneContext(layer *showcase.Node, timers *showcase.TickerGroup) *showcase.SceneContext {
	w, h := a.Stage.ScreenSize()
	return &showcase.SceneContext{
		Layer:  layer,
		Timers: timers,
		Rand:   a.Rand,
		Assets: a.Assets,
		Fonts:  a.Fonts,
		Width:  w,
		Height: h,
	}
}
