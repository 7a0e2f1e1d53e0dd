package showcase

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"
)

// Stage is the top-level object that owns the node tree, the ticker, input
// state and the render surface. It implements ebiten.Game.
//
// Content is laid out in design coordinates (the size passed to NewStage).
// When the window is resized the root node is scaled by independent X and Y
// factors so the design area always fills the surface.
type Stage struct {
	root   *Node
	ticker *Ticker
	debug  bool

	// ClearColor fills the surface before the tree is drawn.
	ClearColor Color

	// ScreenshotDir is the directory screenshots are written to.
	ScreenshotDir string

	width, height      float64
	surfaceW, surfaceH int
	frames             uint64

	updateFunc func() error

	// Input state
	keys        []keyBinding
	injectQueue []syntheticEvent
	touchBuf    []ebiten.TouchID

	// Scripted runs
	screenshotQueue []string
	testRunner      *TestRunner
	exitOnScriptEnd bool
}

// NewStage creates a stage with the given design size. clock drives the
// ticker; nil means the wall clock.
func NewStage(width, height int, clock Clock) *Stage {
	root := NewContainer("stage")
	s := &Stage{
		root:          root,
		ticker:        NewTicker(clock),
		width:         float64(width),
		height:        float64(height),
		surfaceW:      width,
		surfaceH:      height,
		ClearColor:    ColorBlack,
		ScreenshotDir: "screenshots",
	}
	return s
}

// Root returns the stage's root container node.
func (s *Stage) Root() *Node {
	return s.root
}

// Ticker returns the stage's ticker. It is advanced once per Update.
func (s *Stage) Ticker() *Ticker {
	return s.ticker
}

// ScreenSize returns the design width and height content is laid out in.
func (s *Stage) ScreenSize() (w, h float64) {
	return s.width, s.height
}

// SurfaceSize returns the current render surface size in pixels.
func (s *Stage) SurfaceSize() (w, h int) {
	return s.surfaceW, s.surfaceH
}

// Frames returns the number of frames drawn so far.
func (s *Stage) Frames() uint64 {
	return s.frames
}

// SetUpdateFunc registers fn to run at the end of every Update. A non-nil
// error stops the game loop.
func (s *Stage) SetUpdateFunc(fn func() error) {
	s.updateFunc = fn
}

// SetDebugMode enables or disables debug logging.
func (s *Stage) SetDebugMode(enabled bool) {
	s.debug = enabled
}

// Debug reports whether debug logging is enabled.
func (s *Stage) Debug() bool {
	return s.debug
}

// Resize sets the surface size and rescales the root so the design area
// fills it. Non-positive sizes are ignored.
func (s *Stage) Resize(w, h int) {
	if w <= 0 || h <= 0 {
		return
	}
	s.surfaceW, s.surfaceH = w, h
	sx := float64(w) / s.width
	sy := float64(h) / s.height
	s.root.SetScale(sx, sy)
	if s.debug {
		log.Printf("[showcase] resize %dx%d scale=(%.3f, %.3f)", w, h, sx, sy)
	}
}

// Update processes input, runs the ticker and per-node update callbacks, and
// refreshes world transforms.
func (s *Stage) Update() error {
	if s.testRunner != nil {
		s.testRunner.step(s)
	}
	s.processInput()

	dt := s.ticker.Tick()
	updateNodes(s.root, dt)
	updateWorldTransform(s.root, identityTransform, 1.0, false)

	if s.updateFunc != nil {
		if err := s.updateFunc(); err != nil {
			return err
		}
	}
	if s.exitOnScriptEnd && s.testRunner != nil && s.testRunner.Done() && len(s.screenshotQueue) == 0 {
		return ebiten.Termination
	}
	return nil
}

// Draw clears the screen and draws the tree.
func (s *Stage) Draw(screen *ebiten.Image) {
	screen.Fill(s.ClearColor.ToRGBA())
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	drawTree(screen, s.root)
	s.frames++
	s.flushScreenshots(screen)
}

// Layout tracks the outside size as the render surface and rescales the
// root whenever it changes.
func (s *Stage) Layout(outsideWidth, outsideHeight int) (int, int) {
	if outsideWidth != s.surfaceW || outsideHeight != s.surfaceH {
		s.Resize(outsideWidth, outsideHeight)
	}
	return s.surfaceW, s.surfaceH
}

// updateNodes calls OnUpdate on every node depth-first. Nodes added during
// the walk are visited if they land after the current position.
func updateNodes(n *Node, dt float64) {
	if n.OnUpdate != nil {
		n.OnUpdate(dt)
	}
	for i := 0; i < len(n.children); i++ {
		updateNodes(n.children[i], dt)
	}
}

// RunConfig configures the window opened by Run.
type RunConfig struct {
	Title     string
	Width     int
	Height    int
	Resizable bool
}

// Run opens a window and runs the stage's game loop until the window is
// closed or Update returns an error.
func Run(s *Stage, cfg RunConfig) error {
	if cfg.Width > 0 && cfg.Height > 0 {
		ebiten.SetWindowSize(cfg.Width, cfg.Height)
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	if cfg.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	return ebiten.RunGame(s)
}
