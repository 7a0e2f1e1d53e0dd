// Package collage implements the "Magic Words" scene: every period the board
// is wiped and refilled with one randomly styled phrase and one to three
// randomly sized images, all placed fully on screen.
package collage

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/showcase"
)

// Config holds the scene's content pool and timing.
type Config struct {
	Interval   time.Duration  `yaml:"interval"`
	Texts      []string       `yaml:"texts"`
	Images     []string       `yaml:"images"` // asset aliases
	FontSize   showcase.Range `yaml:"font_size"`
	ImageWidth showcase.Range `yaml:"image_width"`
	MaxImages  int            `yaml:"max_images"`
	WrapWidth  float64        `yaml:"wrap_width"`

	// Immediate fills the board on entry instead of after the first period.
	Immediate bool `yaml:"immediate"`
}

// DefaultConfig returns the reference content pool.
func DefaultConfig() Config {
	return Config{
		Interval:   2 * time.Second,
		Texts:      []string{"Game Developer", "Ebitengine", "Go", "Cats"},
		Images:     []string{"cat1", "cat2", "cat3", "cat4"},
		FontSize:   showcase.Range{Min: 20, Max: 60},
		ImageWidth: showcase.Range{Min: 50, Max: 150},
		MaxImages:  3,
		WrapWidth:  400,
		Immediate:  true,
	}
}

// ErrConfig is wrapped by every Validate failure.
var ErrConfig = errors.New("collage: invalid config")

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Interval <= 0:
		return fmt.Errorf("%w: interval must be positive", ErrConfig)
	case len(c.Texts) == 0:
		return fmt.Errorf("%w: no texts", ErrConfig)
	case len(c.Images) == 0:
		return fmt.Errorf("%w: no images", ErrConfig)
	case c.MaxImages < 1:
		return fmt.Errorf("%w: max_images = %d", ErrConfig, c.MaxImages)
	case c.FontSize.Min <= 0 || c.FontSize.Max < c.FontSize.Min:
		return fmt.Errorf("%w: font_size %v", ErrConfig, c.FontSize)
	case c.ImageWidth.Min <= 0 || c.ImageWidth.Max < c.ImageWidth.Min:
		return fmt.Errorf("%w: image_width %v", ErrConfig, c.ImageWidth)
	}
	return nil
}

// Kind tells text items from image items.
type Kind uint8

const (
	KindText Kind = iota
	KindImage
)

// Item is one element currently on the board.
type Item struct {
	Kind  Kind
	Node  *showcase.Node
	Value string // the phrase, or the image alias
}

// Bounds returns the item's box in layer coordinates.
func (it Item) Bounds() showcase.Rect {
	return it.Node.Bounds()
}

// Board is the scene state.
type Board struct {
	cfg     Config
	ctx     *showcase.SceneContext
	content *showcase.Node
	images  []*ebiten.Image
	fonts   map[int]*showcase.Font
	items   []Item
	gen     int
}

// New resolves the configured images, creates the content container and
// starts the regeneration timer.
func New(ctx *showcase.SceneContext, cfg Config) (*Board, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if ctx.Fonts == nil {
		return nil, errors.New("collage: no font source")
	}
	images, err := ctx.Assets.Images(cfg.Images...)
	if err != nil {
		return nil, fmt.Errorf("collage: %w", err)
	}

	b := &Board{
		cfg:     cfg,
		ctx:     ctx,
		content: showcase.NewContainer("collage"),
		images:  images,
		fonts:   make(map[int]*showcase.Font),
	}
	ctx.Layer.AddChild(b.content)

	if cfg.Immediate {
		b.Generate()
	}
	ctx.Timers.Every(cfg.Interval, b.Generate)
	return b, nil
}

// Items returns the elements on the board. The slice MUST NOT be mutated.
func (b *Board) Items() []Item {
	return b.items
}

// Generation counts how many times the board has been filled.
func (b *Board) Generation() int {
	return b.gen
}

// Generate discards the current content and lays out a fresh random set.
func (b *Board) Generate() {
	for _, old := range b.content.RemoveChildrenExcept() {
		old.Dispose()
	}
	b.items = b.items[:0]

	n, phrase := b.newText()
	b.place(Item{Kind: KindText, Node: n, Value: phrase})

	count := b.ctx.Rand.IntN(b.cfg.MaxImages) + 1
	for i := 0; i < count; i++ {
		n, alias := b.newImage(i)
		b.place(Item{Kind: KindImage, Node: n, Value: alias})
	}
	b.gen++
}

func (b *Board) newText() (*showcase.Node, string) {
	phrase := showcase.Pick(b.ctx.Rand, b.cfg.Texts)
	size := randInt(b.ctx.Rand, b.cfg.FontSize)
	n := showcase.NewText("phrase", phrase, b.font(size))
	n.TextBlock.WrapWidth = b.cfg.WrapWidth
	n.TextBlock.Color = showcase.ColorHex(uint32(b.ctx.Rand.IntN(0x1000000)))
	return n, phrase
}

func (b *Board) newImage(i int) (*showcase.Node, string) {
	idx := b.ctx.Rand.IntN(len(b.images))
	img := b.images[idx]
	n := showcase.NewSprite(fmt.Sprintf("image%d", i), img)

	w := float64(randInt(b.ctx.Rand, b.cfg.ImageWidth))
	bounds := img.Bounds()
	aspect := float64(bounds.Dy()) / float64(bounds.Dx())
	n.SetSize(w, w*aspect)
	return n, b.cfg.Images[idx]
}

// place moves the item to a random whole-pixel spot that keeps it on screen
// and records it. Elements larger than the screen are pinned to the origin.
func (b *Board) place(it Item) {
	w, h := it.Node.Size()
	it.Node.SetPosition(
		math.Floor(b.ctx.Rand.Float64()*math.Max(0, b.ctx.Width-w)),
		math.Floor(b.ctx.Rand.Float64()*math.Max(0, b.ctx.Height-h)),
	)
	b.content.AddChild(it.Node)
	b.items = append(b.items, it)
}

// font returns a cached face for the given pixel size.
func (b *Board) font(size int) *showcase.Font {
	f, ok := b.fonts[size]
	if !ok {
		f = b.ctx.Fonts.Face(float64(size))
		b.fonts[size] = f
	}
	return f
}

// randInt draws a whole number uniformly from [r.Min, r.Max].
func randInt(rng showcase.Rand, r showcase.Range) int {
	lo := int(math.Ceil(r.Min))
	hi := int(math.Floor(r.Max))
	if hi <= lo {
		return lo
	}
	return lo + rng.IntN(hi-lo+1)
}
