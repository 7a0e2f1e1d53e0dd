// Package cards implements the "Ace of Shadows" scene: a deck of tinted
// cards piled in one stack, with the top card of the first non-empty stack
// flying to a random other stack on a fixed period.
package cards

import (
	"errors"
	"fmt"
	"time"

	"github.com/phanxgames/showcase"
	"github.com/tanema/gween/ease"
)

// Config holds the scene's layout and timing.
type Config struct {
	Cards        int           `yaml:"cards"`
	Stacks       int           `yaml:"stacks"`
	CardWidth    float64       `yaml:"card_width"`
	CardHeight   float64       `yaml:"card_height"`
	Offset       float64       `yaml:"offset"`        // vertical step between stacked cards
	StackSpacing float64       `yaml:"stack_spacing"` // gap between neighbouring stacks
	MoveInterval time.Duration `yaml:"move_interval"`
	Duration     time.Duration `yaml:"duration"` // flight time of one card

	// Exclusive skips a relocation while another card is still in flight.
	// Off by default: with a 1s period and a 2s flight, two cards are
	// normally airborne at once.
	Exclusive bool `yaml:"exclusive"`

	Shadow      bool    `yaml:"shadow"`
	ShadowAlpha float64 `yaml:"shadow_alpha"`
}

// DefaultConfig returns the reference layout: 144 cards, six stacks.
func DefaultConfig() Config {
	return Config{
		Cards:        144,
		Stacks:       6,
		CardWidth:    100,
		CardHeight:   120,
		Offset:       5,
		StackSpacing: 10,
		MoveInterval: time.Second,
		Duration:     2 * time.Second,
		Shadow:       true,
		ShadowAlpha:  0.4,
	}
}

// ErrConfig is wrapped by every Validate failure.
var ErrConfig = errors.New("cards: invalid config")

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Cards < 0:
		return fmt.Errorf("%w: cards = %d", ErrConfig, c.Cards)
	case c.Stacks < 2:
		return fmt.Errorf("%w: need at least 2 stacks, got %d", ErrConfig, c.Stacks)
	case c.CardWidth <= 0 || c.CardHeight <= 0:
		return fmt.Errorf("%w: card size %vx%v", ErrConfig, c.CardWidth, c.CardHeight)
	case c.Offset < 0 || c.StackSpacing < 0:
		return fmt.Errorf("%w: negative offset or spacing", ErrConfig)
	case c.MoveInterval <= 0 || c.Duration <= 0:
		return fmt.Errorf("%w: move interval and duration must be positive", ErrConfig)
	}
	return nil
}

// Card is one sprite of the deck. It belongs to exactly one stack, or to
// none while it is in flight.
type Card struct {
	Node  *showcase.Node
	Tint  showcase.Color
	stack int
}

// Stack returns the index of the owning stack, or -1 while in flight.
func (c *Card) Stack() int {
	return c.stack
}

// Stack is an ordered pile of cards, bottom first.
type Stack struct {
	Index int
	Node  *showcase.Node
	cards []*Card
}

// Len returns the number of cards in the stack.
func (s *Stack) Len() int {
	return len(s.cards)
}

// Cards returns the cards bottom to top. The slice MUST NOT be mutated.
func (s *Stack) Cards() []*Card {
	return s.cards
}

// Top returns the topmost card, or nil if the stack is empty.
func (s *Stack) Top() *Card {
	if len(s.cards) == 0 {
		return nil
	}
	return s.cards[len(s.cards)-1]
}

// Height returns the vertical extent of the pile above its base card.
func (s *Stack) Height(offset float64) float64 {
	return offset * float64(len(s.cards))
}

// push appends c and places it at its slot offset.
func (s *Stack) push(c *Card, offset float64) {
	index := len(s.cards)
	s.cards = append(s.cards, c)
	c.stack = s.Index
	s.Node.AddChild(c.Node)
	c.Node.SetPosition(0, float64(index)*offset)
}

// pop removes the top card without reparenting its node.
func (s *Stack) pop() *Card {
	c := s.cards[len(s.cards)-1]
	s.cards[len(s.cards)-1] = nil
	s.cards = s.cards[:len(s.cards)-1]
	c.stack = -1
	return c
}

// Flight is one card moving between stacks.
type Flight struct {
	Card   *Card
	Source int
	Target int
	From   showcase.Vec2
	To     showcase.Vec2

	tween  *showcase.TweenGroup
	handle showcase.Handle
}

// Table is the scene state: stacks, the deck and the cards in flight.
type Table struct {
	cfg     Config
	ctx     *showcase.SceneContext
	stacks  []*Stack
	air     *showcase.Node // parent of in-flight cards, drawn above the stacks
	flights []*Flight

	// OnLand, when set, is called after a card joins its target stack.
	OnLand func(*Flight)
}

// New builds the stacks and the deck inside ctx.Layer, puts every card in
// the first stack and starts the relocation timer.
func New(ctx *showcase.SceneContext, cfg Config) (*Table, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	t := &Table{cfg: cfg, ctx: ctx}

	for i := 0; i < cfg.Stacks; i++ {
		n := showcase.NewContainer(fmt.Sprintf("stack%d", i))
		n.SetPosition(float64(i)*(cfg.CardWidth+cfg.StackSpacing), cfg.CardHeight)
		ctx.Layer.AddChild(n)
		t.stacks = append(t.stacks, &Stack{Index: i, Node: n})
	}
	t.air = showcase.NewContainer("in-flight")
	ctx.Layer.AddChild(t.air)

	for i := 0; i < cfg.Cards; i++ {
		c := t.newCard(i)
		t.stacks[0].push(c, cfg.Offset)
	}

	ctx.Timers.Every(cfg.MoveInterval, func() { t.MoveTopCard() })
	return t, nil
}

// newCard builds a card node: an optional drop shadow under a tinted face.
func (t *Table) newCard(i int) *Card {
	tint := showcase.ColorHex(uint32(t.ctx.Rand.IntN(0x1000000)))
	n := showcase.NewContainer(fmt.Sprintf("card%d", i))

	if t.cfg.Shadow {
		shadow := showcase.NewSprite("shadow", nil)
		shadow.SetSize(t.cfg.CardWidth, t.cfg.CardHeight)
		shadow.SetPosition(2, 2)
		shadow.Color = showcase.ColorBlack
		shadow.Alpha = t.cfg.ShadowAlpha
		n.AddChild(shadow)
	}

	face := showcase.NewSprite("face", nil)
	face.SetSize(t.cfg.CardWidth, t.cfg.CardHeight)
	face.Color = tint
	n.AddChild(face)

	return &Card{Node: n, Tint: tint, stack: -1}
}

// Stacks returns the stacks in fixed order. The slice MUST NOT be mutated.
func (t *Table) Stacks() []*Stack {
	return t.stacks
}

// InFlight returns the cards currently moving. The slice MUST NOT be mutated.
func (t *Table) InFlight() []*Flight {
	return t.flights
}

// Animating reports whether any card is in flight.
func (t *Table) Animating() bool {
	return len(t.flights) > 0
}

// TotalCards counts cards in stacks plus cards in flight.
func (t *Table) TotalCards() int {
	n := len(t.flights)
	for _, s := range t.stacks {
		n += s.Len()
	}
	return n
}

// StackBase returns the position of stack i's bottom card in layer space.
func (t *Table) StackBase(i int) showcase.Vec2 {
	n := t.stacks[i].Node
	return showcase.Vec2{X: n.X, Y: n.Y}
}

// MoveTopCard detaches the top card of the first non-empty stack and starts
// flying it to a uniformly chosen different stack. It returns nil when every
// stack is empty, or when Exclusive is set and a card is already in flight.
func (t *Table) MoveTopCard() *Flight {
	if t.cfg.Exclusive && len(t.flights) > 0 {
		return nil
	}

	var source *Stack
	for _, s := range t.stacks {
		if s.Len() > 0 {
			source = s
			break
		}
	}
	if source == nil {
		return nil
	}

	target := source
	for target == source {
		target = showcase.Pick(t.ctx.Rand, t.stacks)
	}

	card := source.pop()
	fromX, fromY := card.Node.PositionIn(t.ctx.Layer)
	t.air.AddChild(card.Node)
	card.Node.SetPosition(fromX, fromY)

	base := t.StackBase(target.Index)
	f := &Flight{
		Card:   card,
		Source: source.Index,
		Target: target.Index,
		From:   showcase.Vec2{X: fromX, Y: fromY},
		To:     showcase.Vec2{X: base.X, Y: base.Y + t.cfg.Offset*float64(target.Len())},
	}
	f.tween = showcase.TweenPosition(card.Node, f.To.X, f.To.Y, float32(t.cfg.Duration.Seconds()), ease.Linear)
	f.handle = t.ctx.Timers.Add(func(dt float64) { t.advance(f, dt) })
	t.flights = append(t.flights, f)
	return f
}

// advance moves a flight along its linear path and lands it once the full
// duration has elapsed.
func (t *Table) advance(f *Flight, dt float64) {
	f.tween.Update(float32(dt))
	if !f.tween.Done {
		return
	}
	t.land(f)
}

// land snaps the card onto its target stack and stops the flight callback.
func (t *Table) land(f *Flight) {
	f.Card.Node.SetPosition(f.To.X, f.To.Y)
	t.stacks[f.Target].push(f.Card, t.cfg.Offset)
	t.ctx.Timers.Cancel(f.handle)

	for i, g := range t.flights {
		if g == f {
			t.flights = append(t.flights[:i], t.flights[i+1:]...)
			break
		}
	}
	if t.OnLand != nil {
		t.OnLand(f)
	}
}
