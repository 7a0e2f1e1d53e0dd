package cards

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/phanxgames/showcase"
)

type harness struct {
	clock  *showcase.ManualClock
	ticker *showcase.Ticker
	ctx    *showcase.SceneContext
}

func newHarness(seed uint64) *harness {
	clock := showcase.NewManualClock()
	tk := showcase.NewTicker(clock)
	tk.Tick() // start the clock so the next tick has a real delta
	return &harness{
		clock:  clock,
		ticker: tk,
		ctx: &showcase.SceneContext{
			Layer:  showcase.NewContainer("layer"),
			Timers: tk.NewGroup(),
			Rand:   showcase.NewRand(seed),
			Width:  800,
			Height: 600,
		},
	}
}

// step advances the clock by d and runs one tick.
func (h *harness) step(d time.Duration) {
	h.clock.Advance(d)
	h.ticker.Tick()
}

// manualConfig disables the relocation timer for the length of a test.
func manualConfig() Config {
	cfg := DefaultConfig()
	cfg.MoveInterval = time.Hour
	return cfg
}

func near(a, b float64) bool {
	return math.Abs(a-b) < 1e-3
}

func TestNewPutsDeckInFirstStack(t *testing.T) {
	h := newHarness(1)
	table, err := New(h.ctx, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	stacks := table.Stacks()
	if len(stacks) != 6 {
		t.Fatalf("stacks = %d, want 6", len(stacks))
	}
	if stacks[0].Len() != 144 {
		t.Errorf("stack 0 has %d cards, want 144", stacks[0].Len())
	}
	for _, s := range stacks[1:] {
		if s.Len() != 0 {
			t.Errorf("stack %d has %d cards, want 0", s.Index, s.Len())
		}
	}
	for k, c := range stacks[0].Cards() {
		if c.Node.X != 0 || c.Node.Y != float64(k)*5 {
			t.Fatalf("card %d at (%v, %v), want (0, %v)", k, c.Node.X, c.Node.Y, float64(k)*5)
		}
		if c.Stack() != 0 {
			t.Fatalf("card %d reports stack %d", k, c.Stack())
		}
	}
	assertHeight(t, stacks[0], 720)
}

func assertHeight(t *testing.T, s *Stack, want float64) {
	t.Helper()
	if got := s.Height(5); got != want {
		t.Errorf("stack %d height = %v, want %v", s.Index, got, want)
	}
}

func TestStackBases(t *testing.T) {
	h := newHarness(1)
	table, err := New(h.ctx, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	for i := range table.Stacks() {
		base := table.StackBase(i)
		if base.X != float64(i)*110 || base.Y != 120 {
			t.Errorf("stack %d base = %v, want (%v, 120)", i, base, float64(i)*110)
		}
	}
}

func TestMoveTopCardScenario(t *testing.T) {
	h := newHarness(3)
	table, err := New(h.ctx, manualConfig())
	if err != nil {
		t.Fatal(err)
	}

	f := table.MoveTopCard()
	if f == nil {
		t.Fatal("expected a flight")
	}
	if f.Source != 0 || f.Target == 0 {
		t.Fatalf("flight %d -> %d, want 0 -> other", f.Source, f.Target)
	}
	if got := table.Stacks()[0].Len(); got != 143 {
		t.Errorf("stack 0 has %d cards during flight, want 143", got)
	}
	if f.Card.Stack() != -1 || len(table.InFlight()) != 1 {
		t.Error("card should be in flight")
	}
	if table.TotalCards() != 144 {
		t.Errorf("TotalCards = %d, want 144", table.TotalCards())
	}

	// Starts at its last absolute position on stack 0.
	if !near(f.From.X, 0) || !near(f.From.Y, 120+143*5) {
		t.Errorf("From = %v, want (0, %v)", f.From, 120+143*5)
	}
	base := table.StackBase(f.Target)
	if f.To != base {
		t.Errorf("To = %v, want empty target base %v", f.To, base)
	}

	// Half way.
	h.step(time.Second)
	midX := (f.From.X + f.To.X) / 2
	midY := (f.From.Y + f.To.Y) / 2
	if !near(f.Card.Node.X, midX) || !near(f.Card.Node.Y, midY) {
		t.Errorf("midpoint = (%v, %v), want (%v, %v)", f.Card.Node.X, f.Card.Node.Y, midX, midY)
	}

	h.step(time.Second)
	if table.Animating() {
		t.Fatal("flight should have landed after the full duration")
	}
	target := table.Stacks()[f.Target]
	if target.Len() != 1 || target.Top() != f.Card {
		t.Fatalf("target stack %d has %d cards", f.Target, target.Len())
	}
	if f.Card.Stack() != f.Target {
		t.Errorf("card reports stack %d, want %d", f.Card.Stack(), f.Target)
	}
	if f.Card.Node.X != 0 || f.Card.Node.Y != 0 {
		t.Errorf("landed local position = (%v, %v), want (0, 0)", f.Card.Node.X, f.Card.Node.Y)
	}
	if f.Card.Node.Parent != target.Node {
		t.Error("landed card should be parented to its stack")
	}
	if table.Stacks()[0].Len() != 143 {
		t.Errorf("stack 0 has %d cards, want 143", table.Stacks()[0].Len())
	}
}

func TestLandingSlotUsesCountBeforeAppend(t *testing.T) {
	h := newHarness(5)
	table, err := New(h.ctx, manualConfig())
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 40; i++ {
		f := table.MoveTopCard()
		prev := table.Stacks()[f.Target].Len()
		want := table.StackBase(f.Target)
		want.Y += float64(prev) * 5
		if !near(f.To.X, want.X) || !near(f.To.Y, want.Y) {
			t.Fatalf("move %d: To = %v, want %v", i, f.To, want)
		}

		h.step(2 * time.Second)

		s := table.Stacks()[f.Target]
		if s.Len() != prev+1 {
			t.Fatalf("move %d: target has %d cards, want %d", i, s.Len(), prev+1)
		}
		if f.Card.Node.Y != float64(prev)*5 {
			t.Fatalf("move %d: landed at local y %v, want %v", i, f.Card.Node.Y, float64(prev)*5)
		}
		x, y := f.Card.Node.PositionIn(h.ctx.Layer)
		if !near(x, want.X) || !near(y, want.Y) {
			t.Fatalf("move %d: landed at (%v, %v) in layer, want %v", i, x, y, want)
		}
	}
}

func TestSourceNeverEqualsTarget(t *testing.T) {
	h := newHarness(11)
	cfg := manualConfig()
	cfg.Cards = 10
	table, err := New(h.ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 300; i++ {
		f := table.MoveTopCard()
		if f == nil {
			t.Fatalf("move %d: no flight with %d cards on the table", i, table.TotalCards())
		}
		if f.Source == f.Target {
			t.Fatalf("move %d: source == target == %d", i, f.Source)
		}
		// Source is the first non-empty stack.
		for _, s := range table.Stacks()[:f.Source] {
			if s.Len() != 0 {
				t.Fatalf("move %d: stack %d was non-empty but source was %d", i, s.Index, f.Source)
			}
		}
		h.step(2 * time.Second)
	}
}

func TestTimerDrivenConservesCards(t *testing.T) {
	h := newHarness(7)
	table, err := New(h.ctx, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}

	landed := 0
	table.OnLand = func(*Flight) { landed++ }
	maxAir := 0
	for i := 0; i < 300; i++ { // 30 seconds at 100ms
		h.step(100 * time.Millisecond)

		if table.TotalCards() != 144 {
			t.Fatalf("tick %d: TotalCards = %d, want 144", i, table.TotalCards())
		}
		for _, s := range table.Stacks() {
			for _, c := range s.Cards() {
				if c.Stack() != s.Index {
					t.Fatalf("tick %d: card in stack %d reports %d", i, s.Index, c.Stack())
				}
			}
		}
		for _, f := range table.InFlight() {
			if f.Card.Stack() != -1 {
				t.Fatalf("tick %d: flying card reports stack %d", i, f.Card.Stack())
			}
		}
		maxAir = max(maxAir, len(table.InFlight()))
	}
	if landed < 25 {
		t.Errorf("landed = %d after 30s, want at least 25", landed)
	}
	if maxAir < 2 {
		t.Errorf("max cards in flight = %d, want overlapping flights by default", maxAir)
	}
}

func TestExclusiveSkipsWhileAnimating(t *testing.T) {
	h := newHarness(9)
	cfg := manualConfig()
	cfg.Exclusive = true
	table, err := New(h.ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}

	if table.MoveTopCard() == nil {
		t.Fatal("first move should start")
	}
	if table.MoveTopCard() != nil {
		t.Error("second move should be skipped while a card is in flight")
	}
	h.step(2 * time.Second)
	if table.MoveTopCard() == nil {
		t.Error("move should start once the flight landed")
	}
}

func TestMoveTopCardEmptyTable(t *testing.T) {
	h := newHarness(1)
	cfg := manualConfig()
	cfg.Cards = 0
	table, err := New(h.ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if table.MoveTopCard() != nil {
		t.Error("no flight expected with every stack empty")
	}
}

func TestCancelledTimersStopRelocation(t *testing.T) {
	h := newHarness(2)
	table, err := New(h.ctx, DefaultConfig())
	if err != nil {
		t.Fatal(err)
	}
	h.step(time.Second)
	if !table.Animating() {
		t.Fatal("timer should have started a flight")
	}

	h.ctx.Timers.CancelAll()
	f := table.InFlight()[0]
	x, y := f.Card.Node.X, f.Card.Node.Y
	h.step(5 * time.Second)

	if f.Card.Node.X != x || f.Card.Node.Y != y {
		t.Error("flight advanced after its callbacks were cancelled")
	}
	if table.Stacks()[0].Len() != 143 {
		t.Errorf("stack 0 has %d cards, want 143", table.Stacks()[0].Len())
	}
}

func TestShadowUnderFace(t *testing.T) {
	h := newHarness(1)
	cfg := manualConfig()
	cfg.Cards = 1
	table, err := New(h.ctx, cfg)
	if err != nil {
		t.Fatal(err)
	}
	card := table.Stacks()[0].Top()
	if card.Node.NumChildren() != 2 {
		t.Fatalf("card has %d children, want shadow + face", card.Node.NumChildren())
	}
	shadow, face := card.Node.ChildAt(0), card.Node.ChildAt(1)
	if shadow.Alpha != 0.4 || shadow.Color != showcase.ColorBlack {
		t.Errorf("shadow alpha=%v color=%v", shadow.Alpha, shadow.Color)
	}
	if face.Color != card.Tint {
		t.Error("face should carry the card tint")
	}
	w, hgt := face.Size()
	if w != 100 || hgt != 120 {
		t.Errorf("face size = %vx%v, want 100x120", w, hgt)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := map[string]func(*Config){
		"one stack":     func(c *Config) { c.Stacks = 1 },
		"negative deck": func(c *Config) { c.Cards = -1 },
		"zero width":    func(c *Config) { c.CardWidth = 0 },
		"zero interval": func(c *Config) { c.MoveInterval = 0 },
		"zero duration": func(c *Config) { c.Duration = 0 },
	}
	for name, mutate := range tests {
		cfg := DefaultConfig()
		mutate(&cfg)
		if err := cfg.Validate(); !errors.Is(err, ErrConfig) {
			t.Errorf("%s: Validate = %v, want ErrConfig", name, err)
		}
	}
	if err := DefaultConfig().Validate(); err != nil {
		t.Errorf("default config invalid: %v", err)
	}
}
