// Package flame implements the "Phoenix Flame" scene: a fixed pool of
// sprites that rise from the bottom edge, drift sideways and fade out, and
// are recycled in place once they expire.
package flame

import (
	"errors"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/showcase"
)

// Config holds the emitter constants. Motion values are per update tick.
type Config struct {
	Pool     int            `yaml:"pool"`
	Rise     float64        `yaml:"rise"`  // upward speed
	Drift    float64        `yaml:"drift"` // max sideways step either way
	Fade     float64        `yaml:"fade"`  // opacity lost per tick
	Opacity  showcase.Range `yaml:"opacity"`
	Scale    showcase.Range `yaml:"scale"`
	MaxAge   showcase.Range `yaml:"max_age"`
	Textures []string       `yaml:"textures"` // asset aliases
}

// DefaultConfig returns the reference emitter: ten particles, six textures.
func DefaultConfig() Config {
	return Config{
		Pool:     10,
		Rise:     5,
		Drift:    0.25,
		Fade:     0.02,
		Opacity:  showcase.Range{Min: 0.5, Max: 1},
		Scale:    showcase.Range{Min: 0.5, Max: 1},
		MaxAge:   showcase.Range{Min: 50, Max: 100},
		Textures: []string{"fire1", "fire2", "fire3", "fire4", "fire5", "fire6"},
	}
}

// ErrConfig is wrapped by every Validate failure.
var ErrConfig = errors.New("flame: invalid config")

// Validate reports the first unusable setting.
func (c Config) Validate() error {
	switch {
	case c.Pool < 1:
		return fmt.Errorf("%w: pool = %d", ErrConfig, c.Pool)
	case len(c.Textures) == 0:
		return fmt.Errorf("%w: no textures", ErrConfig)
	case c.Fade <= 0:
		return fmt.Errorf("%w: fade must be positive", ErrConfig)
	case c.MaxAge.Min < 1 || c.MaxAge.Max < c.MaxAge.Min:
		return fmt.Errorf("%w: max_age %v", ErrConfig, c.MaxAge)
	case c.Opacity.Min <= 0 || c.Opacity.Max > 1 || c.Opacity.Max < c.Opacity.Min:
		return fmt.Errorf("%w: opacity %v", ErrConfig, c.Opacity)
	case c.Scale.Min <= 0 || c.Scale.Max < c.Scale.Min:
		return fmt.Errorf("%w: scale %v", ErrConfig, c.Scale)
	}
	return nil
}

// Particle is one pooled sprite. Position and opacity live on Node.
type Particle struct {
	Node   *showcase.Node
	Age    int
	MaxAge int
	// Resets counts how many times the particle has been recycled.
	Resets int
}

// Fire is the scene state: the pool and the emitter bounds.
type Fire struct {
	cfg       Config
	ctx       *showcase.SceneContext
	particles []*Particle
	textures  []*ebiten.Image
}

// New fills the pool inside ctx.Layer and registers the per-tick update.
func New(ctx *showcase.SceneContext, cfg Config) (*Fire, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	textures, err := ctx.Assets.Images(cfg.Textures...)
	if err != nil {
		return nil, fmt.Errorf("flame: %w", err)
	}

	f := &Fire{cfg: cfg, ctx: ctx, textures: textures}
	f.particles = make([]*Particle, cfg.Pool)
	for i := range f.particles {
		img := showcase.Pick(ctx.Rand, textures)
		n := showcase.NewSprite(fmt.Sprintf("particle%d", i), img)
		n.SetAnchor(0.5, 0.5)
		p := &Particle{
			Node:   n,
			MaxAge: int(cfg.MaxAge.Random(ctx.Rand)),
		}
		f.Reset(p)
		p.Resets = 0
		ctx.Layer.AddChild(n)
		f.particles[i] = p
	}

	ctx.Timers.Add(func(float64) { f.Update() })
	return f, nil
}

// Particles returns the pool. The slice MUST NOT be mutated.
func (f *Fire) Particles() []*Particle {
	return f.particles
}

// Len returns the pool size.
func (f *Fire) Len() int {
	return len(f.particles)
}

// Reset returns p to the bottom edge at a random x with fresh opacity and
// scale. MaxAge and the texture are kept.
func (f *Fire) Reset(p *Particle) {
	p.Node.SetPosition(f.ctx.Rand.Float64()*f.ctx.Width, f.ctx.Height)
	p.Node.SetAlpha(f.cfg.Opacity.Random(f.ctx.Rand))
	s := f.cfg.Scale.Random(f.ctx.Rand)
	p.Node.SetScale(s, s)
	p.Age = 0
	p.Resets++
}

// Update advances every particle by one tick.
func (f *Fire) Update() {
	for _, p := range f.particles {
		f.step(p)
	}
}

func (f *Fire) step(p *Particle) {
	p.Age++
	n := p.Node
	drift := (f.ctx.Rand.Float64()*2 - 1) * f.cfg.Drift
	n.SetPosition(n.X+drift, n.Y-f.cfg.Rise)
	n.SetAlpha(n.Alpha - f.cfg.Fade)

	if p.Age >= p.MaxAge || n.Alpha <= 0 {
		f.Reset(p)
	}
}
