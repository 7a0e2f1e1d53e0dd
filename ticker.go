package showcase

import "time"

// Clock reports the current time. The stage reads it once per tick.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// SystemClock is the wall clock.
var SystemClock Clock = systemClock{}

// ManualClock is a Clock that only moves when told to. Useful in tests and
// for frame-stepped script runs.
type ManualClock struct {
	now time.Time
}

// NewManualClock returns a ManualClock starting at an arbitrary fixed instant.
func NewManualClock() *ManualClock {
	return &ManualClock{now: time.Unix(1_700_000_000, 0)}
}

// Now returns the clock's current time.
func (c *ManualClock) Now() time.Time { return c.now }

// Advance moves the clock forward by d.
func (c *ManualClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// Handle identifies a callback registered on a Ticker. The zero Handle is
// never issued.
type Handle uint64

type tickEntry struct {
	id Handle
	fn func(dt float64)
}

type timerEntry struct {
	id       Handle
	interval time.Duration
	next     time.Time
	fn       func()
}

// Ticker drives per-frame callbacks and fixed-period timers from a Clock.
// Callbacks added during a tick first run on the following tick. Removing a
// callback during a tick takes effect immediately.
type Ticker struct {
	clock   Clock
	last    time.Time
	started bool
	nextID  Handle

	tickers []tickEntry
	timers  []timerEntry
}

// NewTicker creates a ticker reading time from clock (SystemClock if nil).
func NewTicker(clock Clock) *Ticker {
	if clock == nil {
		clock = SystemClock
	}
	return &Ticker{clock: clock}
}

// Clock returns the ticker's time source.
func (t *Ticker) Clock() Clock {
	return t.clock
}

// Now is shorthand for t.Clock().Now().
func (t *Ticker) Now() time.Time {
	return t.clock.Now()
}

// Add registers fn to run once per tick with the elapsed seconds since the
// previous tick.
func (t *Ticker) Add(fn func(dt float64)) Handle {
	t.nextID++
	t.tickers = append(t.tickers, tickEntry{id: t.nextID, fn: fn})
	return t.nextID
}

// Every registers fn to run each time interval elapses. Firings are
// evaluated at tick time; a long stall fires the timer once per missed
// interval. Panics if interval is not positive.
func (t *Ticker) Every(interval time.Duration, fn func()) Handle {
	if interval <= 0 {
		panic("showcase: timer interval must be positive")
	}
	t.nextID++
	t.timers = append(t.timers, timerEntry{
		id:       t.nextID,
		interval: interval,
		next:     t.clock.Now().Add(interval),
		fn:       fn,
	})
	return t.nextID
}

// Cancel removes the callback or timer registered under h. Unknown handles
// are ignored.
func (t *Ticker) Cancel(h Handle) {
	for i := range t.tickers {
		if t.tickers[i].id == h {
			t.tickers[i].fn = nil
			return
		}
	}
	for i := range t.timers {
		if t.timers[i].id == h {
			t.timers[i].fn = nil
			return
		}
	}
}

// Active reports whether h is still registered.
func (t *Ticker) Active(h Handle) bool {
	for _, e := range t.tickers {
		if e.id == h {
			return e.fn != nil
		}
	}
	for _, e := range t.timers {
		if e.id == h {
			return e.fn != nil
		}
	}
	return false
}

// Len returns the number of registered callbacks and timers.
func (t *Ticker) Len() int {
	n := 0
	for _, e := range t.tickers {
		if e.fn != nil {
			n++
		}
	}
	for _, e := range t.timers {
		if e.fn != nil {
			n++
		}
	}
	return n
}

// Tick runs every per-frame callback, then every due timer, and returns the
// elapsed seconds since the previous tick (0 on the first tick).
func (t *Ticker) Tick() float64 {
	now := t.clock.Now()
	var dt float64
	if t.started {
		dt = now.Sub(t.last).Seconds()
	}
	t.started = true
	t.last = now

	n := len(t.tickers)
	for i := 0; i < n; i++ {
		if fn := t.tickers[i].fn; fn != nil {
			fn(dt)
		}
	}

	n = len(t.timers)
	for i := 0; i < n; i++ {
		for t.timers[i].fn != nil && !now.Before(t.timers[i].next) {
			t.timers[i].next = t.timers[i].next.Add(t.timers[i].interval)
			t.timers[i].fn()
		}
	}

	t.compact()
	return dt
}

// compact drops cancelled entries.
func (t *Ticker) compact() {
	tk := t.tickers[:0]
	for _, e := range t.tickers {
		if e.fn != nil {
			tk = append(tk, e)
		}
	}
	clear(t.tickers[len(tk):])
	t.tickers = tk

	tm := t.timers[:0]
	for _, e := range t.timers {
		if e.fn != nil {
			tm = append(tm, e)
		}
	}
	clear(t.timers[len(tm):])
	t.timers = tm
}

// TickerGroup scopes registrations on a Ticker so they can be cancelled
// together. Scenes register through a group owned by the router.
type TickerGroup struct {
	ticker  *Ticker
	handles []Handle
}

// NewGroup returns an empty group on t.
func (t *Ticker) NewGroup() *TickerGroup {
	return &TickerGroup{ticker: t}
}

// Ticker returns the underlying ticker.
func (g *TickerGroup) Ticker() *Ticker {
	return g.ticker
}

// Add registers a per-frame callback owned by the group.
func (g *TickerGroup) Add(fn func(dt float64)) Handle {
	h := g.ticker.Add(fn)
	g.handles = append(g.handles, h)
	return h
}

// Every registers a timer owned by the group.
func (g *TickerGroup) Every(interval time.Duration, fn func()) Handle {
	h := g.ticker.Every(interval, fn)
	g.handles = append(g.handles, h)
	return h
}

// Cancel removes a single registration made through the group.
func (g *TickerGroup) Cancel(h Handle) {
	for i, gh := range g.handles {
		if gh == h {
			g.ticker.Cancel(h)
			g.handles = append(g.handles[:i], g.handles[i+1:]...)
			return
		}
	}
}

// CancelAll removes every registration made through the group.
func (g *TickerGroup) CancelAll() {
	for _, h := range g.handles {
		g.ticker.Cancel(h)
	}
	g.handles = g.handles[:0]
}

// Len returns the number of live registrations made through the group.
func (g *TickerGroup) Len() int {
	return len(g.handles)
}
