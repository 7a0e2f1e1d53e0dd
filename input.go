package showcase

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// HitRect is an axis-aligned rectangular hit area in local coordinates.
type HitRect struct {
	X, Y, Width, Height float64
}

// Contains reports whether (x, y) lies inside the rectangle.
func (r HitRect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

type keyBinding struct {
	key ebiten.Key
	fn  func()
}

type syntheticKind uint8

const (
	syntheticPointerDown syntheticKind = iota
	syntheticKeyPress
)

// syntheticEvent is a single injected input event. Pointer coordinates are
// surface (window) coordinates, identical to real mouse input.
type syntheticEvent struct {
	kind             syntheticKind
	screenX, screenY float64
	key              ebiten.Key
}

// BindKey runs fn whenever key is pressed. Later bindings for the same key
// run after earlier ones.
func (s *Stage) BindKey(key ebiten.Key, fn func()) {
	s.keys = append(s.keys, keyBinding{key: key, fn: fn})
}

// InjectClick queues a pointer press at the given surface coordinates. The
// event is consumed on the next frame's input pass.
func (s *Stage) InjectClick(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind:    syntheticPointerDown,
		screenX: x, screenY: y,
	})
}

// InjectKey queues a key press consumed on the next frame's input pass.
func (s *Stage) InjectKey(key ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{
		kind: syntheticKeyPress,
		key:  key,
	})
}

// PendingInput returns the number of injected events not yet consumed.
func (s *Stage) PendingInput() int {
	return len(s.injectQueue)
}

// processInput dispatches this frame's pointer presses and key presses.
// At most one injected event is consumed per frame.
func (s *Stage) processInput() {
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		s.dispatchPointer(float64(x), float64(y))
	}
	s.touchBuf = inpututil.AppendJustPressedTouchIDs(s.touchBuf[:0])
	for _, id := range s.touchBuf {
		x, y := ebiten.TouchPosition(id)
		s.dispatchPointer(float64(x), float64(y))
	}
	for _, b := range s.keys {
		if inpututil.IsKeyJustPressed(b.key) {
			b.fn()
		}
	}

	s.processInjectedInput()
}

// processInjectedInput consumes one queued synthetic event, reporting
// whether there was one.
func (s *Stage) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	ev := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	switch ev.kind {
	case syntheticPointerDown:
		s.dispatchPointer(ev.screenX, ev.screenY)
	case syntheticKeyPress:
		for _, b := range s.keys {
			if b.key == ev.key {
				b.fn()
			}
		}
	}
	return true
}

// dispatchPointer fires OnClick on the topmost interactable node under the
// surface point (x, y).
func (s *Stage) dispatchPointer(x, y float64) {
	updateWorldTransform(s.root, identityTransform, 1.0, false)
	hit := hitTest(s.root, x, y)
	if hit == nil || hit.OnClick == nil {
		return
	}
	lx, ly := hit.WorldToLocal(x, y)
	hit.OnClick(ClickContext{
		Node:    hit,
		GlobalX: x,
		GlobalY: y,
		LocalX:  lx,
		LocalY:  ly,
	})
}

// hitTest returns the topmost visible interactable node with a HitShape
// containing (x, y). Later children are tested before earlier ones and
// children before their parent.
func hitTest(n *Node, x, y float64) *Node {
	if !n.Visible {
		return nil
	}
	for i := len(n.children) - 1; i >= 0; i-- {
		if hit := hitTest(n.children[i], x, y); hit != nil {
			return hit
		}
	}
	if !n.Interactable || n.HitShape == nil {
		return nil
	}
	lx, ly := n.WorldToLocal(x, y)
	if n.HitShape.Contains(lx, ly) {
		return n
	}
	return nil
}
