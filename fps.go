package showcase

import (
	"fmt"
)

// NewFPSCounter creates a text node showing "FPS: N", where N is the number
// of frames reported by frames during the last full second. The text is
// refreshed once per elapsed second of update time.
func NewFPSCounter(font *Font, frames func() uint64) *Node {
	node := NewText("fps", "FPS: 0", font)

	var elapsed float64
	var lastFrames uint64
	started := false

	node.OnUpdate = func(dt float64) {
		if !started {
			lastFrames = frames()
			started = true
		}
		elapsed += dt
		if elapsed < 1 {
			return
		}
		now := frames()
		node.TextBlock.SetContent(fmt.Sprintf("FPS: %d", now-lastFrames))
		lastFrames = now
		elapsed = 0
	}

	return node
}
