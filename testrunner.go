package showcase

import (
	"encoding/json"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string     `json:"action"`
	Label  string     `json:"label,omitempty"`
	X      float64    `json:"x,omitempty"`
	Y      float64    `json:"y,omitempty"`
	Key    ebiten.Key `json:"key,omitempty"`
	Frames int        `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input events and screenshots across frames
// for automated visual checks. Attach to a Stage via SetTestRunner.
//
// Supported actions: "click" (x, y in surface pixels), "key" (an
// Ebitengine key name such as "Digit1" or "Escape"), "wait" (frames) and
// "screenshot" (label).
type TestRunner struct {
	steps     []testStep
	cursor    int
	waitCount int
	done      bool
}

// LoadTestScript parses a JSON test script and returns a TestRunner ready
// to be attached to a Stage via SetTestRunner.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "key", "wait", "screenshot":
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return &TestRunner{steps: script.Steps}, nil
}

// SetTestRunner attaches a TestRunner to the stage. The runner's step method
// is called from Stage.Update before input is processed each frame. When
// exitWhenDone is set, Update returns ebiten.Termination once the script
// has finished and its screenshots are written.
func (s *Stage) SetTestRunner(runner *TestRunner, exitWhenDone bool) {
	s.testRunner = runner
	s.exitOnScriptEnd = exitWhenDone
}

// Done reports whether all steps in the test script have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the test runner by one frame. Called from Stage.Update.
func (r *TestRunner) step(s *Stage) {
	if r.done {
		return
	}
	// Wait for pending injections to drain before advancing.
	if len(s.injectQueue) > 0 {
		return
	}
	if r.waitCount > 0 {
		r.waitCount--
		return
	}
	if r.cursor >= len(r.steps) {
		r.done = true
		return
	}

	st := r.steps[r.cursor]
	r.cursor++

	switch st.Action {
	case "screenshot":
		s.Screenshot(st.Label)
	case "click":
		s.InjectClick(st.X, st.Y)
	case "key":
		s.InjectKey(st.Key)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
