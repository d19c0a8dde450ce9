package moire

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
)

// testStep represents a single action in a test script.
type testStep struct {
	Action string  `json:"action"`
	Key    string  `json:"key,omitempty"`
	Kind   string  `json:"kind,omitempty"`
	X      float64 `json:"x,omitempty"`
	Y      float64 `json:"y,omitempty"`
	FromX  float64 `json:"fromX,omitempty"`
	FromY  float64 `json:"fromY,omitempty"`
	ToX    float64 `json:"toX,omitempty"`
	ToY    float64 `json:"toY,omitempty"`
	Frames int     `json:"frames,omitempty"`
}

// testScript is the top-level JSON structure for a test script.
type testScript struct {
	Steps []testStep `json:"steps"`
}

// TestRunner sequences injected input and saves across frames for
// scripted sessions. Attach to a Scene via SetTestRunner.
type TestRunner struct {
	steps     []testStep
	keys      []ebiten.Key // resolved key per step
	kinds     []GridKind   // resolved kind per step
	cursor    int
	waitCount int
	done      bool
}

// parseKey resolves an ebiten key name such as "A", "Digit1" or
// "ArrowUp", case-insensitively.
func parseKey(name string) (ebiten.Key, error) {
	for k := ebiten.Key(0); k <= ebiten.KeyMax; k++ {
		if strings.EqualFold(k.String(), name) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown key %q", name)
}

// LoadTestScript parses a JSON test script. Actions are click, drag, key,
// grid, mode, wait, save and screenshot.
func LoadTestScript(jsonData []byte) (*TestRunner, error) {
	var script testScript
	if err := json.Unmarshal(jsonData, &script); err != nil {
		return nil, fmt.Errorf("parse test script: %w", err)
	}
	if len(script.Steps) == 0 {
		return nil, fmt.Errorf("parse test script: no steps")
	}
	r := &TestRunner{
		steps: script.Steps,
		keys:  make([]ebiten.Key, len(script.Steps)),
		kinds: make([]GridKind, len(script.Steps)),
	}
	for i, st := range script.Steps {
		switch st.Action {
		case "click", "drag", "wait", "save", "screenshot", "mode":
		case "key":
			k, err := parseKey(st.Key)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			r.keys[i] = k
		case "grid":
			kind, err := ParseGridKind(st.Kind)
			if err != nil {
				return nil, fmt.Errorf("parse test script: step %d: %w", i, err)
			}
			r.kinds[i] = kind
		default:
			return nil, fmt.Errorf("parse test script: step %d: unknown action %q", i, st.Action)
		}
	}
	return r, nil
}

// SetTestRunner attaches a TestRunner to the scene. Its step method runs
// at the start of every Update.
func (s *Scene) SetTestRunner(runner *TestRunner) {
	s.testRunner = runner
}

// Done reports whether all steps have been executed.
func (r *TestRunner) Done() bool {
	return r.done
}

// step advances the runner by one frame. Called from Scene.Update.
func (r *TestRunner) step(s *Scene) {
	if r.done {
		return
	}
	// Let pending injections and saves drain before advancing.
	if len(s.injectQueue) > 0 || s.SavePending() {
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

	i := r.cursor
	st := r.steps[i]
	r.cursor++

	switch st.Action {
	case "click":
		s.InjectClick(st.X, st.Y)
	case "drag":
		s.InjectDrag(st.FromX, st.FromY, st.ToX, st.ToY, st.Frames)
	case "key":
		s.InjectKey(r.keys[i])
	case "grid":
		s.SelectKind(r.kinds[i])
	case "mode":
		s.ToggleMode()
	case "save":
		s.RequestSave(false)
	case "screenshot":
		s.RequestSave(true)
	case "wait":
		if st.Frames > 0 {
			r.waitCount = st.Frames - 1 // this frame counts as one
		}
	}

	if r.cursor >= len(r.steps) && r.waitCount == 0 && len(s.injectQueue) == 0 {
		r.done = true
	}
}
