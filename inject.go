package moire

import "github.com/hajimehoshi/ebiten/v2"

// syntheticEvent is a single injected input event: a pointer sample or,
// when isKey is set, one key press.
type syntheticEvent struct {
	x, y    float64
	pressed bool
	isKey   bool
	key     ebiten.Key
}

// InjectPress queues a pointer press at the given canvas coordinates. The
// event is consumed on the next Update.
func (s *Scene) InjectPress(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectMove queues a pointer move with the button held down. Use this
// between InjectPress and InjectRelease to simulate a drag.
func (s *Scene) InjectMove(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y, pressed: true})
}

// InjectRelease queues a pointer release at the given canvas coordinates.
func (s *Scene) InjectRelease(x, y float64) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{x: x, y: y})
}

// InjectClick queues a press followed by a release at the same point.
// Consumes two frames.
func (s *Scene) InjectClick(x, y float64) {
	s.InjectPress(x, y)
	s.InjectRelease(x, y)
}

// InjectDrag queues a full drag: press at (fromX, fromY), frames-2
// linearly interpolated moves, and release at (toX, toY). Minimum frames
// is 2.
func (s *Scene) InjectDrag(fromX, fromY, toX, toY float64, frames int) {
	if frames < 2 {
		frames = 2
	}
	s.InjectPress(fromX, fromY)
	steps := frames - 2
	for i := 1; i <= steps; i++ {
		t := float64(i) / float64(steps+1)
		s.InjectMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
	s.InjectRelease(toX, toY)
}

// InjectKey queues one key press. Consumes one frame.
func (s *Scene) InjectKey(k ebiten.Key) {
	s.injectQueue = append(s.injectQueue, syntheticEvent{isKey: true, key: k})
}

// Injecting reports whether injected events are still queued. Real input
// is ignored while it is true.
func (s *Scene) Injecting() bool { return len(s.injectQueue) > 0 }

// processInjectedInput pops one event from the queue and feeds it through
// the same paths as real input. Returns true if an event was consumed.
func (s *Scene) processInjectedInput() bool {
	if len(s.injectQueue) == 0 {
		return false
	}
	evt := s.injectQueue[0]
	copy(s.injectQueue, s.injectQueue[1:])
	s.injectQueue = s.injectQueue[:len(s.injectQueue)-1]

	if evt.isKey {
		s.HandleKey(evt.key)
		return true
	}
	s.processPointer(Vec2{evt.x, evt.y}, evt.pressed)
	return true
}
