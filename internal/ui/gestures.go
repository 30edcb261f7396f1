package ui

import (
	"sync"
	"time"

	"fyne.io/fyne/v2"

	"github.com/ytget/otp-grid/internal/reorder"
)

// Gesture thresholds constants
const (
	DefaultLongPressDuration         = 500 * time.Millisecond
	DefaultMovementTolerance float32 = 10
)

// LongPressRecognizer turns raw press, move and release input into long-press
// phases. Movement beyond the tolerance before the delay elapses turns the
// press into a pan instead.
type LongPressRecognizer struct {
	onPhase func(reorder.Phase, fyne.Position)
	onPan   func(fyne.Delta)

	// dispatch runs timer callbacks back on the UI loop
	dispatch func(func())

	mu        sync.Mutex
	delay     time.Duration
	tolerance float32

	pressing   bool
	recognized bool
	panning    bool
	start      fyne.Position
	last       fyne.Position
	generation uint64
	timer      *time.Timer
}

// NewLongPressRecognizer creates a recognizer with the default delay
func NewLongPressRecognizer(onPhase func(reorder.Phase, fyne.Position), onPan func(fyne.Delta)) *LongPressRecognizer {
	return &LongPressRecognizer{
		onPhase:   onPhase,
		onPan:     onPan,
		dispatch:  fyne.Do,
		delay:     DefaultLongPressDuration,
		tolerance: DefaultMovementTolerance,
	}
}

// SetDelay changes the time a press must be held
func (r *LongPressRecognizer) SetDelay(d time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d > 0 {
		r.delay = d
	}
}

// Press starts tracking a new press at pos
func (r *LongPressRecognizer) Press(pos fyne.Position) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.resetLocked()
	r.pressing = true
	r.start = pos
	r.last = pos

	gen := r.generation
	r.timer = time.AfterFunc(r.delay, func() {
		r.dispatch(func() { r.fire(gen) })
	})
}

// Move reports the pointer at pos, delta being the movement since the last event
func (r *LongPressRecognizer) Move(pos fyne.Position, delta fyne.Delta) {
	r.mu.Lock()
	r.last = pos
	switch {
	case r.recognized:
		r.mu.Unlock()
		r.emit(reorder.PhaseChanged, pos)
		return
	case r.panning:
	case r.pressing && distance(r.start, pos) > r.tolerance:
		r.stopTimerLocked()
		r.pressing = false
		r.panning = true
	case !r.pressing:
		// Drag without a press event, e.g. desktop drags that start on a child
		r.panning = true
	default:
		r.mu.Unlock()
		return
	}
	r.mu.Unlock()

	if r.onPan != nil {
		r.onPan(delta)
	}
}

// Release ends the press
func (r *LongPressRecognizer) Release() {
	r.finish(reorder.PhaseEnded)
}

// Cancel aborts the press, e.g. when the system steals the touch
func (r *LongPressRecognizer) Cancel() {
	r.finish(reorder.PhaseCancelled)
}

// Recognized reports whether the current press became a long press
func (r *LongPressRecognizer) Recognized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.recognized
}

func (r *LongPressRecognizer) finish(phase reorder.Phase) {
	r.mu.Lock()
	recognized := r.recognized
	pos := r.last
	r.resetLocked()
	r.mu.Unlock()

	if recognized {
		r.emit(phase, pos)
	}
}

func (r *LongPressRecognizer) fire(gen uint64) {
	r.mu.Lock()
	if gen != r.generation || !r.pressing || r.recognized {
		r.mu.Unlock()
		return
	}
	r.recognized = true
	pos := r.last
	r.mu.Unlock()

	r.emit(reorder.PhaseBegan, pos)
}

func (r *LongPressRecognizer) emit(phase reorder.Phase, pos fyne.Position) {
	if r.onPhase != nil {
		r.onPhase(phase, pos)
	}
}

func (r *LongPressRecognizer) resetLocked() {
	r.stopTimerLocked()
	r.generation++
	r.pressing = false
	r.recognized = false
	r.panning = false
}

func (r *LongPressRecognizer) stopTimerLocked() {
	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
}

func distance(a, b fyne.Position) float32 {
	dx := a.X - b.X
	if dx < 0 {
		dx = -dx
	}
	dy := a.Y - b.Y
	if dy < 0 {
		dy = -dy
	}
	if dx > dy {
		return dx
	}
	return dy
}
