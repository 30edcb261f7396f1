package reorder

import (
	"log"
)

// LiftScale is the uniform scale applied to a lifted cell
const LiftScale float32 = 1.1

// Phase is a gesture recognizer phase
type Phase int

const (
	PhaseBegan Phase = iota
	PhaseChanged
	PhaseEnded
	PhaseCancelled
	PhaseFailed
)

// String returns the phase name
func (p Phase) String() string {
	switch p {
	case PhaseBegan:
		return "began"
	case PhaseChanged:
		return "changed"
	case PhaseEnded:
		return "ended"
	case PhaseCancelled:
		return "cancelled"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// State of the machine
type State int

const (
	StateIdle State = iota
	StateDragging
	StateSettling
)

// String returns the state name
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateDragging:
		return "dragging"
	case StateSettling:
		return "settling"
	default:
		return "unknown"
	}
}

// Point is a location in grid content coordinates
type Point struct {
	X, Y float32
}

// Cell is an opaque, non-owning handle to a rendered cell. Handles are only
// compared for equality; the rendering layer owns the cell's lifetime.
type Cell interface{}

// ScrollEdge selects which viewport edge a scrolled-to item aligns with
type ScrollEdge int

const (
	ScrollLeading ScrollEdge = iota
	ScrollTrailing
)

// View is the rendering surface the machine drives
type View interface {
	// IndexAt returns the slot under p, false when p is outside every cell
	IndexAt(p Point) (int, bool)
	// CellAt returns the cell currently showing index
	CellAt(index int) (Cell, bool)
	// Lift scales the cell up and raises it above its siblings
	Lift(cell Cell)
	// MoveItem animates the item at from into slot to, reflowing the rest
	MoveItem(from, to int)
	// ScrollTo scrolls index into view against the given edge
	ScrollTo(index int, edge ScrollEdge)
	// CenterAt centers the cell on p regardless of slots
	CenterAt(cell Cell, p Point)
	// Settle animates the cell into the resting position of index and drops
	// the lift. done is called once the animation completes.
	Settle(cell Cell, index int, done func())
	// Reload re-reads every cell from the data source
	Reload()
}

// Store is the backing order the machine commits to
type Store interface {
	Move(from, to int) error
}

// Session is an active drag
type Session struct {
	Origin  int
	Current int
	Cell    Cell
}

// Machine tracks at most one drag session
type Machine struct {
	view  View
	store Store

	state   State
	session *Session
}

// NewMachine creates an idle machine
func NewMachine(view View, store Store) *Machine {
	return &Machine{view: view, store: store}
}

// State returns the current state
func (m *Machine) State() State {
	return m.state
}

// Session returns a copy of the active session
func (m *Machine) Session() (Session, bool) {
	if m.session == nil {
		return Session{}, false
	}
	return *m.session, true
}

// Handle feeds one recognizer event into the machine
func (m *Machine) Handle(phase Phase, p Point) {
	switch phase {
	case PhaseBegan:
		m.begin(p)
	case PhaseChanged:
		m.change(p)
	case PhaseEnded:
		m.end()
	default:
		m.cancel()
	}
}

func (m *Machine) begin(p Point) {
	if m.session != nil {
		log.Printf("Drag begin ignored: session already %s", m.state)
		return
	}

	index, ok := m.view.IndexAt(p)
	if !ok {
		return
	}
	cell, ok := m.view.CellAt(index)
	if !ok {
		return
	}

	m.session = &Session{Origin: index, Current: index, Cell: cell}
	m.state = StateDragging
	m.view.Lift(cell)
}

func (m *Machine) change(p Point) {
	if m.state != StateDragging {
		return
	}

	index, ok := m.view.IndexAt(p)
	if !ok {
		return
	}

	s := m.session
	if index != s.Current {
		from := s.Current
		m.view.MoveItem(from, index)
		if from < index {
			m.view.ScrollTo(index, ScrollLeading)
		} else {
			m.view.ScrollTo(index, ScrollTrailing)
		}

		if err := m.store.Move(from, index); err != nil {
			log.Printf("Failed to move token %d -> %d: %v", from, index, err)
			m.cancel()
			return
		}

		// Moving the item resets its scale and paint order
		m.view.Lift(s.Cell)
		s.Current = index
	}

	m.view.CenterAt(s.Cell, p)
}

func (m *Machine) end() {
	if m.state != StateDragging {
		return
	}

	s := m.session
	m.state = StateSettling
	m.view.Settle(s.Cell, s.Current, func() {
		if m.session != s {
			return
		}
		m.session = nil
		m.state = StateIdle
	})

	m.view.Reload()
}

func (m *Machine) cancel() {
	m.session = nil
	m.state = StateIdle
	m.view.Reload()
}
