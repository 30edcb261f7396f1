package present

import (
	"fmt"
	"sync"
)

// Factory builds a new screen instance
type Factory func() Screen

// MapRegistry is a Registry backed by named factories
type MapRegistry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewMapRegistry creates an empty registry
func NewMapRegistry() *MapRegistry {
	return &MapRegistry{factories: make(map[string]Factory)}
}

// Register adds or replaces the factory for name
func (m *MapRegistry) Register(name string, factory Factory) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.factories[name] = factory
}

// Instantiate builds the screen registered under name
func (m *MapRegistry) Instantiate(name string) (Screen, error) {
	m.mu.RLock()
	factory, ok := m.factories[name]
	m.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%s: %w", name, ErrUnknownTarget)
	}
	return factory(), nil
}
