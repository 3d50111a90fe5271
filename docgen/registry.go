package docgen

import (
	"fmt"
	"sync"
)

// FragmentRenderer produces a positioned markup fragment for one resolved
// field, using the given transform for all geometry.
type FragmentRenderer func(t Transform, field ResolvedField) Node

// FragmentRegistry dispatches field kinds to fragment renderers. Kinds
// without an entry fall back to the text renderer; that fallback is a
// documented contract, change it deliberately.
type FragmentRegistry struct {
	mu        sync.RWMutex
	renderers map[FieldKind]FragmentRenderer
	fallback  FragmentRenderer
}

// NewFragmentRegistry creates a registry preloaded with the built-in
// text, checkbox, and table renderers.
func NewFragmentRegistry() *FragmentRegistry {
	r := &FragmentRegistry{renderers: make(map[FieldKind]FragmentRenderer)}
	r.fallback = renderTextFragment
	r.renderers[KindText] = renderTextFragment
	r.renderers[KindCheckbox] = renderCheckboxFragment
	r.renderers[KindTable] = renderTableFragment
	return r
}

// Register replaces the renderer for a kind.
func (r *FragmentRegistry) Register(kind FieldKind, renderer FragmentRenderer) error {
	if renderer == nil {
		return NewError(KindValidation, fmt.Sprintf("renderer for kind %d is required", kind), nil)
	}
	r.mu.Lock()
	r.renderers[kind] = renderer
	r.mu.Unlock()
	return nil
}

// Resolve returns the renderer for a kind, falling back to text.
func (r *FragmentRegistry) Resolve(kind FieldKind) FragmentRenderer {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if renderer, ok := r.renderers[kind]; ok {
		return renderer
	}
	return r.fallback
}
