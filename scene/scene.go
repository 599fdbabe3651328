// Package scene provides an entity registry implementing textmesh.Scene.
//
// A Scene references entities by handle; it never owns or releases them.
// Entities must be comparable, which every backend entity (a pointer) is.
package scene

import "github.com/gogpu/textmesh"

// Handle identifies an entity within one Scene. Handles are never reused.
type Handle uint64

// Scene is an insertion-ordered set of entities.
//
// Example:
//
//	s := scene.New()
//	label.AddToScene(s)
//	for _, e := range s.Visible() {
//		draw(e)
//	}
type Scene struct {
	// handles maps entities to their handle
	handles map[textmesh.Entity]Handle

	// entities maps handles back to entities
	entities map[Handle]textmesh.Entity

	// order holds live handles in insertion order
	order []Handle

	// next is the handle given to the next added entity
	next Handle

	// version is incremented on each modification for cache invalidation
	version uint64
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{
		handles:  make(map[textmesh.Entity]Handle),
		entities: make(map[Handle]textmesh.Entity),
		next:     1,
	}
}

// AddEntity registers e. Adding an entity already in the scene does
// nothing.
func (s *Scene) AddEntity(e textmesh.Entity) {
	if e == nil {
		return
	}
	if _, ok := s.handles[e]; ok {
		return
	}
	h := s.next
	s.next++
	s.handles[e] = h
	s.entities[h] = e
	s.order = append(s.order, h)
	s.version++
}

// RemoveEntity unregisters e. Removing an entity that is not in the scene
// does nothing.
func (s *Scene) RemoveEntity(e textmesh.Entity) {
	if e == nil {
		return
	}
	h, ok := s.handles[e]
	if !ok {
		return
	}
	delete(s.handles, e)
	delete(s.entities, h)
	for i, oh := range s.order {
		if oh == h {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
	s.version++
}

// Contains reports whether e is in the scene.
func (s *Scene) Contains(e textmesh.Entity) bool {
	_, ok := s.handles[e]
	return ok
}

// Handle returns the handle of e.
func (s *Scene) Handle(e textmesh.Entity) (Handle, bool) {
	h, ok := s.handles[e]
	return h, ok
}

// Lookup returns the entity registered under h.
func (s *Scene) Lookup(h Handle) (textmesh.Entity, bool) {
	e, ok := s.entities[h]
	return e, ok
}

// Len returns the number of entities in the scene.
func (s *Scene) Len() int {
	return len(s.order)
}

// Entities returns all entities in insertion order.
func (s *Scene) Entities() []textmesh.Entity {
	out := make([]textmesh.Entity, 0, len(s.order))
	for _, h := range s.order {
		out = append(out, s.entities[h])
	}
	return out
}

// Visible returns the entities that are not hidden, in insertion order.
func (s *Scene) Visible() []textmesh.Entity {
	out := make([]textmesh.Entity, 0, len(s.order))
	for _, h := range s.order {
		if e := s.entities[h]; !e.IsHidden() {
			out = append(out, e)
		}
	}
	return out
}

// Clear removes every entity. Handles keep counting from where they were.
func (s *Scene) Clear() {
	if len(s.order) == 0 {
		return
	}
	clear(s.handles)
	clear(s.entities)
	s.order = s.order[:0]
	s.version++
}

// Version returns a counter that changes whenever the entity set changes.
func (s *Scene) Version() uint64 {
	return s.version
}
