package backend

import (
	"errors"

	"github.com/gogpu/textmesh"
	"github.com/gogpu/textmesh/glyphmap"
)

// Common backend errors.
var (
	// ErrBackendNotAvailable is returned when a requested backend is not available.
	ErrBackendNotAvailable = errors.New("backend: not available")
)

// Backend is a graphics context that can also upload glyph atlases.
//
// Backends must be registered via Register() and are selected via
// Get() or Default().
type Backend interface {
	textmesh.Context
	glyphmap.TextureMaker

	// Name returns the backend identifier (e.g., "headless", "wgpu").
	Name() string

	// Close releases all backend resources.
	// The backend should not be used after Close is called.
	Close()
}
