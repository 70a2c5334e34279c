package session

import (
	"sync"

	"github.com/google/uuid"
)

// Handle stands for an image blob while it is on display.
type Handle struct {
	ID    string
	Owner string
	Blob  []byte
}

// Handles tracks live display handles, at most one per owner.
type Handles struct {
	mu   sync.Mutex
	live map[string]*Handle
}

// NewHandles returns an empty registry.
func NewHandles() *Handles {
	return &Handles{live: make(map[string]*Handle)}
}

// Acquire creates a handle for blob owned by owner. Any handle the owner
// already holds is released first.
func (h *Handles) Acquire(owner string, blob []byte) *Handle {
	h.mu.Lock()
	defer h.mu.Unlock()

	delete(h.live, owner)
	handle := &Handle{ID: "blob:" + uuid.NewString(), Owner: owner, Blob: blob}
	h.live[owner] = handle
	return handle
}

// Lookup returns the owner's live handle.
func (h *Handles) Lookup(owner string) (*Handle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	handle, ok := h.live[owner]
	return handle, ok
}

// Release drops the owner's handle and reports whether there was one.
func (h *Handles) Release(owner string) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	_, ok := h.live[owner]
	delete(h.live, owner)
	return ok
}

// ReleaseAll drops every handle.
func (h *Handles) ReleaseAll() {
	h.mu.Lock()
	defer h.mu.Unlock()
	clear(h.live)
}

// Len returns the number of live handles.
func (h *Handles) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.live)
}
