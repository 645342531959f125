package ring

import (
	"github.com/google/uuid"

	"github.com/navicore/xedit/internal/xedit/editor"
	xerrors "github.com/navicore/xedit/internal/xedit/errors"
)

// entry pairs an Editor with the identifier that survives reordering.
type entry struct {
	id uuid.UUID
	ed *editor.Editor
}

// Ring holds every open Editor and tracks which one is current. A Go
// pointer is already mutable through a shared reference, so unlike the
// original's current()/current_mut() split this exposes one accessor.
type Ring struct {
	entries []entry
	current int
}

// New returns an empty ring.
func New() *Ring {
	return &Ring{}
}

// AddEmpty appends a fresh, unbound Editor and makes it current.
func (r *Ring) AddEmpty() *editor.Editor {
	ed := editor.New()
	r.entries = append(r.entries, entry{id: uuid.New(), ed: ed})
	r.current = len(r.entries) - 1
	return ed
}

// AddFile loads path into a fresh Editor, appends it, and makes it
// current. The ring is left unchanged if the load fails.
func (r *Ring) AddFile(path string) (*editor.Editor, error) {
	ed := editor.New()
	if err := ed.LoadFile(path); err != nil {
		return nil, err
	}
	r.entries = append(r.entries, entry{id: uuid.New(), ed: ed})
	r.current = len(r.entries) - 1
	return ed, nil
}

// Current returns the active Editor, or false if the ring is empty.
func (r *Ring) Current() (*editor.Editor, bool) {
	if r.current < 0 || r.current >= len(r.entries) {
		return nil, false
	}
	return r.entries[r.current].ed, true
}

// CurrentID returns the stable identifier of the active slot.
func (r *Ring) CurrentID() (uuid.UUID, bool) {
	if r.current < 0 || r.current >= len(r.entries) {
		return uuid.UUID{}, false
	}
	return r.entries[r.current].id, true
}

// Find returns the Editor bound to id, regardless of its current index.
func (r *Ring) Find(id uuid.UUID) (*editor.Editor, bool) {
	for _, e := range r.entries {
		if e.id == id {
			return e.ed, true
		}
	}
	return nil, false
}

// CycleNext advances to the next slot, wrapping past the last.
func (r *Ring) CycleNext() error {
	if len(r.entries) == 0 {
		return xerrors.ErrNoFile()
	}
	r.current = (r.current + 1) % len(r.entries)
	return nil
}

// Prev moves to the previous slot, wrapping before the first.
func (r *Ring) Prev() error {
	if len(r.entries) == 0 {
		return xerrors.ErrNoFile()
	}
	if r.current == 0 {
		r.current = len(r.entries) - 1
	} else {
		r.current--
	}
	return nil
}

// RemoveCurrent drops the active slot. It is a no-op on an empty ring.
func (r *Ring) RemoveCurrent() {
	if len(r.entries) == 0 {
		return
	}
	r.entries = append(r.entries[:r.current], r.entries[r.current+1:]...)
	if r.current >= len(r.entries) && len(r.entries) > 0 {
		r.current = len(r.entries) - 1
	}
}

// Len returns the number of open editors.
func (r *Ring) Len() int { return len(r.entries) }

// IsEmpty reports whether the ring holds no editors.
func (r *Ring) IsEmpty() bool { return len(r.entries) == 0 }

// CurrentIndex returns the active slot's position.
func (r *Ring) CurrentIndex() int { return r.current }
