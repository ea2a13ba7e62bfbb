// Package comments manages the lifecycle of the third-party comment widget
// shown under a post. The widget itself is opaque; this package only makes
// sure it is attached once and detached once per page mount.
package comments

import (
	"errors"
	"sync"
)

var (
	// ErrAlreadyAttached is returned by Attach on a mount that is already attached.
	ErrAlreadyAttached = errors.New("comments: widget already attached")
	// ErrNotAttached is returned by Detach on a mount that is not attached.
	ErrNotAttached = errors.New("comments: widget not attached")
)

// Widget is an external comment widget bound to a container and a page path.
type Widget interface {
	Attach(container, path string) error
	Detach() error
}

// Mount enforces one Attach followed by one Detach on a Widget.
type Mount struct {
	mu       sync.Mutex
	widget   Widget
	attached bool
}

// NewMount wraps w.
func NewMount(w Widget) *Mount {
	return &Mount{widget: w}
}

// Attach binds the widget to container for path. A failed attach leaves the
// mount detached.
func (m *Mount) Attach(container, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.attached {
		return ErrAlreadyAttached
	}
	if err := m.widget.Attach(container, path); err != nil {
		return err
	}
	m.attached = true
	return nil
}

// Detach releases the widget.
func (m *Mount) Detach() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if !m.attached {
		return ErrNotAttached
	}
	m.attached = false
	return m.widget.Detach()
}

// Attached reports whether the widget is currently attached.
func (m *Mount) Attached() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.attached
}
