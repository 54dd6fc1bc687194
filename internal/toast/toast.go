// Package toast provides a bounded notification queue with delayed removal.
package toast

import (
	"time"
)

// Variant selects how a toast is presented.
type Variant string

const (
	// VariantDefault is an informational toast.
	VariantDefault Variant = "default"
	// VariantDestructive signals a failure.
	VariantDestructive Variant = "destructive"
)

// Action is an optional call-to-action attached to a toast.
type Action struct {
	Label   string
	AltText string
	Handler func()
}

// Props are the caller-supplied fields of a new toast.
type Props struct {
	Title       string
	Description string
	Variant     Variant
	Action      *Action
	Fields      map[string]any // Free-form caller data, carried as-is
}

// Toast is a single queued notification.
type Toast struct {
	ID          string
	Title       string
	Description string
	Variant     Variant
	Action      *Action
	Fields      map[string]any
	Open        bool
	CreatedAt   time.Time

	// OnOpenChange dismisses the toast when called with false.
	OnOpenChange func(open bool)
}

// Patch holds a partial update. Nil fields are left untouched; Fields is
// merged key by key.
type Patch struct {
	Title       *string
	Description *string
	Variant     *Variant
	Action      *Action
	Fields      map[string]any
}

// apply merges p into t.
func (p Patch) apply(t *Toast) {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.Variant != nil {
		t.Variant = *p.Variant
	}
	if p.Action != nil {
		t.Action = p.Action
	}
	if len(p.Fields) > 0 {
		merged := make(map[string]any, len(t.Fields)+len(p.Fields))
		for k, v := range t.Fields {
			merged[k] = v
		}
		for k, v := range p.Fields {
			merged[k] = v
		}
		t.Fields = merged
	}
}

// clone returns a copy that does not share the Fields map.
func (t Toast) clone() Toast {
	if t.Fields != nil {
		fields := make(map[string]any, len(t.Fields))
		for k, v := range t.Fields {
			fields[k] = v
		}
		t.Fields = fields
	}
	return t
}

// Handle is returned by Queue.Toast and controls the created toast.
type Handle struct {
	ID string
	q  *Queue
}

// Dismiss closes the toast and schedules its removal.
func (h Handle) Dismiss() {
	h.q.Dismiss(h.ID)
}

// Update merges p into the toast.
func (h Handle) Update(p Patch) {
	h.q.Update(h.ID, p)
}
