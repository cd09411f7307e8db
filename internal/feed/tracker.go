// Package feed derives which card of the vertical feed is in view.
//
// Every card occupies exactly one viewport height, so the active card is the
// scroll offset divided by the viewport height, rounded to the nearest card.
package feed

import "math"

// Index computes the active card for a scroll offset.
// ok is false when the item height is not yet known (zero or negative).
func Index(offset, itemHeight float64) (index int, ok bool) {
	if itemHeight <= 0 || math.IsNaN(offset) || math.IsInf(offset, 0) {
		return 0, false
	}
	if offset < 0 {
		offset = 0
	}
	return int(math.Round(offset / itemHeight)), true
}

// ScrollSource is anything that scrolls and can notify listeners when it does
type ScrollSource interface {
	ScrollOffset() float64
	ViewportHeight() float64
	// Subscribe registers fn for scroll events and returns the function that removes it
	Subscribe(fn func()) (unsubscribe func())
}

// Tracker follows a scroll source and reports the active card index
type Tracker struct {
	source   ScrollSource
	release  func()
	active   int
	onChange func(index int)
}

// NewTracker creates a tracker. onChange may be nil.
func NewTracker(onChange func(index int)) *Tracker {
	return &Tracker{onChange: onChange}
}

// Attach binds the tracker to src, releasing any previous binding first.
// Attaching nil is equivalent to Detach.
func (t *Tracker) Attach(src ScrollSource) {
	t.Detach()
	if src == nil {
		return
	}
	t.source = src
	t.release = src.Subscribe(t.HandleScroll)
}

// Detach releases the current scroll source, if any. Safe to call repeatedly.
func (t *Tracker) Detach() {
	if t.release != nil {
		t.release()
	}
	t.release = nil
	t.source = nil
}

// Attached reports whether a scroll source is currently bound
func (t *Tracker) Attached() bool {
	return t.source != nil
}

// Active returns the last reported index
func (t *Tracker) Active() int {
	return t.active
}

// Reset moves the reported index back to the first card without notifying
func (t *Tracker) Reset() {
	t.active = 0
}

// HandleScroll recomputes the index from the bound source.
// It is a no-op while unbound or before the viewport has a height.
func (t *Tracker) HandleScroll() {
	if t.source == nil {
		return
	}
	idx, ok := Index(t.source.ScrollOffset(), t.source.ViewportHeight())
	if !ok || idx == t.active {
		return
	}
	t.active = idx
	if t.onChange != nil {
		t.onChange(idx)
	}
}
