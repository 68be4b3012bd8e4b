// Package schedule decides whether a switchable, time-bounded document is
// currently eligible for display.
package schedule

import (
	"errors"
	"time"
)

// ErrInvalidWindow indicates an end instant that is not after the start.
var ErrInvalidWindow = errors.New("end must be after start")

// Window bounds eligibility in time. Start is inclusive, End is exclusive.
// A nil bound is open.
type Window struct {
	Start *time.Time `json:"start_at,omitempty"`
	End   *time.Time `json:"end_at,omitempty"`
}

// Schedulable is anything carrying an enabled switch and an optional window.
type Schedulable interface {
	IsEnabled() bool
	Window() Window
}

// IsEligible reports whether e should be shown at now.
func IsEligible(e Schedulable, now time.Time) bool {
	if !e.IsEnabled() {
		return false
	}
	return e.Window().Contains(now)
}

// Contains reports whether now falls inside the window.
func (w Window) Contains(now time.Time) bool {
	if w.Start != nil && now.Before(*w.Start) {
		return false
	}
	if w.End != nil && !now.Before(*w.End) {
		return false
	}
	return true
}

// Validate checks that End is strictly later than Start when both are set.
func (w Window) Validate() error {
	if w.Start != nil && w.End != nil && !w.End.After(*w.Start) {
		return ErrInvalidWindow
	}
	return nil
}

// IsOpen reports whether neither bound is set.
func (w Window) IsOpen() bool {
	return w.Start == nil && w.End == nil
}

// Intersect returns the window during which every input window holds:
// the latest start and the earliest end.
func Intersect(windows ...Window) Window {
	var out Window
	for _, w := range windows {
		if w.Start != nil && (out.Start == nil || w.Start.After(*out.Start)) {
			start := *w.Start
			out.Start = &start
		}
		if w.End != nil && (out.End == nil || w.End.Before(*out.End)) {
			end := *w.End
			out.End = &end
		}
	}
	return out
}
