package reservation

import (
	"fmt"
	"time"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

// Window is a half-open interval [Start, End) within one calendar day.
// Times are wall-clock values; no timezone conversion is applied anywhere.
type Window struct {
	Start time.Time
	End   time.Time
}

// NewWindow builds a window on day from two HH:MM times of day.
func NewWindow(day time.Time, from, to string) (Window, error) {
	start, err := At(day, from)
	if err != nil {
		return Window{}, err
	}
	end, err := At(day, to)
	if err != nil {
		return Window{}, err
	}
	w := Window{Start: start, End: end}
	if err := w.Validate(); err != nil {
		return Window{}, err
	}
	return w, nil
}

// At combines a calendar day with an HH:MM time of day.
func At(day time.Time, clock string) (time.Time, error) {
	tod, err := time.Parse(TimeLayout, clock)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: time %q is not HH:MM", ErrInvalidWindow, clock)
	}
	return time.Date(day.Year(), day.Month(), day.Day(), tod.Hour(), tod.Minute(), 0, 0, time.UTC), nil
}

// DayOf returns midnight of t's calendar date.
func DayOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Validate enforces Start < End with both on the same calendar date.
func (w Window) Validate() error {
	if !w.Start.Before(w.End) {
		return ErrInvalidWindow
	}
	if !DayOf(w.Start).Equal(DayOf(w.End)) {
		return ErrInvalidWindow
	}
	return nil
}

// Overlaps is the one overlap rule of the system: two windows share an instant.
// A window ending exactly when the other starts does not overlap it.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && o.Start.Before(w.End)
}

// Contains reports whether t falls inside [Start, End).
func (w Window) Contains(t time.Time) bool {
	return !t.Before(w.Start) && t.Before(w.End)
}

// Day returns the calendar date the window falls on.
func (w Window) Day() time.Time {
	return DayOf(w.Start)
}

// Duration returns End - Start.
func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// Normalize re-expresses the wall clock of both ends in UTC so comparisons
// never depend on the location a caller happened to use. Every path that
// compares a caller's window against stored reservations normalizes first.
func (w Window) Normalize() Window {
	return Window{Start: wallClock(w.Start), End: wallClock(w.End)}
}

func wallClock(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), time.UTC)
}

func (w Window) String() string {
	return fmt.Sprintf("%s %s-%s", w.Start.Format(DateLayout), w.Start.Format(TimeLayout), w.End.Format(TimeLayout))
}

// FindConflict returns the first live reservation whose window overlaps w, or nil.
// Both the create path and availability queries go through this function.
func FindConflict(existing []*Reservation, w Window) *Reservation {
	for _, r := range existing {
		if r.IsLive() && r.Window.Overlaps(w) {
			return r
		}
	}
	return nil
}
