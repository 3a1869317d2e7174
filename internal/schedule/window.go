// Package schedule holds the pure time-window arithmetic shared by the
// availability read path and the booking transaction. Keeping one overlap
// predicate here is what guarantees both paths agree on what "taken" means.
package schedule

import (
	"fmt"
	"time"

	"github.com/Nevenjbx/kompagni-api/internal/models"
)

// DateLayout is the strict calendar-date format accepted on the wire.
const DateLayout = "2006-01-02"

const clockLayout = "15:04"

// ParseDate parses a strict YYYY-MM-DD calendar date anchored to UTC,
// the single implicit timezone of the system.
func ParseDate(s string) (time.Time, error) {
	d, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return d, nil
}

// ClockAt anchors an "HH:mm" clock time to the calendar day of date.
func ClockAt(date time.Time, hm string) (time.Time, error) {
	t, err := time.Parse(clockLayout, hm)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid clock time %q: %w", hm, err)
	}
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		t.Hour(), t.Minute(), 0, 0,
		date.Location(),
	), nil
}

// IsClock reports whether s is a well-formed "HH:mm" clock time.
func IsClock(s string) bool {
	_, err := time.Parse(clockLayout, s)
	return err == nil
}

// Window is a half-open interval [Start, End).
type Window struct {
	Start time.Time
	End   time.Time
}

// Overlaps uses strict half-open semantics: touching endpoints do not
// overlap. Every overlap decision in the system goes through here.
func (w Window) Overlaps(o Window) bool {
	return w.Start.Before(o.End) && w.End.After(o.Start)
}

// Covers reports whether w fully contains o.
func (w Window) Covers(o Window) bool {
	return !w.Start.After(o.Start) && !w.End.Before(o.End)
}

func (w Window) Duration() time.Duration {
	return w.End.Sub(w.Start)
}

// OverlapsAny reports whether w overlaps at least one of the given windows.
func (w Window) OverlapsAny(windows []Window) bool {
	for _, o := range windows {
		if w.Overlaps(o) {
			return true
		}
	}
	return false
}

// Day expands the provider's working-hours row for one weekday into
// concrete windows on a calendar date.
type Day struct {
	Work  Window
	Break *Window
}

// DayFor resolves wh onto date. Returns an error when the stored clock
// strings are malformed; the write path validates them, so this only
// trips on corrupted rows.
func DayFor(wh *models.WorkingHours, date time.Time) (Day, error) {
	start, err := ClockAt(date, wh.StartTime)
	if err != nil {
		return Day{}, err
	}
	end, err := ClockAt(date, wh.EndTime)
	if err != nil {
		return Day{}, err
	}

	day := Day{Work: Window{Start: start, End: end}}

	if wh.BreakStartTime != "" && wh.BreakEndTime != "" {
		bs, err := ClockAt(date, wh.BreakStartTime)
		if err != nil {
			return Day{}, err
		}
		be, err := ClockAt(date, wh.BreakEndTime)
		if err != nil {
			return Day{}, err
		}
		day.Break = &Window{Start: bs, End: be}
	}

	return day, nil
}
