package domain

import (
	"fmt"
	"time"
)

// DateInterval calendar-date reservation interval [Start, End].
// Start and End are normalized to midnight UTC of their calendar day.
type DateInterval struct {
	Start time.Time
	End   time.Time
}

// NewDateInterval normalizes start and end to calendar dates.
// Fails with ErrInvalidRange when start is after end.
func NewDateInterval(start, end time.Time) (DateInterval, error) {
	interval := DateInterval{Start: ToDate(start), End: ToDate(end)}
	if err := interval.Validate(); err != nil {
		return DateInterval{}, err
	}
	return interval, nil
}

// ParseDateInterval parses two YYYY-MM-DD strings
func ParseDateInterval(start, end string) (DateInterval, error) {
	s, err := time.Parse(DateFormat, start)
	if err != nil {
		return DateInterval{}, fmt.Errorf("%w: start date %q: %v", ErrInvalidRange, start, err)
	}
	e, err := time.Parse(DateFormat, end)
	if err != nil {
		return DateInterval{}, fmt.Errorf("%w: end date %q: %v", ErrInvalidRange, end, err)
	}
	return NewDateInterval(s, e)
}

// ToDate drops the time-of-day part, keeping the calendar day of t in its own location.
func ToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Validate checks start <= end
func (i DateInterval) Validate() error {
	if i.Start.IsZero() || i.End.IsZero() {
		return fmt.Errorf("%w: start and end dates are required", ErrInvalidRange)
	}
	if ToDate(i.Start).After(ToDate(i.End)) {
		return fmt.Errorf("%w: start %s is after end %s", ErrInvalidRange,
			i.Start.Format(DateFormat), i.End.Format(DateFormat))
	}
	return nil
}

// Nights whole calendar days between start and end
func (i DateInterval) Nights() int {
	return int(ToDate(i.End).Sub(ToDate(i.Start)).Hours() / 24)
}

// dayBegin start of the first day of the span
func (i DateInterval) dayBegin() time.Time {
	return ToDate(i.Start)
}

// dayEnd last instant of the final day of the span
func (i DateInterval) dayEnd() time.Time {
	return ToDate(i.End).Add(24*time.Hour - time.Nanosecond)
}

// Days every calendar day covered by the span, both ends included
func (i DateInterval) Days() []time.Time {
	days := make([]time.Time, 0, i.Nights()+1)
	for d := ToDate(i.Start); !d.After(ToDate(i.End)); d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (i DateInterval) String() string {
	return fmt.Sprintf("%s..%s", i.Start.Format(DateFormat), i.End.Format(DateFormat))
}

// Overlaps reports whether candidate collides with existing.
// Both are expanded to closed day spans, so a booking ending on the day
// another starts counts as an overlap (no same-day turnover).
func Overlaps(candidate, existing DateInterval) (bool, error) {
	if err := candidate.Validate(); err != nil {
		return false, err
	}
	if err := existing.Validate(); err != nil {
		return false, err
	}

	cStart, cEnd := candidate.dayBegin(), candidate.dayEnd()
	eStart, eEnd := existing.dayBegin(), existing.dayEnd()

	startInside := withinSpan(cStart, eStart, eEnd)
	endInside := withinSpan(cEnd, eStart, eEnd)
	contains := cStart.Before(eStart) && cEnd.After(eEnd)

	return startInside || endInside || contains, nil
}

func withinSpan(t, start, end time.Time) bool {
	return !t.Before(start) && !t.After(end)
}
