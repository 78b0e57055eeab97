package age

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// ErrOrdering is matched by every *OrderingError through errors.Is.
var ErrOrdering = errors.New(config.ErrOrdering)

// OrderingError reports a start instant later than the reference instant.
// It is an input problem for the user to correct.
type OrderingError struct {
	Start     Instant
	Reference Instant
}

func (e *OrderingError) Error() string {
	return fmt.Sprintf("%s: %s > %s", config.ErrOrdering, e.Start, e.Reference)
}

// Is makes errors.Is(err, ErrOrdering) work for wrapped values.
func (e *OrderingError) Is(target error) bool {
	return target == ErrOrdering
}

// Breakdown is the calendar-aware decomposition of an elapsed interval.
// TotalSeconds is the exact elapsed time and does not depend on the other fields.
type Breakdown struct {
	Years        int   `json:"years"`
	Months       int   `json:"months"`
	Days         int   `json:"days"`
	Hours        int   `json:"hours"`
	Minutes      int   `json:"minutes"`
	Seconds      int   `json:"seconds"`
	TotalSeconds int64 `json:"total_seconds"`
}

// IsZero reports whether the interval is empty.
func (b Breakdown) IsZero() bool {
	return b == Breakdown{}
}

// Decompose splits reference - start into years, months, days, hours, minutes
// and seconds by mixed-radix subtraction.
//
// Seconds, minutes and hours borrow 60, 60 and 24. A negative day count borrows
// the length of the month preceding reference's month; the start day is first
// clamped to the length of whichever month it is anchored in, so a start on
// the 31st measured into a 30-day month (or February) counts from that month's
// last day. Negative months borrow 12 from years.
func Decompose(start, reference Instant) (Breakdown, error) {
	if start.After(reference) {
		return Breakdown{}, &OrderingError{Start: start, Reference: reference}
	}

	years := reference.Year - start.Year
	months := reference.Month - start.Month
	days := reference.Day - min(start.Day, DaysIn(reference.Year, reference.Month))
	hours := reference.Hour - start.Hour
	minutes := reference.Minute - start.Minute
	seconds := reference.Second - start.Second

	// Time-of-day borrow, propagated into days.
	borrowDay := 0
	if seconds < 0 {
		seconds += config.SecondsPerMinute
		minutes--
	}
	if minutes < 0 {
		minutes += 60
		hours--
	}
	if hours < 0 {
		hours += 24
		borrowDay = 1
	}
	days -= borrowDay

	if days < 0 {
		months--
		py, pm := previousMonth(reference.Year, reference.Month)
		length := DaysIn(py, pm)
		days = length - min(start.Day, length) + reference.Day - borrowDay
	}

	if months < 0 {
		months += config.MonthsPerYear
		years--
	}

	return Breakdown{
		Years:        years,
		Months:       months,
		Days:         days,
		Hours:        hours,
		Minutes:      minutes,
		Seconds:      seconds,
		TotalSeconds: TotalSeconds(start, reference),
	}, nil
}

// TotalSeconds is the exact number of seconds from start to reference.
// It is negative when start is later.
func TotalSeconds(start, reference Instant) int64 {
	return reference.Time().Unix() - start.Time().Unix()
}

// AddTo applies the breakdown to start: years and months first, clamping the
// day to the target month, then days and the time-of-day fields. For any
// b = Decompose(start, ref), b.AddTo(start) == ref.
func (b Breakdown) AddTo(start Instant) Instant {
	anchored := addMonths(start, b.Years*config.MonthsPerYear+b.Months)
	d := time.Duration(b.Days)*24*time.Hour +
		time.Duration(b.Hours)*time.Hour +
		time.Duration(b.Minutes)*time.Minute +
		time.Duration(b.Seconds)*time.Second
	return FromTime(anchored.Time().Add(d))
}

// addMonths moves i by n calendar months, keeping the time-of-day and clamping
// the day to the length of the target month.
func addMonths(i Instant, n int) Instant {
	idx := i.Year*config.MonthsPerYear + (i.Month - 1) + n
	y, m := idx/config.MonthsPerYear, idx%config.MonthsPerYear+1
	out := i
	out.Year, out.Month = y, m
	out.Day = min(i.Day, DaysIn(y, m))
	return out
}

func previousMonth(year, month int) (int, int) {
	if month == 1 {
		return year - 1, config.MonthsPerYear
	}
	return year, month - 1
}
