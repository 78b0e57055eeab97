// Package age implements the calendar-aware decomposition of the time elapsed
// between two instants and the statistics derived from it.
//
// Everything in this package is a pure function over value types and is safe
// for concurrent use.
package age

import (
	"errors"
	"fmt"
	"time"

	"github.com/tartampluch/go-age/internal/config"
)

// ErrInvalidInstant is wrapped by every validation and parsing failure.
var ErrInvalidInstant = errors.New(config.ErrInstantInvalid)

// Instant is a calendar date and time-of-day with whole-second resolution.
// It carries no timezone: both sides of a decomposition share one calendar.
type Instant struct {
	Year   int `json:"year"`
	Month  int `json:"month"`
	Day    int `json:"day"`
	Hour   int `json:"hour"`
	Minute int `json:"minute"`
	Second int `json:"second"`
}

// NewInstant builds an Instant from its fields. It does not validate them.
func NewInstant(year, month, day, hour, minute, second int) Instant {
	return Instant{Year: year, Month: month, Day: day, Hour: hour, Minute: minute, Second: second}
}

// FromTime drops the location and sub-second part of t.
func FromTime(t time.Time) Instant {
	return Instant{
		Year:   t.Year(),
		Month:  int(t.Month()),
		Day:    t.Day(),
		Hour:   t.Hour(),
		Minute: t.Minute(),
		Second: t.Second(),
	}
}

// Time returns the instant as a UTC time.Time. UTC has no transitions, so the
// difference of two such values is the exact elapsed time.
func (i Instant) Time() time.Time {
	return time.Date(i.Year, time.Month(i.Month), i.Day, i.Hour, i.Minute, i.Second, 0, time.UTC)
}

// Date returns the instant at midnight.
func (i Instant) Date() Instant {
	return Instant{Year: i.Year, Month: i.Month, Day: i.Day}
}

// WithClock replaces the time-of-day.
func (i Instant) WithClock(hour, minute, second int) Instant {
	i.Hour, i.Minute, i.Second = hour, minute, second
	return i
}

// Compare returns -1, 0 or +1 comparing date first, then time-of-day.
func (i Instant) Compare(o Instant) int {
	a := [...]int{i.Year, i.Month, i.Day, i.Hour, i.Minute, i.Second}
	b := [...]int{o.Year, o.Month, o.Day, o.Hour, o.Minute, o.Second}
	for k := range a {
		switch {
		case a[k] < b[k]:
			return -1
		case a[k] > b[k]:
			return 1
		}
	}
	return 0
}

// After reports whether i is strictly later than o.
func (i Instant) After(o Instant) bool {
	return i.Compare(o) > 0
}

// String formats the instant as YYYY-MM-DDTHH:MM:SS.
func (i Instant) String() string {
	return fmt.Sprintf("%04d-%02d-%02dT%02d:%02d:%02d", i.Year, i.Month, i.Day, i.Hour, i.Minute, i.Second)
}

// Validate checks the field ranges and the supported year window. Input layers
// call it; Decompose does not.
func (i Instant) Validate() error {
	if i.Year < config.MinYear || i.Year > config.MaxYear {
		return fmt.Errorf("%w: %s: %d", ErrInvalidInstant, config.ErrInstantRange, i.Year)
	}
	switch {
	case i.Month < 1 || i.Month > config.MonthsPerYear:
		return fmt.Errorf("%w: month %d", ErrInvalidInstant, i.Month)
	case i.Day < 1 || i.Day > DaysIn(i.Year, i.Month):
		return fmt.Errorf("%w: day %d in %04d-%02d", ErrInvalidInstant, i.Day, i.Year, i.Month)
	case i.Hour < 0 || i.Hour > config.MaxHour:
		return fmt.Errorf("%w: hour %d", ErrInvalidInstant, i.Hour)
	case i.Minute < 0 || i.Minute > config.MaxMinuteSecond:
		return fmt.Errorf("%w: minute %d", ErrInvalidInstant, i.Minute)
	case i.Second < 0 || i.Second > config.MaxMinuteSecond:
		return fmt.Errorf("%w: second %d", ErrInvalidInstant, i.Second)
	}
	return nil
}

// ParseInstant accepts YYYY-MM-DDTHH:MM:SS or a bare YYYY-MM-DD (midnight).
// The result is validated.
func ParseInstant(value string) (Instant, error) {
	for _, layout := range []string{config.InstantFormat, config.InstantFormatDate} {
		t, err := time.Parse(layout, value)
		if err != nil {
			continue
		}
		inst := FromTime(t)
		if err := inst.Validate(); err != nil {
			return Instant{}, err
		}
		return inst, nil
	}
	return Instant{}, fmt.Errorf("%w: %s: %q", ErrInvalidInstant, config.ErrInstantParse, value)
}

// IsLeapYear applies the Gregorian rule.
func IsLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}

// DaysIn returns the length of the given month.
func DaysIn(year, month int) int {
	switch month {
	case 2:
		if IsLeapYear(year) {
			return 29
		}
		return 28
	case 4, 6, 9, 11:
		return 30
	default:
		return 31
	}
}
