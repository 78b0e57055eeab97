package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
)

func TestCalculateNextOccurrence(t *testing.T) {
	now := time.Date(2025, 6, 15, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		birthDate    time.Time
		yearKnown    bool
		expectedDate time.Time
		expectedAge  int
	}{
		{"Birthday already passed", time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC), true, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 36},
		{"Birthday later this year", time.Date(1990, 12, 31, 0, 0, 0, 0, time.UTC), true, time.Date(2025, 12, 31, 0, 0, 0, 0, time.UTC), 35},
		{"Birthday today", time.Date(1990, 6, 15, 0, 0, 0, 0, time.UTC), true, time.Date(2025, 6, 15, 0, 0, 0, 0, time.UTC), 35},
		{"Year unknown", time.Date(config.DefaultLeapYear, 1, 1, 0, 0, 0, 0, time.UTC), false, time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC), 0},
		{"Leapling in a common year", time.Date(2000, 2, 29, 0, 0, 0, 0, time.UTC), true, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC), 26},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, ageNext := calculateNextOccurrence(now, tt.birthDate, tt.yearKnown)
			assert.Equal(t, tt.expectedDate, next)
			assert.Equal(t, tt.expectedAge, ageNext)
		})
	}
}

func TestParseDate(t *testing.T) {
	d, known, err := parseDate("--02-29")
	require.NoError(t, err)
	assert.False(t, known)
	assert.Equal(t, time.Date(config.DefaultLeapYear, 2, 29, 0, 0, 0, 0, time.UTC), d, "leap fallback keeps Feb 29")

	d, known, err = parseDate("19850704")
	require.NoError(t, err)
	assert.True(t, known)
	assert.Equal(t, time.Date(1985, 7, 4, 0, 0, 0, 0, time.UTC), d)

	_, _, err = parseDate("July 4th")
	assert.EqualError(t, err, config.ErrDateParse)
}

func TestMilestonesFor(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)

	b, err := age.Decompose(age.FromTime(dob), age.FromTime(now))
	require.NoError(t, err)
	next, ageNext := calculateNextOccurrence(now, dob, true)

	ms := milestonesFor(ContactAge{Name: "Milly", DateOfBirth: dob, YearKnown: true, Age: b, NextBirthday: next, AgeNext: ageNext}, now)
	require.Len(t, ms, 3)

	assert.Equal(t, config.MilestoneKindBirthday, ms[0].Kind)
	assert.Equal(t, 25, ms[0].Value)

	assert.Equal(t, config.MilestoneKindDays, ms[1].Kind)
	assert.Equal(t, 9000, ms[1].Value)
	assert.Equal(t, time.Date(2024, 8, 22, 0, 0, 0, 0, time.UTC), ms[1].Date)

	assert.Equal(t, config.MilestoneKindSeconds, ms[2].Kind)
	assert.Equal(t, time.Date(2031, 9, 9, 0, 0, 0, 0, time.UTC), ms[2].Date)
}

func TestMilestonesFor_ExactDayMilestoneIsToday(t *testing.T) {
	dob := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	now := dob.AddDate(0, 0, 1000).Add(9 * time.Hour)

	b, err := age.Decompose(age.FromTime(dob), age.FromTime(now))
	require.NoError(t, err)

	ms := milestonesFor(ContactAge{Name: "X", DateOfBirth: dob, YearKnown: true, Age: b}, now)
	require.GreaterOrEqual(t, len(ms), 2)
	assert.Equal(t, 1000, ms[1].Value)
	assert.Equal(t, time.Date(2002, 9, 27, 0, 0, 0, 0, time.UTC), ms[1].Date)
}

func TestContactUID_Stable(t *testing.T) {
	dob := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	a := contactUID("Ann", dob)
	assert.Equal(t, a, contactUID("Ann", dob))
	assert.NotEqual(t, a, contactUID("Bob", dob))
	assert.Len(t, a, config.UIDHashLength*2)
}
