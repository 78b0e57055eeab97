package age

import (
	"math"

	"github.com/tartampluch/go-age/internal/config"
)

// Statistics are closed-form values derived from a Breakdown. Several of them
// use fixed approximations (lunar month, lifespan); they are illustrative.
type Statistics struct {
	TotalSeconds int64   `json:"total_seconds"`
	TotalMinutes int64   `json:"total_minutes"`
	TotalHours   int64   `json:"total_hours"`
	TotalDays    int64   `json:"total_days"`
	TotalWeeks   int64   `json:"total_weeks"`
	TotalMonths  int     `json:"total_months"`
	Heartbeats   int64   `json:"heartbeats"`
	Breaths      int64   `json:"breaths"`
	LunarCycles  int64   `json:"lunar_cycles"`
	Seasons      int     `json:"seasons"`
	EarthOrbits  int     `json:"earth_orbits"`
	LifePercent  float64 `json:"life_percent"`
}

// Derive computes the statistics of b. Only TotalSeconds and the calendar
// fields are read.
func Derive(b Breakdown) Statistics {
	ts := b.TotalSeconds
	days := ElapsedDays(ts)

	life := (float64(b.Years) + float64(b.Months)/config.MonthsPerYear) / config.LifespanYears * config.PercentMax

	return Statistics{
		TotalSeconds: ts,
		TotalMinutes: ts / config.SecondsPerMinute,
		TotalHours:   ts / config.SecondsPerHour,
		TotalDays:    days,
		TotalWeeks:   days / config.DaysPerWeek,
		TotalMonths:  b.Years*config.MonthsPerYear + b.Months,
		Heartbeats:   ts * config.HeartbeatsPerMinute / config.SecondsPerMinute,
		Breaths:      ts * config.BreathsPerMinute / config.SecondsPerMinute,
		LunarCycles:  int64(math.Floor(float64(days) / config.LunarCycleDays)),
		Seasons:      int(math.Floor(float64(b.Years*config.SeasonsPerYear) + float64(b.Months)/config.MonthsPerSeason)),
		EarthOrbits:  b.Years,
		LifePercent:  math.Min(config.PercentMax, life),
	}
}

// ElapsedDays is floor(totalSeconds / 86400).
func ElapsedDays(totalSeconds int64) int64 {
	d := totalSeconds / config.SecondsPerDay
	if totalSeconds < 0 && totalSeconds%config.SecondsPerDay != 0 {
		d--
	}
	return d
}

// Component names a Breakdown field.
type Component string

const (
	ComponentYears   Component = "years"
	ComponentMonths  Component = "months"
	ComponentDays    Component = "days"
	ComponentHours   Component = "hours"
	ComponentMinutes Component = "minutes"
	ComponentSeconds Component = "seconds"
)

// Weight is the approximate size of one Breakdown component in seconds.
type Weight struct {
	Component Component `json:"component"`
	Seconds   float64   `json:"seconds"`
}

// Weights converts each component to seconds for relative-size charts, using a
// 365.25-day year and a 30.44-day month. The values are display-only and are
// not the exact elapsed time. Components with a non-positive weight are
// omitted.
func Weights(b Breakdown) []Weight {
	all := []Weight{
		{ComponentYears, float64(b.Years) * config.AvgDaysPerYear * config.SecondsPerDay},
		{ComponentMonths, float64(b.Months) * config.AvgDaysPerMonth * config.SecondsPerDay},
		{ComponentDays, float64(b.Days) * config.SecondsPerDay},
		{ComponentHours, float64(b.Hours) * config.SecondsPerHour},
		{ComponentMinutes, float64(b.Minutes) * config.SecondsPerMinute},
		{ComponentSeconds, float64(b.Seconds)},
	}

	out := make([]Weight, 0, len(all))
	for _, w := range all {
		if w.Seconds > 0 {
			out = append(out, w)
		}
	}
	return out
}

// Share returns each weight's fraction of the total, in input order.
func Share(weights []Weight) []float64 {
	var total float64
	for _, w := range weights {
		total += w.Seconds
	}
	out := make([]float64, len(weights))
	if total == 0 {
		return out
	}
	for i, w := range weights {
		out[i] = w.Seconds / total
	}
	return out
}
