package ui

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

func names(list []engine.ContactAge) []string {
	out := make([]string, len(list))
	for i, c := range list {
		out[i] = c.Name
	}
	return out
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestSortContacts_Names(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "charlie"},
		{Name: "Bob"},
		{Name: "alice"},
	}

	sortContacts(data, config.ColIDName, true)
	assert.Equal(t, []string{"alice", "Bob", "charlie"}, names(data))

	sortContacts(data, config.ColIDName, false)
	assert.Equal(t, []string{"charlie", "Bob", "alice"}, names(data))
}

func TestSortContacts_Dates(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "Late", DateOfBirth: date(2001, 3, 1)},
		{Name: "Early", DateOfBirth: date(1980, 7, 14)},
		{Name: "Twin B", DateOfBirth: date(1995, 5, 5)},
		{Name: "Twin A", DateOfBirth: date(1995, 5, 5)},
	}

	sortContacts(data, config.ColIDDate, true)
	assert.Equal(t, []string{"Early", "Twin A", "Twin B", "Late"}, names(data), "ties fall back to the name")
}

func TestSortContacts_AgeKeepsUnknownYearsLast(t *testing.T) {
	data := []engine.ContactAge{
		{Name: "NoYear", YearKnown: false},
		{Name: "Young", YearKnown: true, Age: age.Breakdown{TotalSeconds: 10}},
		{Name: "Old", YearKnown: true, Age: age.Breakdown{TotalSeconds: 1000}},
		{Name: "Middle", YearKnown: true, Age: age.Breakdown{TotalSeconds: 500}},
	}

	sortContacts(data, config.ColIDAge, false)
	assert.Equal(t, []string{"Old", "Middle", "Young", "NoYear"}, names(data))

	sortContacts(data, config.ColIDAge, true)
	assert.Equal(t, []string{"Young", "Middle", "Old", "NoYear"}, names(data))
}

func TestTableFormatting(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	known := engine.ContactAge{
		Name:        "Ada",
		DateOfBirth: date(1990, 1, 2),
		YearKnown:   true,
		Age:         age.Breakdown{Years: 35, Months: 4, Days: 30},
	}
	noYear := engine.ContactAge{
		Name:        "Zed",
		DateOfBirth: date(config.DefaultLeapYear, 2, 29),
	}

	assert.Equal(t, "35y 4m 30d", app.formatAge(known))
	assert.Equal(t, "Jan 02, 1990", app.formatBirthDate(known))

	assert.Equal(t, config.AgeUnknown, app.formatAge(noYear))
	assert.Equal(t, "--02-29", app.formatBirthDate(noYear))

	app.Preferences.SetString(config.PrefLanguage, "fr")
	app.UpdateLocalizer()
	assert.Equal(t, "02/01/1990", app.formatBirthDate(known))
	assert.Equal(t, "35 a 4 m 30 j", app.formatAge(known))
}

func TestTableFormatting_WithoutLocalizer(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Localizer = nil

	c := engine.ContactAge{
		DateOfBirth: date(1990, 1, 2),
		YearKnown:   true,
		Age:         age.Breakdown{Years: 1, Months: 2, Days: 3},
	}
	assert.Equal(t, "1y 2m 3d", app.formatAge(c))
	assert.Equal(t, "1990-01-02", app.formatBirthDate(c))
}

func TestContactsWindow_Singleton(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Contacts = []engine.ContactAge{{Name: "Ada", YearKnown: true, DateOfBirth: date(1990, 1, 2)}}

	app.ShowContactsWindow()
	first := app.contactsWindow
	require.NotNil(t, first)

	app.ShowContactsWindow()
	assert.Same(t, first, app.contactsWindow, "a second call focuses the open window")

	first.Close()
	assert.Nil(t, app.contactsWindow)
}
