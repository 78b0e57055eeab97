package engine

import (
	"time"

	"github.com/tartampluch/go-age/internal/age"
)

// ContactAge is a contact with its age at sync time, ready for table display.
type ContactAge struct {
	// UID is a unique identifier (hash) used for stability in lists.
	UID string

	Name        string
	DateOfBirth time.Time

	// YearKnown is false for --MM-DD birthdays; Age is then meaningless.
	YearKnown bool

	// Age is the breakdown from birth (midnight) to the sync instant.
	Age age.Breakdown

	// NextBirthday and AgeNext drive the default sort order.
	NextBirthday time.Time
	AgeNext      int
}

// Milestone is one calendar entry published in the feed.
type Milestone struct {
	Kind  string // config.MilestoneKind*
	Name  string
	Date  time.Time
	Value int // age for birthdays, day count for day milestones

	// YearKnown is false for birthdays of contacts without a birth year.
	YearKnown bool
}
