package engine

import (
	"bytes"
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"time"

	"github.com/emersion/go-ical"
	"github.com/emersion/go-vcard"
	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
)

// SyncConfig contains all parameters required to import contacts.
type SyncConfig struct {
	Mode      string // config.SourceModeLocal or config.SourceModeWeb
	LocalPath string // Absolute path to the .vcf file
	WebURL    string // CardDAV or WebDAV URL
	WebUser   string // HTTP Basic Auth Username
	WebPass   string // HTTP Basic Auth Password
}

// Generator imports contacts, computes their ages and renders the milestone calendar.
type Generator struct {
	Clock   Clock
	Fetcher VCardFetcher

	// FormatSummary lets the UI inject localized event titles.
	FormatSummary func(m Milestone) string
}

type syncStats struct{ processed, withBday, events int }

// RunSync executes the fetching, parsing and generation pipeline.
// It returns the ICS data and the contacts sorted as read.
func (g *Generator) RunSync(ctx context.Context, cfg SyncConfig) ([]byte, []ContactAge, error) {
	start := time.Now()
	log := slog.With(
		config.LogKeyComponent, config.CompEngine,
		config.LogKeyMode, cfg.Mode,
	)
	log.InfoContext(ctx, config.MsgSyncStarted)

	reader, err := g.acquireStream(ctx, cfg)
	if err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("%s: %w", config.ErrVCardParse, err)
	}
	defer func() { _ = reader.Close() }()

	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	ics, contacts, err := g.generateCalendar(ctx, reader)
	if err == nil {
		log.Debug("Sync finished", config.LogKeyDuration, time.Since(start).Milliseconds())
	}
	return ics, contacts, err
}

// acquireStream opens the appropriate data source based on configuration.
func (g *Generator) acquireStream(ctx context.Context, cfg SyncConfig) (io.ReadCloser, error) {
	switch cfg.Mode {
	case config.SourceModeLocal:
		if cfg.LocalPath == "" {
			return nil, errors.New(config.ErrLocalPathEmpty)
		}
		return os.Open(cfg.LocalPath)
	case config.SourceModeWeb:
		if cfg.WebURL == "" {
			return nil, errors.New(config.ErrWebURLEmpty)
		}
		if g.Fetcher == nil {
			return nil, errors.New(config.ErrFetcherMissing)
		}
		return g.Fetcher.Fetch(ctx, cfg.WebURL, cfg.WebUser, cfg.WebPass)
	default:
		return nil, fmt.Errorf("%s: %q", config.ErrModeUnsupport, cfg.Mode)
	}
}

// generateCalendar decodes the vCard stream, computes each contact's age and
// publishes their upcoming milestones.
func (g *Generator) generateCalendar(ctx context.Context, r io.Reader) ([]byte, []ContactAge, error) {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, config.ICalCalName)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)

	// Ages follow the user's wall clock; only DTSTAMP is UTC.
	now := g.clock().Now()
	nowInst := age.FromTime(now)
	dtStampProp := ical.NewProp(config.PropDTStamp)
	dtStampProp.SetDateTime(now.UTC())

	decoder := vcard.NewDecoder(r)
	var stats syncStats
	var contacts []ContactAge

	for {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}

		card, err := decoder.Decode()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			slog.Warn(config.MsgSkippedCard,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyError, err)
			continue
		}

		stats.processed++
		bday := card.Get(config.VCardBDAY)
		if bday == nil || bday.Value == "" {
			continue
		}

		birthDate, yearKnown, err := parseDate(bday.Value)
		if err != nil {
			slog.Debug(config.MsgSkippedDate,
				config.LogKeyComponent, config.CompEngine,
				config.LogKeyValue, bday.Value)
			continue
		}

		name := config.FallbackName
		if fn := card.Get(config.VCardFN); fn != nil {
			name = fn.Value
		} else if n := card.Get(config.VCardN); n != nil {
			name = n.Value
		}

		entry := ContactAge{
			UID:         contactUID(name, birthDate),
			Name:        name,
			DateOfBirth: birthDate,
			YearKnown:   yearKnown,
		}

		if yearKnown {
			b, err := age.Decompose(age.FromTime(birthDate).Date(), nowInst)
			if err != nil {
				slog.Debug(config.MsgSkippedFuture,
					config.LogKeyComponent, config.CompEngine,
					config.LogKeyName, name,
					config.LogKeyDOB, birthDate.Format(config.DateFormatFullDash))
				continue
			}
			entry.Age = b
		}
		entry.NextBirthday, entry.AgeNext = calculateNextOccurrence(now, birthDate, yearKnown)

		stats.withBday++
		contacts = append(contacts, entry)

		for _, m := range milestonesFor(entry, now) {
			event := g.newEvent(entry.UID, m)
			event.Props.Set(dtStampProp)
			cal.Children = append(cal.Children, event.Component)
			stats.events++
		}
	}

	if len(cal.Children) == 0 {
		g.logSuccess(stats)
		return []byte(config.StubVCalendar), contacts, nil
	}

	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}

	g.logSuccess(stats)
	return buf.Bytes(), contacts, nil
}

func (g *Generator) clock() Clock {
	if g.Clock == nil {
		return RealClock{}
	}
	return g.Clock
}

// logSuccess logs the final statistics of the generation process.
func (g *Generator) logSuccess(stats syncStats) {
	slog.Info(config.MsgGenSuccess,
		config.LogKeyComponent, config.CompEngine,
		slog.Group(config.LogKeyStats,
			slog.Int(config.LogKeyTotal, stats.processed),
			slog.Int(config.LogKeyFound, stats.withBday),
			slog.Int(config.LogKeyEvents, stats.events),
		),
	)
}

// newEvent renders one milestone as an all-day VEVENT.
func (g *Generator) newEvent(uidBase string, m Milestone) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, fmt.Sprintf(config.FormatUID, uidBase, m.Kind, m.Value, config.ICalDomain))
	event.Props.SetText(config.PropSummary, g.summary(m))
	event.Props.SetText(config.PropCategories, m.Kind)

	dtStartProp := ical.NewProp(config.PropDTStart)
	dtStartProp.SetDate(m.Date)
	event.Props.Set(dtStartProp)
	return event
}

func (g *Generator) summary(m Milestone) string {
	if g.FormatSummary != nil {
		if s := g.FormatSummary(m); s != "" {
			return s
		}
	}
	switch m.Kind {
	case config.MilestoneKindDays:
		return fmt.Sprintf(config.FallbackDays, m.Name, m.Value)
	case config.MilestoneKindSeconds:
		return fmt.Sprintf(config.FallbackSeconds, m.Name)
	default:
		if !m.YearKnown {
			return fmt.Sprintf(config.FallbackBirthdayNY, m.Name)
		}
		return fmt.Sprintf(config.FallbackBirthday, m.Name, m.Value)
	}
}

// contactUID hashes name and birth date into a stable identifier.
func contactUID(name string, birthDate time.Time) string {
	input := fmt.Sprintf(config.FormatHashInput, name, birthDate.Format(time.RFC3339), config.UIDSalt)
	hash := sha256.Sum256([]byte(input))
	return fmt.Sprintf("%x", hash[:config.UIDHashLength])
}

// milestonesFor lists the upcoming milestones of c, today included.
// Contacts without a birth year only get their birthday.
func milestonesFor(c ContactAge, now time.Time) []Milestone {
	out := []Milestone{{
		Kind:      config.MilestoneKindBirthday,
		Name:      c.Name,
		Date:      c.NextBirthday,
		Value:     c.AgeNext,
		YearKnown: c.YearKnown,
	}}
	if !c.YearKnown {
		return out
	}

	birth := time.Date(c.DateOfBirth.Year(), c.DateOfBirth.Month(), c.DateOfBirth.Day(), 0, 0, 0, 0, now.Location())
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	// Elapsed whole days of life; the next multiple of the step is the next milestone.
	lived := int(age.ElapsedDays(c.Age.TotalSeconds))
	next := (lived + config.MilestoneDayStep - 1) / config.MilestoneDayStep * config.MilestoneDayStep
	if next == 0 {
		next = config.MilestoneDayStep
	}
	out = append(out, Milestone{
		Kind:      config.MilestoneKindDays,
		Name:      c.Name,
		Date:      birth.AddDate(0, 0, next),
		Value:     next,
		YearKnown: true,
	})

	billion := birth.Add(config.MilestoneBillionSecs * time.Second)
	billionDay := time.Date(billion.Year(), billion.Month(), billion.Day(), 0, 0, 0, 0, now.Location())
	if !billionDay.Before(today) {
		out = append(out, Milestone{
			Kind:      config.MilestoneKindSeconds,
			Name:      c.Name,
			Date:      billionDay,
			Value:     config.MilestoneBillionSecs,
			YearKnown: true,
		})
	}
	return out
}

// calculateNextOccurrence determines the next birthday date relative to 'now'
// and the age reached on it.
func calculateNextOccurrence(now time.Time, birthDate time.Time, yearKnown bool) (time.Time, int) {
	currentYear := now.Year()
	loc := now.Location()

	// time.Date normalizes Feb 29 to March 1st in common years.
	candidate := time.Date(currentYear, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	todayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, loc)

	if candidate.Before(todayStart) {
		candidate = time.Date(currentYear+1, birthDate.Month(), birthDate.Day(), 0, 0, 0, 0, loc)
	}

	ageNext := 0
	if yearKnown {
		ageNext = candidate.Year() - birthDate.Year()
	}

	return candidate, ageNext
}

// parseDate handles various vCard date formats.
func parseDate(value string) (time.Time, bool, error) {
	formatsWithYear := []string{
		config.DateFormatFullDash,
		config.DateFormatFullBasic,
		config.DateFormatRFC3339,
		config.DateFormatFullT,
	}

	for _, f := range formatsWithYear {
		if t, err := time.Parse(f, value); err == nil {
			return t, true, nil
		}
	}

	// Truncated dates (year unknown) get a leap year so --02-29 survives.
	formatsWithoutYear := []string{config.DateFormatNoYearD, config.DateFormatNoYearB}
	for _, f := range formatsWithoutYear {
		if t, err := time.Parse(f, value); err == nil {
			safeDate := time.Date(config.DefaultLeapYear, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			return safeDate, false, nil
		}
	}

	return time.Time{}, false, errors.New(config.ErrDateParse)
}
