package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
)

// ErrUnknownPreset is returned for a time preset outside config.PresetNames.
var ErrUnknownPreset = errors.New(config.ErrPresetUnknown)

// Request describes one age calculation as entered by the user.
type Request struct {
	Start age.Instant

	// StartPreset, when not custom/empty, overrides Start's time-of-day.
	StartPreset string

	// UseNow ignores Reference and ReferencePreset and reads the clock instead.
	UseNow    bool
	Reference age.Instant

	// ReferencePreset overrides Reference's time-of-day like StartPreset.
	ReferencePreset string
}

// Result bundles everything the presentation layers display.
type Result struct {
	Start      age.Instant    `json:"start"`
	Reference  age.Instant    `json:"reference"`
	Breakdown  age.Breakdown  `json:"breakdown"`
	Statistics age.Statistics `json:"statistics"`
	Weights    []age.Weight   `json:"weights"`
}

// Calculator resolves user input into instants and runs the decomposition.
// It holds no mutable state and may be shared between goroutines.
type Calculator struct {
	Clock Clock
}

// NewCalculator returns a Calculator backed by the real clock.
func NewCalculator() *Calculator {
	return &Calculator{Clock: RealClock{}}
}

// Calculate validates both instants and decomposes the interval between them.
// An *age.OrderingError is returned unwrapped so callers can present it as
// an input problem.
func (c *Calculator) Calculate(ctx context.Context, req Request) (Result, error) {
	log := slog.With(config.LogKeyComponent, config.CompEngine)

	start, err := ApplyPreset(req.Start, req.StartPreset)
	if err != nil {
		return Result{}, err
	}

	ref := NowInstant(c.clock())
	if !req.UseNow {
		if ref, err = ApplyPreset(req.Reference, req.ReferencePreset); err != nil {
			return Result{}, err
		}
	}

	for _, inst := range []age.Instant{start, ref} {
		if err := inst.Validate(); err != nil {
			return Result{}, err
		}
	}

	b, err := age.Decompose(start, ref)
	if err != nil {
		log.InfoContext(ctx, config.MsgCalcRejected,
			config.LogKeyStart, start.String(),
			config.LogKeyReference, ref.String(),
			config.LogKeyError, err)
		return Result{}, err
	}

	log.DebugContext(ctx, config.MsgCalculated,
		config.LogKeyStart, start.String(),
		config.LogKeyPreset, req.StartPreset,
		config.LogKeyReference, ref.String(),
		config.LogKeyYears, b.Years,
		config.LogKeyTotalSecs, b.TotalSeconds)

	return Result{
		Start:      start,
		Reference:  ref,
		Breakdown:  b,
		Statistics: age.Derive(b),
		Weights:    age.Weights(b),
	}, nil
}

func (c *Calculator) clock() Clock {
	if c.Clock == nil {
		return RealClock{}
	}
	return c.Clock
}

// ApplyPreset sets the time-of-day of inst from a named preset. An empty or
// custom preset leaves inst unchanged.
func ApplyPreset(inst age.Instant, preset string) (age.Instant, error) {
	switch preset {
	case "", config.PresetCustom:
		return inst, nil
	case config.PresetMorning:
		return inst.WithClock(config.PresetMorningHour, 0, 0), nil
	case config.PresetNoon:
		return inst.WithClock(config.PresetNoonHour, 0, 0), nil
	case config.PresetEvening:
		return inst.WithClock(config.PresetEveningHour, 0, 0), nil
	case config.PresetNight:
		return inst.WithClock(config.PresetNightHour, 0, 0), nil
	default:
		return inst, fmt.Errorf("%w: %q", ErrUnknownPreset, preset)
	}
}
