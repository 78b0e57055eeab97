package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

// calcForm holds the calculator inputs and the result widgets.
type calcForm struct {
	birthDate *widget.Entry
	preset    *widget.Select
	hour      *NumericalEntry
	minute    *NumericalEntry
	second    *NumericalEntry

	useNow    *widget.Check
	refDate   *widget.Entry
	refPreset *widget.Select
	refHour   *NumericalEntry
	refMinute *NumericalEntry
	refSecond *NumericalEntry

	calculate *widget.Button

	birthPreview *widget.Label
	refPreview   *widget.Label

	result     *widget.Label
	stats      *fyne.Container
	lifeBar    *widget.ProgressBar
	facts      *widget.Label
	weightsBox *fyne.Container
	results    *fyne.Container
}

type statRow struct {
	key   string
	value int64
}

var presetKeys = map[string]string{
	config.PresetCustom:  config.TKeyPresetCustom,
	config.PresetMorning: config.TKeyPresetMorning,
	config.PresetNoon:    config.TKeyPresetNoon,
	config.PresetEvening: config.TKeyPresetEvening,
	config.PresetNight:   config.TKeyPresetNight,
}

var componentKeys = map[age.Component]string{
	age.ComponentYears:   config.TKeyUnitYears,
	age.ComponentMonths:  config.TKeyUnitMonths,
	age.ComponentDays:    config.TKeyUnitDays,
	age.ComponentHours:   config.TKeyUnitHours,
	age.ComponentMinutes: config.TKeyUnitMinutes,
	age.ComponentSeconds: config.TKeyUnitSeconds,
}

// ShowCalculatorWindow opens the age calculator, or focuses it when it is
// already open.
func (app *GoAgeApp) ShowCalculatorWindow() {
	if app.calcWindow != nil {
		app.calcWindow.RequestFocus()
		return
	}

	slog.Info(config.MsgCalcWindowOpen, config.LogKeyComponent, config.CompUICalc)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinCalculator))
	app.calcWindow = w

	f := app.newCalcForm(w)
	w.SetContent(container.NewVScroll(container.NewPadded(app.layoutCalcForm(f))))
	w.Resize(fyne.NewSize(config.CalculatorWinWidth, config.CalculatorWinHeight))
	w.SetOnClosed(func() { app.calcWindow = nil })
	w.Show()
}

func (app *GoAgeApp) newCalcForm(w fyne.Window) *calcForm {
	f := &calcForm{}

	f.birthDate = widget.NewEntry()
	f.birthDate.PlaceHolder = config.CalculatorPlaceholder
	f.birthDate.SetText(app.Preferences.StringWithFallback(config.PrefBirthDate, config.DefaultBirthDate))
	f.birthDate.Validator = validateDate

	f.birthPreview = widget.NewLabel("")
	f.refPreview = widget.NewLabel("")
	refresh := func() { app.refreshPreviews(f) }

	f.hour = newClockEntry(config.MaxHour, 0)
	f.minute = newClockEntry(config.MaxMinuteSecond, 0)
	f.second = newClockEntry(config.MaxMinuteSecond, 0)
	f.preset = app.newPresetSelect(app.savedPreset(config.PrefBirthPreset), refresh,
		f.hour, f.minute, f.second)

	// A custom reference time starts at the current time of day.
	now := engine.NowInstant(app.clock())
	f.refDate = widget.NewEntry()
	f.refDate.PlaceHolder = config.CalculatorPlaceholder
	f.refDate.SetText(now.Date().Time().Format(config.InstantFormatDate))
	f.refDate.Validator = validateDate
	f.refHour = newClockEntry(config.MaxHour, now.Hour)
	f.refMinute = newClockEntry(config.MaxMinuteSecond, now.Minute)
	f.refSecond = newClockEntry(config.MaxMinuteSecond, now.Second)
	f.refPreset = app.newPresetSelect(app.savedPreset(config.PrefRefPreset), refresh,
		f.refHour, f.refMinute, f.refSecond)

	f.useNow = widget.NewCheck(app.GetMsg(config.TKeyLblUseNow), func(checked bool) {
		setEnabled(!checked, f.refDate, f.refPreset)
		custom := app.presetFromLabel(f.refPreset.Selected) == config.PresetCustom
		setEnabled(!checked && custom, f.refHour, f.refMinute, f.refSecond)
		refresh()
	})
	f.useNow.SetChecked(true)

	onText := func(string) { refresh() }
	for _, e := range []*widget.Entry{f.birthDate, f.refDate} {
		e.OnChanged = onText
	}
	for _, e := range []*NumericalEntry{f.hour, f.minute, f.second, f.refHour, f.refMinute, f.refSecond} {
		e.OnChanged = onText
	}
	refresh()

	f.result = widget.NewLabel("")
	f.result.Wrapping = fyne.TextWrapWord
	f.result.TextStyle = fyne.TextStyle{Bold: true}
	f.stats = container.New(layout.NewFormLayout())
	f.lifeBar = widget.NewProgressBar()
	f.lifeBar.Max = config.LifeGaugeMax
	f.facts = widget.NewLabel("")
	f.facts.Wrapping = fyne.TextWrapWord
	f.weightsBox = container.NewVBox()
	f.results = container.NewVBox(
		f.result,
		widget.NewCard(app.GetMsg(config.TKeyLblStatistics), "", f.stats),
		widget.NewCard(app.GetMsg(config.TKeyLblLifeJourney), "", f.lifeBar),
		widget.NewCard(app.GetMsg(config.TKeyLblFunFacts), "", f.facts),
		widget.NewCard(app.GetMsg(config.TKeyLblBreakdown), "", f.weightsBox),
	)
	f.results.Hide()

	f.calculate = widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCalculate), theme.ConfirmIcon(), func() {
		_ = app.runCalculation(f, w)
	})
	f.calculate.Importance = widget.HighImportance

	return f
}

// newPresetSelect lists the time presets. Choosing anything but custom
// disables the clock entries it controls.
func (app *GoAgeApp) newPresetSelect(initial string, changed func(), clock ...fyne.Disableable) *widget.Select {
	labels := make([]string, 0, len(config.PresetNames))
	for _, p := range config.PresetNames {
		labels = append(labels, app.GetMsg(presetKeys[p]))
	}
	sel := widget.NewSelect(labels, nil)
	sel.OnChanged = func(label string) {
		setEnabled(!sel.Disabled() && app.presetFromLabel(label) == config.PresetCustom, clock...)
		changed()
	}
	sel.SetSelected(app.GetMsg(presetKeys[initial]))
	return sel
}

// refreshPreviews spells out the instants the form currently describes, with
// presets applied. Incomplete input clears the preview.
func (app *GoAgeApp) refreshPreviews(f *calcForm) {
	if f.birthPreview == nil || f.refPreview == nil || f.useNow == nil {
		return
	}
	longFormat := app.GetMsg(config.TKeyFormatLong)
	if longFormat == config.TKeyFormatLong {
		longFormat = config.InstantFormatLong
	}
	describe := func(key string, inst age.Instant) string {
		when := inst.Time().Format(longFormat)
		if s := app.localizeData(key, map[string]any{"When": when}, nil); s != "" {
			return s
		}
		return when
	}

	f.birthPreview.SetText("")
	if start, err := readInstant(f.birthDate, f.hour, f.minute, f.second); err == nil {
		if start, err = engine.ApplyPreset(start, app.presetFromLabel(f.preset.Selected)); err == nil {
			f.birthPreview.SetText(describe(config.TKeyLblBirthSel, start))
		}
	}

	if f.useNow.Checked {
		f.refPreview.SetText(describe(config.TKeyLblNowSel, engine.NowInstant(app.clock())))
		return
	}
	f.refPreview.SetText("")
	if ref, err := readInstant(f.refDate, f.refHour, f.refMinute, f.refSecond); err == nil {
		if ref, err = engine.ApplyPreset(ref, app.presetFromLabel(f.refPreset.Selected)); err == nil {
			f.refPreview.SetText(describe(config.TKeyLblRefSel, ref))
		}
	}
}

func (app *GoAgeApp) layoutCalcForm(f *calcForm) fyne.CanvasObject {
	clock := container.NewGridWithColumns(config.LayoutColumnsTriple, f.hour, f.minute, f.second)
	birthForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblBirthDate), f.birthDate),
		widget.NewFormItem(app.GetMsg(config.TKeyLblPreset), f.preset),
		widget.NewFormItem(timeLabel(app), clock),
	)

	refClock := container.NewGridWithColumns(config.LayoutColumnsTriple, f.refHour, f.refMinute, f.refSecond)
	refForm := widget.NewForm(
		widget.NewFormItem(app.GetMsg(config.TKeyLblCalcDate), f.refDate),
		widget.NewFormItem(app.GetMsg(config.TKeyLblRefPreset), f.refPreset),
		widget.NewFormItem(timeLabel(app), refClock),
	)

	return container.NewVBox(
		widget.NewCard(app.GetMsg(config.TKeyLblBirthInfo), "", container.NewVBox(birthForm, f.birthPreview)),
		widget.NewCard(app.GetMsg(config.TKeyLblReference), "", container.NewVBox(f.useNow, refForm, f.refPreview)),
		f.calculate,
		f.results,
	)
}

func timeLabel(app *GoAgeApp) string {
	return fmt.Sprintf("%s / %s / %s",
		app.GetMsg(config.TKeyLblHour), app.GetMsg(config.TKeyLblMinute), app.GetMsg(config.TKeyLblSecond))
}

// runCalculation reads the form, calculates and renders the result. Input
// problems are reported in a dialog and returned.
func (app *GoAgeApp) runCalculation(f *calcForm, w fyne.Window) error {
	log := slog.With(config.LogKeyComponent, config.CompUICalc)

	req, err := app.readRequest(f)
	if err == nil {
		var res engine.Result
		if res, err = (&engine.Calculator{Clock: app.clock()}).Calculate(app.Ctx, req); err == nil {
			app.renderResult(f, res)
			app.Preferences.SetString(config.PrefBirthDate, f.birthDate.Text)
			app.Preferences.SetString(config.PrefBirthPreset, req.StartPreset)
			if !req.UseNow {
				app.Preferences.SetString(config.PrefRefPreset, req.ReferencePreset)
			}
			return nil
		}
	}

	key := config.TKeyErrDate
	if errors.Is(err, age.ErrOrdering) {
		key = config.TKeyErrOrdering
	}
	log.Info(config.MsgCalcRejected, config.LogKeyError, err)
	if w != nil {
		dialog.ShowError(errors.New(app.GetMsg(key)), w)
	}
	return err
}

func (app *GoAgeApp) readRequest(f *calcForm) (engine.Request, error) {
	start, err := readInstant(f.birthDate, f.hour, f.minute, f.second)
	if err != nil {
		return engine.Request{}, err
	}
	req := engine.Request{
		Start:       start,
		StartPreset: app.presetFromLabel(f.preset.Selected),
		UseNow:      f.useNow.Checked,
	}
	if !req.UseNow {
		if req.Reference, err = readInstant(f.refDate, f.refHour, f.refMinute, f.refSecond); err != nil {
			return engine.Request{}, err
		}
		req.ReferencePreset = app.presetFromLabel(f.refPreset.Selected)
	}
	return req, nil
}

func (app *GoAgeApp) renderResult(f *calcForm, res engine.Result) {
	b := res.Breakdown
	sentence := app.localizeData(config.TKeyLblResult, map[string]any{
		"Years":   app.durationPart(config.TKeyDurYears, b.Years),
		"Months":  app.durationPart(config.TKeyDurMonths, b.Months),
		"Days":    app.durationPart(config.TKeyDurDays, b.Days),
		"Hours":   app.durationPart(config.TKeyDurHours, b.Hours),
		"Minutes": app.durationPart(config.TKeyDurMinutes, b.Minutes),
		"Seconds": app.durationPart(config.TKeyDurSeconds, b.Seconds),
	}, nil)
	if sentence == "" {
		sentence = fmt.Sprintf(config.FormatBreakdown, b.Years, b.Months, b.Days, b.Hours, b.Minutes, b.Seconds)
	}
	f.result.SetText(sentence)

	f.stats.RemoveAll()
	for _, row := range statRows(res) {
		value := widget.NewLabel(app.formatCount(row.value))
		value.Alignment = fyne.TextAlignTrailing
		f.stats.Add(widget.NewLabel(app.GetMsg(row.key)))
		f.stats.Add(value)
	}

	f.lifeBar.SetValue(res.Statistics.LifePercent)

	s := res.Statistics
	f.facts.SetText(app.localizeData(config.TKeyFactOrbits, map[string]any{"Count": s.EarthOrbits}, s.EarthOrbits) + "\n" +
		app.localizeData(config.TKeyFactMoon, map[string]any{"Count": app.formatCount(s.LunarCycles)}, s.LunarCycles) + "\n" +
		app.localizeData(config.TKeyFactSeasons, map[string]any{"Count": s.Seasons}, s.Seasons))

	f.weightsBox.RemoveAll()
	shares := age.Share(res.Weights)
	for i, wgt := range res.Weights {
		bar := widget.NewProgressBar()
		bar.SetValue(shares[i])
		f.weightsBox.Add(container.NewBorder(nil, nil, widget.NewLabel(app.GetMsg(componentKeys[wgt.Component])), nil, bar))
	}

	f.results.Show()
	slog.Debug(config.MsgCalculated,
		config.LogKeyComponent, config.CompUICalc,
		config.LogKeyYears, b.Years,
		config.LogKeyTotalSecs, b.TotalSeconds)
}

// durationPart renders "1 year" / "2 years" through the plural rules of the
// UI language.
func (app *GoAgeApp) durationPart(key string, n int) string {
	if s := app.localizeData(key, map[string]any{"Count": n}, n); s != "" {
		return s
	}
	return strconv.Itoa(n)
}

// statRows lists the statistics in display order.
func statRows(res engine.Result) []statRow {
	s := res.Statistics
	return []statRow{
		{config.TKeyStatYears, int64(res.Breakdown.Years)},
		{config.TKeyStatMonths, int64(s.TotalMonths)},
		{config.TKeyStatWeeks, s.TotalWeeks},
		{config.TKeyStatDays, s.TotalDays},
		{config.TKeyStatHours, s.TotalHours},
		{config.TKeyStatMinutes, s.TotalMinutes},
		{config.TKeyStatSeconds, s.TotalSeconds},
		{config.TKeyStatHeartbeat, s.Heartbeats},
		{config.TKeyStatBreaths, s.Breaths},
	}
}

func (app *GoAgeApp) presetFromLabel(label string) string {
	for _, p := range config.PresetNames {
		if app.GetMsg(presetKeys[p]) == label {
			return p
		}
	}
	return config.PresetCustom
}

// savedPreset reads a preset preference, falling back to custom.
func (app *GoAgeApp) savedPreset(key string) string {
	p := app.Preferences.StringWithFallback(key, config.PresetCustom)
	if _, ok := presetKeys[p]; !ok {
		return config.PresetCustom
	}
	return p
}

func (app *GoAgeApp) clock() engine.Clock {
	if app.Clock == nil {
		return engine.RealClock{}
	}
	return app.Clock
}

func newClockEntry(upper, initial int) *NumericalEntry {
	e := NewNumericalEntry()
	e.SetText(strconv.Itoa(initial))
	e.Validator = func(s string) error {
		_, err := clockField(s, upper)
		return err
	}
	return e
}

// clockField parses one time-of-day field. Empty means zero.
func clockField(s string, upper int) (int, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.Atoi(s)
	if err != nil || v < 0 || v > upper {
		return 0, fmt.Errorf("%w: %q", age.ErrInvalidInstant, s)
	}
	return v, nil
}

func validateDate(s string) error {
	_, err := age.ParseInstant(s)
	return err
}

func readInstant(date *widget.Entry, h, m, s *NumericalEntry) (age.Instant, error) {
	inst, err := age.ParseInstant(date.Text)
	if err != nil {
		return age.Instant{}, err
	}
	hour, err := clockField(h.Text, config.MaxHour)
	if err != nil {
		return age.Instant{}, err
	}
	minute, err := clockField(m.Text, config.MaxMinuteSecond)
	if err != nil {
		return age.Instant{}, err
	}
	second, err := clockField(s.Text, config.MaxMinuteSecond)
	if err != nil {
		return age.Instant{}, err
	}
	return inst.WithClock(hour, minute, second), nil
}

func setEnabled(enabled bool, widgets ...fyne.Disableable) {
	for _, w := range widgets {
		if enabled {
			w.Enable()
		} else {
			w.Disable()
		}
	}
}
