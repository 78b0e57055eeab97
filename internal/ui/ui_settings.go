package ui

import (
	"errors"
	"fmt"
	"log/slog"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/zalando/go-keyring"
)

// settingsWidgets keeps the inputs read back by saveSettings.
type settingsWidgets struct {
	langSelect    *widget.Select
	modeSelect    *widget.Select
	urlEntry      *widget.Entry
	userEntry     *widget.Entry
	passEntry     *widget.Entry
	pathEntry     *widget.Entry
	entryInterval *NumericalEntry
	entryPort     *NumericalEntry
	birthDate     *widget.Entry
}

// ShowSettingsWindow opens the preferences window, or focuses it.
func (app *GoAgeApp) ShowSettingsWindow() {
	if app.Window != nil {
		app.Window.RequestFocus()
		return
	}

	slog.Info(config.MsgSettingsOpen, config.LogKeyComponent, config.CompUISet)
	w := app.App.NewWindow(app.GetMsg(config.TKeyWinTitle))
	app.Window = w

	sw := app.newSettingsWidgets()

	var body *fyne.Container
	fit := func() {
		if body == nil {
			return
		}
		body.Refresh()
		w.Resize(fyne.NewSize(config.SettingsWindowWidth, body.MinSize().Height))
	}

	save := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnSave), theme.DocumentSaveIcon(), func() {
		if err := app.saveSettings(sw); err != nil {
			dialog.ShowError(err, w)
			return
		}
		w.Close()
	})
	save.Importance = widget.HighImportance
	cancel := widget.NewButtonWithIcon(app.GetMsg(config.TKeyBtnCancel), theme.CancelIcon(), w.Close)

	footer := widget.NewLabelWithStyle(fmt.Sprintf(app.GetMsg(config.TKeyLblFooter), config.Version),
		fyne.TextAlignCenter, fyne.TextStyle{Italic: true})

	body = container.NewVBox(
		app.buildSourceCard(w, sw, fit),
		app.buildGeneralCard(sw),
		container.NewGridWithColumns(config.LayoutColumnsDouble, cancel, save),
		footer,
	)

	w.SetContent(container.NewPadded(body))
	w.SetFixedSize(true)
	w.SetOnClosed(func() { app.Window = nil })
	fit()
	w.Show()
}

// hinted builds a form row whose hint text is translated too.
func (app *GoAgeApp) hinted(labelKey, hintKey string, obj fyne.CanvasObject) *widget.FormItem {
	item := widget.NewFormItem(app.GetMsg(labelKey), obj)
	if hintKey != "" {
		item.HintText = app.GetMsg(hintKey)
	}
	return item
}

func (app *GoAgeApp) buildGeneralCard(sw *settingsWidgets) *widget.Card {
	interval := container.NewBorder(nil, nil, nil, widget.NewLabel(app.GetMsg(config.TKeyLblMinutes)), sw.entryInterval)

	return widget.NewCard(app.GetMsg(config.TKeyLblGeneral), "", widget.NewForm(
		app.hinted(config.TKeyLblLanguage, config.TKeyHelpLanguage, sw.langSelect),
		app.hinted(config.TKeyLblBirthDate, "", sw.birthDate),
		app.hinted(config.TKeyLblRefresh, config.TKeyHelpInterval, interval),
		app.hinted(config.TKeyLblPort, config.TKeyHelpPort, sw.entryPort),
	))
}

// newSettingsWidgets builds the inputs pre-filled from preferences and the
// keyring.
func (app *GoAgeApp) newSettingsWidgets() *settingsWidgets {
	prefs := app.Preferences
	entry := func(text string) *widget.Entry {
		e := widget.NewEntry()
		e.SetText(text)
		return e
	}

	sw := &settingsWidgets{
		langSelect: widget.NewSelect(app.SupportedLanguages, nil),
		modeSelect: widget.NewSelect([]string{
			app.GetMsg(config.TKeyModeCardDAV),
			app.GetMsg(config.TKeyModeLocal),
		}, nil),
		urlEntry:      entry(prefs.String(config.PrefCardDAVURL)),
		userEntry:     entry(prefs.String(config.PrefUsername)),
		passEntry:     widget.NewPasswordEntry(),
		pathEntry:     entry(prefs.String(config.PrefLocalPath)),
		entryInterval: NewNumericalEntry(),
		entryPort:     NewNumericalEntry(),
		birthDate:     entry(prefs.StringWithFallback(config.PrefBirthDate, config.DefaultBirthDate)),
	}
	sw.langSelect.SetSelected(app.currentLanguage())
	sw.urlEntry.PlaceHolder = config.PlaceholderURL

	if user := sw.userEntry.Text; user != "" {
		if pwd, err := keyring.Get(config.KeyringService, user); err == nil {
			sw.passEntry.SetText(pwd)
		}
	}

	sw.entryInterval.SetText(strconv.Itoa(prefs.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)))

	sw.entryPort.SetText(prefs.StringWithFallback(config.PrefServerPort, config.DefaultPort))
	sw.entryPort.Validator = app.validatePort

	sw.birthDate.PlaceHolder = config.CalculatorPlaceholder
	sw.birthDate.Validator = validateDate

	return sw
}

// validatePort returns a translated error for an empty, non-numeric or
// out-of-range port.
func (app *GoAgeApp) validatePort(s string) error {
	port, err := strconv.Atoi(s)
	switch {
	case s == "":
		return errors.New(app.GetMsg(config.TKeyErrPortReq))
	case err != nil:
		return errors.New(app.GetMsg(config.TKeyErrPortNum))
	case port < config.MinPort || port > config.MaxPort:
		return errors.New(app.GetMsg(config.TKeyErrPortRange))
	}
	return nil
}

// buildSourceCard switches between the CardDAV form and the local file picker.
// onResize is called whenever the visible form changes.
func (app *GoAgeApp) buildSourceCard(w fyne.Window, sw *settingsWidgets, onResize func()) *widget.Card {
	localLabel := app.GetMsg(config.TKeyModeLocal)

	browse := widget.NewButton(app.GetMsg(config.TKeyBtnBrowse), func() {
		d := dialog.NewFileOpen(func(r fyne.URIReadCloser, err error) {
			if err != nil || r == nil {
				return
			}
			sw.pathEntry.SetText(r.URI().Path())
			_ = r.Close()
		}, w)
		d.SetFilter(storage.NewExtensionFileFilter([]string{config.ExtVCF, config.ExtVCard}))
		d.Show()
	})

	web := widget.NewForm(
		app.hinted(config.TKeyLblURL, config.TKeyHelpURL, sw.urlEntry),
		app.hinted(config.TKeyLblUser, "", sw.userEntry),
		app.hinted(config.TKeyLblPass, "", sw.passEntry),
	)
	local := container.NewBorder(nil, nil, nil, browse, sw.pathEntry)

	show := func(mode string) {
		isLocal := mode == localLabel
		setVisible(!isLocal, web)
		setVisible(isLocal, local)
	}

	initial := app.GetMsg(config.TKeyModeCardDAV)
	if app.Preferences.String(config.PrefSourceMode) == config.SourceModeLocal {
		initial = localLabel
	}
	sw.modeSelect.SetSelected(initial)
	show(initial)

	sw.modeSelect.OnChanged = func(mode string) {
		show(mode)
		if onResize != nil {
			onResize()
		}
	}

	return widget.NewCard(app.GetMsg(config.TKeyLblSource), "", container.NewVBox(sw.modeSelect, web, local))
}

func setVisible(visible bool, o fyne.CanvasObject) {
	if visible {
		o.Show()
	} else {
		o.Hide()
	}
}

// saveSettings validates and persists the form, then resyncs. An empty or
// zero interval disables periodic refresh.
func (app *GoAgeApp) saveSettings(sw *settingsWidgets) error {
	log := slog.With(config.LogKeyComponent, config.CompUISet)

	if err := sw.entryPort.Validate(); err != nil {
		return err
	}
	if err := sw.birthDate.Validate(); err != nil {
		return errors.New(app.GetMsg(config.TKeyErrDate))
	}

	mode := config.SourceModeWeb
	if sw.modeSelect.Selected == app.GetMsg(config.TKeyModeLocal) {
		mode = config.SourceModeLocal
	}

	for key, value := range map[string]string{
		config.PrefLanguage:   sw.langSelect.Selected,
		config.PrefSourceMode: mode,
		config.PrefCardDAVURL: sw.urlEntry.Text,
		config.PrefUsername:   sw.userEntry.Text,
		config.PrefLocalPath:  sw.pathEntry.Text,
		config.PrefServerPort: sw.entryPort.Text,
		config.PrefBirthDate:  sw.birthDate.Text,
	} {
		app.Preferences.SetString(key, value)
	}

	if sw.userEntry.Text != "" && sw.passEntry.Text != "" {
		if err := keyring.Set(config.KeyringService, sw.userEntry.Text, sw.passEntry.Text); err != nil {
			log.Error(config.MsgKeyringSave, config.LogKeyError, err)
		}
	}

	interval, err := strconv.Atoi(sw.entryInterval.Text)
	if err != nil || interval <= 0 {
		interval = config.DisabledInterval
		log.Info(config.MsgRefreshOff)
	}
	app.Preferences.SetInt(config.PrefInterval, interval)
	log.Info(config.MsgSettingsSaved, config.LogKeyMode, mode, config.LogKeyInterval, interval)

	app.UpdateLocalizer()
	app.RefreshTrayMenu()
	go app.performSync(true)
	return nil
}
