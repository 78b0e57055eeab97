package ui

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
	"github.com/tartampluch/go-age/internal/server"
	"github.com/zalando/go-keyring"
)

// GoAgeApp holds the UI state, the preferences and the background sync.
type GoAgeApp struct {
	App         fyne.App
	Window      fyne.Window // settings
	Preferences fyne.Preferences
	I18nBundle  *i18n.Bundle
	Localizer   *i18n.Localizer
	Ctx         context.Context

	Server  *server.Server
	Fetcher engine.VCardFetcher
	Clock   engine.Clock

	Tray desktop.App
	Menu *fyne.Menu

	TrayStatusItem   *fyne.MenuItem
	TrayCalcItem     *fyne.MenuItem
	TrayRefreshItem  *fyne.MenuItem
	TraySettingsItem *fyne.MenuItem

	SupportedLanguages []string
	configChan         chan string

	ContactsMut    sync.RWMutex
	Contacts       []engine.ContactAge
	contactsWindow fyne.Window
	calcWindow     fyne.Window
}

// NewGoAgeApp wires the application around an existing Fyne app.
func NewGoAgeApp(a fyne.App, ctx context.Context, srv *server.Server, fetcher engine.VCardFetcher) *GoAgeApp {
	a.SetIcon(theme.HistoryIcon())

	return &GoAgeApp{
		App:                a,
		Preferences:        a.Preferences(),
		Ctx:                ctx,
		Server:             srv,
		Fetcher:            fetcher,
		Clock:              engine.RealClock{},
		SupportedLanguages: config.SupportedLanguages,
		configChan:         make(chan string, config.ChannelBufferSize),
		Contacts:           make([]engine.ContactAge, 0),
	}
}

// Run starts the server, the tray and the sync worker, then blocks in the
// Fyne event loop. The calculator opens on launch.
func (app *GoAgeApp) Run() {
	app.SetupI18n()
	app.watchPreferences()

	go func() {
		if err := app.Server.Start(app.Ctx); err != nil {
			slog.Error(config.ErrServerStartup,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)

			app.App.SendNotification(fyne.NewNotification(
				config.TitleStartupError,
				fmt.Sprintf(config.MsgPortBusy, app.Server.Port)))
		}
	}()

	if desk, ok := app.App.(desktop.App); ok {
		app.Tray = desk
		app.Tray.SetSystemTrayIcon(app.App.Icon())
		app.setupTrayMenu()
	} else {
		slog.Warn(config.ErrTrayNotSupported, config.LogKeyComponent, config.CompUI)
	}

	go app.backgroundWorker()
	app.ShowCalculatorWindow()
	app.App.Run()
}

func (app *GoAgeApp) watchPreferences() {
	app.Preferences.AddChangeListener(func() {
		select {
		case app.configChan <- config.PrefInterval:
		default:
		}
	})
}

func (app *GoAgeApp) setupTrayMenu() {
	// The status line doubles as the entry point to the contacts list.
	app.TrayStatusItem = fyne.NewMenuItem(config.FallbackTrayLabel, app.ShowContactsWindow)
	app.TrayCalcItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuCalculator), app.ShowCalculatorWindow)
	app.TrayRefreshItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuRefresh), func() {
		go app.performSync(true)
	})
	app.TraySettingsItem = fyne.NewMenuItem(app.GetMsg(config.TKeyMenuSettings), app.ShowSettingsWindow)

	app.Menu = fyne.NewMenu(config.AppName,
		app.TrayStatusItem,
		app.TrayCalcItem,
		fyne.NewMenuItemSeparator(),
		app.TrayRefreshItem,
		app.TraySettingsItem,
	)

	if app.Tray != nil {
		app.Tray.SetSystemTrayMenu(app.Menu)
	}
}

// RefreshTrayMenu re-reads the localized labels after a language change.
func (app *GoAgeApp) RefreshTrayMenu() {
	if app.Menu == nil {
		return
	}
	app.TrayCalcItem.Label = app.GetMsg(config.TKeyMenuCalculator)
	app.TrayRefreshItem.Label = app.GetMsg(config.TKeyMenuRefresh)
	app.TraySettingsItem.Label = app.GetMsg(config.TKeyMenuSettings)
	app.Menu.Refresh()
}

// syncInterval reads the refresh preference. Zero disables periodic syncs.
func (app *GoAgeApp) syncInterval() time.Duration {
	val := app.Preferences.IntWithFallback(config.PrefInterval, config.DefaultRefreshMin)
	if val < 0 {
		val = config.DefaultRefreshMin
	}
	return time.Duration(val) * time.Minute
}

func (app *GoAgeApp) backgroundWorker() {
	log := slog.With(config.LogKeyComponent, config.CompWorker)

	app.performSync(false)

	var (
		ticker *time.Ticker
		tick   <-chan time.Time
	)
	schedule := func(d time.Duration) {
		if ticker != nil {
			ticker.Stop()
			ticker, tick = nil, nil
		}
		if d <= 0 {
			log.Info(config.MsgWorkerIdle)
			return
		}
		ticker = time.NewTicker(d)
		tick = ticker.C
	}

	current := app.syncInterval()
	schedule(current)
	defer func() {
		if ticker != nil {
			ticker.Stop()
		}
	}()
	log.Info(config.MsgWorkerStart, config.LogKeyInterval, current)

	for {
		select {
		case <-app.Ctx.Done():
			log.Info(config.MsgWorkerStop)
			return

		case <-app.configChan:
			if next := app.syncInterval(); next != current {
				log.Info(config.MsgUpdateSync, config.LogKeyOld, current, config.LogKeyNew, next)
				current = next
				schedule(current)
			}

		case <-tick:
			app.performSync(false)
		}
	}
}

// performSync imports the contacts, refreshes their ages and republishes the
// milestone feed.
func (app *GoAgeApp) performSync(manual bool) {
	slog.Info(config.MsgSyncReq,
		config.LogKeyComponent, config.CompUI,
		config.LogKeyManual, manual)

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifStart)))
	}

	gen := &engine.Generator{
		Clock:         app.Clock,
		Fetcher:       app.Fetcher,
		FormatSummary: app.buildSummaryFormatter(),
	}

	icsData, contacts, err := gen.RunSync(app.Ctx, app.loadSyncConfig())
	if err != nil {
		slog.Error(config.MsgSyncFailed, config.LogKeyError, err, config.LogKeyComponent, config.CompUI)
		if manual {
			app.App.SendNotification(fyne.NewNotification(config.TitleSyncError, app.GetMsg(config.TKeyNotifError)))
		}
		app.updateTrayStatus(-1)
		return
	}

	app.ContactsMut.Lock()
	app.Contacts = contacts
	app.ContactsMut.Unlock()

	app.Server.Update(icsData)
	app.updateTrayStatus(len(contacts))

	if manual {
		app.App.SendNotification(fyne.NewNotification(config.AppName, app.GetMsg(config.TKeyNotifSuccess)))
	}
}

// updateTrayStatus shows the number of contacts with a birth date, or an
// error marker when count is negative.
func (app *GoAgeApp) updateTrayStatus(count int) {
	if app.Menu == nil || app.TrayStatusItem == nil {
		return
	}

	label := config.FallbackTrayError
	if count >= 0 {
		label = app.localizeData(config.TKeyTrayStatus, map[string]any{"Count": count}, count)
		if label == "" {
			label = fmt.Sprintf(config.FallbackTrayDefault, count)
		}
	}

	app.TrayStatusItem.Label = label
	app.Menu.Refresh()
}

// loadSyncConfig assembles the engine configuration from preferences and
// the keyring.
func (app *GoAgeApp) loadSyncConfig() engine.SyncConfig {
	cfg := engine.SyncConfig{
		Mode:      app.Preferences.String(config.PrefSourceMode),
		LocalPath: app.Preferences.String(config.PrefLocalPath),
		WebURL:    app.Preferences.String(config.PrefCardDAVURL),
		WebUser:   app.Preferences.String(config.PrefUsername),
	}

	if cfg.WebUser != "" {
		if p, err := keyring.Get(config.KeyringService, cfg.WebUser); err == nil {
			cfg.WebPass = p
		} else {
			slog.Debug(config.MsgPassFail,
				config.LogKeyUser, cfg.WebUser,
				config.LogKeyError, err,
				config.LogKeyComponent, config.CompUI)
		}
	}
	return cfg
}

// buildSummaryFormatter localizes milestone titles. An empty string makes
// the engine fall back to its English default.
func (app *GoAgeApp) buildSummaryFormatter() func(m engine.Milestone) string {
	return func(m engine.Milestone) string {
		switch m.Kind {
		case config.MilestoneKindDays:
			return app.localizeData(config.TKeyEvtDays, map[string]any{"Name": m.Name, "Days": m.Value}, nil)
		case config.MilestoneKindSeconds:
			return app.localizeData(config.TKeyEvtSeconds, map[string]any{"Name": m.Name}, nil)
		default:
			if !m.YearKnown {
				return app.localizeData(config.TKeyEvtBirthdayNY, map[string]any{"Name": m.Name}, nil)
			}
			return app.localizeData(config.TKeyEvtBirthday, map[string]any{"Name": m.Name, "Age": m.Value}, nil)
		}
	}
}
