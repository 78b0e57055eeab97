package ui

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zalando/go-keyring"

	"github.com/tartampluch/go-age/internal/config"
)

func TestSyncInterval(t *testing.T) {
	app, _, _ := setupTestApp(t)

	tests := []struct {
		name string
		pref *int
		want time.Duration
	}{
		{"Unset uses default", nil, config.DefaultRefreshMin * time.Minute},
		{"Custom", intPtr(15), 15 * time.Minute},
		{"Zero disables", intPtr(0), 0},
		{"Negative uses default", intPtr(-5), config.DefaultRefreshMin * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app.Preferences.RemoveValue(config.PrefInterval)
			if tt.pref != nil {
				app.Preferences.SetInt(config.PrefInterval, *tt.pref)
			}
			assert.Equal(t, tt.want, app.syncInterval())
		})
	}
}

func intPtr(i int) *int { return &i }

func TestValidatePort(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefLanguage, "en")
	app.UpdateLocalizer()

	assert.NoError(t, app.validatePort("8080"))
	assert.NoError(t, app.validatePort("1"))
	assert.NoError(t, app.validatePort("65535"))

	assert.EqualError(t, app.validatePort(""), app.GetMsg(config.TKeyErrPortReq))
	assert.EqualError(t, app.validatePort("http"), app.GetMsg(config.TKeyErrPortNum))
	assert.EqualError(t, app.validatePort("0"), app.GetMsg(config.TKeyErrPortRange))
	assert.EqualError(t, app.validatePort("70000"), app.GetMsg(config.TKeyErrPortRange))
}

// localSettings points the source at a missing file so the resync that
// follows a save fails fast without touching the network.
func localSettings(t *testing.T, app *GoAgeApp) *settingsWidgets {
	t.Helper()
	app.Preferences.SetString(config.PrefSourceMode, config.SourceModeLocal)
	app.Preferences.SetString(config.PrefLocalPath, filepath.Join(t.TempDir(), "missing.vcf"))
	return app.newSettingsWidgets()
}

func TestSaveSettings_Persists(t *testing.T) {
	app, _, _ := setupTestApp(t)
	sw := localSettings(t, app)

	sw.entryPort.SetText("19000")
	sw.entryInterval.SetText("30")
	sw.birthDate.SetText("1984-02-29")
	sw.userEntry.SetText("ada")
	sw.passEntry.SetText("hunter2")
	sw.langSelect.SetSelected("fr")

	require.NoError(t, app.saveSettings(sw))

	assert.Equal(t, "19000", app.Preferences.String(config.PrefServerPort))
	assert.Equal(t, 30, app.Preferences.Int(config.PrefInterval))
	assert.Equal(t, "1984-02-29", app.Preferences.String(config.PrefBirthDate))
	assert.Equal(t, "fr", app.Preferences.String(config.PrefLanguage))
	assert.Equal(t, config.SourceModeLocal, app.Preferences.String(config.PrefSourceMode))

	pwd, err := keyring.Get(config.KeyringService, "ada")
	require.NoError(t, err)
	assert.Equal(t, "hunter2", pwd)

	assert.Equal(t, "Paramètres...", app.GetMsg(config.TKeyMenuSettings), "the new language applies immediately")
}

func TestSaveSettings_ZeroIntervalDisables(t *testing.T) {
	app, _, _ := setupTestApp(t)

	for _, input := range []string{"0", ""} {
		sw := localSettings(t, app)
		sw.entryInterval.SetText(input)

		require.NoError(t, app.saveSettings(sw))
		assert.Equal(t, config.DisabledInterval, app.Preferences.Int(config.PrefInterval), "input %q", input)
		assert.Zero(t, app.syncInterval())
	}
}

func TestSaveSettings_Rejects(t *testing.T) {
	app, _, _ := setupTestApp(t)
	app.Preferences.SetString(config.PrefServerPort, "18081")

	sw := localSettings(t, app)
	sw.entryPort.SetText("99999")
	assert.Error(t, app.saveSettings(sw))

	sw = localSettings(t, app)
	sw.birthDate.SetText("1899-12-31")
	assert.EqualError(t, app.saveSettings(sw), app.GetMsg(config.TKeyErrDate))

	assert.Equal(t, "18081", app.Preferences.String(config.PrefServerPort), "nothing is stored on a rejected save")
}
