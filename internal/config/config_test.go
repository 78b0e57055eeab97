package config_test

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-age/internal/config"
)

// TestConstants_Integrity ensures critical constants are not empty or malformed.
func TestConstants_Integrity(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"AppName", config.AppName},
		{"AppID", config.AppID},
		{"CLIName", config.CLIName},
		{"Version", config.Version},
		{"UserAgent", config.UserAgent},
		{"ICalVersion", config.ICalVersion},
		{"ICalProdid", config.ICalProdid},
		{"ErrOrdering", config.ErrOrdering},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.NotEmpty(t, tt.value, "Critical constant %s should not be empty", tt.name)
		})
	}
}

func TestDefaults_Sanity(t *testing.T) {
	assert.Greater(t, config.DefaultRefreshMin, 0, "Default refresh interval must be positive")
	assert.Equal(t, 2000, config.DefaultLeapYear, "Default leap year must be 2000 for consistency")
	assert.Less(t, config.MinYear, config.MaxYear)

	_, err := time.Parse(config.InstantFormatDate, config.DefaultBirthDate)
	assert.NoError(t, err, "DefaultBirthDate must match InstantFormatDate")

	assert.Equal(t, 30*time.Second, config.HTTPTimeout)
}

// TestStatisticConstants pins the illustrative approximations; they must not be "corrected".
func TestStatisticConstants(t *testing.T) {
	assert.Equal(t, 70, config.HeartbeatsPerMinute)
	assert.Equal(t, 12, config.BreathsPerMinute)
	assert.InDelta(t, 29.53, config.LunarCycleDays, 1e-9)
	assert.InDelta(t, 365.25, config.AvgDaysPerYear, 1e-9)
	assert.InDelta(t, 30.44, config.AvgDaysPerMonth, 1e-9)
	assert.Equal(t, 80, config.LifespanYears)
	assert.Equal(t, config.SecondsPerHour, config.SecondsPerMinute*60)
	assert.Equal(t, config.SecondsPerDay, config.SecondsPerHour*24)
}

func TestPresets_Ordered(t *testing.T) {
	assert.Equal(t, config.PresetCustom, config.PresetNames[0], "Custom must be the first preset")
	assert.Len(t, config.PresetNames, 5)
}

func TestUserAgent_Format(t *testing.T) {
	assert.True(t, strings.HasPrefix(config.UserAgent, "Go-Age/"), "UserAgent must start with AppName/")
}

func TestTimeoutsAndLimits(t *testing.T) {
	t.Parallel()

	assert.Greater(t, config.HTTPTimeout, 0*time.Second, "HTTPTimeout must be positive")
	assert.LessOrEqual(t, config.HTTPTimeout, 2*time.Minute, "HTTPTimeout should not be excessively long")
	assert.Greater(t, config.ShutdownTimeout, 0*time.Second, "ShutdownTimeout must be positive")

	assert.Greater(t, config.MaxHTTPResponseSize, 0, "MaxHTTPResponseSize must be positive")
	assert.Less(t, int64(config.MaxHTTPResponseSize), int64(1*1024*1024*1024), "MaxHTTPResponseSize should stay under 1GB to protect RAM")
}
