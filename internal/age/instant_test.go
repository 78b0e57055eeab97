package age_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-age/internal/age"
)

func TestParseInstant(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    age.Instant
		wantErr bool
	}{
		{"Full instant", "2000-02-29T08:15:30", age.NewInstant(2000, 2, 29, 8, 15, 30), false},
		{"Date only is midnight", "1990-06-01", age.NewInstant(1990, 6, 1, 0, 0, 0), false},
		{"Lower bound", "1900-01-01", age.NewInstant(1900, 1, 1, 0, 0, 0), false},
		{"Upper bound", "2100-12-31T23:59:59", age.NewInstant(2100, 12, 31, 23, 59, 59), false},
		{"Before 1900", "1899-12-31", age.Instant{}, true},
		{"After 2100", "2101-01-01", age.Instant{}, true},
		{"Feb 29 in a common year", "2023-02-29", age.Instant{}, true},
		{"Garbage", "yesterday", age.Instant{}, true},
		{"Empty", "", age.Instant{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := age.ParseInstant(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, age.ErrInvalidInstant))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestInstant_Validate(t *testing.T) {
	assert.NoError(t, age.NewInstant(2024, 2, 29, 23, 59, 59).Validate())
	assert.Error(t, age.NewInstant(2024, 13, 1, 0, 0, 0).Validate())
	assert.Error(t, age.NewInstant(2024, 4, 31, 0, 0, 0).Validate())
	assert.Error(t, age.NewInstant(2024, 4, 30, 24, 0, 0).Validate())
	assert.Error(t, age.NewInstant(2024, 4, 30, 0, 60, 0).Validate())
	assert.Error(t, age.NewInstant(2024, 4, 30, 0, 0, 60).Validate())
}

func TestInstant_CompareDateThenTime(t *testing.T) {
	a := age.NewInstant(2000, 1, 2, 0, 0, 0)
	b := age.NewInstant(2000, 1, 1, 23, 59, 59)

	assert.Equal(t, 1, a.Compare(b))
	assert.Equal(t, -1, b.Compare(a))
	assert.Equal(t, 0, a.Compare(a))
	assert.True(t, a.After(b))
	assert.False(t, a.After(a))
}

func TestInstant_TimeRoundTrip(t *testing.T) {
	inst := age.NewInstant(2012, 7, 14, 6, 5, 4)
	assert.Equal(t, time.Date(2012, 7, 14, 6, 5, 4, 0, time.UTC), inst.Time())
	assert.Equal(t, inst, age.FromTime(inst.Time()))
	assert.Equal(t, "2012-07-14T06:05:04", inst.String())

	local := time.Date(2012, 7, 14, 6, 5, 4, 999, time.FixedZone("X", 3600))
	assert.Equal(t, inst, age.FromTime(local), "location and nanoseconds are dropped")

	assert.Equal(t, age.NewInstant(2012, 7, 14, 0, 0, 0), inst.Date())
	assert.Equal(t, age.NewInstant(2012, 7, 14, 22, 0, 0), inst.WithClock(22, 0, 0))
}
