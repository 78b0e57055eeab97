package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

type fixedClock time.Time

func (c fixedClock) Now() time.Time { return time.Time(c) }

func ageURL(params map[string]string) string {
	q := url.Values{}
	for k, v := range params {
		q.Set(k, v)
	}
	return config.RouteAge + "?" + q.Encode()
}

func TestAge_Success(t *testing.T) {
	srv := New("0", &engine.Calculator{})

	resp := serve(t, srv, http.MethodGet, ageURL(map[string]string{
		config.QueryStart:     "2000-02-29",
		config.QueryReference: "2001-03-01T00:00:00",
	}), nil)

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, config.MimeJSON, resp.Header.Get(config.HeaderContentType))
	assert.Equal(t, config.CacheControlNoStore, resp.Header.Get(config.HeaderCacheControl))

	var res engine.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, age.Breakdown{Years: 1, Days: 1, TotalSeconds: 366 * 86400}, res.Breakdown)
	assert.EqualValues(t, 366, res.Statistics.TotalDays)
	assert.Len(t, res.Weights, 2)
}

func TestAge_MissingReferenceUsesClock(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	srv := New("0", &engine.Calculator{Clock: fixedClock(now)})

	resp := serve(t, srv, http.MethodGet, ageURL(map[string]string{
		config.QueryStart:  "2010-01-01",
		config.QueryPreset: config.PresetMorning,
	}), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res engine.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, age.NewInstant(2020, 1, 1, 12, 0, 0), res.Reference)
	assert.Equal(t, age.NewInstant(2010, 1, 1, 8, 0, 0), res.Start)
	assert.Equal(t, 10, res.Breakdown.Years)
	assert.Equal(t, 4, res.Breakdown.Hours)
}

func TestAge_ReferencePreset(t *testing.T) {
	now := time.Date(2020, 1, 1, 12, 0, 0, 0, time.UTC)
	srv := New("0", &engine.Calculator{Clock: fixedClock(now)})

	resp := serve(t, srv, http.MethodGet, ageURL(map[string]string{
		config.QueryStart:     "2000-01-01",
		config.QueryReference: "2000-01-02T03:04:05",
		config.QueryRefPreset: config.PresetNoon,
	}), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var res engine.Result
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, age.NewInstant(2000, 1, 2, 12, 0, 0), res.Reference)
	assert.Equal(t, age.Breakdown{Days: 1, Hours: 12, TotalSeconds: 36 * 3600}, res.Breakdown)

	// Without a reference the clock wins and the preset is ignored.
	resp = serve(t, srv, http.MethodGet, ageURL(map[string]string{
		config.QueryStart:     "2010-01-01",
		config.QueryRefPreset: config.PresetNight,
	}), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&res))
	assert.Equal(t, age.NewInstant(2020, 1, 1, 12, 0, 0), res.Reference)
}

func TestAge_ErrorStatuses(t *testing.T) {
	srv := New("0", &engine.Calculator{})

	tests := []struct {
		name   string
		params map[string]string
		want   int
	}{
		{"Missing start", map[string]string{config.QueryReference: "2000-01-01"}, http.StatusBadRequest},
		{"Garbage start", map[string]string{config.QueryStart: "yesterday"}, http.StatusBadRequest},
		{"Out of range", map[string]string{config.QueryStart: "1850-01-01", config.QueryReference: "2000-01-01"}, http.StatusBadRequest},
		{"Garbage reference", map[string]string{config.QueryStart: "2000-01-01", config.QueryReference: "2001-02-30"}, http.StatusBadRequest},
		{"Unknown preset", map[string]string{config.QueryStart: "2000-01-01", config.QueryReference: "2001-01-01", config.QueryPreset: "teatime"}, http.StatusBadRequest},
		{"Unknown reference preset", map[string]string{config.QueryStart: "2000-01-01", config.QueryReference: "2001-01-01", config.QueryRefPreset: "teatime"}, http.StatusBadRequest},
		{"Preset moves reference before start", map[string]string{config.QueryStart: "2000-01-01T20:00:00", config.QueryReference: "2000-01-01T23:00:00", config.QueryRefPreset: config.PresetMorning}, http.StatusUnprocessableEntity},
		{"Start after reference", map[string]string{config.QueryStart: "2010-01-01", config.QueryReference: "2000-01-01"}, http.StatusUnprocessableEntity},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := serve(t, srv, http.MethodGet, ageURL(tt.params), nil)
			assert.Equal(t, tt.want, resp.StatusCode)

			var body errorBody
			require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.NotEmpty(t, body.Error)
		})
	}
}

func TestAge_MethodNotAllowed(t *testing.T) {
	resp := serve(t, New("0", nil), http.MethodDelete, config.RouteAge, nil)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}
