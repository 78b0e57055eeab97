package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/tartampluch/go-age/internal/age"
	"github.com/tartampluch/go-age/internal/config"
	"github.com/tartampluch/go-age/internal/engine"
)

type errorBody struct {
	Error string `json:"error"`
}

// handleAge answers GET /api/age?start=...&reference=...&preset=...&reference_preset=...
//
// A missing reference means "now" and reference_preset is then ignored. Unparseable or out-of-range input is a
// 400; a start after the reference is a 422.
func (s *Server) handleAge(w http.ResponseWriter, r *http.Request) {
	if !allowReadOnly(w, r) {
		return
	}
	log := slog.With(config.LogKeyComponent, config.CompServer)

	req, err := parseAgeQuery(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorBody{Error: err.Error()})
		return
	}

	res, err := s.Calculator.Calculate(r.Context(), req)
	if err != nil {
		status := statusFor(err)
		log.InfoContext(r.Context(), config.MsgAPIRequest,
			config.LogKeyStatus, status,
			config.LogKeyError, err)
		writeJSON(w, status, errorBody{Error: err.Error()})
		return
	}

	log.DebugContext(r.Context(), config.MsgAPIRequest,
		config.LogKeyStatus, http.StatusOK,
		config.LogKeyStart, res.Start.String(),
		config.LogKeyReference, res.Reference.String())
	writeJSON(w, http.StatusOK, res)
}

func parseAgeQuery(r *http.Request) (engine.Request, error) {
	q := r.URL.Query()

	raw := q.Get(config.QueryStart)
	if raw == "" {
		return engine.Request{}, errors.New(config.ErrStartRequired)
	}
	start, err := age.ParseInstant(raw)
	if err != nil {
		return engine.Request{}, err
	}

	req := engine.Request{Start: start, StartPreset: q.Get(config.QueryPreset)}
	if raw := q.Get(config.QueryReference); raw != "" {
		if req.Reference, err = age.ParseInstant(raw); err != nil {
			return engine.Request{}, err
		}
		req.ReferencePreset = q.Get(config.QueryRefPreset)
	} else {
		req.UseNow = true
	}
	return req, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, age.ErrOrdering):
		return http.StatusUnprocessableEntity
	case errors.Is(err, age.ErrInvalidInstant), errors.Is(err, engine.ErrUnknownPreset):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set(config.HeaderContentType, config.MimeJSON)
	w.Header().Set(config.HeaderCacheControl, config.CacheControlNoStore)
	w.Header().Set(config.HeaderXContentType, config.MimeNoSniff)
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error(config.ErrWriteResp,
			config.LogKeyComponent, config.CompServer,
			config.LogKeyError, err,
		)
	}
}
