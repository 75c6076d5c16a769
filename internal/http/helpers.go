package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"fintrack/internal/core"
	"fintrack/internal/storage"
)

const ownerHeader = "X-User-ID"

var errMissingOwner = errors.New("missing " + ownerHeader + " header")

// ownerFrom extracts the authenticated user from the request. Identity is
// established upstream (reverse proxy / gateway); this service only trusts
// the forwarded header.
func ownerFrom(r *http.Request) (string, error) {
	owner := strings.TrimSpace(r.Header.Get(ownerHeader))
	if owner == "" {
		return "", errMissingOwner
	}
	return owner, nil
}

// parseRange reads the optional startDate, endDate and category query
// parameters. Dates are plain days; both bounds are inclusive, so endDate
// is pushed to the last instant of its day.
func parseRange(r *http.Request) (core.Range, error) {
	var rng core.Range
	q := r.URL.Query()

	if v := strings.TrimSpace(q.Get("startDate")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.Range{}, fmt.Errorf("%w: startDate %q", core.ErrInvalidDate, v)
		}
		rng.Start = &d
	}
	if v := strings.TrimSpace(q.Get("endDate")); v != "" {
		d, err := time.Parse("2006-01-02", v)
		if err != nil {
			return core.Range{}, fmt.Errorf("%w: endDate %q", core.ErrInvalidDate, v)
		}
		end := d.AddDate(0, 0, 1).Add(-time.Nanosecond)
		rng.End = &end
	}
	if rng.Start != nil && rng.End != nil && rng.End.Before(*rng.Start) {
		return core.Range{}, fmt.Errorf("%w: endDate before startDate", core.ErrInvalidDate)
	}
	rng.Category = strings.TrimSpace(q.Get("category"))
	return rng, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed encoding response", "error", err)
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// respondError maps domain errors onto HTTP statuses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, errMissingOwner):
		writeError(w, http.StatusUnauthorized, err.Error())
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "transaction not found")
	case errors.Is(err, core.ErrInvalidType),
		errors.Is(err, core.ErrInvalidAmount),
		errors.Is(err, core.ErrInvalidCategory),
		errors.Is(err, core.ErrInvalidDate),
		errors.Is(err, core.ErrEmptyDescription),
		errors.Is(err, core.ErrUnsupportedCurrency):
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		slog.ErrorContext(r.Context(), "Request failed", "method", r.Method, "url", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

// sendAttachment writes a rendered export document with a dated filename.
func sendAttachment(w http.ResponseWriter, contentType, baseName, ext string, body []byte) {
	filename := fmt.Sprintf("%s_%s.%s", baseName, time.Now().UTC().Format("20060102"), ext)
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(body)
}
