package controller

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"deckforge/logger"
	"deckforge/models"
	"deckforge/renderer/pdf"
	"deckforge/service"
)

// ErrStorageUnavailable is returned by storage routes when no database is configured
var ErrStorageUnavailable = errors.New("deck storage is not configured")

// Export response headers
const (
	HeaderDegradedSlides = "X-Export-Degraded-Slides"
	HeaderFailedAssets   = "X-Export-Failed-Assets"
)

type errorResponse struct {
	Error string `json:"error"`
	Field string `json:"field,omitempty"`
}

func writeJSON(w http.ResponseWriter, log *logger.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error(err, "❌ Failed to encode response")
	}
}

// statusFor maps an error onto its HTTP status
func statusFor(err error) int {
	var verr *models.ValidationError
	var perr *models.ParseError
	var maxErr *http.MaxBytesError
	switch {
	case errors.As(err, &verr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &perr):
		return http.StatusBadRequest
	case errors.As(err, &maxErr):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, service.ErrUnsupportedFormat):
		return http.StatusBadRequest
	case errors.Is(err, ErrStorageUnavailable), errors.Is(err, pdf.ErrNoPrinter):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, log *logger.Logger, op string, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Error(err, fmt.Sprintf("❌ %s failed", op))
	} else {
		log.Debugf("⚠️  %s rejected: %v", op, err)
	}

	resp := errorResponse{Error: err.Error()}
	var verr *models.ValidationError
	if errors.As(err, &verr) {
		resp.Field = verr.Field
	}
	writeJSON(w, log, status, resp)
}

func methodNotAllowed(w http.ResponseWriter) {
	http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
}

func readBody(r *http.Request) ([]byte, error) {
	if r.Body == nil {
		return nil, &models.ParseError{Err: errors.New("empty body")}
	}
	data, err := io.ReadAll(r.Body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return nil, err
		}
		return nil, &models.ParseError{Err: err}
	}
	if len(data) == 0 {
		return nil, &models.ParseError{Err: errors.New("empty body")}
	}
	return data, nil
}

// decodeDeck parses, validates and normalizes a deck document
func decodeDeck(r *http.Request) (*models.Deck, error) {
	data, err := readBody(r)
	if err != nil {
		return nil, err
	}
	deck, err := models.ParseDeck(data)
	if err != nil {
		return nil, err
	}
	if err := models.ValidateDeck(deck); err != nil {
		return nil, err
	}
	models.NormalizeDeck(deck)
	return deck, nil
}

// parseFormat reads the format query parameter, pptx when absent
func parseFormat(r *http.Request) (models.Format, error) {
	raw := r.URL.Query().Get("format")
	if raw == "" {
		return models.FormatPPTX, nil
	}
	format, ok := models.ParseFormat(raw)
	if !ok {
		return "", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, raw)
	}
	return format, nil
}

func writeArtifact(w http.ResponseWriter, log *logger.Logger, result *service.ExportResult, format models.Format) {
	artifact := result.Artifacts[format]
	if artifact == nil {
		writeError(w, log, "export", fmt.Errorf("%w: %s", service.ErrUnsupportedFormat, format))
		return
	}

	disposition := "attachment"
	if format == models.FormatHTML {
		disposition = "inline"
	}
	h := w.Header()
	h.Set("Content-Type", artifact.ContentType)
	h.Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, artifact.FileName))
	h.Set("Content-Length", strconv.Itoa(len(artifact.Data)))
	h.Set(HeaderDegradedSlides, strconv.Itoa(result.Report.DegradedSlides()))
	h.Set(HeaderFailedAssets, strconv.Itoa(result.Report.FailedAssets()))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(artifact.Data); err != nil {
		log.Error(err, "❌ Failed to write artifact")
	}
}
