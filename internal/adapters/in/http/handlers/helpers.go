// internal/adapters/in/http/handlers/helpers.go
package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/Madman-dev/ZZin/internal/application/usecase"
	"github.com/Madman-dev/ZZin/internal/domain/document"
	userdom "github.com/Madman-dev/ZZin/internal/domain/user"
	"github.com/Madman-dev/ZZin/internal/infra/logging"
)

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": msg})
}

func parseBool(s string) bool {
	b, err := strconv.ParseBool(strings.TrimSpace(s))
	return err == nil && b
}

// writeErr maps usecase and document errors onto HTTP status codes.
func writeErr(w http.ResponseWriter, r *http.Request, err error) {
	var (
		partial *usecase.PartialSubmissionError
		verr    *usecase.ValidationError
		derr    *document.DecodeError
	)

	switch {
	case errors.As(err, &partial):
		code := http.StatusInternalServerError
		if partial.Failed == usecase.StepUploadImage {
			code = http.StatusBadGateway
		}
		completed := make([]string, 0, len(partial.Completed))
		for _, s := range partial.Completed {
			completed = append(completed, s.String())
		}
		writeJSON(w, code, map[string]any{
			"error":      err.Error(),
			"rid":        partial.RID,
			"pid":        partial.PID,
			"failedStep": partial.Failed.String(),
			"completed":  completed,
		})
		return

	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": verr.Error(), "field": verr.Field})
		return

	case errors.As(err, &derr):
		logging.LoggerFromContext(r.Context()).Warn().Err(err).Msg("[http] stored document does not match schema")
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error(), "field": derr.Field})
		return
	}

	code := http.StatusInternalServerError
	switch {
	case errors.Is(err, document.ErrNotFound):
		code = http.StatusNotFound
	case errors.Is(err, document.ErrTransport):
		code = http.StatusServiceUnavailable
	case errors.Is(err, usecase.ErrUpload):
		code = http.StatusBadGateway
	case errors.Is(err, document.ErrInvalidID),
		errors.Is(err, document.ErrInvalidFields),
		errors.Is(err, usecase.ErrInvalidEmail),
		errors.Is(err, usecase.ErrWeakPassword),
		errors.Is(err, userdom.ErrInvalidID),
		errors.Is(err, userdom.ErrInvalidNickname),
		errors.Is(err, userdom.ErrInvalidPhoneNum):
		code = http.StatusBadRequest
	case errors.Is(err, usecase.ErrInvalidCredentials):
		code = http.StatusUnauthorized
	case errors.Is(err, usecase.ErrEmailTaken):
		code = http.StatusConflict
	}
	if code == http.StatusInternalServerError {
		logging.LoggerFromContext(r.Context()).Error().Err(err).Msg("[http] unhandled error")
	}
	writeJSON(w, code, map[string]string{"error": err.Error()})
}
