package server

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strings"

	apperrors "github.com/jrsteele09/go-profile-optimizer/internal/errors"
	"github.com/rs/zerolog"
)

const (
	maxBodyBytes         = 1 << 20
	internalErrorMessage = "Internal server error"
)

type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// decodeJSON reads a JSON request body into dst. An empty body leaves dst untouched.
func decodeJSON(r *http.Request, w http.ResponseWriter, dst any) error {
	if ct := r.Header.Get("Content-Type"); ct != "" && !strings.HasPrefix(ct, "application/json") {
		return apperrors.Validation(apperrors.ErrInvalidRequest, "content type must be application/json")
	}
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		if err == io.EOF {
			return nil
		}
		return apperrors.Validation(apperrors.ErrInvalidRequest, "invalid JSON body")
	}
	return nil
}

// writeError maps err onto a status code and the {error, details} body. Upstream
// failures use upstreamStatus; internal details are logged and never returned.
func writeError(w http.ResponseWriter, r *http.Request, err error, upstreamStatus int) {
	logger := zerolog.Ctx(r.Context())

	switch {
	case apperrors.Is(err, context.DeadlineExceeded):
		logger.Warn().Err(err).Msg("Request timed out")
		writeJSON(w, http.StatusGatewayTimeout, errorResponse{Error: "Request timed out"})
		return
	case apperrors.Is(err, context.Canceled):
		logger.Debug().Msg("Request cancelled by client")
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "Request cancelled"})
		return
	}

	var appErr *apperrors.Error
	if !apperrors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	switch appErr.Kind {
	case apperrors.KindValidation:
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: appErr.Error()})
	case apperrors.KindUpstream:
		logger.Warn().Err(err).Int("upstream_status", appErr.Status).Msg("Upstream request failed")
		writeJSON(w, upstreamStatus, errorResponse{Error: appErr.Message, Details: appErr.Detail})
	default:
		logger.Error().Err(err).Msg("Request failed")
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: internalErrorMessage})
	}
}
