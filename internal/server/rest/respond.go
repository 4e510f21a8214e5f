package rest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/investkeeper/internal/common"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status and a short client message. Storage and
// unclassified failures are logged in full and reported only as
// "internal error".
func (s *HTTPServer) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status, msg := statusFor(err)

	if status >= http.StatusInternalServerError {
		logMsg := "request failed"
		if common.IsStorage(err) {
			logMsg = "storage failure"
		}
		s.logger.Error(r.Context(), logMsg,
			"error", err,
			"kind", string(common.Kind(err)),
			"request_id", RequestIDFromContext(r.Context()),
		)
	}

	writeJSON(w, status, errorResponse{Error: msg})
}

func statusFor(err error) (int, string) {
	switch common.Kind(err) {
	case common.KindInvalidInput:
		return http.StatusBadRequest, err.Error()
	case common.KindUsernameTaken:
		return http.StatusBadRequest, common.ErrUsernameTaken.Error()
	case common.KindInvalidCredentials:
		return http.StatusUnauthorized, common.ErrInvalidCredentials.Error()
	case common.KindTokenMissing:
		return http.StatusUnauthorized, common.ErrTokenMissing.Error()
	case common.KindTokenExpired:
		return http.StatusForbidden, common.ErrTokenExpired.Error()
	case common.KindTokenInvalid:
		return http.StatusForbidden, common.ErrTokenInvalid.Error()
	case common.KindForbidden:
		return http.StatusForbidden, common.ErrForbidden.Error()
	case common.KindNotFound:
		return http.StatusNotFound, common.ErrNotFound.Error()
	}
	return http.StatusInternalServerError, "internal error"
}

// decodeBody reads one JSON object from the request body into v. Unknown
// fields, trailing data and oversized bodies are invalid input.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("%w: empty body", common.ErrInvalidInput)
		}
		return fmt.Errorf("%w: %v", common.ErrInvalidInput, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return fmt.Errorf("%w: trailing data after JSON body", common.ErrInvalidInput)
	}
	return nil
}
