package api

import (
	"encoding/json"
	stderrors "errors"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/nijaru/yt-transcript/errors"
	"github.com/nijaru/yt-transcript/middleware"
)

// Response represents a standardized API response
type Response struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data,omitempty"`
	Error     string      `json:"error,omitempty"`
	RequestID string      `json:"request_id,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func respondJSON(w http.ResponseWriter, r *http.Request, code int, payload interface{}) {
	response := Response{
		Success:   code >= 200 && code < 300,
		Data:      payload,
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	}
	writeResponse(w, r, code, response)
}

func respondError(w http.ResponseWriter, r *http.Request, err error) {
	code := http.StatusInternalServerError
	msg := "Internal server error"

	if appErr, ok := errors.As(err); ok {
		code = appErr.Code
		msg = appErr.Message
	}

	entry := middleware.GetLogger(r.Context()).WithFields(logrus.Fields{
		"error":  err,
		"status": code,
	})
	if code >= http.StatusInternalServerError {
		entry.Error("Request error")
	} else {
		entry.Info("Request rejected")
	}

	writeResponse(w, r, code, Response{
		Error:     msg,
		RequestID: middleware.GetRequestID(r.Context()),
		Timestamp: time.Now().UTC(),
	})
}

func writeResponse(w http.ResponseWriter, r *http.Request, code int, response Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		middleware.GetLogger(r.Context()).WithError(err).Error("Failed to encode response")
	}
}

// readJSON decodes at most limit bytes of the request body into v.
func readJSON(w http.ResponseWriter, r *http.Request, limit int64, v interface{}) error {
	const op = "api.readJSON"

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, limit))
	if err := dec.Decode(v); err != nil {
		if tooLarge(err) {
			return errors.E(op, err, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return errors.InvalidInput(op, err, "Invalid JSON format")
	}
	if dec.More() {
		return errors.InvalidInput(op, nil, "Request body must contain a single JSON object")
	}
	return nil
}

func readBody(w http.ResponseWriter, r *http.Request, limit int64) ([]byte, error) {
	const op = "api.readBody"

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
	if err != nil {
		if tooLarge(err) {
			return nil, errors.E(op, err, "Request body too large", http.StatusRequestEntityTooLarge)
		}
		return nil, errors.InvalidInput(op, err, "Failed to read request body")
	}
	return body, nil
}

func tooLarge(err error) bool {
	var maxErr *http.MaxBytesError
	return stderrors.As(err, &maxErr)
}
