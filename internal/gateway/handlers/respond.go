package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"

	"github.com/automarketing/content-gateway/internal/gateway/httperr"
)

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Printf("handlers: failed to encode response: %v", err)
	}
}

// respondError is the single error write path. In production the detail
// of upstream and internal failures is replaced with a generic message;
// validation and configuration messages are always safe to expose.
func respondError(w http.ResponseWriter, r *http.Request, development bool, err error) {
	status := httperr.Status(err)
	code := httperr.CodeOf(err)
	message := err.Error()

	switch httperr.KindOf(err) {
	case httperr.KindUpstream, httperr.KindInternal:
		log.Printf("handlers: %s %s failed: %v", r.Method, r.URL.Path, err)
		if !development {
			message = "an unexpected error occurred"
		}
	}

	writeJSON(w, status, map[string]string{
		"error":   code,
		"message": message,
	})
}

// decodeJSON decodes the request body into dst, rejecting unknown fields
// and trailing garbage.
func decodeJSON(r *http.Request, dst interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return httperr.Validation("invalid_body", fmt.Sprintf("invalid request body: %v", err))
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return httperr.Validation("invalid_body", "request body must contain a single JSON object")
	}
	return nil
}
