package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"

	"jollof-hub/storefront-svc/internal/service"
	"jollof-hub/storefront-svc/internal/validation"
)

const maxBodyBytes = 1 << 20

type errorResponse struct {
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, errorResponse{Message: message})
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// fail maps service errors to a status code. Store and unexpected errors are
// logged and replaced by fallback.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error, notFound, fallback string) {
	var vErr validation.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, http.StatusBadRequest, errorResponse{Message: vErr.Error(), Field: vErr.Field})
	case errors.Is(err, service.ErrValidation):
		writeMessage(w, http.StatusBadRequest, "Invalid request")
	case errors.Is(err, service.ErrNotFound) && notFound != "":
		writeMessage(w, http.StatusNotFound, notFound)
	case errors.Is(err, service.ErrNotFound):
		writeMessage(w, http.StatusNotFound, "Not found")
	default:
		h.Log.Error(r.Context(), "http_error", fallback, err)
		writeMessage(w, http.StatusInternalServerError, fallback)
	}
}
