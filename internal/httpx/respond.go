package httpx

import (
	"encoding/json"
	"net/http"

	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/ayush/postboard/backend/internal/logging"
)

// HandlerFunc is an http.HandlerFunc that reports failure by returning an error.
type HandlerFunc func(w http.ResponseWriter, r *http.Request) error

// WriteJSON writes a JSON response with the given status code.
func WriteJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// WriteError writes err as {"error": msg}. 5xx causes are logged with the request id.
func WriteError(w http.ResponseWriter, r *http.Request, log logging.Logger, err error) {
	e := As(err)
	if e.Status >= http.StatusInternalServerError {
		log.Error(r.Context(), "request failed",
			"method", r.Method,
			"path", r.URL.Path,
			"request_id", chimw.GetReqID(r.Context()),
			"err", e.Err,
		)
	}
	WriteJSON(w, e.Status, map[string]string{"error": e.Message})
}

// Handle adapts fn to net/http.
func Handle(log logging.Logger, fn HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := fn(w, r); err != nil {
			WriteError(w, r, log, err)
		}
	}
}

// DecodeJSON decodes the request body into v.
func DecodeJSON(r *http.Request, v interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return &Error{Status: http.StatusBadRequest, Message: "Invalid request body.", Err: err}
	}
	return nil
}
