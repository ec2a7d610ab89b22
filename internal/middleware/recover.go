package middleware

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/gsdgroup/billing/internal/dto"
)

// Recover turns a panic in next into a 500 response in the usual message envelope.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			err := recover()
			if err == nil {
				return
			}
			if err == http.ErrAbortHandler {
				panic(err)
			}

			slog.ErrorContext(r.Context(), "Recovered from panic",
				"method", r.Method,
				"url", r.URL.RequestURI(),
				"request_id", GetRequestID(r.Context()),
				"error", err,
				"stack", string(debug.Stack()),
			)

			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusInternalServerError)
			json.NewEncoder(w).Encode(dto.Message{
				Message:    "Internal server error.",
				StatusCode: http.StatusInternalServerError,
			})
		}()

		next.ServeHTTP(w, r)
	})
}
