package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/s/elearning/internal/logger"
)

func Recover(log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if p := recover(); p != nil {
					log.Error("panic in handler", "panic", p, "path", r.URL.Path, "requestID", RequestID(r.Context()))
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]map[string]string{
						"error": {"message": "internal server error", "code": "internal"},
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
