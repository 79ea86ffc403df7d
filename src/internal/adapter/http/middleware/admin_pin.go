package middleware

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/api-sage/somaluganda-remit/src/internal/commons"
	"github.com/api-sage/somaluganda-remit/src/internal/logger"
)

const AdminPinHeader = "X-Admin-PIN"

// AdminPin gates the dashboard routes behind the static admin PIN. It is a
// deterrent, not authentication.
func AdminPin(verify func(pin string) bool) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if verify == nil {
				logger.Error("admin pin middleware missing server configuration", nil, logger.Fields{
					"method": r.Method,
					"path":   r.URL.Path,
				})
				writeError(w, http.StatusInternalServerError, "server admin configuration is missing")
				return
			}

			pin := strings.TrimSpace(r.Header.Get(AdminPinHeader))
			if pin == "" || !verify(pin) {
				logger.Info("admin pin middleware unauthorized request", logger.Fields{
					"method":      r.Method,
					"path":        r.URL.Path,
					"credentials": "invalid_or_missing",
				})
				writeError(w, http.StatusUnauthorized, commons.MessageIncorrectPin)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(commons.ErrorResponse[struct{}](message))
}
