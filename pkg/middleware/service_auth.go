package middleware

import (
	"net/http"
	"strings"

	apperrors "paysim/pkg/errors"
	"paysim/pkg/logger"
	"paysim/pkg/token"
)

// ServiceAuth admits only requests bearing a service token signed with secret
// that carries the PaymentGateway role.
func ServiceAuth(secret []byte, log *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, ok := bearerToken(r)
			if !ok {
				reject(w, log, r, apperrors.Unauthorized("Missing bearer token"), nil)
				return
			}

			if _, err := token.VerifyServiceToken(secret, raw); err != nil {
				reject(w, log, r, apperrors.Forbidden("Service token rejected"), err)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	raw, found := strings.CutPrefix(header, "Bearer ")
	if !found {
		return "", false
	}
	raw = strings.TrimSpace(raw)
	return raw, raw != ""
}

func reject(w http.ResponseWriter, log *logger.Logger, r *http.Request, appErr *apperrors.AppError, cause error) {
	log.Warn("Service authentication failed",
		"request_id", RequestID(r),
		"reason", appErr.Message,
		"path", r.URL.Path,
		"method", r.Method,
		logger.Err(cause),
	)

	if err := apperrors.WriteError(w, appErr); err != nil {
		log.Error("failed to write error response", logger.Err(err))
	}
}
