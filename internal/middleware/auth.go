package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"fitconsole/internal/auth"
	"fitconsole/internal/domain"
	"fitconsole/internal/httputil"
	"fitconsole/internal/session"
)

// publicPaths skip authentication
var publicPaths = map[string]bool{
	"/health": true,
}

// AuthMiddleware verifies the bearer token and attaches the caller's session.
// The first verified request of a login starts the session; later requests
// reuse it and refresh the forwarded token.
func AuthMiddleware(verifier auth.JWTVerifier, sessions *session.Store, logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions || publicPaths[r.URL.Path] {
				next.ServeHTTP(w, r)
				return
			}

			token, ok := bearerToken(r)
			if !ok {
				httputil.RespondError(w, http.StatusUnauthorized, "missing bearer token")
				return
			}

			claims, err := verifier.VerifyToken(token)
			if err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					httputil.RespondError(w, http.StatusForbidden, "token is not scoped to a company")
					return
				}
				httputil.RespondError(w, http.StatusUnauthorized, "invalid or expired token")
				return
			}

			sess := sessions.Start(claims.SessionKey(), claims.GetUserID(), claims.GetCompanyID(), token)
			logger.Debug("request authenticated",
				"user_id", sess.UserID,
				"company_id", sess.CompanyID,
				"request_id", httputil.GetRequestID(r),
			)

			r = httputil.WithUserID(r, sess.UserID)
			r = r.WithContext(session.WithSession(r.Context(), sess))
			next.ServeHTTP(w, r)
		})
	}
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}
