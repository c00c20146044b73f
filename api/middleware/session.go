package middleware

import (
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/vibecommerce/storefront-backend/pkg/config"
	"github.com/vibecommerce/storefront-backend/pkg/logger"
)

const sessionHeader = "X-Cart-Session"

// Session resolves the visitor's cart session id, minting one on first
// contact. Resolution order is cookie, then the X-Cart-Session header for
// clients that cannot carry cookies, then a freshly minted uuid. The cookie
// is (re)issued on every response so its expiry slides forward.
func Session(cfg config.SessionConfig, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			sessionID := ""
			if cookie, err := r.Cookie(cfg.CookieName); err == nil {
				sessionID = strings.TrimSpace(cookie.Value)
			}
			if sessionID == "" {
				sessionID = strings.TrimSpace(r.Header.Get(sessionHeader))
			}
			if _, err := uuid.Parse(sessionID); err != nil {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.CookieMaxAge.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})
			w.Header().Set(sessionHeader, sessionID)

			ctx := WithSessionID(r.Context(), sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
