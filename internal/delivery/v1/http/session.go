package http

import (
	"context"
	"net/http"

	"github.com/DRSN-tech/storefront/internal/cfg"
	"github.com/DRSN-tech/storefront/internal/usecase"
	"github.com/DRSN-tech/storefront/pkg/logger"
)

// SessionHeader — заголовок с id сессии для клиентов без cookie.
const SessionHeader = "X-Session-ID"

type sessionCtxKey struct{}

// SessionMiddleware привязывает запрос к сессии посетителя. Id берётся из заголовка,
// затем из cookie; неизвестная или истёкшая сессия заменяется новой.
// Итоговый id возвращается и в заголовке, и в cookie.
func SessionMiddleware(sessionUC usecase.SessionUC, cfg *cfg.SessionCfg, logger logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			id := r.Header.Get(SessionHeader)
			if id == "" {
				if c, err := r.Cookie(cfg.CookieName); err == nil {
					id = c.Value
				}
			}

			sid, err := sessionUC.Ensure(r.Context(), id)
			if err != nil {
				logger.Errorf(err, "failed to ensure session")
				WriteError(w, err)
				return
			}

			w.Header().Set(SessionHeader, sid)
			http.SetCookie(w, &http.Cookie{
				Name:     cfg.CookieName,
				Value:    sid,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.CookieSecure,
				SameSite: http.SameSiteLaxMode,
			})

			next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), sessionCtxKey{}, sid)))
		})
	}
}

func sessionID(r *http.Request) string {
	sid, _ := r.Context().Value(sessionCtxKey{}).(string)
	return sid
}
