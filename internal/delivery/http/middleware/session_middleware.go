package middleware

import (
	"context"
	"net/http"
	"time"

	"medibook/internal/domain/entity"
	"medibook/internal/session"
)

type contextKey string

const (
	sessionContextKey contextKey = "session_context"
	ordinaryUserKey   contextKey = "ordinary_user"
	operatorUserKey   contextKey = "operator_user"
)

// SessionMiddleware loads the session context from the cookie, creating
// a fresh one when the cookie is absent or refers to an expired session,
// and threads it through the request context.
type SessionMiddleware struct {
	manager    *session.Manager
	cookieName string
	ttl        time.Duration
}

func NewSessionMiddleware(manager *session.Manager, cookieName string, ttl time.Duration) *SessionMiddleware {
	return &SessionMiddleware{
		manager:    manager,
		cookieName: cookieName,
		ttl:        ttl,
	}
}

func (m *SessionMiddleware) Handle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if cookie, err := r.Cookie(m.cookieName); err == nil {
			sessionID = cookie.Value
		}

		sc := m.manager.LoadOrNew(r.Context(), sessionID)
		if sc.ID != sessionID {
			http.SetCookie(w, &http.Cookie{
				Name:     m.cookieName,
				Value:    sc.ID,
				Path:     "/",
				MaxAge:   int(m.ttl.Seconds()),
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}

		ctx := context.WithValue(r.Context(), sessionContextKey, sc)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext extracts the session context attached by
// SessionMiddleware. The bool is false only for routes mounted outside
// the middleware.
func SessionFromContext(ctx context.Context) (*session.Context, bool) {
	sc, ok := ctx.Value(sessionContextKey).(*session.Context)
	return sc, ok
}

// UserFromContext extracts the resolved ordinary user set by
// RequireOrdinary or RequirePatient.
func UserFromContext(ctx context.Context) (*entity.User, bool) {
	user, ok := ctx.Value(ordinaryUserKey).(*entity.User)
	return user, ok
}

// OperatorFromContext extracts the resolved operator set by
// RequireOperator.
func OperatorFromContext(ctx context.Context) (*entity.User, bool) {
	operator, ok := ctx.Value(operatorUserKey).(*entity.User)
	return operator, ok
}
