package middleware

import (
	"context"
	"net/http"

	"medibook/internal/session"
	"medibook/pkg/response"
)

// GateMiddleware enforces the identity requirements of protected
// routes. Every check is resolved against the identity store through
// the session manager; nothing in the session itself is trusted.
type GateMiddleware struct {
	manager *session.Manager
}

func NewGateMiddleware(manager *session.Manager) *GateMiddleware {
	return &GateMiddleware{manager: manager}
}

// RequireOrdinary admits requests carrying a valid ordinary identity
// and attaches the resolved user to the request context.
func (m *GateMiddleware) RequireOrdinary(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc, ok := SessionFromContext(r.Context())
		if !ok {
			response.Unauthorized(w, "Login required")
			return
		}

		user := m.manager.ResolveOrdinary(r.Context(), sc)
		if user == nil {
			response.Unauthorized(w, "Login required")
			return
		}

		ctx := context.WithValue(r.Context(), ordinaryUserKey, user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePatient admits only ordinary users with the patient role.
func (m *GateMiddleware) RequirePatient(next http.Handler) http.Handler {
	return m.RequireOrdinary(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, _ := UserFromContext(r.Context())
		if user == nil || !user.IsPatient() {
			response.Forbidden(w, "Only patients can book appointments")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

// RequireOperator admits requests whose session holds a valid operator
// binding. On any failure the binding is cleared defensively and the
// request is redirected to the operator login page.
func (m *GateMiddleware) RequireOperator(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sc, ok := SessionFromContext(r.Context())
		if !ok {
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		operator := m.manager.ResolveOperator(r.Context(), sc)
		if operator == nil {
			m.manager.ClearOperator(r.Context(), sc)
			http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), operatorUserKey, operator)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
