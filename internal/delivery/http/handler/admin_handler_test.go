package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"medibook/internal/delivery/http/middleware"
	"medibook/internal/domain/entity"
	"medibook/internal/usecase"
	"medibook/pkg/validator"

	"github.com/google/uuid"
)

func postLoginForm(t *testing.T, h *AdminHandler, wrap func(http.Handler) http.Handler) *httptest.ResponseRecorder {
	t.Helper()
	form := url.Values{"email": {"someone@example.test"}, "password": {"secret1"}}
	req := httptest.NewRequest(http.MethodPost, "/admin/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	var endpoint http.Handler = http.HandlerFunc(h.Login)
	if wrap != nil {
		endpoint = wrap(endpoint)
	}
	endpoint.ServeHTTP(rr, req)
	return rr
}

// The denial for a wrong password and for a valid non-admin login must
// be byte-identical, so the endpoint does not reveal which accounts
// carry the admin role.
func TestOperatorLoginDenialIsGeneric(t *testing.T) {
	users := newStubUserRepo()
	manager, _ := newTestSessionManager(users)
	audit := &stubAuditService{}

	deny := func(auth usecase.AuthUsecase) *httptest.ResponseRecorder {
		h := NewAdminHandler(auth, nil, nil, manager, audit, validator.NewValidator())
		return postLoginForm(t, h, nil)
	}

	wrongPassword := deny(&stubAuthUsecase{authErr: usecase.ErrInvalidCredentials})
	nonAdmin := deny(&stubAuthUsecase{user: &entity.User{ID: uuid.New(), Role: entity.RolePatient}})
	doctor := deny(&stubAuthUsecase{user: &entity.User{ID: uuid.New(), Role: entity.RoleDoctor}})

	for name, rr := range map[string]*httptest.ResponseRecorder{
		"wrong password": wrongPassword,
		"patient":        nonAdmin,
		"doctor":         doctor,
	} {
		if rr.Code != http.StatusUnauthorized {
			t.Errorf("%s: status = %d, want %d", name, rr.Code, http.StatusUnauthorized)
		}
	}
	if wrongPassword.Body.String() != nonAdmin.Body.String() || nonAdmin.Body.String() != doctor.Body.String() {
		t.Errorf("denial bodies differ:\n%q\n%q\n%q",
			wrongPassword.Body.String(), nonAdmin.Body.String(), doctor.Body.String())
	}
	if len(audit.actions) != 0 {
		t.Errorf("denied logins must not be audited as logins, got %v", audit.actions)
	}
}

func TestOperatorLoginBindsOperatorAndRedirects(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Email: "admin@example.test", Role: entity.RoleAdmin}
	users := newStubUserRepo(admin)
	manager, store := newTestSessionManager(users)
	audit := &stubAuditService{}

	h := NewAdminHandler(&stubAuthUsecase{user: admin}, nil, nil, manager, audit, validator.NewValidator())
	sessionMiddleware := middleware.NewSessionMiddleware(manager, "medibook_session", time.Hour)

	rr := postLoginForm(t, h, sessionMiddleware.Handle)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("status = %d, want %d", rr.Code, http.StatusSeeOther)
	}
	if location := rr.Header().Get("Location"); location != "/admin/dashboard" {
		t.Errorf("redirect = %q, want /admin/dashboard", location)
	}

	// The operator binding is persisted under the cookie the middleware set.
	var sessionID string
	for _, cookie := range rr.Result().Cookies() {
		if cookie.Name == "medibook_session" {
			sessionID = cookie.Value
		}
	}
	if sessionID == "" {
		t.Fatal("no session cookie issued")
	}
	sc, err := store.Load(context.Background(), sessionID)
	if err != nil || sc == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if sc.OperatorUserID != admin.ID || !sc.OperatorAuthenticated {
		t.Error("operator binding incomplete after login")
	}
	if len(audit.actions) != 1 || audit.actions[0] != entity.AuditActionOperatorLogin {
		t.Errorf("audit actions = %v, want [%s]", audit.actions, entity.AuditActionOperatorLogin)
	}
}
