package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/domain/entity"
	"medibook/internal/session"
	"medibook/pkg/validator"

	"github.com/google/uuid"
)

type meEnvelope struct {
	Success bool           `json:"success"`
	Data    dto.MeResponse `json:"data"`
}

func getMe(t *testing.T, manager *session.Manager, store *session.MemoryStore, sc *session.Context) meEnvelope {
	t.Helper()
	if err := store.Save(context.Background(), sc); err != nil {
		t.Fatalf("seed session: %v", err)
	}

	h := NewAuthHandler(&stubAuthUsecase{}, manager, validator.NewValidator())
	sessionMiddleware := middleware.NewSessionMiddleware(manager, "medibook_session", time.Hour)
	gate := middleware.NewGateMiddleware(manager)
	endpoint := sessionMiddleware.Handle(gate.RequireOrdinary(http.HandlerFunc(h.GetCurrentUser)))

	req := httptest.NewRequest(http.MethodGet, "/auth/me", nil)
	req.AddCookie(&http.Cookie{Name: "medibook_session", Value: sc.ID})
	rr := httptest.NewRecorder()
	endpoint.ServeHTTP(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rr.Code, rr.Body.String())
	}
	var envelope meEnvelope
	if err := json.Unmarshal(rr.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return envelope
}

// A session holding a stale operator binding next to an unrelated
// ordinary identity must not expose operator state to that user.
func TestMeHidesOperatorFromUnrelatedOrdinaryUser(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Email: "admin@example.test", Role: entity.RoleAdmin}
	patient := &entity.User{ID: uuid.New(), Email: "pat@example.test", Role: entity.RolePatient}
	manager, store := newTestSessionManager(newStubUserRepo(admin, patient))

	sc := session.New()
	sc.OrdinaryUserID = patient.ID
	sc.OperatorUserID = admin.ID
	sc.OperatorAuthenticated = true
	sc.OperatorSince = time.Now().UTC()

	envelope := getMe(t, manager, store, sc)
	if envelope.Data.Operator != nil {
		t.Errorf("operator state leaked to unrelated user: %+v", envelope.Data.Operator)
	}
	if envelope.Data.User == nil || envelope.Data.User.ID != patient.ID {
		t.Errorf("ordinary profile missing or wrong: %+v", envelope.Data.User)
	}
}

func TestMeShowsOperatorToSameAccount(t *testing.T) {
	admin := &entity.User{ID: uuid.New(), Email: "admin@example.test", Role: entity.RoleAdmin}
	manager, store := newTestSessionManager(newStubUserRepo(admin))

	sc := session.New()
	sc.OrdinaryUserID = admin.ID
	sc.OperatorUserID = admin.ID
	sc.OperatorAuthenticated = true
	sc.OperatorSince = time.Now().UTC()

	envelope := getMe(t, manager, store, sc)
	if envelope.Data.Operator == nil {
		t.Fatal("operator state should be visible to the operator's own ordinary identity")
	}
	if envelope.Data.Operator.UserID != admin.ID {
		t.Errorf("operator id = %s, want %s", envelope.Data.Operator.UserID, admin.ID)
	}
}
