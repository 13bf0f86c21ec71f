package session

import (
	"context"
	"errors"
	"io"
	"testing"
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// -- Mock user repository --

type mockUserRepo struct {
	users   map[uuid.UUID]*entity.User
	failing bool
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: make(map[uuid.UUID]*entity.User)}
}

func (m *mockUserRepo) add(role entity.Role) *entity.User {
	user := &entity.User{
		ID:    uuid.New(),
		Name:  "Test User",
		Email: uuid.NewString() + "@example.com",
		Role:  role,
	}
	m.users[user.ID] = user
	return user
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	if m.failing {
		return nil, errors.New("store unreachable")
	}
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *entity.User) error {
	m.users[user.ID] = user
	return nil
}

func (m *mockUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(m.users)), nil
}

func newTestManager(repo *mockUserRepo) (*Manager, *MemoryStore) {
	log := logrus.New()
	log.SetOutput(io.Discard)
	store := NewMemoryStore()
	return NewManager(store, repo, log, time.Second), store
}

// -- Tests --

func TestEstablishOperatorRejectsNonAdmin(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	patient := repo.add(entity.RolePatient)
	if err := manager.EstablishOperator(ctx, sc, patient); !errors.Is(err, ErrPrivilege) {
		t.Fatalf("expected ErrPrivilege, got %v", err)
	}
	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatalf("expected no operator, got %s", operator.ID)
	}
}

func TestResolveOperatorReturnsBoundAdmin(t *testing.T) {
	repo := newMockUserRepo()
	manager, store := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}

	operator := manager.ResolveOperator(ctx, sc)
	if operator == nil || operator.ID != admin.ID {
		t.Fatalf("expected operator %s, got %v", admin.ID, operator)
	}
	if !operator.IsAdmin() {
		t.Fatal("resolved operator must carry the admin role")
	}

	// Binding survives a store round trip.
	loaded, err := store.Load(ctx, sc.ID)
	if err != nil || loaded == nil {
		t.Fatalf("session not persisted: %v", err)
	}
	if loaded.OperatorUserID != admin.ID || !loaded.OperatorAuthenticated {
		t.Fatal("persisted operator binding incomplete")
	}
}

func TestResolveOperatorNeverReturnsDemotedAdmin(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}

	// Role changed out from under the session.
	admin.Role = entity.RolePatient

	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatalf("demoted admin must not resolve, got %s", operator.ID)
	}
	if sc.hasOperatorMarkers() {
		t.Fatal("stale binding must be cleared, not kept")
	}
}

func TestResolveOperatorClearsBindingToDeletedUser(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}
	delete(repo.users, admin.ID)

	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatal("binding to a deleted user must resolve to absent")
	}
	if sc.hasOperatorMarkers() {
		t.Fatal("binding to a deleted user must be cleared")
	}
}

func TestResolveOperatorRejectsPartialMarkers(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	admin := repo.add(entity.RoleAdmin)

	// Id present but flag not explicitly true.
	sc := New()
	sc.OperatorUserID = admin.ID
	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatal("operator id without authenticated flag must not resolve")
	}
	if sc.hasOperatorMarkers() {
		t.Fatal("partial binding must be scrubbed")
	}

	// Flag present without an id.
	sc = New()
	sc.OperatorAuthenticated = true
	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatal("authenticated flag without an id must not resolve")
	}
	if sc.hasOperatorMarkers() {
		t.Fatal("partial binding must be scrubbed")
	}
}

func TestResolveOperatorDegradesOnStoreFailure(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}

	repo.failing = true
	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatal("unverifiable binding must degrade to absent, not grant access")
	}
}

func TestEstablishOrdinaryClearsOperator(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	patient := repo.add(entity.RolePatient)

	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}
	if err := manager.EstablishOrdinary(ctx, sc, patient); err != nil {
		t.Fatalf("EstablishOrdinary failed: %v", err)
	}

	if operator := manager.ResolveOperator(ctx, sc); operator != nil {
		t.Fatal("standard login must drop any operator binding")
	}
	if sc.OrdinaryUserID != patient.ID {
		t.Fatal("ordinary binding lost")
	}
}

func TestClearOrdinaryLeavesOperatorIntact(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}
	// The admin also logs in as a regular user, then logs out again.
	sc.OrdinaryUserID = admin.ID

	manager.ClearOrdinary(ctx, sc)

	if sc.HasOrdinary() {
		t.Fatal("ordinary binding should be gone")
	}
	operator := manager.ResolveOperator(ctx, sc)
	if operator == nil || operator.ID != admin.ID {
		t.Fatal("ordinary logout must not change the operator binding")
	}
}

func TestClearOperatorIsIdempotent(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}

	manager.ClearOperator(ctx, sc)
	manager.ClearOperator(ctx, sc)

	if sc.hasOperatorMarkers() {
		t.Fatal("operator binding must be gone")
	}
}

func TestVisibleOperatorForUnrelatedOrdinaryUser(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	patient := repo.add(entity.RolePatient)

	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}
	// A different person uses the same session as an ordinary user;
	// the stale operator binding must stay invisible to them. The
	// binding is installed directly to bypass EstablishOrdinary's own
	// clearing, simulating a leaked session.
	sc.OrdinaryUserID = patient.ID

	if visible := manager.VisibleOperatorFor(ctx, sc); visible != nil {
		t.Fatalf("operator state leaked to unrelated user %s", patient.ID)
	}
}

func TestVisibleOperatorForSameAccount(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	admin := repo.add(entity.RoleAdmin)
	if err := manager.EstablishOperator(ctx, sc, admin); err != nil {
		t.Fatalf("EstablishOperator failed: %v", err)
	}

	// No ordinary identity: operator visible.
	if visible := manager.VisibleOperatorFor(ctx, sc); visible == nil || visible.ID != admin.ID {
		t.Fatal("operator should be visible without an ordinary identity")
	}

	// Same account as ordinary identity: still visible.
	sc.OrdinaryUserID = admin.ID
	if visible := manager.VisibleOperatorFor(ctx, sc); visible == nil || visible.ID != admin.ID {
		t.Fatal("operator should be visible to their own ordinary identity")
	}
}

func TestResolveOrdinaryClearsDeletedUser(t *testing.T) {
	repo := newMockUserRepo()
	manager, _ := newTestManager(repo)
	ctx := context.Background()
	sc := New()

	patient := repo.add(entity.RolePatient)
	if err := manager.EstablishOrdinary(ctx, sc, patient); err != nil {
		t.Fatalf("EstablishOrdinary failed: %v", err)
	}
	delete(repo.users, patient.ID)

	if user := manager.ResolveOrdinary(ctx, sc); user != nil {
		t.Fatal("ordinary binding to a deleted user must resolve to absent")
	}
	if sc.HasOrdinary() {
		t.Fatal("stale ordinary binding must be cleared")
	}
}

func TestMemoryStoreRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	ctx := context.Background()

	sc := New()
	sc.OrdinaryUserID = uuid.New()
	sc.OperatorUserID = uuid.New()
	sc.OperatorAuthenticated = true
	sc.OperatorSince = time.Now().UTC()

	if err := store.Save(ctx, sc); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := store.Load(ctx, sc.ID)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded == nil {
		t.Fatal("expected stored session")
	}
	if loaded.OrdinaryUserID != sc.OrdinaryUserID ||
		loaded.OperatorUserID != sc.OperatorUserID ||
		!loaded.OperatorAuthenticated {
		t.Fatal("loaded session does not match saved session")
	}

	// Mutating the loaded copy must not leak back into the store.
	loaded.OperatorAuthenticated = false
	reloaded, _ := store.Load(ctx, sc.ID)
	if !reloaded.OperatorAuthenticated {
		t.Fatal("store must hand out copies, not shared state")
	}

	if err := store.Delete(ctx, sc.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if gone, _ := store.Load(ctx, sc.ID); gone != nil {
		t.Fatal("deleted session still loadable")
	}
}
