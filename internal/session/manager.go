package session

import (
	"context"
	"errors"
	"time"

	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// ErrPrivilege is returned when an operator binding is requested for a
// user without the admin role.
var ErrPrivilege = errors.New("admin privileges required")

// Manager owns the two identity bindings of a session: the ordinary
// identity (standard login) and the operator identity (privileged
// login). The bindings are established, validated and torn down
// independently; the only coupling is that a standard login drops any
// operator privilege held by the same session.
//
// Resolution is fail-closed throughout: any state that cannot be
// proven valid against the identity store degrades to "absent" and is
// scrubbed from the session, never trusted and never surfaced as an
// error to the caller.
type Manager struct {
	store   Store
	users   repository.UserRepository
	log     *logrus.Logger
	timeout time.Duration
}

func NewManager(store Store, users repository.UserRepository, log *logrus.Logger, timeout time.Duration) *Manager {
	return &Manager{
		store:   store,
		users:   users,
		log:     log,
		timeout: timeout,
	}
}

// LoadOrNew returns the stored context for id, or a fresh empty one
// when id is empty, unknown, expired, or the store fails. A request
// always gets a usable session context.
func (m *Manager) LoadOrNew(ctx context.Context, id string) *Context {
	if id == "" {
		return New()
	}

	loadCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	sc, err := m.store.Load(loadCtx, id)
	if err != nil {
		m.log.Warnf("Failed to load session: %+v", err)
		return New()
	}
	if sc == nil {
		return New()
	}
	return sc
}

// EstablishOrdinary binds the ordinary identity to user. Any operator
// binding held by the session is cleared: a person completing a
// standard login is no longer acting as operator.
func (m *Manager) EstablishOrdinary(ctx context.Context, sc *Context, user *entity.User) error {
	sc.clearOperator()
	sc.OrdinaryUserID = user.ID
	return m.store.Save(ctx, sc)
}

// EstablishOperator binds the operator identity. The role is
// re-checked here regardless of what the caller already validated.
func (m *Manager) EstablishOperator(ctx context.Context, sc *Context, user *entity.User) error {
	if user == nil || !user.IsAdmin() {
		return ErrPrivilege
	}

	sc.clearOperator()
	sc.OperatorUserID = user.ID
	sc.OperatorAuthenticated = true
	sc.OperatorSince = time.Now().UTC()
	return m.store.Save(ctx, sc)
}

// ResolveOperator returns the bound operator user only if the binding
// is complete (id present and flag explicitly true), the user still
// exists, and the role is still admin. Any other state clears the
// binding and returns nil. Never returns an error.
func (m *Manager) ResolveOperator(ctx context.Context, sc *Context) *entity.User {
	if !sc.hasOperatorMarkers() {
		return nil
	}

	// Partial markers (an id without the flag, or the reverse) are a
	// stale or forged binding.
	if sc.OperatorUserID == uuid.Nil || !sc.OperatorAuthenticated {
		m.ClearOperator(ctx, sc)
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	user, err := m.users.FindByID(lookupCtx, sc.OperatorUserID)
	if err != nil {
		m.log.Warnf("Failed to resolve operator binding: %+v", err)
		m.ClearOperator(ctx, sc)
		return nil
	}
	if user == nil || !user.IsAdmin() {
		m.ClearOperator(ctx, sc)
		return nil
	}

	return user
}

// ResolveOrdinary returns the bound ordinary user, or nil when no
// valid ordinary identity exists. A binding to a deleted user is
// cleared rather than trusted.
func (m *Manager) ResolveOrdinary(ctx context.Context, sc *Context) *entity.User {
	if !sc.HasOrdinary() {
		return nil
	}

	lookupCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	user, err := m.users.FindByID(lookupCtx, sc.OrdinaryUserID)
	if err != nil {
		m.log.Warnf("Failed to resolve ordinary binding: %+v", err)
		return nil
	}
	if user == nil {
		m.ClearOrdinary(ctx, sc)
		return nil
	}

	return user
}

// ClearOperator removes the operator binding. Idempotent; the ordinary
// binding is untouched.
func (m *Manager) ClearOperator(ctx context.Context, sc *Context) {
	sc.clearOperator()
	if err := m.store.Save(ctx, sc); err != nil {
		m.log.Warnf("Failed to persist operator binding removal: %+v", err)
	}
}

// ClearOrdinary removes the ordinary binding (standard logout).
// Idempotent; the operator binding is untouched.
func (m *Manager) ClearOrdinary(ctx context.Context, sc *Context) {
	sc.clearOrdinary()
	if err := m.store.Save(ctx, sc); err != nil {
		m.log.Warnf("Failed to persist ordinary binding removal: %+v", err)
	}
}

// VisibleOperatorFor decides whether operator-only state may be exposed
// alongside the session's ordinary identity. The operator is visible
// only when no ordinary identity is active, or the ordinary identity is
// the same account as the operator. A patient or doctor browsing while
// a stale operator binding sits in the same session must never see
// operator state.
func (m *Manager) VisibleOperatorFor(ctx context.Context, sc *Context) *entity.User {
	operator := m.ResolveOperator(ctx, sc)
	if operator == nil {
		return nil
	}
	if !sc.HasOrdinary() || sc.OrdinaryUserID == operator.ID {
		return operator
	}
	return nil
}
