package session

import (
	"time"

	"github.com/google/uuid"
)

// Context holds the per-session identity state. The ordinary and
// operator bindings live in disjoint fields and are mutated
// independently: clearing one never touches the other.
//
// The operator binding carries an explicit Authenticated flag next to
// the user id. Both must agree before the binding is trusted — a
// session that somehow holds an operator id without the flag (or the
// reverse) is treated as stale and discarded.
type Context struct {
	ID string

	// Ordinary binding: the logged-in end user (patient or doctor, or
	// an admin browsing the regular surface).
	OrdinaryUserID uuid.UUID

	// Operator binding: set only by the privileged login flow.
	OperatorUserID        uuid.UUID
	OperatorAuthenticated bool
	OperatorSince         time.Time
}

// New creates an empty session context with a fresh id.
func New() *Context {
	return &Context{ID: uuid.NewString()}
}

// HasOrdinary reports whether an ordinary identity is bound.
func (c *Context) HasOrdinary() bool {
	return c.OrdinaryUserID != uuid.Nil
}

// hasOperatorMarkers reports whether any operator-binding state is
// present, valid or not.
func (c *Context) hasOperatorMarkers() bool {
	return c.OperatorUserID != uuid.Nil || c.OperatorAuthenticated || !c.OperatorSince.IsZero()
}

// clearOperator zeroes every operator-binding field.
func (c *Context) clearOperator() {
	c.OperatorUserID = uuid.Nil
	c.OperatorAuthenticated = false
	c.OperatorSince = time.Time{}
}

// clearOrdinary zeroes the ordinary binding only.
func (c *Context) clearOrdinary() {
	c.OrdinaryUserID = uuid.Nil
}
