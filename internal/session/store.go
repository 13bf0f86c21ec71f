package session

import (
	"context"
)

// Store persists session contexts. Load returns (nil, nil) for an
// unknown or expired session id so callers can distinguish "no
// session" from a store failure.
type Store interface {
	Load(ctx context.Context, id string) (*Context, error)
	Save(ctx context.Context, sc *Context) error
	Delete(ctx context.Context, id string) error
}
