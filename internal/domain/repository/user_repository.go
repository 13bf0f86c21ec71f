package repository

import (
	"context"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

// UserRepository is the identity store boundary. Lookups return
// (nil, nil) when no record exists so callers can distinguish absence
// from store failure.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error)
	Update(ctx context.Context, user *entity.User) error
	CountAll(ctx context.Context) (int64, error)
}
