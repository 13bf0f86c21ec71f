package repository

import (
	"context"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

type HospitalRepository interface {
	Create(ctx context.Context, hospital *entity.Hospital) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error)
	FindAll(ctx context.Context, filter entity.HospitalFilter) ([]entity.Hospital, error)
	DistinctCities(ctx context.Context) ([]string, error)
	DistinctCountries(ctx context.Context) ([]string, error)
}
