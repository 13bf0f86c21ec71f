package repository

import (
	"context"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

type DoctorProfileRepository interface {
	Create(ctx context.Context, profile *entity.DoctorProfile) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error)
	FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error)
	Update(ctx context.Context, profile *entity.DoctorProfile) error
	FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, error)
	DistinctSpecializations(ctx context.Context) ([]string, error)
	DistinctCities(ctx context.Context) ([]string, error)
	DistinctCountries(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int64, error)
}
