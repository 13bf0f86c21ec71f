package repository

import (
	"context"
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type hospitalRepository struct {
	db *gorm.DB
}

func NewHospitalRepository(db *gorm.DB) domainRepo.HospitalRepository {
	return &hospitalRepository{db: db}
}

func (r *hospitalRepository) Create(ctx context.Context, hospital *entity.Hospital) error {
	return r.db.WithContext(ctx).Create(hospital).Error
}

func (r *hospitalRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.Hospital, error) {
	var hospital entity.Hospital
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&hospital).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &hospital, nil
}

func (r *hospitalRepository) FindAll(ctx context.Context, filter entity.HospitalFilter) ([]entity.Hospital, error) {
	query := r.db.WithContext(ctx)
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Country != "" {
		query = query.Where("country ILIKE ?", "%"+filter.Country+"%")
	}

	var hospitals []entity.Hospital
	if err := query.Order("name").Find(&hospitals).Error; err != nil {
		return nil, err
	}
	return hospitals, nil
}

func (r *hospitalRepository) DistinctCities(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "city")
}

func (r *hospitalRepository) DistinctCountries(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "country")
}

func (r *hospitalRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&entity.Hospital{}).
		Distinct(column).
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}
