package repository

import (
	"context"
	"errors"

	"medibook/internal/domain/entity"
	domainRepo "medibook/internal/domain/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type doctorProfileRepository struct {
	db *gorm.DB
}

func NewDoctorProfileRepository(db *gorm.DB) domainRepo.DoctorProfileRepository {
	return &doctorProfileRepository{db: db}
}

func (r *doctorProfileRepository) Create(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Create(profile).Error
}

func (r *doctorProfileRepository) FindByID(ctx context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Preload("Hospital").Where("id = ?", id).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	var profile entity.DoctorProfile
	err := r.db.WithContext(ctx).Preload("User").Where("user_id = ?", userID).First(&profile).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &profile, nil
}

func (r *doctorProfileRepository) Update(ctx context.Context, profile *entity.DoctorProfile) error {
	return r.db.WithContext(ctx).Save(profile).Error
}

func (r *doctorProfileRepository) FindAll(ctx context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	query := r.db.WithContext(ctx).Preload("User").Preload("Hospital")
	if filter.Specialty != "" {
		query = query.Where("specialization ILIKE ?", "%"+filter.Specialty+"%")
	}
	if filter.City != "" {
		query = query.Where("city ILIKE ?", "%"+filter.City+"%")
	}
	if filter.Country != "" {
		query = query.Where("country ILIKE ?", "%"+filter.Country+"%")
	}

	var profiles []entity.DoctorProfile
	if err := query.Find(&profiles).Error; err != nil {
		return nil, err
	}
	return profiles, nil
}

func (r *doctorProfileRepository) DistinctSpecializations(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "specialization")
}

func (r *doctorProfileRepository) DistinctCities(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "city")
}

func (r *doctorProfileRepository) DistinctCountries(ctx context.Context) ([]string, error) {
	return r.distinctColumn(ctx, "country")
}

func (r *doctorProfileRepository) distinctColumn(ctx context.Context, column string) ([]string, error) {
	var values []string
	err := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).
		Distinct(column).
		Where(column+" IS NOT NULL AND "+column+" != ''").
		Order(column).
		Pluck(column, &values).Error
	if err != nil {
		return nil, err
	}
	return values, nil
}

func (r *doctorProfileRepository) CountAll(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&entity.DoctorProfile{}).Count(&count).Error
	return count, err
}
