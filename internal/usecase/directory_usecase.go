package usecase

import (
	"context"
	"time"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// defaultDoctorPassword is the initial credential for doctor accounts
// created by an operator. The doctor is expected to change it.
const defaultDoctorPassword = "doctor123"

type DirectoryUsecase interface {
	ListDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error)
	GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error)
	ListHospitals(ctx context.Context, filter entity.HospitalFilter) (*dto.HospitalListResponse, error)
	CreateDoctor(ctx context.Context, operator *entity.User, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error)
	CreateHospital(ctx context.Context, operator *entity.User, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error)
}

type directoryUsecase struct {
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	hospitalRepo      repository.HospitalRepository
	auditService      service.AuditService
	storeTimeout      time.Duration
}

func NewDirectoryUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	hospitalRepo repository.HospitalRepository,
	auditService service.AuditService,
	storeTimeout time.Duration,
) DirectoryUsecase {
	return &directoryUsecase{
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		hospitalRepo:      hospitalRepo,
		auditService:      auditService,
		storeTimeout:      storeTimeout,
	}
}

// ListDoctors returns the filtered listing together with the distinct
// specialization, city and country values for the filter controls.
func (u *directoryUsecase) ListDoctors(ctx context.Context, filter entity.DoctorFilter) (*dto.DoctorListResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	profiles, err := u.doctorProfileRepo.FindAll(storeCtx, filter)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, storeErr(err)
	}

	specialties, err := u.doctorProfileRepo.DistinctSpecializations(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to load specializations: %+v", err)
		return nil, storeErr(err)
	}
	cities, err := u.doctorProfileRepo.DistinctCities(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to load doctor cities: %+v", err)
		return nil, storeErr(err)
	}
	countries, err := u.doctorProfileRepo.DistinctCountries(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to load doctor countries: %+v", err)
		return nil, storeErr(err)
	}

	return &dto.DoctorListResponse{
		Doctors:     converter.DoctorsToResponses(profiles),
		Total:       len(profiles),
		Specialties: specialties,
		Cities:      cities,
		Countries:   countries,
	}, nil
}

func (u *directoryUsecase) GetDoctor(ctx context.Context, id uuid.UUID) (*dto.DoctorResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	profile, err := u.doctorProfileRepo.FindByID(storeCtx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(profile), nil
}

func (u *directoryUsecase) ListHospitals(ctx context.Context, filter entity.HospitalFilter) (*dto.HospitalListResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	hospitals, err := u.hospitalRepo.FindAll(storeCtx, filter)
	if err != nil {
		u.log.Warnf("Failed to list hospitals: %+v", err)
		return nil, storeErr(err)
	}
	cities, err := u.hospitalRepo.DistinctCities(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to load hospital cities: %+v", err)
		return nil, storeErr(err)
	}
	countries, err := u.hospitalRepo.DistinctCountries(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to load hospital countries: %+v", err)
		return nil, storeErr(err)
	}

	return &dto.HospitalListResponse{
		Hospitals: converter.HospitalsToResponses(hospitals),
		Total:     len(hospitals),
		Cities:    cities,
		Countries: countries,
	}, nil
}

// CreateDoctor provisions a doctor account plus profile on behalf of an
// operator.
func (u *directoryUsecase) CreateDoctor(ctx context.Context, operator *entity.User, req *dto.CreateDoctorRequest) (*dto.DoctorResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	existing, err := u.userRepo.FindByEmail(storeCtx, req.Email)
	if err != nil {
		u.log.Warnf("Failed to check email uniqueness: %+v", err)
		return nil, storeErr(err)
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(defaultDoctorPassword), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}

	membershipID, err := generateMembershipID()
	if err != nil {
		u.log.Warnf("Failed to generate membership id: %+v", err)
		return nil, err
	}

	user := &entity.User{
		Name:         req.Name,
		Email:        req.Email,
		Password:     string(hashedPassword),
		Role:         entity.RoleDoctor,
		MembershipID: &membershipID,
	}
	if err := u.userRepo.Create(storeCtx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to create doctor account: %+v", err)
		return nil, storeErr(err)
	}

	profile := &entity.DoctorProfile{
		UserID:          user.ID,
		Specialization:  req.Specialization,
		City:            req.City,
		Country:         req.Country,
		ConsultationFee: feeOrDefault(req.Fee),
	}
	if err := u.doctorProfileRepo.Create(storeCtx, profile); err != nil {
		u.log.Warnf("Failed to create doctor profile: %+v", err)
		return nil, storeErr(err)
	}
	profile.User = *user

	u.auditService.Record(ctx, &operator.ID, entity.AuditActionDoctorCreate, entity.JSON{
		"doctor_email": user.Email,
		"profile_id":   profile.ID.String(),
	})

	return converter.DoctorToResponse(profile), nil
}

func (u *directoryUsecase) CreateHospital(ctx context.Context, operator *entity.User, req *dto.CreateHospitalRequest) (*dto.HospitalResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	hospital := &entity.Hospital{
		Name:        req.Name,
		City:        req.City,
		Country:     req.Country,
		Specialties: req.Specialties,
		Description: req.Description,
	}
	if err := u.hospitalRepo.Create(storeCtx, hospital); err != nil {
		u.log.Warnf("Failed to create hospital: %+v", err)
		return nil, storeErr(err)
	}

	u.auditService.Record(ctx, &operator.ID, entity.AuditActionHospitalCreate, entity.JSON{
		"hospital_id": hospital.ID.String(),
		"name":        hospital.Name,
	})

	return converter.HospitalToResponse(hospital), nil
}
