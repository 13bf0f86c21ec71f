package usecase

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmailAlreadyExists  = errors.New("email already exists")
	ErrMembershipIDExists  = errors.New("membership id already exists")
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrUserNotFound        = errors.New("user not found")
	ErrDoctorProfileNeeded = errors.New("doctor profile not found")
)

type AuthUsecase interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error)
	Authenticate(ctx context.Context, email, password string) (*entity.User, error)
	GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error)
	UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error)
}

type authUsecase struct {
	log               *logrus.Logger
	userRepo          repository.UserRepository
	doctorProfileRepo repository.DoctorProfileRepository
	auditService      service.AuditService
	storeTimeout      time.Duration
}

func NewAuthUsecase(
	log *logrus.Logger,
	userRepo repository.UserRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	auditService service.AuditService,
	storeTimeout time.Duration,
) AuthUsecase {
	return &authUsecase{
		log:               log,
		userRepo:          userRepo,
		doctorProfileRepo: doctorProfileRepo,
		auditService:      auditService,
		storeTimeout:      storeTimeout,
	}
}

func (u *authUsecase) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	role := entity.Role(req.Role)
	if role == "" {
		role = entity.RolePatient
	}

	// Hash password
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
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
		Role:         role,
		PhoneNumber:  req.PhoneNumber,
		MembershipID: &membershipID,
	}

	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	err = u.userRepo.Create(storeCtx, user)
	if err != nil && isDuplicateKeyError(err, "membership") {
		// Collision on the random suffix; regenerate once before giving up.
		membershipID, err = generateMembershipID()
		if err != nil {
			return nil, err
		}
		user.MembershipID = &membershipID
		err = u.userRepo.Create(storeCtx, user)
	}
	if err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "membership") {
			return nil, ErrMembershipIDExists
		}
		u.log.Warnf("Failed to create user: %+v", err)
		return nil, storeErr(err)
	}

	// Doctors get a profile alongside their account.
	if role == entity.RoleDoctor {
		profile := &entity.DoctorProfile{
			UserID:          user.ID,
			Specialization:  defaultString(req.Specialization, "General"),
			Education:       req.Education,
			City:            req.City,
			Country:         req.Country,
			ConsultationFee: feeOrDefault(req.ConsultationFee),
			ExperienceYears: req.ExperienceYears,
		}
		if err := u.doctorProfileRepo.Create(storeCtx, profile); err != nil {
			u.log.Warnf("Failed to create doctor profile: %+v", err)
			return nil, storeErr(err)
		}
		user.DoctorProfile = profile
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionUserRegister, entity.JSON{
		"email": user.Email,
		"role":  string(user.Role),
	})

	return converter.UserToResponse(user), nil
}

// Authenticate verifies credentials and returns the user. The error is
// the same generic denial whether the account is unknown or the
// password is wrong.
func (u *authUsecase) Authenticate(ctx context.Context, email, password string) (*entity.User, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	user, err := u.userRepo.FindByEmail(storeCtx, email)
	if err != nil {
		u.log.Warnf("Failed to find user by email: %+v", err)
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (u *authUsecase) GetProfile(ctx context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	user, err := u.userRepo.FindByID(storeCtx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	if user.IsDoctor() {
		profile, err := u.doctorProfileRepo.FindByUserID(storeCtx, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, storeErr(err)
		}
		user.DoctorProfile = profile
	}

	return converter.UserToResponse(user), nil
}

func (u *authUsecase) UpdateProfile(ctx context.Context, userID uuid.UUID, req *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	user, err := u.userRepo.FindByID(storeCtx, userID)
	if err != nil {
		u.log.Warnf("Failed to find user by ID: %+v", err)
		return nil, storeErr(err)
	}
	if user == nil {
		return nil, ErrUserNotFound
	}

	// Email change re-checks global uniqueness before the write.
	if req.Email != user.Email {
		existing, err := u.userRepo.FindByEmail(storeCtx, req.Email)
		if err != nil {
			u.log.Warnf("Failed to check email uniqueness: %+v", err)
			return nil, storeErr(err)
		}
		if existing != nil {
			return nil, ErrEmailAlreadyExists
		}
		user.Email = req.Email
	}

	user.Name = req.Name
	user.PhoneNumber = req.PhoneNumber

	if err := u.userRepo.Update(storeCtx, user); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		u.log.Warnf("Failed to update user: %+v", err)
		return nil, storeErr(err)
	}

	if user.IsDoctor() {
		profile, err := u.doctorProfileRepo.FindByUserID(storeCtx, userID)
		if err != nil {
			u.log.Warnf("Failed to find doctor profile: %+v", err)
			return nil, storeErr(err)
		}
		if profile == nil {
			return nil, ErrDoctorProfileNeeded
		}

		profile.Specialization = defaultString(req.Specialization, profile.Specialization)
		profile.Bio = req.Bio
		profile.Education = req.Education
		profile.City = req.City
		profile.Country = req.Country
		profile.ExperienceYears = req.ExperienceYears
		profile.HospitalID = req.HospitalID
		if req.ConsultationFee != nil {
			profile.ConsultationFee = decimal.NewFromFloat(*req.ConsultationFee)
		}

		if err := u.doctorProfileRepo.Update(storeCtx, profile); err != nil {
			u.log.Warnf("Failed to update doctor profile: %+v", err)
			return nil, storeErr(err)
		}
		user.DoctorProfile = profile
	}

	u.auditService.Record(ctx, &user.ID, entity.AuditActionProfileUpdate, entity.JSON{
		"email": user.Email,
	})

	return converter.UserToResponse(user), nil
}

const membershipIDCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// generateMembershipID generates a unique membership id: MB-YYYY-XXXXXX
func generateMembershipID() (string, error) {
	randomBytes := make([]byte, 6)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", err
	}
	suffix := make([]byte, 6)
	for i, b := range randomBytes {
		suffix[i] = membershipIDCharset[int(b)%len(membershipIDCharset)]
	}
	return fmt.Sprintf("MB-%d-%s", time.Now().Year(), suffix), nil
}

func defaultString(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func feeOrDefault(fee float64) decimal.Decimal {
	if fee <= 0 {
		return decimal.NewFromInt(50)
	}
	return decimal.NewFromFloat(fee)
}

// isDuplicateKeyError checks if the error is a PostgreSQL unique constraint
// violation containing the specified constraint name
func isDuplicateKeyError(err error, constraintName string) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		// PostgreSQL error code 23505 = unique_violation
		if pgErr.Code == "23505" && strings.Contains(strings.ToLower(pgErr.ConstraintName), strings.ToLower(constraintName)) {
			return true
		}
	}
	return false
}
