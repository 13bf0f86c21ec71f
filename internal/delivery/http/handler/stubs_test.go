package handler

import (
	"context"
	"time"

	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/session"
	"medibook/internal/usecase"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

// stubAuthUsecase answers with canned data; only the methods a test
// exercises need meaningful values.
type stubAuthUsecase struct {
	user    *entity.User
	authErr error
}

var _ usecase.AuthUsecase = (*stubAuthUsecase)(nil)

func (s *stubAuthUsecase) Register(_ context.Context, _ *dto.RegisterRequest) (*dto.UserResponse, error) {
	return nil, nil
}

func (s *stubAuthUsecase) Authenticate(_ context.Context, _, _ string) (*entity.User, error) {
	if s.authErr != nil {
		return nil, s.authErr
	}
	return s.user, nil
}

func (s *stubAuthUsecase) GetProfile(_ context.Context, userID uuid.UUID) (*dto.UserResponse, error) {
	return &dto.UserResponse{ID: userID}, nil
}

func (s *stubAuthUsecase) UpdateProfile(_ context.Context, _ uuid.UUID, _ *dto.UpdateProfileRequest) (*dto.UserResponse, error) {
	return nil, nil
}

type stubUserRepo struct {
	users map[uuid.UUID]*entity.User
}

func newStubUserRepo(users ...*entity.User) *stubUserRepo {
	repo := &stubUserRepo{users: map[uuid.UUID]*entity.User{}}
	for _, user := range users {
		repo.users[user.ID] = user
	}
	return repo
}

func (s *stubUserRepo) Create(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, nil
}

func (s *stubUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	return user, nil
}

func (s *stubUserRepo) Update(_ context.Context, user *entity.User) error {
	s.users[user.ID] = user
	return nil
}

func (s *stubUserRepo) CountAll(_ context.Context) (int64, error) {
	return int64(len(s.users)), nil
}

type stubAuditService struct {
	actions []string
}

func (s *stubAuditService) Record(_ context.Context, _ *uuid.UUID, action string, _ entity.JSON) {
	s.actions = append(s.actions, action)
}

func (s *stubAuditService) Recent(_ context.Context, _ int) ([]entity.AuditLog, error) {
	return nil, nil
}

func newTestSessionManager(users *stubUserRepo) (*session.Manager, *session.MemoryStore) {
	store := session.NewMemoryStore()
	return session.NewManager(store, users, testLogger(), time.Second), store
}
