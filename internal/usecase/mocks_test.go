package usecase

import (
	"context"
	"sync"
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sirupsen/logrus"
)

func duplicateKeyErr(constraint string) error {
	return &pgconn.PgError{Code: "23505", ConstraintName: constraint}
}

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

type mockUserRepo struct {
	mu       sync.Mutex
	users    map[uuid.UUID]*entity.User
	failWith error
}

func newMockUserRepo() *mockUserRepo {
	return &mockUserRepo{users: map[uuid.UUID]*entity.User{}}
}

func (m *mockUserRepo) Create(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return duplicateKeyErr("users_email_key")
		}
	}
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) FindByEmail(_ context.Context, email string) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	for _, user := range m.users {
		if user.Email == email {
			clone := *user
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockUserRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.User, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	user, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	clone := *user
	return &clone, nil
}

func (m *mockUserRepo) Update(_ context.Context, user *entity.User) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *user
	m.users[user.ID] = &clone
	return nil
}

func (m *mockUserRepo) CountAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.users)), nil
}

type mockDoctorProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*entity.DoctorProfile
}

func newMockDoctorProfileRepo() *mockDoctorProfileRepo {
	return &mockDoctorProfileRepo{profiles: map[uuid.UUID]*entity.DoctorProfile{}}
}

func (m *mockDoctorProfileRepo) Create(_ context.Context, profile *entity.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if profile.ID == uuid.Nil {
		profile.ID = uuid.New()
	}
	clone := *profile
	m.profiles[profile.ID] = &clone
	return nil
}

func (m *mockDoctorProfileRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	profile, ok := m.profiles[id]
	if !ok {
		return nil, nil
	}
	clone := *profile
	return &clone, nil
}

func (m *mockDoctorProfileRepo) FindByUserID(_ context.Context, userID uuid.UUID) (*entity.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, profile := range m.profiles {
		if profile.UserID == userID {
			clone := *profile
			return &clone, nil
		}
	}
	return nil, nil
}

func (m *mockDoctorProfileRepo) Update(_ context.Context, profile *entity.DoctorProfile) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	clone := *profile
	m.profiles[profile.ID] = &clone
	return nil
}

func (m *mockDoctorProfileRepo) FindAll(_ context.Context, filter entity.DoctorFilter) ([]entity.DoctorProfile, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.DoctorProfile
	for _, profile := range m.profiles {
		if filter.Specialty != "" && profile.Specialization != filter.Specialty {
			continue
		}
		if filter.City != "" && profile.City != filter.City {
			continue
		}
		if filter.Country != "" && profile.Country != filter.Country {
			continue
		}
		out = append(out, *profile)
	}
	return out, nil
}

func (m *mockDoctorProfileRepo) DistinctSpecializations(_ context.Context) ([]string, error) {
	return m.distinct(func(p *entity.DoctorProfile) string { return p.Specialization })
}

func (m *mockDoctorProfileRepo) DistinctCities(_ context.Context) ([]string, error) {
	return m.distinct(func(p *entity.DoctorProfile) string { return p.City })
}

func (m *mockDoctorProfileRepo) DistinctCountries(_ context.Context) ([]string, error) {
	return m.distinct(func(p *entity.DoctorProfile) string { return p.Country })
}

func (m *mockDoctorProfileRepo) distinct(pick func(*entity.DoctorProfile) string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, profile := range m.profiles {
		v := pick(profile)
		if v != "" && !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out, nil
}

func (m *mockDoctorProfileRepo) CountAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.profiles)), nil
}

type mockHospitalRepo struct {
	mu        sync.Mutex
	hospitals map[uuid.UUID]*entity.Hospital
}

func newMockHospitalRepo() *mockHospitalRepo {
	return &mockHospitalRepo{hospitals: map[uuid.UUID]*entity.Hospital{}}
}

func (m *mockHospitalRepo) Create(_ context.Context, hospital *entity.Hospital) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if hospital.ID == uuid.Nil {
		hospital.ID = uuid.New()
	}
	clone := *hospital
	m.hospitals[hospital.ID] = &clone
	return nil
}

func (m *mockHospitalRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hospital, ok := m.hospitals[id]
	if !ok {
		return nil, nil
	}
	clone := *hospital
	return &clone, nil
}

func (m *mockHospitalRepo) FindAll(_ context.Context, filter entity.HospitalFilter) ([]entity.Hospital, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Hospital
	for _, hospital := range m.hospitals {
		if filter.City != "" && hospital.City != filter.City {
			continue
		}
		if filter.Country != "" && hospital.Country != filter.Country {
			continue
		}
		out = append(out, *hospital)
	}
	return out, nil
}

func (m *mockHospitalRepo) DistinctCities(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, hospital := range m.hospitals {
		if hospital.City != "" && !seen[hospital.City] {
			seen[hospital.City] = true
			out = append(out, hospital.City)
		}
	}
	return out, nil
}

func (m *mockHospitalRepo) DistinctCountries(_ context.Context) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	seen := map[string]bool{}
	var out []string
	for _, hospital := range m.hospitals {
		if hospital.Country != "" && !seen[hospital.Country] {
			seen[hospital.Country] = true
			out = append(out, hospital.Country)
		}
	}
	return out, nil
}

// mockAppointmentRepo reproduces the conditional-update semantics of the
// SQL implementation, including the confirmed-slot uniqueness check.
type mockAppointmentRepo struct {
	mu           sync.Mutex
	appointments map[uuid.UUID]*entity.Appointment
	failWith     error
}

func newMockAppointmentRepo() *mockAppointmentRepo {
	return &mockAppointmentRepo{appointments: map[uuid.UUID]*entity.Appointment{}}
}

func (m *mockAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if appointment.ID == uuid.Nil {
		appointment.ID = uuid.New()
	}
	appointment.CreatedAt = time.Now()
	clone := *appointment
	m.appointments[appointment.ID] = &clone
	return nil
}

func (m *mockAppointmentRepo) FindByID(_ context.Context, id uuid.UUID) (*entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failWith != nil {
		return nil, m.failWith
	}
	appointment, ok := m.appointments[id]
	if !ok {
		return nil, nil
	}
	clone := *appointment
	return &clone, nil
}

func (m *mockAppointmentRepo) FindByPatientID(_ context.Context, patientID uuid.UUID) ([]entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Appointment
	for _, appointment := range m.appointments {
		if appointment.PatientID == patientID {
			out = append(out, *appointment)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) FindByDoctorID(_ context.Context, doctorID uuid.UUID) ([]entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Appointment
	for _, appointment := range m.appointments {
		if appointment.DoctorID == doctorID {
			out = append(out, *appointment)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) FindAll(_ context.Context) ([]entity.Appointment, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []entity.Appointment
	for _, appointment := range m.appointments {
		out = append(out, *appointment)
	}
	return out, nil
}

func (m *mockAppointmentRepo) FindRecent(_ context.Context, limit int) ([]entity.Appointment, error) {
	all, _ := m.FindAll(context.Background())
	if len(all) > limit {
		all = all[:limit]
	}
	return all, nil
}

func (m *mockAppointmentRepo) CountAll(_ context.Context) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return int64(len(m.appointments)), nil
}

func (m *mockAppointmentRepo) CountByStatus(_ context.Context, status entity.AppointmentStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var count int64
	for _, appointment := range m.appointments {
		if appointment.Status == status {
			count++
		}
	}
	return count, nil
}

func (m *mockAppointmentRepo) FindConfirmedTimes(_ context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []time.Time
	for _, appointment := range m.appointments {
		if appointment.DoctorID != doctorID || appointment.Status != entity.AppointmentStatusConfirmed {
			continue
		}
		if !appointment.DateTime.Before(from) && appointment.DateTime.Before(to) {
			out = append(out, appointment.DateTime)
		}
	}
	return out, nil
}

func (m *mockAppointmentRepo) UpdateStatus(_ context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[id]
	if !ok {
		return 0, nil
	}
	appointment.Status = status
	return 1, nil
}

func (m *mockAppointmentRepo) ConfirmIfSlotFree(_ context.Context, id uuid.UUID, doctorID uuid.UUID, at time.Time) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	appointment, ok := m.appointments[id]
	if !ok {
		return 0, nil
	}
	for _, other := range m.appointments {
		if other.ID != id && other.DoctorID == doctorID &&
			other.DateTime.Equal(at) && other.Status == entity.AppointmentStatusConfirmed {
			return 0, nil
		}
	}
	appointment.Status = entity.AppointmentStatusConfirmed
	return 1, nil
}

type mockAuditRepo struct {
	mu      sync.Mutex
	entries []entity.AuditLog
}

func (m *mockAuditRepo) Create(_ context.Context, log *entity.AuditLog) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries = append(m.entries, *log)
	return nil
}

func (m *mockAuditRepo) FindRecent(_ context.Context, limit int) ([]entity.AuditLog, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.entries) > limit {
		return m.entries[len(m.entries)-limit:], nil
	}
	return m.entries, nil
}

// mockDispatcher records send attempts without any transport.
type mockDispatcher struct {
	mu    sync.Mutex
	sent  []uuid.UUID
	okVal bool
}

func (m *mockDispatcher) Send(_ context.Context, appointment *entity.Appointment) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, appointment.ID)
	return m.okVal
}
