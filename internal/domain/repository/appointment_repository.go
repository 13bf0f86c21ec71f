package repository

import (
	"context"
	"time"

	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uuid.UUID) (*entity.Appointment, error)
	FindByPatientID(ctx context.Context, patientID uuid.UUID) ([]entity.Appointment, error)
	FindByDoctorID(ctx context.Context, doctorID uuid.UUID) ([]entity.Appointment, error)
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindRecent(ctx context.Context, limit int) ([]entity.Appointment, error)
	CountAll(ctx context.Context) (int64, error)
	CountByStatus(ctx context.Context, status entity.AppointmentStatus) (int64, error)

	// FindConfirmedTimes returns the date_time values of confirmed
	// appointments for the doctor within [from, to).
	FindConfirmedTimes(ctx context.Context, doctorID uuid.UUID, from, to time.Time) ([]time.Time, error)

	// UpdateStatus sets the status unconditionally and reports affected rows.
	UpdateStatus(ctx context.Context, id uuid.UUID, status entity.AppointmentStatus) (int64, error)

	// ConfirmIfSlotFree atomically confirms the appointment unless another
	// confirmed appointment already occupies the same (doctor, date_time).
	// Returns affected rows: 1 = confirmed, 0 = slot already taken.
	ConfirmIfSlotFree(ctx context.Context, id uuid.UUID, doctorID uuid.UUID, at time.Time) (int64, error)
}
