package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"medibook/internal/converter"
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
	"medibook/internal/domain/repository"
	"medibook/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var (
	ErrSlotConflict        = errors.New("slot already confirmed for another appointment")
	ErrAppointmentNotFound = errors.New("appointment not found")
	ErrDoctorNotFound      = errors.New("doctor not found")
)

// Working hours of the bookable day. Slots are hourly, the last one
// starting at 16:00.
const (
	firstSlotHour = 9
	lastSlotHour  = 17
)

type SchedulingUsecase interface {
	SlotsFor(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]dto.SlotResponse, error)
	RequestAppointment(ctx context.Context, patient *entity.User, doctorID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error)
	ApplyAction(ctx context.Context, operator *entity.User, appointmentID uuid.UUID, action string) (*dto.AppointmentActionResponse, error)
	MyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error)
	DoctorAppointments(ctx context.Context, doctorUserID uuid.UUID) (*dto.AppointmentListResponse, error)
	AllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error)
	AdminDashboard(ctx context.Context) (*dto.DashboardResponse, error)
}

type schedulingUsecase struct {
	log               *logrus.Logger
	appointmentRepo   repository.AppointmentRepository
	doctorProfileRepo repository.DoctorProfileRepository
	userRepo          repository.UserRepository
	dispatcher        service.Dispatcher
	auditService      service.AuditService
	storeTimeout      time.Duration
}

func NewSchedulingUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	doctorProfileRepo repository.DoctorProfileRepository,
	userRepo repository.UserRepository,
	dispatcher service.Dispatcher,
	auditService service.AuditService,
	storeTimeout time.Duration,
) SchedulingUsecase {
	return &schedulingUsecase{
		log:               log,
		appointmentRepo:   appointmentRepo,
		doctorProfileRepo: doctorProfileRepo,
		userRepo:          userRepo,
		dispatcher:        dispatcher,
		auditService:      auditService,
		storeTimeout:      storeTimeout,
	}
}

// SlotsFor returns the hourly availability grid for one doctor on one
// day. Only confirmed appointments block a slot. A missing or malformed
// date yields an empty grid, not an error.
func (u *schedulingUsecase) SlotsFor(ctx context.Context, doctorID uuid.UUID, dateStr string) ([]dto.SlotResponse, error) {
	day, err := time.Parse("2006-01-02", dateStr)
	if err != nil {
		return []dto.SlotResponse{}, nil
	}

	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)

	taken, err := u.appointmentRepo.FindConfirmedTimes(storeCtx, doctorID, from, to)
	if err != nil {
		u.log.Warnf("Failed to load confirmed times: %+v", err)
		return nil, storeErr(err)
	}

	// A slot is blocked only by a confirmed appointment at exactly its
	// instant; a confirmed 10:30 booking leaves 10:00 available.
	takenAt := make(map[int64]bool, len(taken))
	for _, t := range taken {
		takenAt[t.Unix()] = true
	}

	slots := make([]dto.SlotResponse, 0, lastSlotHour-firstSlotHour)
	for hour := firstSlotHour; hour < lastSlotHour; hour++ {
		at := time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, time.UTC)
		slots = append(slots, dto.SlotResponse{
			Time:      fmt.Sprintf("%02d:00", hour),
			Available: !takenAt[at.Unix()],
		})
	}
	return slots, nil
}

// RequestAppointment records a pending booking. Pending bookings never
// block a slot; overlap is adjudicated at confirmation time.
func (u *schedulingUsecase) RequestAppointment(ctx context.Context, patient *entity.User, doctorID uuid.UUID, req *dto.BookAppointmentRequest) (*dto.AppointmentResponse, error) {
	dateTime, err := time.Parse("2006-01-02 15:04", req.Date+" "+req.Time)
	if err != nil {
		return nil, fmt.Errorf("invalid date or time: %w", err)
	}
	dateTime = dateTime.UTC()

	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	doctor, err := u.doctorProfileRepo.FindByID(storeCtx, doctorID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeErr(err)
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	appointment := &entity.Appointment{
		PatientID: patient.ID,
		DoctorID:  doctor.ID,
		DateTime:  dateTime,
		Status:    entity.AppointmentStatusPending,
		Type:      entity.ConsultationType(req.Type),
		Notes:     req.Notes,
	}
	if appointment.Type == entity.ConsultationOnline {
		appointment.MeetingLink = entity.MeetingLinkFor(patient.ID, doctor.ID)
	}

	if err := u.appointmentRepo.Create(storeCtx, appointment); err != nil {
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, storeErr(err)
	}

	u.auditService.Record(ctx, &patient.ID, entity.AuditActionAppointmentRequest, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"doctor_id":      doctor.ID.String(),
		"date_time":      dateTime.Format(time.RFC3339),
	})

	appointment.Patient = *patient
	appointment.Doctor = *doctor
	return converter.AppointmentToResponse(appointment), nil
}

// ApplyAction performs an operator transition on an appointment.
// "confirm" is guarded against slot collisions, "cancel" is idempotent,
// any other action resets the appointment to pending.
func (u *schedulingUsecase) ApplyAction(ctx context.Context, operator *entity.User, appointmentID uuid.UUID, action string) (*dto.AppointmentActionResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	appointment, err := u.appointmentRepo.FindByID(storeCtx, appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment: %+v", err)
		return nil, storeErr(err)
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	notificationSent := false
	auditAction := entity.AuditActionAppointmentReset

	switch action {
	case "confirm":
		auditAction = entity.AuditActionAppointmentConfirm
		rows, err := u.appointmentRepo.ConfirmIfSlotFree(storeCtx, appointment.ID, appointment.DoctorID, appointment.DateTime)
		if err != nil {
			u.log.Warnf("Failed to confirm appointment: %+v", err)
			return nil, storeErr(err)
		}
		if rows == 0 {
			return nil, ErrSlotConflict
		}
		appointment.Status = entity.AppointmentStatusConfirmed

		// Reload with relations so the notification has names and emails.
		if fresh, err := u.appointmentRepo.FindByID(storeCtx, appointment.ID); err == nil && fresh != nil {
			appointment = fresh
		}
		notificationSent = u.dispatcher.Send(ctx, appointment)

	case "cancel":
		auditAction = entity.AuditActionAppointmentCancel
		if _, err := u.appointmentRepo.UpdateStatus(storeCtx, appointment.ID, entity.AppointmentStatusCancelled); err != nil {
			u.log.Warnf("Failed to cancel appointment: %+v", err)
			return nil, storeErr(err)
		}
		appointment.Status = entity.AppointmentStatusCancelled

	default:
		if _, err := u.appointmentRepo.UpdateStatus(storeCtx, appointment.ID, entity.AppointmentStatusPending); err != nil {
			u.log.Warnf("Failed to reset appointment: %+v", err)
			return nil, storeErr(err)
		}
		appointment.Status = entity.AppointmentStatusPending
	}

	u.auditService.Record(ctx, &operator.ID, auditAction, entity.JSON{
		"appointment_id": appointment.ID.String(),
		"action":         action,
	})

	return &dto.AppointmentActionResponse{
		Appointment:      *converter.AppointmentToResponse(appointment),
		Action:           action,
		NotificationSent: notificationSent,
	}, nil
}

func (u *schedulingUsecase) MyAppointments(ctx context.Context, patientID uuid.UUID) (*dto.AppointmentListResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	appointments, err := u.appointmentRepo.FindByPatientID(storeCtx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient appointments: %+v", err)
		return nil, storeErr(err)
	}
	return listResponse(appointments), nil
}

// DoctorAppointments lists bookings for a doctor identified by their
// user account, not their profile id.
func (u *schedulingUsecase) DoctorAppointments(ctx context.Context, doctorUserID uuid.UUID) (*dto.AppointmentListResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	profile, err := u.doctorProfileRepo.FindByUserID(storeCtx, doctorUserID)
	if err != nil {
		u.log.Warnf("Failed to find doctor profile: %+v", err)
		return nil, storeErr(err)
	}
	if profile == nil {
		return nil, ErrDoctorNotFound
	}

	appointments, err := u.appointmentRepo.FindByDoctorID(storeCtx, profile.ID)
	if err != nil {
		u.log.Warnf("Failed to list doctor appointments: %+v", err)
		return nil, storeErr(err)
	}
	return listResponse(appointments), nil
}

func (u *schedulingUsecase) AllAppointments(ctx context.Context) (*dto.AppointmentListResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	appointments, err := u.appointmentRepo.FindAll(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, storeErr(err)
	}
	return listResponse(appointments), nil
}

func (u *schedulingUsecase) AdminDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	storeCtx, cancel := context.WithTimeout(ctx, u.storeTimeout)
	defer cancel()

	totalUsers, err := u.userRepo.CountAll(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to count users: %+v", err)
		return nil, storeErr(err)
	}
	totalDoctors, err := u.doctorProfileRepo.CountAll(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to count doctors: %+v", err)
		return nil, storeErr(err)
	}
	totalAppointments, err := u.appointmentRepo.CountAll(storeCtx)
	if err != nil {
		u.log.Warnf("Failed to count appointments: %+v", err)
		return nil, storeErr(err)
	}
	pending, err := u.appointmentRepo.CountByStatus(storeCtx, entity.AppointmentStatusPending)
	if err != nil {
		u.log.Warnf("Failed to count pending appointments: %+v", err)
		return nil, storeErr(err)
	}
	recent, err := u.appointmentRepo.FindRecent(storeCtx, 5)
	if err != nil {
		u.log.Warnf("Failed to load recent appointments: %+v", err)
		return nil, storeErr(err)
	}

	return &dto.DashboardResponse{
		TotalUsers:          totalUsers,
		TotalDoctors:        totalDoctors,
		TotalAppointments:   totalAppointments,
		PendingAppointments: pending,
		RecentAppointments:  converter.AppointmentsToResponses(recent),
	}, nil
}

func listResponse(appointments []entity.Appointment) *dto.AppointmentListResponse {
	return &dto.AppointmentListResponse{
		Appointments: converter.AppointmentsToResponses(appointments),
		Total:        len(appointments),
	}
}
