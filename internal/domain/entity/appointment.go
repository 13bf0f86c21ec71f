package entity

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCompleted AppointmentStatus = "completed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// ConsultationType represents how the consultation takes place
type ConsultationType string

const (
	ConsultationOnline   ConsultationType = "online"
	ConsultationPhysical ConsultationType = "physical"
)

// Appointment is the central mutable entity. Invariant: at most one
// appointment in status confirmed may exist per (doctor_id, date_time).
type Appointment struct {
	ID          uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID   uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID    uuid.UUID         `gorm:"type:uuid;not null;index:idx_appointments_doctor_time" json:"doctor_id"`
	DateTime    time.Time         `gorm:"not null;index:idx_appointments_doctor_time" json:"date_time"`
	Status      AppointmentStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	Type        ConsultationType  `gorm:"type:varchar(20);not null;default:'online'" json:"type"`
	MeetingLink string            `gorm:"type:varchar(200)" json:"meeting_link,omitempty"`
	Notes       string            `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt   time.Time         `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Patient User          `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  DoctorProfile `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsPending checks if the appointment is awaiting adjudication
func (a *Appointment) IsPending() bool {
	return a.Status == AppointmentStatusPending
}

// IsConfirmed checks if the appointment is confirmed
func (a *Appointment) IsConfirmed() bool {
	return a.Status == AppointmentStatusConfirmed
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// MeetingLinkFor derives the meeting link for an online consultation.
// Pure function of the two ids so rebooking the same pair reproduces the
// same room.
func MeetingLinkFor(patientID, doctorID uuid.UUID) string {
	return fmt.Sprintf("https://meet.jit.si/consultation-%s-%s", patientID, doctorID)
}
