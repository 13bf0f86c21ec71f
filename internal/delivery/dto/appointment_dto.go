package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type BookAppointmentRequest struct {
	Date  string `json:"date" validate:"required"` // YYYY-MM-DD
	Time  string `json:"time" validate:"required"` // HH:MM
	Type  string `json:"type" validate:"required,oneof=online physical"`
	Notes string `json:"notes" validate:"omitempty"`
}

// Response DTOs

// SlotResponse is one entry of the availability grid.
type SlotResponse struct {
	Time      string `json:"time"`
	Available bool   `json:"available"`
}

type AppointmentResponse struct {
	ID          uuid.UUID       `json:"id"`
	PatientID   uuid.UUID       `json:"patient_id"`
	DoctorID    uuid.UUID       `json:"doctor_id"`
	DateTime    time.Time       `json:"date_time"`
	Status      string          `json:"status"`
	Type        string          `json:"type"`
	MeetingLink string          `json:"meeting_link,omitempty"`
	Notes       string          `json:"notes,omitempty"`
	PatientName string          `json:"patient_name,omitempty"`
	Doctor      *DoctorResponse `json:"doctor,omitempty"`
	CreatedAt   time.Time       `json:"created_at"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

// AppointmentActionResponse reports the outcome of an operator action.
// NotificationSent is advisory only: a failed send never rolls back the
// transition.
type AppointmentActionResponse struct {
	Appointment      AppointmentResponse `json:"appointment"`
	Action           string              `json:"action"`
	NotificationSent bool                `json:"notification_sent"`
}
