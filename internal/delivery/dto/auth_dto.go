package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type RegisterRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`
	Role        string `json:"role" validate:"omitempty,oneof=patient doctor"`

	// Doctor-only professional details
	Specialization  string  `json:"specialization" validate:"omitempty,max=100"`
	Education       string  `json:"education" validate:"omitempty"`
	City            string  `json:"city" validate:"omitempty,max=100"`
	Country         string  `json:"country" validate:"omitempty,max=100"`
	ConsultationFee float64 `json:"consultation_fee" validate:"omitempty,gte=0"`
	ExperienceYears *int    `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type UpdateProfileRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=100"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=7,max=20"`

	// Doctor-only fields, ignored for other roles
	Specialization  string     `json:"specialization" validate:"omitempty,max=100"`
	Bio             string     `json:"bio" validate:"omitempty"`
	Education       string     `json:"education" validate:"omitempty"`
	City            string     `json:"city" validate:"omitempty,max=100"`
	Country         string     `json:"country" validate:"omitempty,max=100"`
	ConsultationFee *float64   `json:"consultation_fee" validate:"omitempty,gte=0"`
	ExperienceYears *int       `json:"experience_years" validate:"omitempty,gte=0,lte=80"`
	HospitalID      *uuid.UUID `json:"hospital_id" validate:"omitempty"`
}

// Response DTOs

// MeResponse pairs the ordinary profile with the operator binding
// visible to this session. Operator is omitted whenever the session's
// ordinary identity is a different account than the bound operator.
type MeResponse struct {
	User     *UserResponse   `json:"user"`
	Operator *OperatorStatus `json:"operator,omitempty"`
}

type OperatorStatus struct {
	UserID uuid.UUID `json:"user_id"`
	Email  string    `json:"email"`
	Since  time.Time `json:"since"`
}

type UserResponse struct {
	ID           uuid.UUID       `json:"id"`
	Name         string          `json:"name"`
	Email        string          `json:"email"`
	Role         string          `json:"role"`
	PhoneNumber  string          `json:"phone_number,omitempty"`
	MembershipID string          `json:"membership_id,omitempty"`
	Doctor       *DoctorResponse `json:"doctor_profile,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
}
