package dto

import "github.com/google/uuid"

type DoctorResponse struct {
	ID              uuid.UUID         `json:"id"`
	UserID          uuid.UUID         `json:"user_id"`
	Name            string            `json:"name"`
	Email           string            `json:"email"`
	Specialization  string            `json:"specialization"`
	Bio             string            `json:"bio,omitempty"`
	ExperienceYears *int              `json:"experience_years,omitempty"`
	ConsultationFee string            `json:"consultation_fee"`
	Education       string            `json:"education,omitempty"`
	City            string            `json:"city,omitempty"`
	Country         string            `json:"country,omitempty"`
	Hospital        *HospitalResponse `json:"hospital,omitempty"`
}

// DoctorListResponse carries the filtered listing plus the distinct
// values used to build the filter controls.
type DoctorListResponse struct {
	Doctors     []DoctorResponse `json:"doctors"`
	Total       int              `json:"total"`
	Specialties []string         `json:"specialties"`
	Cities      []string         `json:"cities"`
	Countries   []string         `json:"countries"`
}

type HospitalResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Country     string    `json:"country"`
	ImageURL    string    `json:"image_url,omitempty"`
	Description string    `json:"description,omitempty"`
	Specialties string    `json:"specialties,omitempty"`
}

type HospitalListResponse struct {
	Hospitals []HospitalResponse `json:"hospitals"`
	Total     int                `json:"total"`
	Cities    []string           `json:"cities"`
	Countries []string           `json:"countries"`
}
