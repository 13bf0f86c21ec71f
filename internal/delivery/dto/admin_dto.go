package dto

type CreateDoctorRequest struct {
	Name           string  `json:"name" validate:"required,min=2,max=100"`
	Email          string  `json:"email" validate:"required,email"`
	Specialization string  `json:"specialization" validate:"required,max=100"`
	City           string  `json:"city" validate:"omitempty,max=100"`
	Country        string  `json:"country" validate:"omitempty,max=100"`
	Fee            float64 `json:"fee" validate:"omitempty,gte=0"`
}

type CreateHospitalRequest struct {
	Name        string `json:"name" validate:"required,min=2,max=150"`
	City        string `json:"city" validate:"required,max=100"`
	Country     string `json:"country" validate:"required,max=100"`
	Specialties string `json:"specialties" validate:"omitempty,max=200"`
	Description string `json:"description" validate:"omitempty"`
}

type DashboardResponse struct {
	TotalUsers          int64                 `json:"total_users"`
	TotalDoctors        int64                 `json:"total_doctors"`
	TotalAppointments   int64                 `json:"total_appointments"`
	PendingAppointments int64                 `json:"pending_appointments"`
	RecentAppointments  []AppointmentResponse `json:"recent_appointments"`
}
