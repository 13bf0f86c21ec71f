package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data, 1:1 with a
// User whose role is doctor.
type DoctorProfile struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	UserID          uuid.UUID       `gorm:"type:uuid;uniqueIndex;not null" json:"user_id"`
	Specialization  string          `gorm:"type:varchar(100);not null;index" json:"specialization"`
	Bio             string          `gorm:"type:text" json:"bio,omitempty"`
	ExperienceYears *int            `json:"experience_years,omitempty"`
	ConsultationFee decimal.Decimal `gorm:"type:decimal(10,2);not null;default:50.00" json:"consultation_fee"`
	Education       string          `gorm:"type:text" json:"education,omitempty"`
	City            string          `gorm:"type:varchar(100);index" json:"city,omitempty"`
	Country         string          `gorm:"type:varchar(100);index" json:"country,omitempty"`
	ImageURL        string          `gorm:"type:varchar(200)" json:"image_url,omitempty"`
	HospitalID      *uuid.UUID      `gorm:"type:uuid" json:"hospital_id,omitempty"`

	// Relationships
	User         User          `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Hospital     *Hospital     `gorm:"foreignKey:HospitalID" json:"hospital,omitempty"`
	Appointments []Appointment `gorm:"foreignKey:DoctorID" json:"appointments,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}
