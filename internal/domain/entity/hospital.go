package entity

import (
	"time"

	"github.com/google/uuid"
)

// Hospital is a directory entry. It has no ownership relation to users
// beyond the optional back-reference from DoctorProfile.
type Hospital struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"type:varchar(150);not null" json:"name"`
	City        string    `gorm:"type:varchar(100);not null;index" json:"city"`
	Country     string    `gorm:"type:varchar(100);not null;index" json:"country"`
	ImageURL    string    `gorm:"type:varchar(255)" json:"image_url,omitempty"`
	Description string    `gorm:"type:text" json:"description,omitempty"`
	Specialties string    `gorm:"type:varchar(200)" json:"specialties,omitempty"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`

	// Relationships
	Doctors []DoctorProfile `gorm:"foreignKey:HospitalID" json:"doctors,omitempty"`
}

func (Hospital) TableName() string {
	return "hospitals"
}
