package entity

import (
	"time"

	"github.com/google/uuid"
)

// Role represents a user role in the system
type Role string

const (
	RolePatient Role = "patient"
	RoleDoctor  Role = "doctor"
	RoleAdmin   Role = "admin"
)

// User represents the centralized authentication table.
// Role is fixed at creation and never changed by application code.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Email        string    `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	Password     string    `gorm:"type:varchar(200);not null" json:"-"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	PhoneNumber  string    `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	MembershipID *string   `gorm:"type:varchar(20);uniqueIndex" json:"membership_id,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	DoctorProfile *DoctorProfile `gorm:"foreignKey:UserID" json:"doctor_profile,omitempty"`
}

func (User) TableName() string {
	return "users"
}

// IsAdmin reports whether the user carries the operator role.
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// IsPatient reports whether the user may request appointments.
func (u *User) IsPatient() bool {
	return u.Role == RolePatient
}

// IsDoctor reports whether the user owns a doctor profile.
func (u *User) IsDoctor() bool {
	return u.Role == RoleDoctor
}
