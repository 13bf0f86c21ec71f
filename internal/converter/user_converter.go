package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	response := &dto.UserResponse{
		ID:          user.ID,
		Name:        user.Name,
		Email:       user.Email,
		Role:        string(user.Role),
		PhoneNumber: user.PhoneNumber,
		CreatedAt:   user.CreatedAt,
	}
	if user.MembershipID != nil {
		response.MembershipID = *user.MembershipID
	}
	if user.DoctorProfile != nil {
		response.Doctor = DoctorToResponse(user.DoctorProfile)
	}

	return response
}
