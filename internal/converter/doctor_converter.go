package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

// DoctorToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	response := &dto.DoctorResponse{
		ID:              profile.ID,
		UserID:          profile.UserID,
		Specialization:  profile.Specialization,
		Bio:             profile.Bio,
		ExperienceYears: profile.ExperienceYears,
		ConsultationFee: profile.ConsultationFee.StringFixed(2),
		Education:       profile.Education,
		City:            profile.City,
		Country:         profile.Country,
	}
	if profile.User.ID != uuid.Nil {
		response.Name = profile.User.Name
		response.Email = profile.User.Email
	}
	if profile.Hospital != nil {
		response.Hospital = HospitalToResponse(profile.Hospital)
	}

	return response
}

// DoctorsToResponses converts a slice of DoctorProfile entities
func DoctorsToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i, profile := range profiles {
		resp := DoctorToResponse(&profile)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
