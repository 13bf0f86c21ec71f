package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"
)

// HospitalToResponse converts a Hospital entity to HospitalResponse DTO
func HospitalToResponse(hospital *entity.Hospital) *dto.HospitalResponse {
	if hospital == nil {
		return nil
	}

	return &dto.HospitalResponse{
		ID:          hospital.ID,
		Name:        hospital.Name,
		City:        hospital.City,
		Country:     hospital.Country,
		ImageURL:    hospital.ImageURL,
		Description: hospital.Description,
		Specialties: hospital.Specialties,
	}
}

// HospitalsToResponses converts a slice of Hospital entities
func HospitalsToResponses(hospitals []entity.Hospital) []dto.HospitalResponse {
	responses := make([]dto.HospitalResponse, len(hospitals))
	for i, hospital := range hospitals {
		resp := HospitalToResponse(&hospital)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
