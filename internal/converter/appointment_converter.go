package converter

import (
	"medibook/internal/delivery/dto"
	"medibook/internal/domain/entity"

	"github.com/google/uuid"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:          appointment.ID,
		PatientID:   appointment.PatientID,
		DoctorID:    appointment.DoctorID,
		DateTime:    appointment.DateTime,
		Status:      string(appointment.Status),
		Type:        string(appointment.Type),
		MeetingLink: appointment.MeetingLink,
		Notes:       appointment.Notes,
		CreatedAt:   appointment.CreatedAt,
	}
	if appointment.Patient.ID != uuid.Nil {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Doctor.ID != uuid.Nil {
		response.Doctor = DoctorToResponse(&appointment.Doctor)
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
