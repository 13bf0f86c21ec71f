package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	schedulingUsecase usecase.SchedulingUsecase
	validator         *validator.CustomValidator
}

func NewAppointmentHandler(schedulingUsecase usecase.SchedulingUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		schedulingUsecase: schedulingUsecase,
		validator:         validator,
	}
}

// GetSlots handles the availability grid lookup
// @Summary Get available slots
// @Description Hourly 09:00-17:00 availability for one doctor on one day; only confirmed appointments block a slot
// @Tags Appointments
// @Produce json
// @Param doctorId path string true "Doctor profile ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {array} dto.SlotResponse
// @Router /api/slots/{doctorId} [get]
func (h *AppointmentHandler) GetSlots(w http.ResponseWriter, r *http.Request) {
	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor id", nil)
		return
	}

	slots, err := h.schedulingUsecase.SlotsFor(r.Context(), doctorID, r.URL.Query().Get("date"))
	if err != nil {
		response.InternalServerError(w, "Failed to load slots")
		return
	}

	// Bare array, not the success envelope; the grid is consumed by the
	// booking widget directly.
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(slots)
}

// Book handles a patient booking request
// @Summary Book an appointment
// @Description Create a pending appointment with a doctor; slot collisions are adjudicated at confirmation
// @Tags Appointments
// @Accept json
// @Produce json
// @Param doctorId path string true "Doctor profile ID"
// @Param request body dto.BookAppointmentRequest true "Booking Request"
// @Success 201 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /book/{doctorId} [post]
func (h *AppointmentHandler) Book(w http.ResponseWriter, r *http.Request) {
	patient, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	doctorID, err := uuid.Parse(mux.Vars(r)["doctorId"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor id", nil)
		return
	}

	var req dto.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.schedulingUsecase.RequestAppointment(r.Context(), patient, doctorID, &req)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.Error(w, http.StatusBadRequest, "Failed to book appointment", err.Error())
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment requested", appointment)
}

// MyAppointments lists the authenticated patient's bookings
// @Summary Patient dashboard
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) MyAppointments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	list, err := h.schedulingUsecase.MyAppointments(r.Context(), user.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to load appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved", list)
}

// DoctorAppointments lists bookings addressed to the authenticated doctor
// @Summary Doctor dashboard
// @Tags Appointments
// @Produce json
// @Success 200 {object} response.Response
// @Router /doctor/appointments [get]
func (h *AppointmentHandler) DoctorAppointments(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}
	if !user.IsDoctor() {
		response.Forbidden(w, "Doctor account required")
		return
	}

	list, err := h.schedulingUsecase.DoctorAppointments(r.Context(), user.ID)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor profile not found")
		default:
			response.InternalServerError(w, "Failed to load appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved", list)
}
