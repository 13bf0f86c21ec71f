package handler

import (
	"net/http"

	"medibook/internal/domain/entity"
	"medibook/internal/usecase"
	"medibook/pkg/response"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// DirectoryHandler serves the public doctor and hospital listings.
type DirectoryHandler struct {
	directoryUsecase usecase.DirectoryUsecase
}

func NewDirectoryHandler(directoryUsecase usecase.DirectoryUsecase) *DirectoryHandler {
	return &DirectoryHandler{directoryUsecase: directoryUsecase}
}

// ListDoctors handles the doctor directory listing
// @Summary List doctors
// @Description Filterable by specialty, city and country; includes the distinct filter values
// @Tags Directory
// @Produce json
// @Param specialty query string false "Specialty filter"
// @Param city query string false "City filter"
// @Param country query string false "Country filter"
// @Success 200 {object} response.Response
// @Router /doctors [get]
func (h *DirectoryHandler) ListDoctors(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.DoctorFilter{
		Specialty: query.Get("specialty"),
		City:      query.Get("city"),
		Country:   query.Get("country"),
	}

	list, err := h.directoryUsecase.ListDoctors(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to load doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved", list)
}

// GetDoctor handles a single doctor profile lookup
// @Summary Get doctor
// @Tags Directory
// @Produce json
// @Param id path string true "Doctor profile ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /doctors/{id} [get]
func (h *DirectoryHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid doctor id", nil)
		return
	}

	doctor, err := h.directoryUsecase.GetDoctor(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, "Doctor not found")
		default:
			response.InternalServerError(w, "Failed to load doctor")
		}
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved", doctor)
}

// ListHospitals handles the hospital directory listing
// @Summary List hospitals
// @Description Filterable by city and country; includes the distinct filter values
// @Tags Directory
// @Produce json
// @Param city query string false "City filter"
// @Param country query string false "Country filter"
// @Success 200 {object} response.Response
// @Router /hospitals [get]
func (h *DirectoryHandler) ListHospitals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	filter := entity.HospitalFilter{
		City:    query.Get("city"),
		Country: query.Get("country"),
	}

	list, err := h.directoryUsecase.ListHospitals(r.Context(), filter)
	if err != nil {
		response.InternalServerError(w, "Failed to load hospitals")
		return
	}

	response.Success(w, http.StatusOK, "Hospitals retrieved", list)
}
