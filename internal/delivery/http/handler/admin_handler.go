package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/domain/entity"
	"medibook/internal/service"
	"medibook/internal/session"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

// AdminHandler serves the operator surface. Operator login is a
// separate flow from the ordinary login and binds a distinct identity
// in the same session.
type AdminHandler struct {
	authUsecase       usecase.AuthUsecase
	schedulingUsecase usecase.SchedulingUsecase
	directoryUsecase  usecase.DirectoryUsecase
	sessionManager    *session.Manager
	auditService      service.AuditService
	validator         *validator.CustomValidator
}

func NewAdminHandler(
	authUsecase usecase.AuthUsecase,
	schedulingUsecase usecase.SchedulingUsecase,
	directoryUsecase usecase.DirectoryUsecase,
	sessionManager *session.Manager,
	auditService service.AuditService,
	validator *validator.CustomValidator,
) *AdminHandler {
	return &AdminHandler{
		authUsecase:       authUsecase,
		schedulingUsecase: schedulingUsecase,
		directoryUsecase:  directoryUsecase,
		sessionManager:    sessionManager,
		auditService:      auditService,
		validator:         validator,
	}
}

// Login handles operator login
// @Summary Operator login
// @Description Authenticate and bind the operator identity; the denial message never reveals whether the account exists or lacks the role
// @Tags Admin
// @Accept x-www-form-urlencoded
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /admin/login [post]
func (h *AdminHandler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid form data", nil)
		return
	}
	email := r.PostFormValue("email")
	password := r.PostFormValue("password")

	user, err := h.authUsecase.Authenticate(r.Context(), email, password)
	if err != nil || !user.IsAdmin() {
		// One generic denial for bad credentials and insufficient role
		// alike, so the endpoint cannot be used to enumerate admins.
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	sc, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Failed to establish session")
		return
	}

	if err := h.sessionManager.EstablishOperator(r.Context(), sc, user); err != nil {
		response.Unauthorized(w, "Invalid email or password")
		return
	}

	h.auditService.Record(r.Context(), &user.ID, entity.AuditActionOperatorLogin, entity.JSON{
		"email": user.Email,
	})

	http.Redirect(w, r, "/admin/dashboard", http.StatusSeeOther)
}

// Logout handles operator logout
// @Summary Operator logout
// @Description Clear the operator binding; the ordinary identity in the same session is untouched
// @Tags Admin
// @Produce json
// @Router /admin/logout [post]
func (h *AdminHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.SessionFromContext(r.Context())
	if ok {
		if operator, found := middleware.OperatorFromContext(r.Context()); found {
			h.auditService.Record(r.Context(), &operator.ID, entity.AuditActionOperatorLogout, nil)
		}
		h.sessionManager.ClearOperator(r.Context(), sc)
	}
	http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
}

// Dashboard serves operator statistics
// @Summary Operator dashboard
// @Description Totals plus the five most recent appointments
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/dashboard [get]
func (h *AdminHandler) Dashboard(w http.ResponseWriter, r *http.Request) {
	stats, err := h.schedulingUsecase.AdminDashboard(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load dashboard")
		return
	}
	response.Success(w, http.StatusOK, "Dashboard retrieved", stats)
}

// ListAppointments lists every appointment for adjudication
// @Summary List all appointments
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/appointments [get]
func (h *AdminHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	list, err := h.schedulingUsecase.AllAppointments(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to load appointments")
		return
	}
	response.Success(w, http.StatusOK, "Appointments retrieved", list)
}

// AppointmentAction applies an operator transition and redirects back
// to the page the operator came from
// @Summary Apply an appointment action
// @Description confirm (collision-checked), cancel (idempotent), anything else resets to pending
// @Tags Admin
// @Param id path string true "Appointment ID"
// @Param action path string true "Action"
// @Router /admin/appointment/{id}/{action} [post]
func (h *AdminHandler) AppointmentAction(w http.ResponseWriter, r *http.Request) {
	operator, ok := middleware.OperatorFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	vars := mux.Vars(r)
	appointmentID, err := uuid.Parse(vars["id"])
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	result, err := h.schedulingUsecase.ApplyAction(r.Context(), operator, appointmentID, vars["action"])
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrSlotConflict:
			response.Conflict(w, "Slot already confirmed for another appointment")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.InternalServerError(w, "Failed to apply action")
		}
		return
	}

	// Browser form posts go back where they came from; API clients get
	// the action result.
	if referer := r.Header.Get("Referer"); referer != "" {
		http.Redirect(w, r, referer, http.StatusSeeOther)
		return
	}
	response.Success(w, http.StatusOK, "Action applied", result)
}

// AuditLogs lists the most recent audit trail entries
// @Summary Recent audit log entries
// @Tags Admin
// @Produce json
// @Success 200 {object} response.Response
// @Router /admin/audit-logs [get]
func (h *AdminHandler) AuditLogs(w http.ResponseWriter, r *http.Request) {
	entries, err := h.auditService.Recent(r.Context(), 50)
	if err != nil {
		response.InternalServerError(w, "Failed to load audit logs")
		return
	}
	response.Success(w, http.StatusOK, "Audit logs retrieved", entries)
}

// CreateDoctor provisions a doctor account with the default credential
// @Summary Create a doctor
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateDoctorRequest true "Create Doctor Request"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /admin/doctors [post]
func (h *AdminHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	operator, ok := middleware.OperatorFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	var req dto.CreateDoctorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	doctor, err := h.directoryUsecase.CreateDoctor(r.Context(), operator, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.InternalServerError(w, "Failed to create doctor")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

// CreateHospital adds a hospital to the public directory
// @Summary Create a hospital
// @Tags Admin
// @Accept json
// @Produce json
// @Param request body dto.CreateHospitalRequest true "Create Hospital Request"
// @Success 201 {object} response.Response
// @Router /admin/hospitals [post]
func (h *AdminHandler) CreateHospital(w http.ResponseWriter, r *http.Request) {
	operator, ok := middleware.OperatorFromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/admin/login", http.StatusSeeOther)
		return
	}

	var req dto.CreateHospitalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	hospital, err := h.directoryUsecase.CreateHospital(r.Context(), operator, &req)
	if err != nil {
		response.InternalServerError(w, "Failed to create hospital")
		return
	}

	response.Success(w, http.StatusCreated, "Hospital created successfully", hospital)
}
