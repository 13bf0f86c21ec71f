package handler

import (
	"encoding/json"
	"net/http"

	"medibook/internal/delivery/dto"
	"medibook/internal/delivery/http/middleware"
	"medibook/internal/session"
	"medibook/internal/usecase"
	"medibook/pkg/response"
	"medibook/pkg/validator"
)

type AuthHandler struct {
	authUsecase    usecase.AuthUsecase
	sessionManager *session.Manager
	validator      *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, sessionManager *session.Manager, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase:    authUsecase,
		sessionManager: sessionManager,
		validator:      validator,
	}
}

// Register handles user registration
// @Summary Register a new user
// @Description Register a patient or doctor account
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Register Request"
// @Success 201 {object} response.Response
// @Failure 400 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Register(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrMembershipIDExists:
			response.Conflict(w, "Membership id collision, please retry")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.InternalServerError(w, "Failed to register user")
		}
		return
	}

	response.Success(w, http.StatusCreated, "User registered successfully", user)
}

// Login handles user login
// @Summary Login user
// @Description Login with email and password; binds the ordinary identity to the session
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	user, err := h.authUsecase.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid email or password")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	sc, ok := middleware.SessionFromContext(r.Context())
	if !ok {
		response.InternalServerError(w, "Failed to login")
		return
	}

	// A standard login drops any operator privilege held by the session.
	if err := h.sessionManager.EstablishOrdinary(r.Context(), sc, user); err != nil {
		response.InternalServerError(w, "Failed to establish session")
		return
	}

	profile, err := h.authUsecase.GetProfile(r.Context(), user.ID)
	if err != nil {
		response.InternalServerError(w, "Failed to login")
		return
	}

	response.Success(w, http.StatusOK, "Login successful", profile)
}

// Logout handles user logout
// @Summary Logout user
// @Description Clear the ordinary identity binding; any operator binding is untouched
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sc, ok := middleware.SessionFromContext(r.Context())
	if ok {
		h.sessionManager.ClearOrdinary(r.Context(), sc)
	}
	response.Success(w, http.StatusOK, "Logout successful", nil)
}

// GetCurrentUser handles getting current user info
// @Summary Get current user
// @Description Get the authenticated user's profile
// @Tags Auth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	profile, err := h.authUsecase.GetProfile(r.Context(), user.ID)
	if err != nil {
		switch err {
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		default:
			response.InternalServerError(w, "Failed to get user info")
		}
		return
	}

	me := &dto.MeResponse{User: profile}
	if sc, found := middleware.SessionFromContext(r.Context()); found {
		// Operator state is exposed only when the visibility rule allows
		// it; a stale binding next to an unrelated ordinary identity
		// stays hidden.
		if operator := h.sessionManager.VisibleOperatorFor(r.Context(), sc); operator != nil {
			me.Operator = &dto.OperatorStatus{
				UserID: operator.ID,
				Email:  operator.Email,
				Since:  sc.OperatorSince,
			}
		}
	}

	response.Success(w, http.StatusOK, "User retrieved successfully", me)
}

// UpdateProfile handles profile updates
// @Summary Update profile
// @Description Update the authenticated user's profile; doctors may update professional details
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.UpdateProfileRequest true "Update Profile Request"
// @Success 200 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /auth/profile [put]
func (h *AuthHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Login required")
		return
	}

	var req dto.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	profile, err := h.authUsecase.UpdateProfile(r.Context(), user.ID, &req)
	if err != nil {
		switch err {
		case usecase.ErrEmailAlreadyExists:
			response.Conflict(w, "Email already exists")
		case usecase.ErrUserNotFound:
			response.NotFound(w, "User not found")
		case usecase.ErrStoreTimeout:
			response.Error(w, http.StatusGatewayTimeout, "Store timed out", nil)
		default:
			response.InternalServerError(w, "Failed to update profile")
		}
		return
	}

	response.Success(w, http.StatusOK, "Profile updated successfully", profile)
}
