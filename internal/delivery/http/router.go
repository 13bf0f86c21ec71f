package http

import (
	"net/http"

	"medibook/internal/delivery/http/handler"
	"medibook/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router             *mux.Router
	authHandler        *handler.AuthHandler
	appointmentHandler *handler.AppointmentHandler
	directoryHandler   *handler.DirectoryHandler
	adminHandler       *handler.AdminHandler
	sessionMiddleware  *middleware.SessionMiddleware
	gateMiddleware     *middleware.GateMiddleware
	corsMiddleware     *middleware.CORSMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	appointmentHandler *handler.AppointmentHandler,
	directoryHandler *handler.DirectoryHandler,
	adminHandler *handler.AdminHandler,
	sessionMiddleware *middleware.SessionMiddleware,
	gateMiddleware *middleware.GateMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
) *Router {
	return &Router{
		router:             mux.NewRouter(),
		authHandler:        authHandler,
		appointmentHandler: appointmentHandler,
		directoryHandler:   directoryHandler,
		adminHandler:       adminHandler,
		sessionMiddleware:  sessionMiddleware,
		gateMiddleware:     gateMiddleware,
		corsMiddleware:     corsMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// Health check
	r.router.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := r.router.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/register", r.authHandler.Register).Methods(http.MethodPost)
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)

	// Auth routes (ordinary identity required)
	authProtected := r.router.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.gateMiddleware.RequireOrdinary)
	authProtected.HandleFunc("/me", r.authHandler.GetCurrentUser).Methods(http.MethodGet)
	authProtected.HandleFunc("/profile", r.authHandler.UpdateProfile).Methods(http.MethodPut)

	// Public directory
	r.router.HandleFunc("/doctors", r.directoryHandler.ListDoctors).Methods(http.MethodGet)
	r.router.HandleFunc("/doctors/{id}", r.directoryHandler.GetDoctor).Methods(http.MethodGet)
	r.router.HandleFunc("/hospitals", r.directoryHandler.ListHospitals).Methods(http.MethodGet)

	// Availability grid (public)
	r.router.HandleFunc("/api/slots/{doctorId}", r.appointmentHandler.GetSlots).Methods(http.MethodGet)

	// Booking (patient only)
	book := r.router.PathPrefix("/book").Subrouter()
	book.Use(r.gateMiddleware.RequirePatient)
	book.HandleFunc("/{doctorId}", r.appointmentHandler.Book).Methods(http.MethodPost)

	// Dashboards (ordinary identity required)
	me := r.router.PathPrefix("").Subrouter()
	me.Use(r.gateMiddleware.RequireOrdinary)
	me.HandleFunc("/appointments", r.appointmentHandler.MyAppointments).Methods(http.MethodGet)
	me.HandleFunc("/doctor/appointments", r.appointmentHandler.DoctorAppointments).Methods(http.MethodGet)

	// Operator login flow (public; denial is generic)
	r.router.HandleFunc("/admin/login", r.adminHandler.Login).Methods(http.MethodPost)

	// Operator surface (operator binding required)
	admin := r.router.PathPrefix("/admin").Subrouter()
	admin.Use(r.gateMiddleware.RequireOperator)
	admin.HandleFunc("/logout", r.adminHandler.Logout).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/dashboard", r.adminHandler.Dashboard).Methods(http.MethodGet)
	admin.HandleFunc("/appointments", r.adminHandler.ListAppointments).Methods(http.MethodGet)
	admin.HandleFunc("/appointment/{id}/{action}", r.adminHandler.AppointmentAction).Methods(http.MethodGet, http.MethodPost)
	admin.HandleFunc("/audit-logs", r.adminHandler.AuditLogs).Methods(http.MethodGet)
	admin.HandleFunc("/doctors", r.adminHandler.CreateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/hospitals", r.adminHandler.CreateHospital).Methods(http.MethodPost)

	// CORS outermost, then session context on every route. mux runs
	// the first-added middleware outermost.
	r.router.Use(r.corsMiddleware.Handle)
	r.router.Use(r.sessionMiddleware.Handle)

	return r.router
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
