package http

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/http/handler"
	"go-hospital-scheduling/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers groups the HTTP handlers mounted by the router.
type Handlers struct {
	Auth        *handler.AuthHandler
	Doctor      *handler.DoctorHandler
	Patient     *handler.PatientHandler
	Appointment *handler.AppointmentHandler
	Treatment   *handler.TreatmentHandler
	Assignment  *handler.TreatmentAssignmentHandler
	Report      *handler.ReportHandler
	AuditLog    *handler.AuditLogHandler
}

type Router struct {
	router            *mux.Router
	handlers          Handlers
	gatherer          prometheus.Gatherer
	authMiddleware    *middleware.AuthMiddleware
	corsMiddleware    *middleware.CORSMiddleware
	loggingMiddleware *middleware.LoggingMiddleware
}

func NewRouter(
	handlers Handlers,
	gatherer prometheus.Gatherer,
	authMiddleware *middleware.AuthMiddleware,
	corsMiddleware *middleware.CORSMiddleware,
	loggingMiddleware *middleware.LoggingMiddleware,
) *Router {
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	return &Router{
		router:            mux.NewRouter(),
		handlers:          handlers,
		gatherer:          gatherer,
		authMiddleware:    authMiddleware,
		corsMiddleware:    corsMiddleware,
		loggingMiddleware: loggingMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	h := r.handlers

	r.router.Handle("/metrics", promhttp.HandlerFor(r.gatherer, promhttp.HandlerOpts{})).Methods(http.MethodGet)

	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	api.HandleFunc("/auth/token", h.Auth.IssueToken).Methods(http.MethodPost)

	// Staff routes (protected)
	staff := api.NewRoute().Subrouter()
	staff.Use(r.authMiddleware.Authenticate)

	staff.HandleFunc("/doctors", h.Doctor.CreateDoctor).Methods(http.MethodPost)
	staff.HandleFunc("/doctors", h.Doctor.GetAllDoctors).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}", h.Doctor.GetDoctor).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}", h.Doctor.UpdateDoctor).Methods(http.MethodPut)
	staff.HandleFunc("/doctors/{id}/availability", h.Doctor.CheckAvailability).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}/slots", h.Doctor.ListSlots).Methods(http.MethodGet)
	staff.HandleFunc("/doctors/{id}/slots/book", h.Doctor.BookSlot).Methods(http.MethodPost)
	staff.HandleFunc("/doctors/{id}/slots/cancel", h.Doctor.CancelSlot).Methods(http.MethodPost)
	staff.HandleFunc("/doctors/{id}/slots/reschedule", h.Doctor.RescheduleSlot).Methods(http.MethodPost)

	staff.HandleFunc("/patients", h.Patient.CreatePatient).Methods(http.MethodPost)
	staff.HandleFunc("/patients", h.Patient.GetAllPatients).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", h.Patient.GetPatient).Methods(http.MethodGet)
	staff.HandleFunc("/patients/{id}", h.Patient.UpdatePatient).Methods(http.MethodPut)

	staff.HandleFunc("/appointments", h.Appointment.CreateAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/appointments", h.Appointment.ListAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/active", h.Appointment.ListActiveByDoctor).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}", h.Appointment.GetAppointment).Methods(http.MethodGet)
	staff.HandleFunc("/appointments/{id}", h.Appointment.UpdateAppointment).Methods(http.MethodPut)
	staff.HandleFunc("/appointments/{id}/cancel", h.Appointment.CancelAppointment).Methods(http.MethodPost)
	staff.HandleFunc("/appointments/{id}/attend", h.Appointment.AttendAppointment).Methods(http.MethodPost)

	staff.HandleFunc("/treatments", h.Treatment.CreateTreatment).Methods(http.MethodPost)
	staff.HandleFunc("/treatments", h.Treatment.GetAllTreatments).Methods(http.MethodGet)
	staff.HandleFunc("/treatments/stats", h.Treatment.GetTreatmentStats).Methods(http.MethodGet)
	staff.HandleFunc("/treatments/{category}/{id}", h.Treatment.GetTreatment).Methods(http.MethodGet)
	staff.HandleFunc("/treatments/{category}/{id}", h.Treatment.UpdateTreatment).Methods(http.MethodPut)

	staff.HandleFunc("/assignments", h.Assignment.AssignTreatment).Methods(http.MethodPost)
	staff.HandleFunc("/assignments", h.Assignment.GetAllAssignments).Methods(http.MethodGet)
	staff.HandleFunc("/assignments/patients", h.Assignment.PatientsWithTreatments).Methods(http.MethodGet)
	staff.HandleFunc("/assignments/{id}", h.Assignment.GetAssignment).Methods(http.MethodGet)
	staff.HandleFunc("/assignments/{id}/complete", h.Assignment.CompleteAssignment).Methods(http.MethodPost)
	staff.HandleFunc("/assignments/{id}/cancel", h.Assignment.CancelAssignment).Methods(http.MethodPost)

	staff.HandleFunc("/reports/attended", h.Report.AttendedAppointments).Methods(http.MethodGet)
	staff.HandleFunc("/reports/revenue", h.Report.Revenue).Methods(http.MethodGet)
	staff.HandleFunc("/reports/history", h.Report.TreatmentHistory).Methods(http.MethodGet)
	staff.HandleFunc("/reports/specialties", h.Report.Specialties).Methods(http.MethodGet)
	staff.HandleFunc("/reports/categories", h.Report.Categories).Methods(http.MethodGet)
	staff.HandleFunc("/reports/stats", h.Report.GeneralStats).Methods(http.MethodGet)
	staff.HandleFunc("/reports/invoice", h.Report.Invoice).Methods(http.MethodGet)

	// Admin routes (protected - admin only)
	admin := api.NewRoute().Subrouter()
	admin.Use(r.authMiddleware.Authenticate)
	admin.Use(middleware.RequireAdmin)

	admin.HandleFunc("/doctors/{id}", h.Doctor.DeleteDoctor).Methods(http.MethodDelete)
	admin.HandleFunc("/doctors/{id}/activate", h.Doctor.ActivateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/doctors/{id}/deactivate", h.Doctor.DeactivateDoctor).Methods(http.MethodPost)
	admin.HandleFunc("/patients/{id}", h.Patient.DeletePatient).Methods(http.MethodDelete)
	admin.HandleFunc("/appointments/{id}", h.Appointment.DeleteAppointment).Methods(http.MethodDelete)
	admin.HandleFunc("/treatments/{category}/{id}", h.Treatment.DeleteTreatment).Methods(http.MethodDelete)
	admin.HandleFunc("/assignments/{id}", h.Assignment.DeleteAssignment).Methods(http.MethodDelete)
	admin.HandleFunc("/audit-logs", h.AuditLog.GetAllAuditLogs).Methods(http.MethodGet)

	// CORS preflight; answered by the CORS middleware
	api.PathPrefix("/").Methods(http.MethodOptions).HandlerFunc(r.preflight)

	r.router.Use(r.loggingMiddleware.Handle)
	r.router.Use(r.corsMiddleware.Handle)

	return r.router
}

func (r *Router) preflight(w http.ResponseWriter, req *http.Request) {
	w.WriteHeader(http.StatusNoContent)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(`{"status": "ok"}`))
}
