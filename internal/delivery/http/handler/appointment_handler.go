package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
}

// NewAppointmentHandler takes no validator: the scheduler checks
// appointment input itself, in a fixed order.
func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase) *AppointmentHandler {
	return &AppointmentHandler{appointmentUsecase: appointmentUsecase}
}

func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req dto.AppointmentRequest
	if !decodeAndValidate(w, r, nil, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create appointment")
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// ListAppointments filters by the status, patient_email, doctor_email and day
// query parameters.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	filter := &dto.AppointmentFilterRequest{
		Status:       query(r, "status"),
		PatientEmail: query(r, "patient_email"),
		DoctorEmail:  query(r, "doctor_email"),
		Day:          query(r, "day"),
	}

	appointments, err := h.appointmentUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) ListActiveByDoctor(w http.ResponseWriter, r *http.Request) {
	doctorEmail := query(r, "doctor_email")
	if doctorEmail == "" {
		response.BadRequest(w, "doctor_email is required")
		return
	}

	appointments, err := h.appointmentUsecase.ListActiveByDoctor(r.Context(), doctorEmail)
	if err != nil {
		writeError(w, err, "Failed to get appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "appointment ID")
	if !ok {
		return
	}

	var req dto.AppointmentRequest
	if !decodeAndValidate(w, r, nil, &req) {
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to cancel appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", appointment)
}

func (h *AppointmentHandler) AttendAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "appointment ID")
	if !ok {
		return
	}

	appointment, err := h.appointmentUsecase.Attend(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to attend appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment marked as attended", appointment)
}

func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "appointment ID")
	if !ok {
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete appointment")
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
