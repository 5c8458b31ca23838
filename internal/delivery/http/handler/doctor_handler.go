package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"
)

type DoctorHandler struct {
	doctorUsecase usecase.DoctorUsecase
	validator     *validator.CustomValidator
}

func NewDoctorHandler(doctorUsecase usecase.DoctorUsecase, validator *validator.CustomValidator) *DoctorHandler {
	return &DoctorHandler{
		doctorUsecase: doctorUsecase,
		validator:     validator,
	}
}

func (h *DoctorHandler) CreateDoctor(w http.ResponseWriter, r *http.Request) {
	var req dto.DoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create doctor")
		return
	}

	response.Success(w, http.StatusCreated, "Doctor created successfully", doctor)
}

func (h *DoctorHandler) GetDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
}

// GetAllDoctors lists doctors. ?email= returns the single matching doctor;
// specialty, gender and active_only=true narrow the list.
func (h *DoctorHandler) GetAllDoctors(w http.ResponseWriter, r *http.Request) {
	if email := query(r, "email"); email != "" {
		doctor, err := h.doctorUsecase.GetByEmail(r.Context(), email)
		if err != nil {
			writeError(w, err, "Failed to get doctor")
			return
		}
		response.Success(w, http.StatusOK, "Doctor retrieved successfully", doctor)
		return
	}

	filter := &dto.DoctorFilterRequest{
		Specialty:  query(r, "specialty"),
		Gender:     query(r, "gender"),
		ActiveOnly: queryBool(r, "active_only"),
	}
	doctors, err := h.doctorUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get doctors")
		return
	}

	response.Success(w, http.StatusOK, "Doctors retrieved successfully", doctors)
}

func (h *DoctorHandler) UpdateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	var req dto.DoctorRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor updated successfully", doctor)
}

func (h *DoctorHandler) DeleteDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	if err := h.doctorUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deleted successfully", nil)
}

func (h *DoctorHandler) ActivateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.Activate(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to activate doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor activated successfully", doctor)
}

func (h *DoctorHandler) DeactivateDoctor(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	doctor, err := h.doctorUsecase.Deactivate(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to deactivate doctor")
		return
	}

	response.Success(w, http.StatusOK, "Doctor deactivated successfully", doctor)
}

func (h *DoctorHandler) CheckAvailability(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	availability, err := h.doctorUsecase.CheckAvailability(r.Context(), id, query(r, "day"), query(r, "time"))
	if err != nil {
		writeError(w, err, "Failed to check availability")
		return
	}

	response.Success(w, http.StatusOK, "Availability retrieved successfully", availability)
}

func (h *DoctorHandler) ListSlots(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	slots, err := h.doctorUsecase.ListSlots(r.Context(), id, query(r, "day"))
	if err != nil {
		writeError(w, err, "Failed to get slots")
		return
	}

	response.Success(w, http.StatusOK, "Slots retrieved successfully", slots)
}

func (h *DoctorHandler) BookSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	var req dto.SlotRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.BookSlot(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to book slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot booked successfully", doctor)
}

func (h *DoctorHandler) CancelSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	var req dto.SlotRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.CancelSlot(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to cancel slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot cancelled successfully", doctor)
}

func (h *DoctorHandler) RescheduleSlot(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "doctor ID")
	if !ok {
		return
	}

	var req dto.RescheduleSlotRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	doctor, err := h.doctorUsecase.RescheduleSlot(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to reschedule slot")
		return
	}

	response.Success(w, http.StatusOK, "Slot rescheduled successfully", doctor)
}
