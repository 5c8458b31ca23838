package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"
)

type TreatmentAssignmentHandler struct {
	assignmentUsecase usecase.TreatmentAssignmentUsecase
	validator         *validator.CustomValidator
}

func NewTreatmentAssignmentHandler(assignmentUsecase usecase.TreatmentAssignmentUsecase, validator *validator.CustomValidator) *TreatmentAssignmentHandler {
	return &TreatmentAssignmentHandler{
		assignmentUsecase: assignmentUsecase,
		validator:         validator,
	}
}

func (h *TreatmentAssignmentHandler) AssignTreatment(w http.ResponseWriter, r *http.Request) {
	var req dto.AssignTreatmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	assignment, err := h.assignmentUsecase.Assign(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to assign treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment assigned successfully", assignment)
}

func (h *TreatmentAssignmentHandler) GetAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "assignment ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment retrieved successfully", assignment)
}

func (h *TreatmentAssignmentHandler) GetAllAssignments(w http.ResponseWriter, r *http.Request) {
	filter := &dto.AssignmentFilterRequest{
		PatientEmail: query(r, "patient_email"),
		Status:       query(r, "status"),
	}

	assignments, err := h.assignmentUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get assignments")
		return
	}

	response.Success(w, http.StatusOK, "Assignments retrieved successfully", assignments)
}

func (h *TreatmentAssignmentHandler) PatientsWithTreatments(w http.ResponseWriter, r *http.Request) {
	patients, err := h.assignmentUsecase.PatientsWithTreatments(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get patients with treatments")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

func (h *TreatmentAssignmentHandler) CompleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "assignment ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentUsecase.Complete(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to complete assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment completed successfully", assignment)
}

func (h *TreatmentAssignmentHandler) CancelAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "assignment ID")
	if !ok {
		return
	}

	assignment, err := h.assignmentUsecase.Cancel(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to cancel assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment cancelled successfully", assignment)
}

func (h *TreatmentAssignmentHandler) DeleteAssignment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "assignment ID")
	if !ok {
		return
	}

	if err := h.assignmentUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete assignment")
		return
	}

	response.Success(w, http.StatusOK, "Assignment deleted successfully", nil)
}
