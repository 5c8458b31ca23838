package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create patient")
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", patient)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "patient ID")
	if !ok {
		return
	}

	patient, err := h.patientUsecase.GetByID(r.Context(), id)
	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

// GetAllPatients lists patients, or looks one up by ?email= or ?national_id=.
func (h *PatientHandler) GetAllPatients(w http.ResponseWriter, r *http.Request) {
	var (
		patient *dto.PatientResponse
		err     error
	)
	switch {
	case query(r, "email") != "":
		patient, err = h.patientUsecase.GetByEmail(r.Context(), query(r, "email"))
	case query(r, "national_id") != "":
		patient, err = h.patientUsecase.GetByNationalID(r.Context(), query(r, "national_id"))
	default:
		patients, err := h.patientUsecase.List(r.Context())
		if err != nil {
			writeError(w, err, "Failed to get patients")
			return
		}
		response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
		return
	}

	if err != nil {
		writeError(w, err, "Failed to get patient")
		return
	}
	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "patient ID")
	if !ok {
		return
	}

	var req dto.PatientRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	patient, err := h.patientUsecase.Update(r.Context(), id, &req)
	if err != nil {
		writeError(w, err, "Failed to update patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", patient)
}

func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "patient ID")
	if !ok {
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), id); err != nil {
		writeError(w, err, "Failed to delete patient")
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
