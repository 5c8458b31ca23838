package handler

import (
	"net/http"
	"strconv"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
	"go-hospital-scheduling/pkg/validator"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"
)

type TreatmentHandler struct {
	treatmentUsecase usecase.TreatmentUsecase
	validator        *validator.CustomValidator
}

func NewTreatmentHandler(treatmentUsecase usecase.TreatmentUsecase, validator *validator.CustomValidator) *TreatmentHandler {
	return &TreatmentHandler{
		treatmentUsecase: treatmentUsecase,
		validator:        validator,
	}
}

func (h *TreatmentHandler) CreateTreatment(w http.ResponseWriter, r *http.Request) {
	var req dto.TreatmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	treatment, err := h.treatmentUsecase.Create(r.Context(), &req)
	if err != nil {
		writeError(w, err, "Failed to create treatment")
		return
	}

	response.Success(w, http.StatusCreated, "Treatment created successfully", treatment)
}

func (h *TreatmentHandler) GetTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "treatment ID")
	if !ok {
		return
	}

	treatment, err := h.treatmentUsecase.Get(r.Context(), mux.Vars(r)["category"], id)
	if err != nil {
		writeError(w, err, "Failed to get treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment retrieved successfully", treatment)
}

// GetAllTreatments accepts category, name, max_unit_price and max_quantity
// filters.
func (h *TreatmentHandler) GetAllTreatments(w http.ResponseWriter, r *http.Request) {
	filter := &dto.TreatmentFilterRequest{
		Category: query(r, "category"),
		Name:     query(r, "name"),
	}

	if raw := query(r, "max_unit_price"); raw != "" {
		price, err := decimal.NewFromString(raw)
		if err != nil {
			response.BadRequest(w, "Invalid max_unit_price")
			return
		}
		filter.MaxUnitPrice = &price
	}
	if raw := query(r, "max_quantity"); raw != "" {
		qty, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(w, "Invalid max_quantity")
			return
		}
		filter.MaxQuantity = &qty
	}

	treatments, err := h.treatmentUsecase.List(r.Context(), filter)
	if err != nil {
		writeError(w, err, "Failed to get treatments")
		return
	}

	response.Success(w, http.StatusOK, "Treatments retrieved successfully", treatments)
}

func (h *TreatmentHandler) GetTreatmentStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.treatmentUsecase.Stats(r.Context(), query(r, "category"))
	if err != nil {
		writeError(w, err, "Failed to get treatment stats")
		return
	}

	response.Success(w, http.StatusOK, "Treatment stats retrieved successfully", stats)
}

func (h *TreatmentHandler) UpdateTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "treatment ID")
	if !ok {
		return
	}

	var req dto.TreatmentRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	treatment, err := h.treatmentUsecase.Update(r.Context(), mux.Vars(r)["category"], id, &req)
	if err != nil {
		writeError(w, err, "Failed to update treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment updated successfully", treatment)
}

func (h *TreatmentHandler) DeleteTreatment(w http.ResponseWriter, r *http.Request) {
	id, ok := pathInt(w, r, "id", "treatment ID")
	if !ok {
		return
	}

	if err := h.treatmentUsecase.Delete(r.Context(), mux.Vars(r)["category"], id); err != nil {
		writeError(w, err, "Failed to delete treatment")
		return
	}

	response.Success(w, http.StatusOK, "Treatment deleted successfully", nil)
}
