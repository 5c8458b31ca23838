package handler

import (
	"net/http"

	"go-hospital-scheduling/internal/usecase"
	"go-hospital-scheduling/pkg/response"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{reportUsecase: reportUsecase}
}

// AttendedAppointments groups attended visits by specialty, or returns one
// specialty when ?specialty= is set.
func (h *ReportHandler) AttendedAppointments(w http.ResponseWriter, r *http.Request) {
	if specialty := query(r, "specialty"); specialty != "" {
		report, err := h.reportUsecase.AttendedForSpecialty(r.Context(), specialty)
		if err != nil {
			writeError(w, err, "Failed to build attendance report")
			return
		}
		response.Success(w, http.StatusOK, "Attendance report retrieved successfully", report)
		return
	}

	report, err := h.reportUsecase.AttendedBySpecialty(r.Context())
	if err != nil {
		writeError(w, err, "Failed to build attendance report")
		return
	}
	response.Success(w, http.StatusOK, "Attendance report retrieved successfully", report)
}

func (h *ReportHandler) Revenue(w http.ResponseWriter, r *http.Request) {
	if category := query(r, "category"); category != "" {
		report, err := h.reportUsecase.RevenueForCategory(r.Context(), category)
		if err != nil {
			writeError(w, err, "Failed to build revenue report")
			return
		}
		response.Success(w, http.StatusOK, "Revenue report retrieved successfully", report)
		return
	}

	report, err := h.reportUsecase.RevenueByCategory(r.Context())
	if err != nil {
		writeError(w, err, "Failed to build revenue report")
		return
	}
	response.Success(w, http.StatusOK, "Revenue report retrieved successfully", report)
}

func (h *ReportHandler) TreatmentHistory(w http.ResponseWriter, r *http.Request) {
	if email := query(r, "patient_email"); email != "" {
		history, err := h.reportUsecase.PatientHistory(r.Context(), email)
		if err != nil {
			writeError(w, err, "Failed to build treatment history")
			return
		}
		response.Success(w, http.StatusOK, "Treatment history retrieved successfully", history)
		return
	}

	history, err := h.reportUsecase.TreatmentHistory(r.Context())
	if err != nil {
		writeError(w, err, "Failed to build treatment history")
		return
	}
	response.Success(w, http.StatusOK, "Treatment history retrieved successfully", history)
}

func (h *ReportHandler) Specialties(w http.ResponseWriter, r *http.Request) {
	specialties, err := h.reportUsecase.Specialties(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get specialties")
		return
	}

	response.Success(w, http.StatusOK, "Specialties retrieved successfully", specialties)
}

func (h *ReportHandler) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.reportUsecase.Categories(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get categories")
		return
	}

	response.Success(w, http.StatusOK, "Categories retrieved successfully", categories)
}

func (h *ReportHandler) GeneralStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.reportUsecase.GeneralStats(r.Context())
	if err != nil {
		writeError(w, err, "Failed to get stats")
		return
	}

	response.Success(w, http.StatusOK, "Stats retrieved successfully", stats)
}

func (h *ReportHandler) Invoice(w http.ResponseWriter, r *http.Request) {
	invoice, err := h.reportUsecase.Invoice(r.Context(), query(r, "patient_email"))
	if err != nil {
		writeError(w, err, "Failed to build invoice")
		return
	}

	response.Success(w, http.StatusOK, "Invoice generated successfully", invoice)
}
