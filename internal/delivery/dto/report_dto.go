package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

type AttendedBySpecialtyResponse struct {
	Counts map[string]int `json:"counts"`
	Total  int            `json:"total"`
}

type AttendedForSpecialtyResponse struct {
	Specialty    string                `json:"specialty"`
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}

type RevenueByCategoryResponse struct {
	Revenue map[string]decimal.Decimal `json:"revenue"`
	Total   decimal.Decimal            `json:"total"`
}

type CategoryRevenueResponse struct {
	Category string          `json:"category"`
	Revenue  decimal.Decimal `json:"revenue"`
}

type PatientHistory struct {
	PatientEmail string               `json:"patient_email"`
	PatientName  string               `json:"patient_name,omitempty"`
	Assignments  []AssignmentResponse `json:"assignments"`
	Total        decimal.Decimal      `json:"total"`
}

type TreatmentHistoryResponse struct {
	Patients []PatientHistory `json:"patients"`
}

type SpecialtiesResponse struct {
	Specialties []string `json:"specialties"`
}

type CategoriesResponse struct {
	Categories []string `json:"categories"`
}

type GeneralStatsResponse struct {
	TotalAppointments      int             `json:"total_appointments"`
	AttendedAppointments   int             `json:"attended_appointments"`
	ScheduledAppointments  int             `json:"scheduled_appointments"`
	CancelledAppointments  int             `json:"cancelled_appointments"`
	TotalAssignments       int             `json:"total_assignments"`
	TotalRevenue           decimal.Decimal `json:"total_revenue"`
	TotalDoctors           int             `json:"total_doctors"`
	PatientsWithTreatments int             `json:"patients_with_treatments"`
}

type InvoiceLineResponse struct {
	AssignmentID  int             `json:"assignment_id"`
	TreatmentName string          `json:"treatment_name"`
	Category      string          `json:"category"`
	Cost          decimal.Decimal `json:"cost"`
}

type InvoiceResponse struct {
	Number       string                `json:"number"`
	PatientEmail string                `json:"patient_email"`
	PatientName  string                `json:"patient_name"`
	Lines        []InvoiceLineResponse `json:"lines"`
	Total        decimal.Decimal       `json:"total"`
	IssuedAt     time.Time             `json:"issued_at"`
}
