package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// Request DTOs

type TreatmentRequest struct {
	Category  string          `json:"category" validate:"required"`
	Name      string          `json:"name" validate:"required,max=150"`
	Quantity  int             `json:"quantity" validate:"gte=0"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

type TreatmentFilterRequest struct {
	Category     string           `json:"category,omitempty"`
	Name         string           `json:"name,omitempty"`
	MaxUnitPrice *decimal.Decimal `json:"max_unit_price,omitempty"`
	MaxQuantity  *int             `json:"max_quantity,omitempty"`
}

type AssignTreatmentRequest struct {
	PatientEmail string `json:"patient_email" validate:"required,email"`
	Category     string `json:"category" validate:"required"`
	TreatmentID  int    `json:"treatment_id" validate:"required,min=1"`
	Note         string `json:"note" validate:"max=500"`
}

type AssignmentFilterRequest struct {
	PatientEmail string `json:"patient_email,omitempty"`
	Status       string `json:"status,omitempty"`
}

// Response DTOs

type TreatmentResponse struct {
	ID           int             `json:"id"`
	Category     string          `json:"category"`
	Name         string          `json:"name"`
	Quantity     int             `json:"quantity"`
	QuantityUnit string          `json:"quantity_unit"`
	UnitPrice    decimal.Decimal `json:"unit_price"`
	Cost         decimal.Decimal `json:"cost"`
}

type TreatmentListResponse struct {
	Treatments []TreatmentResponse `json:"treatments"`
	Total      int                 `json:"total"`
}

type TreatmentStatsResponse struct {
	Category      string             `json:"category,omitempty"`
	Count         int                `json:"count"`
	AverageCost   decimal.Decimal    `json:"average_cost"`
	MostExpensive *TreatmentResponse `json:"most_expensive,omitempty"`
}

type AssignmentResponse struct {
	ID           int               `json:"id"`
	PatientEmail string            `json:"patient_email"`
	Treatment    TreatmentResponse `json:"treatment"`
	AssignedAt   time.Time         `json:"assigned_at"`
	Note         string            `json:"note"`
	Status       string            `json:"status"`
	Cost         decimal.Decimal   `json:"cost"`
}

type AssignmentListResponse struct {
	Assignments []AssignmentResponse `json:"assignments"`
	Total       int                  `json:"total"`
}

type PatientsWithTreatmentsResponse struct {
	PatientEmails []string `json:"patient_emails"`
	Total         int      `json:"total"`
}
