package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// InvoiceLine is one billed treatment.
type InvoiceLine struct {
	AssignmentID  int               `json:"assignment_id"`
	TreatmentName string            `json:"treatment_name"`
	Category      TreatmentCategory `json:"category"`
	Cost          decimal.Decimal   `json:"cost"`
}

// Invoice is computed on request and not persisted.
type Invoice struct {
	Number       uuid.UUID       `json:"number"`
	PatientEmail string          `json:"patient_email"`
	Lines        []InvoiceLine   `json:"lines"`
	Total        decimal.Decimal `json:"total"`
	IssuedAt     time.Time       `json:"issued_at"`
}
