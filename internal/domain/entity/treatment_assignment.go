package entity

import (
	"strings"
	"time"
)

// AssignmentStatus is the lifecycle tag of a treatment assigned to a patient.
type AssignmentStatus string

const (
	AssignmentActive    AssignmentStatus = "active"
	AssignmentCompleted AssignmentStatus = "completed"
	AssignmentCancelled AssignmentStatus = "cancelled"
)

// ParseAssignmentStatus accepts canonical values and the legacy
// ACTIVO/COMPLETADO/CANCELADO tags.
func ParseAssignmentStatus(s string) (AssignmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "active", "activo":
		return AssignmentActive, nil
	case "completed", "completado":
		return AssignmentCompleted, nil
	case "cancelled", "canceled", "cancelado":
		return AssignmentCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// TreatmentAssignment links a patient (by email) to a copy of the assigned
// treatment. Cost is always derived from the treatment, never stored.
type TreatmentAssignment struct {
	ID           int              `json:"id"`
	PatientEmail string           `json:"patient_email"`
	Treatment    Treatment        `json:"treatment"`
	AssignedAt   time.Time        `json:"assigned_at"`
	Note         string           `json:"note"`
	Status       AssignmentStatus `json:"status"`
}
