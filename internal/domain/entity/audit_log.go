package entity

import "time"

// AuditLog represents a system audit trail entry
type AuditLog struct {
	ID        int64     `json:"id"`
	Actor     string    `json:"actor,omitempty"`
	Action    string    `json:"action"`
	Metadata  JSON      `json:"metadata,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// JSON is free-form audit metadata.
type JSON map[string]interface{}

// Common audit actions
const (
	AuditActionAppointmentCreate  = "appointment.create"
	AuditActionAppointmentUpdate  = "appointment.update"
	AuditActionAppointmentCancel  = "appointment.cancel"
	AuditActionAppointmentAttend  = "appointment.attend"
	AuditActionAppointmentDelete  = "appointment.delete"
	AuditActionDoctorCreate       = "doctor.create"
	AuditActionDoctorUpdate       = "doctor.update"
	AuditActionDoctorDelete       = "doctor.delete"
	AuditActionDoctorActivate     = "doctor.activate"
	AuditActionDoctorDeactivate   = "doctor.deactivate"
	AuditActionScheduleBook       = "schedule.book"
	AuditActionScheduleCancel     = "schedule.cancel"
	AuditActionScheduleReschedule = "schedule.reschedule"
	AuditActionPatientCreate      = "patient.create"
	AuditActionPatientUpdate      = "patient.update"
	AuditActionPatientDelete      = "patient.delete"
)
