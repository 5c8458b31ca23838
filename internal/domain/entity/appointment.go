package entity

import "strings"

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "scheduled"
	AppointmentAttended  AppointmentStatus = "attended"
	AppointmentCancelled AppointmentStatus = "cancelled"
)

// ParseAppointmentStatus accepts canonical values and the legacy
// PROGRAMADA/ATENDIDA/CANCELADA tags. Empty input means Scheduled.
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "scheduled", "programada":
		return AppointmentScheduled, nil
	case "attended", "atendida":
		return AppointmentAttended, nil
	case "cancelled", "canceled", "cancelada":
		return AppointmentCancelled, nil
	default:
		return "", ErrInvalidStatus
	}
}

// Appointment books a patient with a doctor on a weekly slot. Patient and
// doctor are referenced by email and are not kept in sync with their stores.
type Appointment struct {
	ID           int               `json:"id"`
	Time         TimeOfDay         `json:"time"`
	Day          Day               `json:"day"`
	PatientEmail string            `json:"patient_email"`
	DoctorEmail  string            `json:"doctor_email"`
	Status       AppointmentStatus `json:"status"`
}

// IsScheduled checks if the appointment is still pending
func (a *Appointment) IsScheduled() bool {
	return a.Status == AppointmentScheduled
}

// IsCancelled checks if the appointment is cancelled
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentCancelled
}

// IsActive reports Scheduled or Attended.
func (a *Appointment) IsActive() bool {
	return a.Status == AppointmentScheduled || a.Status == AppointmentAttended
}

// Cancel changes appointment status to cancelled
func (a *Appointment) Cancel() {
	a.Status = AppointmentCancelled
}

// Attend changes appointment status to attended
func (a *Appointment) Attend() {
	a.Status = AppointmentAttended
}

// Occupies reports whether the appointment holds doctor at day/time.
func (a *Appointment) Occupies(doctorEmail string, day Day, t TimeOfDay) bool {
	return !a.IsCancelled() &&
		a.Day == day &&
		a.Time == t &&
		strings.EqualFold(a.DoctorEmail, doctorEmail)
}
