package entity

// AppointmentFilter is a domain-level filter for listing appointments.
// Empty fields match everything; string fields compare case-insensitively.
type AppointmentFilter struct {
	Status       AppointmentStatus
	PatientEmail string
	DoctorEmail  string
	Day          string
}
