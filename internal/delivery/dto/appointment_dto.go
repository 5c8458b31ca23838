package dto

// Request DTOs

// AppointmentRequest carries raw input; the scheduler validates it in a fixed
// order, so there are no validate tags here.
type AppointmentRequest struct {
	Time         string `json:"time"`
	Day          string `json:"day"`
	PatientEmail string `json:"patient_email"`
	DoctorEmail  string `json:"doctor_email"`
	Status       string `json:"status,omitempty"`
}

type AppointmentFilterRequest struct {
	Status       string `json:"status,omitempty"`
	PatientEmail string `json:"patient_email,omitempty"`
	DoctorEmail  string `json:"doctor_email,omitempty"`
	Day          string `json:"day,omitempty"`
}

// Response DTOs

type AppointmentResponse struct {
	ID           int    `json:"id"`
	Time         string `json:"time"`
	Day          string `json:"day"`
	PatientEmail string `json:"patient_email"`
	DoctorEmail  string `json:"doctor_email"`
	Status       string `json:"status"`
}

type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
	Total        int                   `json:"total"`
}
