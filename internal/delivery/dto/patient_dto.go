package dto

// Request DTOs

type PatientRequest struct {
	FirstName  string `json:"first_name" validate:"required,max=100"`
	LastName   string `json:"last_name" validate:"required,max=100"`
	Email      string `json:"email" validate:"required,email"`
	NationalID string `json:"national_id" validate:"required,max=20"`
	Insurance  string `json:"insurance" validate:"required"`
}

// Response DTOs

type PatientResponse struct {
	ID           int    `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	FullName     string `json:"full_name"`
	Email        string `json:"email"`
	NationalID   string `json:"national_id"`
	Insurance    string `json:"insurance"`
	TreatmentIDs []int  `json:"treatment_ids"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
