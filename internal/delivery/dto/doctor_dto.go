package dto

// Request DTOs

type ScheduleRequest struct {
	Start       string   `json:"start" validate:"required"`
	End         string   `json:"end" validate:"required"`
	Days        []string `json:"days" validate:"required,min=1"`
	SlotMinutes int      `json:"slot_minutes" validate:"gte=0,lte=720"`
}

type DoctorRequest struct {
	FirstName string          `json:"first_name" validate:"required,max=100"`
	LastName  string          `json:"last_name" validate:"required,max=100"`
	Email     string          `json:"email" validate:"required,email"`
	License   string          `json:"license" validate:"required,max=50"`
	Gender    string          `json:"gender" validate:"required,oneof=M F m f"`
	Specialty string          `json:"specialty" validate:"required,max=100"`
	Active    *bool           `json:"active,omitempty"`
	Schedule  ScheduleRequest `json:"schedule"`
}

type DoctorFilterRequest struct {
	Specialty  string `json:"specialty,omitempty"`
	Gender     string `json:"gender,omitempty"`
	ActiveOnly bool   `json:"active_only,omitempty"`
}

type SlotRequest struct {
	Day  string `json:"day" validate:"required"`
	Time string `json:"time" validate:"required"`
}

type RescheduleSlotRequest struct {
	OldDay  string `json:"old_day" validate:"required"`
	OldTime string `json:"old_time" validate:"required"`
	NewDay  string `json:"new_day" validate:"required"`
	NewTime string `json:"new_time" validate:"required"`
	// Strict restores the old slot when the new one cannot be booked.
	Strict bool `json:"strict"`
}

// Response DTOs

type ScheduleResponse struct {
	Start       string              `json:"start"`
	End         string              `json:"end"`
	Days        []string            `json:"days"`
	SlotMinutes int                 `json:"slot_minutes"`
	Occupied    map[string][]string `json:"occupied"`
}

type DoctorResponse struct {
	ID        int              `json:"id"`
	FirstName string           `json:"first_name"`
	LastName  string           `json:"last_name"`
	FullName  string           `json:"full_name"`
	Email     string           `json:"email"`
	License   string           `json:"license"`
	Gender    string           `json:"gender"`
	Specialty string           `json:"specialty"`
	Active    bool             `json:"active"`
	Schedule  ScheduleResponse `json:"schedule"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}

type AvailabilityResponse struct {
	DoctorEmail string `json:"doctor_email"`
	Day         string `json:"day"`
	Time        string `json:"time"`
	Available   bool   `json:"available"`
}

type SlotResponse struct {
	Time     string `json:"time"`
	Occupied bool   `json:"occupied"`
}

type SlotListResponse struct {
	DoctorEmail string         `json:"doctor_email"`
	Day         string         `json:"day"`
	Slots       []SlotResponse `json:"slots"`
}
