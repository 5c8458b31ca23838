package entity

// Gender tags
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Doctor is a practitioner. Email is the key every other record uses to refer
// to a doctor; ID is assigned on first save.
type Doctor struct {
	ID        int            `json:"id"`
	FirstName string         `json:"first_name"`
	LastName  string         `json:"last_name"`
	Email     string         `json:"email"`
	License   string         `json:"license"`
	Gender    string         `json:"gender"`
	Specialty string         `json:"specialty"`
	Active    bool           `json:"active"`
	Schedule  WeeklySchedule `json:"schedule"`
}

// IsAvailable reports whether the doctor can be booked at t on day. An
// inactive doctor is never available; the schedule itself is left untouched.
func (d *Doctor) IsAvailable(day Day, t TimeOfDay) bool {
	return d.Active && d.Schedule.IsAvailable(day, t)
}

func (d *Doctor) Activate() {
	d.Active = true
}

func (d *Doctor) Deactivate() {
	d.Active = false
}

// FullName returns first and last name joined by a space.
func (d *Doctor) FullName() string {
	return d.FirstName + " " + d.LastName
}
