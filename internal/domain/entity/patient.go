package entity

import "strings"

// InsuranceType is a patient's coverage.
type InsuranceType string

const (
	InsuranceState   InsuranceType = "state"
	InsurancePrivate InsuranceType = "private"
)

// ParseInsuranceType accepts the canonical values and the legacy
// PUBLICO/PRIVADO tags.
func ParseInsuranceType(s string) (InsuranceType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "state", "publico", "público":
		return InsuranceState, nil
	case "private", "privado":
		return InsurancePrivate, nil
	default:
		return "", ErrInvalidInsuranceType
	}
}

// Patient is identified by NationalID: two records with the same national id
// are the same person regardless of the other fields.
type Patient struct {
	ID           int           `json:"id"`
	FirstName    string        `json:"first_name"`
	LastName     string        `json:"last_name"`
	Email        string        `json:"email"`
	NationalID   string        `json:"national_id"`
	Insurance    InsuranceType `json:"insurance"`
	TreatmentIDs []int         `json:"treatment_ids"`
}

// Equal compares patients by national id.
func (p Patient) Equal(other Patient) bool {
	return p.NationalID == other.NationalID
}

// IdentityKey is the map key under which equal patients collide.
func (p Patient) IdentityKey() string {
	return p.NationalID
}

// FullName returns first and last name joined by a space.
func (p Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}
