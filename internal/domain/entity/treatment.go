package entity

import (
	"strings"

	"github.com/shopspring/decimal"
)

// TreatmentCategory is the closed set of treatment kinds, each with its own
// pricing rule and quantity unit.
type TreatmentCategory string

const (
	CategorySurgery    TreatmentCategory = "surgery"
	CategoryMedication TreatmentCategory = "medication"
	CategoryTherapy    TreatmentCategory = "therapy"
)

// Categories lists every treatment category in display order.
func Categories() []TreatmentCategory {
	return []TreatmentCategory{CategorySurgery, CategoryMedication, CategoryTherapy}
}

// ParseTreatmentCategory accepts English or Spanish tags in any case.
func ParseTreatmentCategory(tag string) (TreatmentCategory, error) {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "surgery", "cirugia", "cirugía":
		return CategorySurgery, nil
	case "medication", "medicacion", "medicación":
		return CategoryMedication, nil
	case "therapy", "terapia":
		return CategoryTherapy, nil
	default:
		return "", ErrInvalidCategory
	}
}

// QuantityUnit names what Treatment.Quantity counts for this category.
func (c TreatmentCategory) QuantityUnit() string {
	switch c {
	case CategorySurgery:
		return "hours"
	case CategoryMedication:
		return "days"
	case CategoryTherapy:
		return "sessions"
	default:
		return ""
	}
}

// Treatment is an immutable priced treatment definition. ID is unique within
// its category.
type Treatment struct {
	ID        int               `json:"id"`
	Category  TreatmentCategory `json:"category"`
	Name      string            `json:"name"`
	Quantity  int               `json:"quantity"`
	UnitPrice decimal.Decimal   `json:"unit_price"`
}

// NewTreatment validates the category tag. Quantity and price are the
// caller's responsibility.
func NewTreatment(tag, name string, quantity int, unitPrice decimal.Decimal) (Treatment, error) {
	category, err := ParseTreatmentCategory(tag)
	if err != nil {
		return Treatment{}, err
	}
	return Treatment{
		Category:  category,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: unitPrice,
	}, nil
}
