// Package pricing computes treatment costs from the per-category formulas.
package pricing

import (
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/pkg/apperror"

	"github.com/shopspring/decimal"
)

// TherapyFormula selects between the two Therapy cost rules in use.
type TherapyFormula string

const (
	// TherapySurcharge: base + surcharge.
	TherapySurcharge TherapyFormula = "surcharge"
	// TherapySessionTotal: base + unitPrice*sessions + surcharge.
	TherapySessionTotal TherapyFormula = "session_total"
)

var ErrUnknownTherapyFormula = apperror.New(apperror.KindValidation, "unknown therapy formula, use surcharge or session_total")

// ParseTherapyFormula maps a config value to a formula; empty means TherapySurcharge.
func ParseTherapyFormula(s string) (TherapyFormula, error) {
	switch TherapyFormula(strings.ToLower(strings.TrimSpace(s))) {
	case "", TherapySurcharge:
		return TherapySurcharge, nil
	case TherapySessionTotal:
		return TherapySessionTotal, nil
	default:
		return "", ErrUnknownTherapyFormula
	}
}

var (
	// DefaultBaseFee applies to every treatment.
	DefaultBaseFee = decimal.NewFromInt(50)

	surgerySurchargeRate   = decimal.RequireFromString("0.25")
	medicationBulkRate     = decimal.RequireFromString("0.9")
	therapySurchargeRate   = decimal.RequireFromString("0.15")
	therapyLongCourseRate  = decimal.RequireFromString("0.70")
	medicationBulkAbove    = 5
	therapyLongCourseAbove = 30
)

// Calculator prices treatments.
type Calculator struct {
	BaseFee decimal.Decimal
	Therapy TherapyFormula
}

// NewCalculator returns a Calculator with the default base fee.
func NewCalculator(therapy TherapyFormula) *Calculator {
	return &Calculator{BaseFee: DefaultBaseFee, Therapy: therapy}
}

// Cost returns the total cost of t.
func (c *Calculator) Cost(t entity.Treatment) decimal.Decimal {
	quantity := decimal.NewFromInt(int64(t.Quantity))

	switch t.Category {
	case entity.CategorySurgery:
		// flat surcharge on the unit price, duration does not matter
		return c.BaseFee.Add(t.UnitPrice.Mul(surgerySurchargeRate))

	case entity.CategoryMedication:
		line := t.UnitPrice.Mul(quantity)
		if t.Quantity > medicationBulkAbove {
			line = line.Mul(medicationBulkRate)
		}
		return c.BaseFee.Add(line)

	case entity.CategoryTherapy:
		surcharge := t.UnitPrice.Mul(therapySurchargeRate)
		if t.Quantity > therapyLongCourseAbove {
			surcharge = surcharge.Mul(therapyLongCourseRate)
		}
		total := c.BaseFee.Add(surcharge)
		if c.Therapy == TherapySessionTotal {
			total = total.Add(t.UnitPrice.Mul(quantity))
		}
		return total

	default:
		return c.BaseFee
	}
}
