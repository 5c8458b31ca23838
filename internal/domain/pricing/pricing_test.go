package pricing

import (
	"testing"

	"go-hospital-scheduling/internal/domain/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func treatment(category entity.TreatmentCategory, quantity int, price int64) entity.Treatment {
	return entity.Treatment{
		Category:  category,
		Name:      "test",
		Quantity:  quantity,
		UnitPrice: decimal.NewFromInt(price),
	}
}

func assertCost(t *testing.T, want string, got decimal.Decimal) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(want).Equal(got), "want %s, got %s", want, got)
}

func TestSurgeryCostIgnoresDuration(t *testing.T) {
	calc := NewCalculator(TherapySurcharge)

	assertCost(t, "100", calc.Cost(treatment(entity.CategorySurgery, 1, 200)))
	assertCost(t, "100", calc.Cost(treatment(entity.CategorySurgery, 10, 200)))
}

func TestMedicationBulkDiscountThreshold(t *testing.T) {
	calc := NewCalculator(TherapySurcharge)

	assertCost(t, "100", calc.Cost(treatment(entity.CategoryMedication, 5, 10)))
	assertCost(t, "104", calc.Cost(treatment(entity.CategoryMedication, 6, 10)))
}

func TestTherapyFormulas(t *testing.T) {
	tests := []struct {
		name     string
		formula  TherapyFormula
		quantity int
		price    int64
		want     string
	}{
		{name: "surcharge only", formula: TherapySurcharge, quantity: 10, price: 100, want: "65"},
		{name: "surcharge reduced past 30 sessions", formula: TherapySurcharge, quantity: 31, price: 100, want: "60.5"},
		{name: "surcharge at exactly 30 sessions", formula: TherapySurcharge, quantity: 30, price: 100, want: "65"},
		{name: "session total", formula: TherapySessionTotal, quantity: 10, price: 100, want: "1065"},
		{name: "session total past 30 sessions", formula: TherapySessionTotal, quantity: 31, price: 100, want: "3160.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calc := NewCalculator(tt.formula)
			assertCost(t, tt.want, calc.Cost(treatment(entity.CategoryTherapy, tt.quantity, tt.price)))
		})
	}
}

func TestCustomBaseFee(t *testing.T) {
	calc := &Calculator{BaseFee: decimal.NewFromInt(20), Therapy: TherapySurcharge}

	assertCost(t, "70", calc.Cost(treatment(entity.CategorySurgery, 2, 200)))
}

func TestParseTherapyFormula(t *testing.T) {
	f, err := ParseTherapyFormula("")
	require.NoError(t, err)
	assert.Equal(t, TherapySurcharge, f)

	f, err = ParseTherapyFormula("SESSION_TOTAL")
	require.NoError(t, err)
	assert.Equal(t, TherapySessionTotal, f)

	_, err = ParseTherapyFormula("flat")
	assert.ErrorIs(t, err, ErrUnknownTherapyFormula)
}
