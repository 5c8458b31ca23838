package validator

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slotInput struct {
	Email  string   `json:"email" validate:"required,email"`
	Gender string   `json:"gender" validate:"oneof=M F"`
	Days   []string `json:"days" validate:"required,min=1"`
	Note   string   `validate:"max=3"`
}

func TestFormatValidationErrorsUsesJSONNames(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&slotInput{Email: "nope", Gender: "X", Note: "too long"})
	require.Error(t, err)

	fields := v.FormatValidationErrors(err)
	assert.Equal(t, "email must be a valid email address", fields["email"])
	assert.Equal(t, "gender must be one of: M F", fields["gender"])
	assert.Equal(t, "days is required", fields["days"])
	assert.Equal(t, "Note must be at most 3 characters", fields["Note"])
}

func TestFormatValidationErrorsIgnoresOtherErrors(t *testing.T) {
	v := NewValidator()

	assert.NoError(t, v.Validate(&slotInput{Email: "a@h.com", Gender: "F", Days: []string{"MONDAY"}}))
	assert.Empty(t, v.FormatValidationErrors(errors.New("boom")))
}
