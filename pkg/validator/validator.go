package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator reports fields by their json names.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return &CustomValidator{validator: v}
}

func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

func (cv *CustomValidator) FormatValidationErrors(err error) map[string]string {
	fields := make(map[string]string)

	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fields
	}
	for _, e := range validationErrors {
		field := e.Field()
		switch e.Tag() {
		case "required":
			fields[field] = field + " is required"
		case "email":
			fields[field] = field + " must be a valid email address"
		case "oneof":
			fields[field] = field + " must be one of: " + e.Param()
		case "min":
			if e.Kind() == reflect.Int {
				fields[field] = field + " must be at least " + e.Param()
			} else {
				fields[field] = field + " must have at least " + e.Param() + " items or characters"
			}
		case "max":
			fields[field] = field + " must be at most " + e.Param() + " characters"
		case "gte":
			fields[field] = field + " must be greater than or equal to " + e.Param()
		case "lte":
			fields[field] = field + " must be less than or equal to " + e.Param()
		default:
			fields[field] = field + " is invalid"
		}
	}
	return fields
}
