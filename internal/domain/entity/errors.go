package entity

import "go-hospital-scheduling/pkg/apperror"

var (
	ErrInvalidTimeOfDay     = apperror.New(apperror.KindValidation, "invalid time format, use HH:mm")
	ErrInvalidDay           = apperror.New(apperror.KindValidation, "invalid day, use MONDAY, TUESDAY, etc.")
	ErrInvalidCategory      = apperror.New(apperror.KindValidation, "unknown treatment category, use surgery, medication or therapy")
	ErrInvalidStatus        = apperror.New(apperror.KindValidation, "unknown status")
	ErrInvalidWorkingHours  = apperror.New(apperror.KindValidation, "end time must be after start time")
	ErrNoWorkingDays        = apperror.New(apperror.KindValidation, "at least one working day is required")
	ErrInvalidSlotDuration  = apperror.New(apperror.KindValidation, "slot duration must be positive")
	ErrInvalidInsuranceType = apperror.New(apperror.KindValidation, "insurance type must be state or private")
)
