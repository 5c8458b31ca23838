package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentTransitions(t *testing.T) {
	a := &Appointment{ID: 1, Status: AppointmentScheduled}
	assert.True(t, a.IsScheduled())
	assert.True(t, a.IsActive())

	a.Attend()
	assert.Equal(t, AppointmentAttended, a.Status)
	assert.True(t, a.IsActive())

	a.Cancel()
	a.Cancel()
	assert.True(t, a.IsCancelled())
	assert.False(t, a.IsActive())
}

func TestAppointmentOccupies(t *testing.T) {
	a := &Appointment{Day: Tuesday, Time: NewTimeOfDay(14, 0), DoctorEmail: "Dr@H.com", Status: AppointmentScheduled}

	assert.True(t, a.Occupies("dr@h.com", Tuesday, NewTimeOfDay(14, 0)))
	assert.False(t, a.Occupies("dr@h.com", Tuesday, NewTimeOfDay(15, 0)))
	assert.False(t, a.Occupies("other@h.com", Tuesday, NewTimeOfDay(14, 0)))

	a.Cancel()
	assert.False(t, a.Occupies("dr@h.com", Tuesday, NewTimeOfDay(14, 0)))
}

func TestParseAppointmentStatus(t *testing.T) {
	got, err := ParseAppointmentStatus("")
	require.NoError(t, err)
	assert.Equal(t, AppointmentScheduled, got)

	got, err = ParseAppointmentStatus("CANCELADA")
	require.NoError(t, err)
	assert.Equal(t, AppointmentCancelled, got)

	_, err = ParseAppointmentStatus("paid")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestNewTreatmentRejectsUnknownCategory(t *testing.T) {
	tr, err := NewTreatment("Cirugía", "Appendectomy", 2, zeroPrice())
	require.NoError(t, err)
	assert.Equal(t, CategorySurgery, tr.Category)
	assert.Equal(t, "hours", tr.Category.QuantityUnit())

	_, err = NewTreatment("massage", "Back rub", 1, zeroPrice())
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
