package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInactiveDoctorIsNeverAvailable(t *testing.T) {
	d := &Doctor{Email: "dr@h.com", Active: true, Schedule: *weekdaySchedule(t)}
	nine := NewTimeOfDay(9, 0)

	assert.True(t, d.IsAvailable(Monday, nine))

	d.Deactivate()
	assert.False(t, d.IsAvailable(Monday, nine))
	assert.True(t, d.Schedule.IsAvailable(Monday, nine), "schedule untouched")

	d.Activate()
	assert.True(t, d.IsAvailable(Monday, nine))
}

func TestAvailabilityFollowsOccupancy(t *testing.T) {
	d := &Doctor{Active: true, Schedule: *weekdaySchedule(t)}
	d.Schedule.Book(Tuesday, NewTimeOfDay(10, 0))

	assert.False(t, d.IsAvailable(Tuesday, NewTimeOfDay(10, 0)))
	d.Deactivate()
	d.Activate()
	assert.False(t, d.IsAvailable(Tuesday, NewTimeOfDay(10, 0)), "reactivation keeps occupancy")
}
