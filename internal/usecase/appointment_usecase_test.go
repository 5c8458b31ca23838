package usecase

import (
	"context"
	"testing"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/pkg/apperror"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppointmentUsecase_BookCancelRebook(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	req := appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com")

	first, err := f.appointments.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, string(entity.AppointmentScheduled), first.Status)

	_, err = f.appointments.Create(ctx, req)
	require.ErrorIs(t, err, ErrDoctorDoubleBooked)
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	cancelled, err := f.appointments.Cancel(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentCancelled), cancelled.Status)

	second, err := f.appointments.Create(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)
}

func TestAppointmentUsecase_DoubleBookingOnlyBlocksSameSlot(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")

	_, err := f.appointments.Create(ctx, appointmentRequest("10:00", "TUESDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)

	_, err = f.appointments.Create(ctx, appointmentRequest("10:00", "TUESDAY", "q@h.com", "DR@h.com"))
	assert.ErrorIs(t, err, ErrDoctorDoubleBooked)

	attended := appointmentRequest("10:00", "TUESDAY", "q@h.com", "dr@h.com")
	attended.Status = "attended"
	_, err = f.appointments.Create(ctx, attended)
	assert.ErrorIs(t, err, ErrDoctorDoubleBooked)

	other, err := f.appointments.Create(ctx, appointmentRequest("11:00", "TUESDAY", "q@h.com", "dr@h.com"))
	require.NoError(t, err)
	assert.Equal(t, "11:00", other.Time)
}

func TestAppointmentUsecase_CreateValidationOrder(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	tests := []struct {
		name    string
		req     *dto.AppointmentRequest
		wantErr error
		kind    apperror.Kind
	}{
		{
			name:    "time missing wins over everything",
			req:     appointmentRequest("", "", "bad", "bad"),
			wantErr: ErrAppointmentTimeRequired,
			kind:    apperror.KindValidation,
		},
		{
			name:    "time malformed",
			req:     appointmentRequest("9am", "", "bad", "bad"),
			wantErr: entity.ErrInvalidTimeOfDay,
			kind:    apperror.KindValidation,
		},
		{
			name:    "day missing",
			req:     appointmentRequest("09:00", "", "bad", "bad"),
			wantErr: ErrAppointmentDayRequired,
			kind:    apperror.KindValidation,
		},
		{
			name:    "day unknown",
			req:     appointmentRequest("09:00", "FUNDAY", "bad", "bad"),
			wantErr: entity.ErrInvalidDay,
			kind:    apperror.KindValidation,
		},
		{
			name:    "patient email before doctor email",
			req:     appointmentRequest("09:00", "MONDAY", "bad", "bad"),
			wantErr: ErrInvalidPatientEmail,
			kind:    apperror.KindValidation,
		},
		{
			name:    "doctor email",
			req:     appointmentRequest("09:00", "MONDAY", "p@h.com", "bad"),
			wantErr: ErrInvalidDoctorEmail,
			kind:    apperror.KindValidation,
		},
		{
			name:    "unregistered patient before unregistered doctor",
			req:     appointmentRequest("09:00", "MONDAY", "ghost@h.com", "nobody@h.com"),
			wantErr: ErrPatientNotRegistered,
			kind:    apperror.KindReference,
		},
		{
			name:    "unregistered doctor",
			req:     appointmentRequest("09:00", "MONDAY", "p@h.com", "nobody@h.com"),
			wantErr: ErrDoctorNotRegistered,
			kind:    apperror.KindReference,
		},
		{
			name:    "day off",
			req:     appointmentRequest("09:00", "SUNDAY", "p@h.com", "dr@h.com"),
			wantErr: ErrDoctorUnavailable,
			kind:    apperror.KindConflict,
		},
		{
			name:    "outside working hours",
			req:     appointmentRequest("11:30", "MONDAY", "p@h.com", "dr@h.com"),
			wantErr: ErrDoctorUnavailable,
			kind:    apperror.KindConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.appointments.Create(ctx, tt.req)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, tt.kind, apperror.KindOf(err))
		})
	}

	list, err := f.appointments.List(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestAppointmentUsecase_InactiveDoctorIsUnavailable(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	doctor := f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	_, err := f.doctors.Deactivate(ctx, doctor.ID)
	require.NoError(t, err)

	_, err = f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	assert.ErrorIs(t, err, ErrDoctorUnavailable)
}

func TestAppointmentUsecase_CancelTwiceSucceeds(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	created, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)

	for i := 0; i < 2; i++ {
		resp, err := f.appointments.Cancel(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, string(entity.AppointmentCancelled), resp.Status)
	}

	_, err = f.appointments.Cancel(ctx, 99)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
}

func TestAppointmentUsecase_UpdateDoesNotConflictWithItself(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")

	first, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)
	second, err := f.appointments.Create(ctx, appointmentRequest("10:00", "MONDAY", "q@h.com", "dr@h.com"))
	require.NoError(t, err)

	updated, err := f.appointments.Update(ctx, first.ID, appointmentRequest("09:00", "lunes", "q@h.com", "dr@h.com"))
	require.NoError(t, err)
	assert.Equal(t, first.ID, updated.ID)
	assert.Equal(t, "q@h.com", updated.PatientEmail)
	assert.Equal(t, "MONDAY", updated.Day)

	_, err = f.appointments.Update(ctx, first.ID, appointmentRequest("10:00", "MONDAY", "p@h.com", "dr@h.com"))
	assert.ErrorIs(t, err, ErrDoctorDoubleBooked)

	_, err = f.appointments.Update(ctx, 42, appointmentRequest("10:00", "MONDAY", "p@h.com", "dr@h.com"))
	assert.ErrorIs(t, err, ErrAppointmentNotFound)

	got, err := f.appointments.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "10:00", got.Time)
}

func TestAppointmentUsecase_AttendAndDelete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	created, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)

	attended, err := f.appointments.Attend(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AppointmentAttended), attended.Status)

	active, err := f.appointments.ListActiveByDoctor(ctx, "DR@H.COM")
	require.NoError(t, err)
	assert.Equal(t, 1, active.Total)

	require.NoError(t, f.appointments.Delete(ctx, created.ID))
	_, err = f.appointments.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, ErrAppointmentNotFound)
	assert.ErrorIs(t, f.appointments.Delete(ctx, created.ID), ErrAppointmentNotFound)
}

func TestAppointmentUsecase_ListFilters(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "a@h.com", "Cardiology")
	f.seedDoctor(t, "b@h.com", "Dermatology")
	f.seedPatient(t, "p@h.com", "111")

	_, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "a@h.com"))
	require.NoError(t, err)
	tue, err := f.appointments.Create(ctx, appointmentRequest("09:00", "TUESDAY", "p@h.com", "b@h.com"))
	require.NoError(t, err)
	_, err = f.appointments.Cancel(ctx, tue.ID)
	require.NoError(t, err)

	byDay, err := f.appointments.List(ctx, &dto.AppointmentFilterRequest{Day: "martes"})
	require.NoError(t, err)
	require.Equal(t, 1, byDay.Total)
	assert.Equal(t, "b@h.com", byDay.Appointments[0].DoctorEmail)

	byStatus, err := f.appointments.List(ctx, &dto.AppointmentFilterRequest{Status: "scheduled", PatientEmail: "P@H.COM"})
	require.NoError(t, err)
	require.Equal(t, 1, byStatus.Total)
	assert.Equal(t, "a@h.com", byStatus.Appointments[0].DoctorEmail)

	_, err = f.appointments.List(ctx, &dto.AppointmentFilterRequest{Status: "lost"})
	assert.ErrorIs(t, err, entity.ErrInvalidStatus)
}

func TestAppointmentUsecase_WritesAuditTrail(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	created, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)
	_, err = f.appointments.Cancel(ctx, created.ID)
	require.NoError(t, err)

	logs, err := f.audit.List(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 4)
	assert.Equal(t, entity.AuditActionAppointmentCreate, logs[2].Action)
	assert.Equal(t, entity.AuditActionAppointmentCancel, logs[3].Action)
}

func TestAppointmentUsecase_SyncOccupancy(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	doctor := f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	created, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)

	availability, err := f.doctors.CheckAvailability(ctx, doctor.ID, "MONDAY", "09:00")
	require.NoError(t, err)
	assert.False(t, availability.Available)

	_, err = f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	assert.Equal(t, apperror.KindConflict, apperror.KindOf(err))

	_, err = f.appointments.Update(ctx, created.ID, appointmentRequest("10:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)

	slots, err := f.doctors.ListSlots(ctx, doctor.ID, "MONDAY")
	require.NoError(t, err)
	occupied := map[string]bool{}
	for _, s := range slots.Slots {
		occupied[s.Time] = s.Occupied
	}
	assert.False(t, occupied["09:00"])
	assert.True(t, occupied["10:00"])

	_, err = f.appointments.Cancel(ctx, created.ID)
	require.NoError(t, err)
	availability, err = f.doctors.CheckAvailability(ctx, doctor.ID, "MONDAY", "10:00")
	require.NoError(t, err)
	assert.True(t, availability.Available)
}

func TestAppointmentUsecase_SyncOccupancyCompensatesFailedSave(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	doctor := f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")

	f.store.failSaves(domainRepo.CollectionAppointments)

	_, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))

	availability, err := f.doctors.CheckAvailability(ctx, doctor.ID, "MONDAY", "09:00")
	require.NoError(t, err)
	assert.True(t, availability.Available)

	assert.Equal(t, 1.0, counterValue(t, f.registry, "hospital_scheduler_occupancy_compensations_total", map[string]string{"status": "restored"}))
	assert.Equal(t, 1.0, counterValue(t, f.registry, "hospital_scheduler_operations_total", map[string]string{
		"resource":  "appointment",
		"operation": "create",
		"outcome":   "persistence",
	}))
}

// counterValue reads one counter sample from reg, 0 when absent.
func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	require.NoError(t, err)

	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	next:
		for _, m := range family.GetMetric() {
			for _, pair := range m.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue next
				}
			}
			return m.GetCounter().GetValue()
		}
	}
	return 0
}

func TestAppointmentUsecase_SyncOccupancyKeepsSharedSlot(t *testing.T) {
	f := newFixture(t, true)
	ctx := context.Background()
	doctor := f.seedDoctor(t, "dr@h.com", "Cardiology")
	f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")

	first, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "p@h.com", "dr@h.com"))
	require.NoError(t, err)
	_, err = f.appointments.Cancel(ctx, first.ID)
	require.NoError(t, err)
	second, err := f.appointments.Create(ctx, appointmentRequest("09:00", "MONDAY", "q@h.com", "dr@h.com"))
	require.NoError(t, err)

	// Attending a cancelled appointment is allowed even though its slot was rebooked.
	_, err = f.appointments.Attend(ctx, first.ID)
	require.NoError(t, err)

	_, err = f.appointments.Cancel(ctx, second.ID)
	require.NoError(t, err)
	availability, err := f.doctors.CheckAvailability(ctx, doctor.ID, "MONDAY", "09:00")
	require.NoError(t, err)
	assert.False(t, availability.Available)

	require.NoError(t, f.appointments.Delete(ctx, first.ID))
	availability, err = f.doctors.CheckAvailability(ctx, doctor.ID, "MONDAY", "09:00")
	require.NoError(t, err)
	assert.True(t, availability.Available)
}
