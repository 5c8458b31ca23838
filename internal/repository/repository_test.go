package repository

import (
	"context"
	"testing"
	"time"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/infrastructure/storage"

	"github.com/shopspring/decimal"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newStore(t *testing.T) *storage.FileStore {
	t.Helper()
	store, err := storage.NewFileStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)
	return store
}

func TestAppointmentRepository_RoundTripKeepsOrder(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(newStore(t))

	appointments := []entity.Appointment{
		{ID: 3, Time: entity.NewTimeOfDay(9, 0), Day: entity.Friday, PatientEmail: "p@h.com", DoctorEmail: "dr@h.com", Status: entity.AppointmentScheduled},
		{ID: 1, Time: entity.NewTimeOfDay(14, 30), Day: entity.Monday, PatientEmail: "q@h.com", DoctorEmail: "dr@h.com", Status: entity.AppointmentCancelled},
		{ID: 2, Time: entity.NewTimeOfDay(8, 0), Day: entity.Sunday, PatientEmail: "p@h.com", DoctorEmail: "x@h.com", Status: entity.AppointmentAttended},
	}
	require.NoError(t, repo.SaveAll(ctx, appointments))

	loaded, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Equal(t, appointments, loaded)
}

func TestAppointmentRepository_Lookups(t *testing.T) {
	ctx := context.Background()
	repo := NewAppointmentRepository(newStore(t))

	empty, err := repo.FindAll(ctx)
	require.NoError(t, err)
	assert.Empty(t, empty)

	require.NoError(t, repo.SaveAll(ctx, []entity.Appointment{
		{ID: 1, Time: entity.NewTimeOfDay(9, 0), Day: entity.Monday, PatientEmail: "p@h.com", DoctorEmail: "Dr@H.com", Status: entity.AppointmentScheduled},
		{ID: 2, Time: entity.NewTimeOfDay(9, 0), Day: entity.Tuesday, PatientEmail: "p@h.com", DoctorEmail: "dr@h.com", Status: entity.AppointmentCancelled},
		{ID: 3, Time: entity.NewTimeOfDay(9, 0), Day: entity.Wednesday, PatientEmail: "q@h.com", DoctorEmail: "dr@h.com", Status: entity.AppointmentAttended},
	}))

	found, err := repo.FindByID(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, entity.Tuesday, found.Day)

	missing, err := repo.FindByID(ctx, 7)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byFilter, err := repo.FindByFilter(ctx, entity.AppointmentFilter{PatientEmail: "P@H.COM", Day: "monday"})
	require.NoError(t, err)
	require.Len(t, byFilter, 1)
	assert.Equal(t, 1, byFilter[0].ID)

	active, err := repo.FindActiveByDoctor(ctx, "DR@h.com")
	require.NoError(t, err)
	require.Len(t, active, 2)
	assert.Equal(t, 1, active[0].ID)
	assert.Equal(t, 3, active[1].ID)
}

func TestDoctorRepository_RoundTripKeepsSchedule(t *testing.T) {
	ctx := context.Background()
	repo := NewDoctorRepository(newStore(t))

	schedule, err := entity.NewWeeklySchedule(entity.NewTimeOfDay(8, 0), entity.NewTimeOfDay(12, 0), []entity.Day{entity.Monday, entity.Thursday}, 30)
	require.NoError(t, err)
	require.True(t, schedule.Book(entity.Thursday, entity.NewTimeOfDay(8, 30)))

	require.NoError(t, repo.SaveAll(ctx, []entity.Doctor{{
		ID: 1, FirstName: "Greg", LastName: "House", Email: "dr@h.com", Gender: entity.GenderMale,
		Specialty: "Diagnostics", Active: true, Schedule: *schedule,
	}}))

	doctor, err := repo.FindByEmail(ctx, "DR@h.com")
	require.NoError(t, err)
	require.NotNil(t, doctor)
	assert.Equal(t, *schedule, doctor.Schedule)
	assert.False(t, doctor.Schedule.IsAvailable(entity.Thursday, entity.NewTimeOfDay(8, 30)))
}

func TestPatientRepository_FindByNationalID(t *testing.T) {
	ctx := context.Background()
	repo := NewPatientRepository(newStore(t))

	require.NoError(t, repo.SaveAll(ctx, []entity.Patient{
		{ID: 1, FirstName: "Ana", Email: "p@h.com", NationalID: "111", Insurance: entity.InsuranceState, TreatmentIDs: []int{}},
		{ID: 2, FirstName: "Luis", Email: "q@h.com", NationalID: "222", Insurance: entity.InsurancePrivate, TreatmentIDs: []int{4}},
	}))

	patient, err := repo.FindByNationalID(ctx, "222")
	require.NoError(t, err)
	require.NotNil(t, patient)
	assert.Equal(t, "Luis", patient.FirstName)
	assert.Equal(t, []int{4}, patient.TreatmentIDs)

	missing, err := repo.FindByNationalID(ctx, "333")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestTreatmentRepositories(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)
	treatments := NewTreatmentRepository(store)
	assignments := NewTreatmentAssignmentRepository(store)

	surgery := entity.Treatment{ID: 1, Category: entity.CategorySurgery, Name: "Appendectomy", Quantity: 2, UnitPrice: decimal.RequireFromString("200.50")}
	therapy := entity.Treatment{ID: 1, Category: entity.CategoryTherapy, Name: "Physio", Quantity: 10, UnitPrice: decimal.NewFromInt(40)}
	require.NoError(t, treatments.SaveAll(ctx, []entity.Treatment{surgery, therapy}))

	got, err := treatments.FindByRef(ctx, entity.CategoryTherapy, 1)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Physio", got.Name)

	bySurgery, err := treatments.FindByCategory(ctx, entity.CategorySurgery)
	require.NoError(t, err)
	require.Len(t, bySurgery, 1)
	assert.True(t, surgery.UnitPrice.Equal(bySurgery[0].UnitPrice))

	assignedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, assignments.SaveAll(ctx, []entity.TreatmentAssignment{
		{ID: 1, PatientEmail: "p@h.com", Treatment: surgery, AssignedAt: assignedAt, Status: entity.AssignmentActive},
		{ID: 2, PatientEmail: "q@h.com", Treatment: therapy, AssignedAt: assignedAt, Status: entity.AssignmentCompleted},
	}))

	byPatient, err := assignments.FindByPatient(ctx, "P@h.com")
	require.NoError(t, err)
	require.Len(t, byPatient, 1)
	assert.True(t, assignedAt.Equal(byPatient[0].AssignedAt))

	completed, err := assignments.FindByStatus(ctx, entity.AssignmentCompleted)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, 2, completed[0].ID)
}

func TestAuditLogRepository_CreateAssignsSequentialIDs(t *testing.T) {
	ctx := context.Background()
	repo := NewAuditLogRepository(newStore(t))

	for i := 0; i < 3; i++ {
		require.NoError(t, repo.Create(ctx, &entity.AuditLog{Action: entity.AuditActionAppointmentCreate}))
	}

	logs, err := repo.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{logs[0].ID, logs[1].ID, logs[2].ID})
}
