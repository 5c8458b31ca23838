package usecase

import (
	"context"
	"testing"

	domainRepo "go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/pkg/apperror"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seedClinic books two cardiology visits and one dermatology visit, attends
// all but one, and assigns three treatments.
func seedClinic(t *testing.T, f *fixture) {
	t.Helper()
	ctx := context.Background()

	f.seedDoctor(t, "heart@h.com", "Cardiology")
	f.seedDoctor(t, "skin@h.com", "Dermatology")
	f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")

	visits := []struct {
		tm, day, patient, doctor string
		attend                   bool
	}{
		{"09:00", "MONDAY", "p@h.com", "heart@h.com", true},
		{"10:00", "MONDAY", "q@h.com", "heart@h.com", true},
		{"09:00", "TUESDAY", "p@h.com", "skin@h.com", true},
		{"10:00", "TUESDAY", "q@h.com", "skin@h.com", false},
	}
	for _, v := range visits {
		created, err := f.appointments.Create(ctx, appointmentRequest(v.tm, v.day, v.patient, v.doctor))
		require.NoError(t, err)
		if v.attend {
			_, err = f.appointments.Attend(ctx, created.ID)
			require.NoError(t, err)
		}
	}

	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")
	medication := f.seedTreatment(t, "medication", "Ibuprofen", 6, "10")

	_, err := f.assignments.Assign(ctx, assignRequest("p@h.com", "surgery", surgery.ID))
	require.NoError(t, err)
	_, err = f.assignments.Assign(ctx, assignRequest("p@h.com", "medication", medication.ID))
	require.NoError(t, err)
	cancelled, err := f.assignments.Assign(ctx, assignRequest("q@h.com", "medication", medication.ID))
	require.NoError(t, err)
	_, err = f.assignments.Cancel(ctx, cancelled.ID)
	require.NoError(t, err)
}

func TestReportUsecase_AttendedBySpecialty(t *testing.T) {
	f := newFixture(t, false)
	seedClinic(t, f)
	ctx := context.Background()

	counts, err := f.reports.AttendedBySpecialty(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"Cardiology": 2, "Dermatology": 1}, counts.Counts)
	assert.Equal(t, 3, counts.Total)

	cardio, err := f.reports.AttendedForSpecialty(ctx, "cardiology")
	require.NoError(t, err)
	assert.Equal(t, 2, cardio.Total)

	none, err := f.reports.AttendedForSpecialty(ctx, "Oncology")
	require.NoError(t, err)
	assert.Zero(t, none.Total)
	assert.NotNil(t, none.Appointments)
}

func TestReportUsecase_Revenue(t *testing.T) {
	f := newFixture(t, false)
	seedClinic(t, f)
	ctx := context.Background()

	revenue, err := f.reports.RevenueByCategory(ctx)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(100).Equal(revenue.Revenue["surgery"]))
	assert.True(t, decimal.NewFromInt(208).Equal(revenue.Revenue["medication"]), revenue.Revenue["medication"].String())
	assert.True(t, revenue.Revenue["therapy"].IsZero())
	assert.True(t, decimal.NewFromInt(308).Equal(revenue.Total))

	medication, err := f.reports.RevenueForCategory(ctx, "MEDICACION")
	require.NoError(t, err)
	assert.Equal(t, "medication", medication.Category)
	assert.True(t, decimal.NewFromInt(208).Equal(medication.Revenue))

	_, err = f.reports.RevenueForCategory(ctx, "dental")
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestReportUsecase_HistoryAndCatalogues(t *testing.T) {
	f := newFixture(t, false)
	seedClinic(t, f)
	ctx := context.Background()

	history, err := f.reports.TreatmentHistory(ctx)
	require.NoError(t, err)
	require.Len(t, history.Patients, 2)
	assert.Equal(t, "p@h.com", history.Patients[0].PatientEmail)
	assert.Equal(t, "Ana Lopez", history.Patients[0].PatientName)
	assert.Len(t, history.Patients[0].Assignments, 2)
	assert.True(t, decimal.NewFromInt(204).Equal(history.Patients[0].Total))

	single, err := f.reports.PatientHistory(ctx, "q@h.com")
	require.NoError(t, err)
	assert.Len(t, single.Assignments, 1)

	specialties, err := f.reports.Specialties(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Cardiology", "Dermatology"}, specialties.Specialties)

	categories, err := f.reports.Categories(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"surgery", "medication"}, categories.Categories)
}

func TestReportUsecase_GeneralStats(t *testing.T) {
	f := newFixture(t, false)
	seedClinic(t, f)

	stats, err := f.reports.GeneralStats(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 4, stats.TotalAppointments)
	assert.Equal(t, 3, stats.AttendedAppointments)
	assert.Equal(t, 1, stats.ScheduledAppointments)
	assert.Zero(t, stats.CancelledAppointments)
	assert.Equal(t, 3, stats.TotalAssignments)
	assert.Equal(t, 2, stats.TotalDoctors)
	assert.Equal(t, 2, stats.PatientsWithTreatments)
	assert.True(t, decimal.NewFromInt(308).Equal(stats.TotalRevenue))
}

func TestReportUsecase_Invoice(t *testing.T) {
	f := newFixture(t, false)
	seedClinic(t, f)
	ctx := context.Background()

	invoice, err := f.reports.Invoice(ctx, "p@h.com")
	require.NoError(t, err)
	_, err = uuid.Parse(invoice.Number)
	assert.NoError(t, err)
	assert.Equal(t, "Ana Lopez", invoice.PatientName)
	assert.Len(t, invoice.Lines, 2)
	assert.True(t, decimal.NewFromInt(204).Equal(invoice.Total), invoice.Total.String())
	assert.True(t, fixtureNow.Equal(invoice.IssuedAt))

	cancelledOnly, err := f.reports.Invoice(ctx, "q@h.com")
	require.NoError(t, err)
	assert.Empty(t, cancelledOnly.Lines)
	assert.True(t, cancelledOnly.Total.IsZero())

	_, err = f.reports.Invoice(ctx, "ghost@h.com")
	assert.ErrorIs(t, err, ErrPatientNotFound)

	_, err = f.reports.Invoice(ctx, "ghost")
	assert.ErrorIs(t, err, ErrInvalidPatientEmail)
}

func TestReportUsecase_LoadFailure(t *testing.T) {
	f := newFixture(t, false)
	f.store.failLoads(domainRepo.CollectionTreatmentAssignments)

	_, err := f.reports.GeneralStats(context.Background())
	require.ErrorIs(t, err, errDiskFull)
	assert.Equal(t, apperror.KindPersistence, apperror.KindOf(err))
}
