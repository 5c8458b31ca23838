package usecase

import (
	"context"
	"testing"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/pkg/apperror"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assignRequest(patientEmail, category string, treatmentID int) *dto.AssignTreatmentRequest {
	return &dto.AssignTreatmentRequest{PatientEmail: patientEmail, Category: category, TreatmentID: treatmentID}
}

func TestTreatmentAssignmentUsecase_Assign(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	patient := f.seedPatient(t, "p@h.com", "111")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")
	medication := f.seedTreatment(t, "medication", "Ibuprofen", 6, "10")

	req := assignRequest("P@h.com", "surgery", surgery.ID)
	req.Note = "  urgent "
	first, err := f.assignments.Assign(ctx, req)
	require.NoError(t, err)
	assert.Equal(t, 1, first.ID)
	assert.Equal(t, "p@h.com", first.PatientEmail)
	assert.Equal(t, "urgent", first.Note)
	assert.Equal(t, string(entity.AssignmentActive), first.Status)
	assert.True(t, fixtureNow.Equal(first.AssignedAt))
	assert.True(t, decimal.NewFromInt(100).Equal(first.Cost), first.Cost.String())

	second, err := f.assignments.Assign(ctx, assignRequest("p@h.com", "medication", medication.ID))
	require.NoError(t, err)
	assert.Equal(t, 2, second.ID)

	stored, err := f.patients.GetByID(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, stored.TreatmentIDs)
}

func TestTreatmentAssignmentUsecase_AssignReferenceErrors(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedPatient(t, "p@h.com", "111")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")

	_, err := f.assignments.Assign(ctx, assignRequest("nobody", "surgery", surgery.ID))
	assert.ErrorIs(t, err, ErrInvalidPatientEmail)

	_, err = f.assignments.Assign(ctx, assignRequest("ghost@h.com", "surgery", surgery.ID))
	assert.ErrorIs(t, err, ErrPatientNotRegistered)
	assert.Equal(t, apperror.KindReference, apperror.KindOf(err))

	_, err = f.assignments.Assign(ctx, assignRequest("p@h.com", "therapy", surgery.ID))
	assert.ErrorIs(t, err, ErrTreatmentNotRegistered)

	_, err = f.assignments.Assign(ctx, assignRequest("p@h.com", "dental", surgery.ID))
	assert.ErrorIs(t, err, entity.ErrInvalidCategory)
}

func TestTreatmentAssignmentUsecase_AssignCompensatesFailedPatientSave(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedPatient(t, "p@h.com", "111")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")

	f.store.failSaves(domainRepo.CollectionPatients)

	_, err := f.assignments.Assign(ctx, assignRequest("p@h.com", "surgery", surgery.ID))
	require.ErrorIs(t, err, errDiskFull)

	list, err := f.assignments.List(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, list.Total)
}

func TestTreatmentAssignmentUsecase_StatusAndDelete(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	patient := f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")

	first, err := f.assignments.Assign(ctx, assignRequest("p@h.com", "surgery", surgery.ID))
	require.NoError(t, err)
	second, err := f.assignments.Assign(ctx, assignRequest("q@h.com", "surgery", surgery.ID))
	require.NoError(t, err)

	completed, err := f.assignments.Complete(ctx, first.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AssignmentCompleted), completed.Status)

	cancelled, err := f.assignments.Cancel(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.AssignmentCancelled), cancelled.Status)

	_, err = f.assignments.Complete(ctx, 9)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	byStatus, err := f.assignments.List(ctx, &dto.AssignmentFilterRequest{Status: "COMPLETADO"})
	require.NoError(t, err)
	require.Equal(t, 1, byStatus.Total)
	assert.Equal(t, first.ID, byStatus.Assignments[0].ID)

	none, err := f.assignments.List(ctx, &dto.AssignmentFilterRequest{PatientEmail: "q@h.com", Status: "completed"})
	require.NoError(t, err)
	assert.Zero(t, none.Total)

	require.NoError(t, f.assignments.Delete(ctx, first.ID))
	_, err = f.assignments.GetByID(ctx, first.ID)
	assert.ErrorIs(t, err, ErrAssignmentNotFound)

	stored, err := f.patients.GetByID(ctx, patient.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{first.ID}, stored.TreatmentIDs)
}

func TestTreatmentAssignmentUsecase_KeepsTreatmentCopy(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedPatient(t, "p@h.com", "111")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")

	assignment, err := f.assignments.Assign(ctx, assignRequest("p@h.com", "surgery", surgery.ID))
	require.NoError(t, err)

	_, err = f.treatments.Update(ctx, "surgery", surgery.ID, treatmentRequest("surgery", "Appendectomy", 2, "400"))
	require.NoError(t, err)

	got, err := f.assignments.GetByID(ctx, assignment.ID)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(200).Equal(got.Treatment.UnitPrice))
	assert.True(t, decimal.NewFromInt(100).Equal(got.Cost))
}

func TestTreatmentAssignmentUsecase_PatientsWithTreatments(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()
	f.seedPatient(t, "p@h.com", "111")
	f.seedPatient(t, "q@h.com", "222")
	surgery := f.seedTreatment(t, "surgery", "Appendectomy", 2, "200")

	for _, email := range []string{"q@h.com", "p@h.com", "Q@h.com"} {
		_, err := f.assignments.Assign(ctx, assignRequest(email, "surgery", surgery.ID))
		require.NoError(t, err)
	}

	resp, err := f.assignments.PatientsWithTreatments(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"q@h.com", "p@h.com"}, resp.PatientEmails)
	assert.Equal(t, 2, resp.Total)
}
