package repository

import (
	"context"
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type treatmentAssignmentRepository struct {
	records collection[entity.TreatmentAssignment]
}

func NewTreatmentAssignmentRepository(store domainRepo.RecordStore) domainRepo.TreatmentAssignmentRepository {
	return &treatmentAssignmentRepository{
		records: newCollection[entity.TreatmentAssignment](store, domainRepo.CollectionTreatmentAssignments),
	}
}

func (r *treatmentAssignmentRepository) FindAll(ctx context.Context) ([]entity.TreatmentAssignment, error) {
	return r.records.all(ctx)
}

func (r *treatmentAssignmentRepository) FindByID(ctx context.Context, id int) (*entity.TreatmentAssignment, error) {
	return r.records.first(ctx, func(a *entity.TreatmentAssignment) bool {
		return a.ID == id
	})
}

func (r *treatmentAssignmentRepository) FindByPatient(ctx context.Context, patientEmail string) ([]entity.TreatmentAssignment, error) {
	return r.records.filter(ctx, func(a *entity.TreatmentAssignment) bool {
		return strings.EqualFold(a.PatientEmail, patientEmail)
	})
}

func (r *treatmentAssignmentRepository) FindByStatus(ctx context.Context, status entity.AssignmentStatus) ([]entity.TreatmentAssignment, error) {
	return r.records.filter(ctx, func(a *entity.TreatmentAssignment) bool {
		return a.Status == status
	})
}

func (r *treatmentAssignmentRepository) SaveAll(ctx context.Context, assignments []entity.TreatmentAssignment) error {
	return r.records.replace(ctx, assignments)
}
