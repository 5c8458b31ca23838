package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type treatmentRepository struct {
	records collection[entity.Treatment]
}

// NewTreatmentRepository keeps every category in one collection; ids are
// unique per category, so lookups always take both.
func NewTreatmentRepository(store domainRepo.RecordStore) domainRepo.TreatmentRepository {
	return &treatmentRepository{
		records: newCollection[entity.Treatment](store, domainRepo.CollectionTreatments),
	}
}

func (r *treatmentRepository) FindAll(ctx context.Context) ([]entity.Treatment, error) {
	return r.records.all(ctx)
}

func (r *treatmentRepository) FindByCategory(ctx context.Context, category entity.TreatmentCategory) ([]entity.Treatment, error) {
	return r.records.filter(ctx, func(t *entity.Treatment) bool {
		return t.Category == category
	})
}

func (r *treatmentRepository) FindByRef(ctx context.Context, category entity.TreatmentCategory, id int) (*entity.Treatment, error) {
	return r.records.first(ctx, func(t *entity.Treatment) bool {
		return t.Category == category && t.ID == id
	})
}

func (r *treatmentRepository) SaveAll(ctx context.Context, treatments []entity.Treatment) error {
	return r.records.replace(ctx, treatments)
}
