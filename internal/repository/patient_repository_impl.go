package repository

import (
	"context"
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type patientRepository struct {
	records collection[entity.Patient]
}

func NewPatientRepository(store domainRepo.RecordStore) domainRepo.PatientRepository {
	return &patientRepository{
		records: newCollection[entity.Patient](store, domainRepo.CollectionPatients),
	}
}

func (r *patientRepository) FindAll(ctx context.Context) ([]entity.Patient, error) {
	return r.records.all(ctx)
}

func (r *patientRepository) FindByID(ctx context.Context, id int) (*entity.Patient, error) {
	return r.records.first(ctx, func(p *entity.Patient) bool {
		return p.ID == id
	})
}

func (r *patientRepository) FindByEmail(ctx context.Context, email string) (*entity.Patient, error) {
	email = strings.TrimSpace(email)
	return r.records.first(ctx, func(p *entity.Patient) bool {
		return strings.EqualFold(p.Email, email)
	})
}

func (r *patientRepository) FindByNationalID(ctx context.Context, nationalID string) (*entity.Patient, error) {
	key := entity.Patient{NationalID: strings.TrimSpace(nationalID)}
	return r.records.first(ctx, func(p *entity.Patient) bool {
		return p.Equal(key)
	})
}

func (r *patientRepository) SaveAll(ctx context.Context, patients []entity.Patient) error {
	return r.records.replace(ctx, patients)
}
