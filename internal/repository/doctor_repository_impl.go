package repository

import (
	"context"
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type doctorRepository struct {
	records collection[entity.Doctor]
}

func NewDoctorRepository(store domainRepo.RecordStore) domainRepo.DoctorRepository {
	return &doctorRepository{
		records: newCollection[entity.Doctor](store, domainRepo.CollectionDoctors),
	}
}

func (r *doctorRepository) FindAll(ctx context.Context) ([]entity.Doctor, error) {
	return r.records.all(ctx)
}

func (r *doctorRepository) FindByID(ctx context.Context, id int) (*entity.Doctor, error) {
	return r.records.first(ctx, func(d *entity.Doctor) bool {
		return d.ID == id
	})
}

func (r *doctorRepository) FindByEmail(ctx context.Context, email string) (*entity.Doctor, error) {
	email = strings.TrimSpace(email)
	return r.records.first(ctx, func(d *entity.Doctor) bool {
		return strings.EqualFold(d.Email, email)
	})
}

func (r *doctorRepository) SaveAll(ctx context.Context, doctors []entity.Doctor) error {
	return r.records.replace(ctx, doctors)
}
