package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
)

type PatientRepository interface {
	FindAll(ctx context.Context) ([]entity.Patient, error)
	FindByID(ctx context.Context, id int) (*entity.Patient, error)
	FindByEmail(ctx context.Context, email string) (*entity.Patient, error)
	FindByNationalID(ctx context.Context, nationalID string) (*entity.Patient, error)
	SaveAll(ctx context.Context, patients []entity.Patient) error
}
