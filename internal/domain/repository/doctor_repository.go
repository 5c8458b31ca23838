package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
)

type DoctorRepository interface {
	FindAll(ctx context.Context) ([]entity.Doctor, error)
	FindByID(ctx context.Context, id int) (*entity.Doctor, error)
	FindByEmail(ctx context.Context, email string) (*entity.Doctor, error)
	SaveAll(ctx context.Context, doctors []entity.Doctor) error
}
