package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
)

type TreatmentRepository interface {
	FindAll(ctx context.Context) ([]entity.Treatment, error)
	FindByCategory(ctx context.Context, category entity.TreatmentCategory) ([]entity.Treatment, error)
	FindByRef(ctx context.Context, category entity.TreatmentCategory, id int) (*entity.Treatment, error)
	SaveAll(ctx context.Context, treatments []entity.Treatment) error
}
