package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
)

type TreatmentAssignmentRepository interface {
	FindAll(ctx context.Context) ([]entity.TreatmentAssignment, error)
	FindByID(ctx context.Context, id int) (*entity.TreatmentAssignment, error)
	FindByPatient(ctx context.Context, patientEmail string) ([]entity.TreatmentAssignment, error)
	FindByStatus(ctx context.Context, status entity.AssignmentStatus) ([]entity.TreatmentAssignment, error)
	SaveAll(ctx context.Context, assignments []entity.TreatmentAssignment) error
}
