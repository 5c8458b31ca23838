package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
)

type AppointmentRepository interface {
	FindAll(ctx context.Context) ([]entity.Appointment, error)
	FindByID(ctx context.Context, id int) (*entity.Appointment, error)
	FindByFilter(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error)
	FindActiveByDoctor(ctx context.Context, doctorEmail string) ([]entity.Appointment, error)
	SaveAll(ctx context.Context, appointments []entity.Appointment) error
}
