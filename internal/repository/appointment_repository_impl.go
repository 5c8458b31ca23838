package repository

import (
	"context"
	"strings"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type appointmentRepository struct {
	records collection[entity.Appointment]
}

func NewAppointmentRepository(store domainRepo.RecordStore) domainRepo.AppointmentRepository {
	return &appointmentRepository{
		records: newCollection[entity.Appointment](store, domainRepo.CollectionAppointments),
	}
}

func (r *appointmentRepository) FindAll(ctx context.Context) ([]entity.Appointment, error) {
	return r.records.all(ctx)
}

func (r *appointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	return r.records.first(ctx, func(a *entity.Appointment) bool {
		return a.ID == id
	})
}

// FindByFilter keeps the stored order. Email and day comparisons ignore case.
func (r *appointmentRepository) FindByFilter(ctx context.Context, filter entity.AppointmentFilter) ([]entity.Appointment, error) {
	return r.records.filter(ctx, func(a *entity.Appointment) bool {
		if filter.Status != "" && a.Status != filter.Status {
			return false
		}
		if filter.PatientEmail != "" && !strings.EqualFold(a.PatientEmail, filter.PatientEmail) {
			return false
		}
		if filter.DoctorEmail != "" && !strings.EqualFold(a.DoctorEmail, filter.DoctorEmail) {
			return false
		}
		if filter.Day != "" && !strings.EqualFold(a.Day.String(), filter.Day) {
			return false
		}
		return true
	})
}

// FindActiveByDoctor returns the doctor's Scheduled and Attended appointments.
func (r *appointmentRepository) FindActiveByDoctor(ctx context.Context, doctorEmail string) ([]entity.Appointment, error) {
	return r.records.filter(ctx, func(a *entity.Appointment) bool {
		return strings.EqualFold(a.DoctorEmail, doctorEmail) && a.IsActive()
	})
}

func (r *appointmentRepository) SaveAll(ctx context.Context, appointments []entity.Appointment) error {
	return r.records.replace(ctx, appointments)
}
