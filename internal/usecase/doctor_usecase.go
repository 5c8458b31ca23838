package usecase

import (
	"context"
	"strings"
	"time"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/observability/metrics"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/apperror"

	"github.com/sirupsen/logrus"
)

var (
	ErrDoctorNotFound   = apperror.New(apperror.KindNotFound, "doctor not found")
	ErrDoctorEmailTaken = apperror.New(apperror.KindConflict, "a doctor with this email already exists")
	ErrInvalidGender    = apperror.New(apperror.KindValidation, "gender must be M or F")
	ErrSlotUnavailable  = apperror.New(apperror.KindConflict, "slot is not available")
	ErrSlotNotOccupied  = apperror.New(apperror.KindConflict, "slot is not occupied")
	ErrRescheduleFailed = apperror.New(apperror.KindConflict, "slot could not be rescheduled")
)

const resourceDoctor = "doctor"

type DoctorUsecase interface {
	Create(ctx context.Context, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	Update(ctx context.Context, id int, req *dto.DoctorRequest) (*dto.DoctorResponse, error)
	Delete(ctx context.Context, id int) error
	Activate(ctx context.Context, id int) (*dto.DoctorResponse, error)
	Deactivate(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error)
	GetByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error)
	List(ctx context.Context, filter *dto.DoctorFilterRequest) (*dto.DoctorListResponse, error)

	CheckAvailability(ctx context.Context, id int, day, t string) (*dto.AvailabilityResponse, error)
	BookSlot(ctx context.Context, id int, req *dto.SlotRequest) (*dto.DoctorResponse, error)
	CancelSlot(ctx context.Context, id int, req *dto.SlotRequest) (*dto.DoctorResponse, error)
	RescheduleSlot(ctx context.Context, id int, req *dto.RescheduleSlotRequest) (*dto.DoctorResponse, error)
	ListSlots(ctx context.Context, id int, day string) (*dto.SlotListResponse, error)
}

type doctorUsecase struct {
	log                *logrus.Logger
	locks              *service.CollectionLocks
	audit              service.AuditService
	metrics            *metrics.SchedulerMetrics
	doctorRepo         repository.DoctorRepository
	defaultSlotMinutes int
}

func NewDoctorUsecase(
	log *logrus.Logger,
	locks *service.CollectionLocks,
	audit service.AuditService,
	schedulerMetrics *metrics.SchedulerMetrics,
	doctorRepo repository.DoctorRepository,
	defaultSlotMinutes int,
) DoctorUsecase {
	if defaultSlotMinutes <= 0 {
		defaultSlotMinutes = entity.DefaultSlotMinutes
	}
	return &doctorUsecase{
		log:                log,
		locks:              locks,
		audit:              audit,
		metrics:            schedulerMetrics,
		doctorRepo:         doctorRepo,
		defaultSlotMinutes: defaultSlotMinutes,
	}
}

func (u *doctorUsecase) buildSchedule(req dto.ScheduleRequest) (*entity.WeeklySchedule, error) {
	start, err := entity.ParseTimeOfDay(req.Start)
	if err != nil {
		return nil, err
	}
	end, err := entity.ParseTimeOfDay(req.End)
	if err != nil {
		return nil, err
	}

	days := make([]entity.Day, 0, len(req.Days))
	for _, name := range req.Days {
		day, err := entity.ParseDay(name)
		if err != nil {
			return nil, err
		}
		days = append(days, day)
	}

	slotMinutes := req.SlotMinutes
	if slotMinutes == 0 {
		slotMinutes = u.defaultSlotMinutes
	}
	return entity.NewWeeklySchedule(start, end, days, slotMinutes)
}

func buildDoctor(req *dto.DoctorRequest, schedule *entity.WeeklySchedule) (*entity.Doctor, error) {
	gender := strings.ToUpper(strings.TrimSpace(req.Gender))
	if gender != entity.GenderMale && gender != entity.GenderFemale {
		return nil, ErrInvalidGender
	}

	active := true
	if req.Active != nil {
		active = *req.Active
	}

	return &entity.Doctor{
		FirstName: strings.TrimSpace(req.FirstName),
		LastName:  strings.TrimSpace(req.LastName),
		Email:     strings.TrimSpace(req.Email),
		License:   strings.TrimSpace(req.License),
		Gender:    gender,
		Specialty: strings.TrimSpace(req.Specialty),
		Active:    active,
		Schedule:  *schedule,
	}, nil
}

// Create registers a doctor with an empty schedule occupancy. Emails are
// unique, compared without case.
func (u *doctorUsecase) Create(ctx context.Context, req *dto.DoctorRequest) (resp *dto.DoctorResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceDoctor, "create", start, err) }()

	schedule, err := u.buildSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}
	doctor, err := buildDoctor(req, schedule)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionDoctors)
	defer unlock()

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, persistenceErr(err, "failed to load doctors")
	}

	if indexOf(doctors, func(d *entity.Doctor) bool { return strings.EqualFold(d.Email, doctor.Email) }) >= 0 {
		return nil, ErrDoctorEmailTaken
	}

	doctor.ID = nextID(doctors, func(d *entity.Doctor) int { return d.ID })
	if err := u.doctorRepo.SaveAll(ctx, append(cloneSlice(doctors), *doctor)); err != nil {
		u.log.Warnf("Failed to save doctors: %+v", err)
		return nil, persistenceErr(err, "failed to save doctors")
	}

	if err := u.audit.LogCreate(ctx, entity.AuditActionDoctorCreate, resourceDoctor, doctor.ID, converter.DoctorToResponse(doctor)); err != nil {
		u.log.Debugf("Audit entry skipped for doctor %d: %v", doctor.ID, err)
	}

	u.log.Infof("Doctor created: id=%d, email=%s", doctor.ID, doctor.Email)
	return converter.DoctorToResponse(doctor), nil
}

// Update replaces the doctor's details and schedule template. Occupied slots
// that still fit the new template are kept; the rest are dropped. The active
// flag is kept unless the request sets it.
func (u *doctorUsecase) Update(ctx context.Context, id int, req *dto.DoctorRequest) (resp *dto.DoctorResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceDoctor, "update", start, err) }()

	schedule, err := u.buildSchedule(req.Schedule)
	if err != nil {
		return nil, err
	}
	doctor, err := buildDoctor(req, schedule)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionDoctors)
	defer unlock()

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, persistenceErr(err, "failed to load doctors")
	}

	idx := indexOf(doctors, func(d *entity.Doctor) bool { return d.ID == id })
	if idx < 0 {
		return nil, ErrDoctorNotFound
	}
	taken := indexOf(doctors, func(d *entity.Doctor) bool {
		return d.ID != id && strings.EqualFold(d.Email, doctor.Email)
	})
	if taken >= 0 {
		return nil, ErrDoctorEmailTaken
	}
	if req.Active == nil {
		doctor.Active = doctors[idx].Active
	}

	dropped := 0
	for day, times := range doctors[idx].Schedule.Occupied {
		for _, t := range times {
			if !doctor.Schedule.Book(day, t) {
				dropped++
			}
		}
	}
	if dropped > 0 {
		u.log.Warnf("Doctor %d schedule change dropped %d occupied slots", id, dropped)
	}

	doctor.ID = id
	updated := cloneSlice(doctors)
	updated[idx] = *doctor
	if err := u.doctorRepo.SaveAll(ctx, updated); err != nil {
		u.log.Warnf("Failed to save doctors: %+v", err)
		return nil, persistenceErr(err, "failed to save doctors")
	}

	oldValue := converter.DoctorToResponse(&doctors[idx])
	if err := u.audit.LogUpdate(ctx, entity.AuditActionDoctorUpdate, resourceDoctor, id, oldValue, converter.DoctorToResponse(doctor)); err != nil {
		u.log.Debugf("Audit entry skipped for doctor %d: %v", id, err)
	}

	u.log.Infof("Doctor updated: id=%d", id)
	return converter.DoctorToResponse(doctor), nil
}

// Delete removes the doctor. Appointments referencing the doctor's email are
// left in place.
func (u *doctorUsecase) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceDoctor, "delete", start, err) }()

	unlock := u.locks.Lock(repository.CollectionDoctors)
	defer unlock()

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return persistenceErr(err, "failed to load doctors")
	}

	idx := indexOf(doctors, func(d *entity.Doctor) bool { return d.ID == id })
	if idx < 0 {
		return ErrDoctorNotFound
	}

	if err := u.doctorRepo.SaveAll(ctx, without(doctors, idx)); err != nil {
		u.log.Warnf("Failed to save doctors: %+v", err)
		return persistenceErr(err, "failed to save doctors")
	}

	if err := u.audit.LogDelete(ctx, entity.AuditActionDoctorDelete, resourceDoctor, id, converter.DoctorToResponse(&doctors[idx])); err != nil {
		u.log.Debugf("Audit entry skipped for doctor %d: %v", id, err)
	}

	u.log.Infof("Doctor deleted: id=%d, email=%s", id, doctors[idx].Email)
	return nil
}

func (u *doctorUsecase) Activate(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	return u.mutate(ctx, id, "activate", entity.AuditActionDoctorActivate, func(d *entity.Doctor) (bool, error) {
		d.Activate()
		return true, nil
	})
}

// Deactivate makes the doctor unbookable without touching the schedule.
func (u *doctorUsecase) Deactivate(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	return u.mutate(ctx, id, "deactivate", entity.AuditActionDoctorDeactivate, func(d *entity.Doctor) (bool, error) {
		d.Deactivate()
		return true, nil
	})
}

func (u *doctorUsecase) GetByID(ctx context.Context, id int) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) GetByEmail(ctx context.Context, email string) (*dto.DoctorResponse, error) {
	doctor, err := u.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", email, err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}
	return converter.DoctorToResponse(doctor), nil
}

func (u *doctorUsecase) List(ctx context.Context, filter *dto.DoctorFilterRequest) (*dto.DoctorListResponse, error) {
	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list doctors: %+v", err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	if filter == nil {
		return converter.DoctorsToListResponse(doctors), nil
	}

	specialty := strings.TrimSpace(filter.Specialty)
	gender := strings.TrimSpace(filter.Gender)
	result := make([]entity.Doctor, 0, len(doctors))
	for _, d := range doctors {
		if filter.ActiveOnly && !d.Active {
			continue
		}
		if specialty != "" && !strings.EqualFold(d.Specialty, specialty) {
			continue
		}
		if gender != "" && !strings.EqualFold(d.Gender, gender) {
			continue
		}
		result = append(result, d)
	}
	return converter.DoctorsToListResponse(result), nil
}

// CheckAvailability answers whether the doctor is active and the slot is
// free inside working hours.
func (u *doctorUsecase) CheckAvailability(ctx context.Context, id int, day, t string) (*dto.AvailabilityResponse, error) {
	d, tod, err := parseSlot(day, t)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return &dto.AvailabilityResponse{
		DoctorEmail: doctor.Email,
		Day:         d.String(),
		Time:        tod.String(),
		Available:   doctor.IsAvailable(d, tod),
	}, nil
}

func (u *doctorUsecase) BookSlot(ctx context.Context, id int, req *dto.SlotRequest) (*dto.DoctorResponse, error) {
	day, t, err := parseSlot(req.Day, req.Time)
	if err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, "book_slot", entity.AuditActionScheduleBook, func(d *entity.Doctor) (bool, error) {
		if !d.Schedule.Book(day, t) {
			return false, ErrSlotUnavailable
		}
		return true, nil
	})
}

func (u *doctorUsecase) CancelSlot(ctx context.Context, id int, req *dto.SlotRequest) (*dto.DoctorResponse, error) {
	day, t, err := parseSlot(req.Day, req.Time)
	if err != nil {
		return nil, err
	}
	return u.mutate(ctx, id, "cancel_slot", entity.AuditActionScheduleCancel, func(d *entity.Doctor) (bool, error) {
		if !d.Schedule.Cancel(day, t) {
			return false, ErrSlotNotOccupied
		}
		return true, nil
	})
}

// RescheduleSlot moves an occupied slot. Without Strict a failed booking of
// the new slot still frees the old one, and that change is persisted.
func (u *doctorUsecase) RescheduleSlot(ctx context.Context, id int, req *dto.RescheduleSlotRequest) (*dto.DoctorResponse, error) {
	oldDay, oldTime, err := parseSlot(req.OldDay, req.OldTime)
	if err != nil {
		return nil, err
	}
	newDay, newTime, err := parseSlot(req.NewDay, req.NewTime)
	if err != nil {
		return nil, err
	}

	return u.mutate(ctx, id, "reschedule_slot", entity.AuditActionScheduleReschedule, func(d *entity.Doctor) (bool, error) {
		if req.Strict {
			if !d.Schedule.RescheduleStrict(oldDay, oldTime, newDay, newTime) {
				return false, ErrRescheduleFailed
			}
			return true, nil
		}

		wasOccupied := d.Schedule.IsOccupied(oldDay, oldTime)
		if !d.Schedule.Reschedule(oldDay, oldTime, newDay, newTime) {
			if wasOccupied {
				u.log.Warnf("Doctor %d reschedule freed %s %s but could not book %s %s", d.ID, oldDay, oldTime, newDay, newTime)
			}
			return wasOccupied, ErrRescheduleFailed
		}
		return true, nil
	})
}

func (u *doctorUsecase) ListSlots(ctx context.Context, id int, day string) (*dto.SlotListResponse, error) {
	d, err := entity.ParseDay(day)
	if err != nil {
		return nil, err
	}

	doctor, err := u.doctorRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find doctor %d: %+v", id, err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	if doctor == nil {
		return nil, ErrDoctorNotFound
	}

	return converter.SlotsToResponse(doctor.Email, d, doctor.Schedule.Slots(d)), nil
}

// mutate loads the doctor, applies fn to a copy and saves when fn reports a
// change, recording action in the audit trail. fn's error is returned after
// any save.
func (u *doctorUsecase) mutate(ctx context.Context, id int, operation, action string, fn func(*entity.Doctor) (bool, error)) (resp *dto.DoctorResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceDoctor, operation, start, err) }()

	unlock := u.locks.Lock(repository.CollectionDoctors)
	defer unlock()

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, persistenceErr(err, "failed to load doctors")
	}

	idx := indexOf(doctors, func(d *entity.Doctor) bool { return d.ID == id })
	if idx < 0 {
		return nil, ErrDoctorNotFound
	}

	doctor := doctors[idx]
	doctor.Schedule = *doctors[idx].Schedule.Clone()

	changed, opErr := fn(&doctor)
	if changed {
		updated := cloneSlice(doctors)
		updated[idx] = doctor
		if err := u.doctorRepo.SaveAll(ctx, updated); err != nil {
			u.log.Warnf("Failed to save doctors: %+v", err)
			return nil, persistenceErr(err, "failed to save doctors")
		}
		oldValue := converter.DoctorToResponse(&doctors[idx])
		if err := u.audit.LogUpdate(ctx, action, resourceDoctor, id, oldValue, converter.DoctorToResponse(&doctor)); err != nil {
			u.log.Debugf("Audit entry skipped for doctor %d: %v", id, err)
		}
		u.log.Infof("Doctor %d %s applied", id, operation)
	}
	if opErr != nil {
		u.log.Debugf("Doctor %d %s rejected: %v", id, operation, opErr)
		return nil, opErr
	}

	return converter.DoctorToResponse(&doctor), nil
}

func parseSlot(day, t string) (entity.Day, entity.TimeOfDay, error) {
	d, err := entity.ParseDay(day)
	if err != nil {
		return 0, 0, err
	}
	tod, err := entity.ParseTimeOfDay(t)
	if err != nil {
		return 0, 0, err
	}
	return d, tod, nil
}
