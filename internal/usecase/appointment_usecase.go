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
	ErrAppointmentTimeRequired = apperror.New(apperror.KindValidation, "appointment time is required")
	ErrAppointmentDayRequired  = apperror.New(apperror.KindValidation, "appointment day is required")
	ErrInvalidPatientEmail     = apperror.New(apperror.KindValidation, "patient email is invalid")
	ErrInvalidDoctorEmail      = apperror.New(apperror.KindValidation, "doctor email is invalid")
	ErrPatientNotRegistered    = apperror.New(apperror.KindReference, "patient is not registered")
	ErrDoctorNotRegistered     = apperror.New(apperror.KindReference, "doctor is not registered")
	ErrDoctorUnavailable       = apperror.New(apperror.KindConflict, "doctor is not available at that day and time")
	ErrDoctorDoubleBooked      = apperror.New(apperror.KindConflict, "doctor already has an appointment at that day and time")
	ErrAppointmentNotFound     = apperror.New(apperror.KindNotFound, "appointment not found")
)

const (
	resourceAppointment = "appointment"

	// compensationTimeout bounds the doctor schedule restore after a failed
	// appointment save; it runs even if the request context is done.
	compensationTimeout = 5 * time.Second
)

type AppointmentUsecase interface {
	Create(ctx context.Context, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	Update(ctx context.Context, id int, req *dto.AppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Attend(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error)
	List(ctx context.Context, filter *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error)
	ListActiveByDoctor(ctx context.Context, doctorEmail string) (*dto.AppointmentListResponse, error)
}

type appointmentUsecase struct {
	log             *logrus.Logger
	locks           *service.CollectionLocks
	audit           service.AuditService
	metrics         *metrics.SchedulerMetrics
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	syncOccupancy   bool
}

// NewAppointmentUsecase wires the scheduler. With syncOccupancy set, every
// appointment mutation also books or frees the doctor's schedule slot.
func NewAppointmentUsecase(
	log *logrus.Logger,
	locks *service.CollectionLocks,
	audit service.AuditService,
	schedulerMetrics *metrics.SchedulerMetrics,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	syncOccupancy bool,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		locks:           locks,
		audit:           audit,
		metrics:         schedulerMetrics,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		syncOccupancy:   syncOccupancy,
	}
}

type appointmentInput struct {
	time         entity.TimeOfDay
	day          entity.Day
	patientEmail string
	doctorEmail  string
	status       entity.AppointmentStatus
}

// parseAppointmentRequest checks the request shape, stopping at the first
// failure: time, day, patient email, doctor email, status.
func parseAppointmentRequest(req *dto.AppointmentRequest) (*appointmentInput, error) {
	timeStr := strings.TrimSpace(req.Time)
	if timeStr == "" {
		return nil, ErrAppointmentTimeRequired
	}
	t, err := entity.ParseTimeOfDay(timeStr)
	if err != nil {
		return nil, err
	}

	dayStr := strings.TrimSpace(req.Day)
	if dayStr == "" {
		return nil, ErrAppointmentDayRequired
	}
	day, err := entity.ParseDay(dayStr)
	if err != nil {
		return nil, err
	}

	patientEmail := strings.TrimSpace(req.PatientEmail)
	if !looksLikeEmail(patientEmail) {
		return nil, ErrInvalidPatientEmail
	}
	doctorEmail := strings.TrimSpace(req.DoctorEmail)
	if !looksLikeEmail(doctorEmail) {
		return nil, ErrInvalidDoctorEmail
	}

	status, err := entity.ParseAppointmentStatus(req.Status)
	if err != nil {
		return nil, err
	}

	return &appointmentInput{
		time:         t,
		day:          day,
		patientEmail: patientEmail,
		doctorEmail:  doctorEmail,
		status:       status,
	}, nil
}

func (in *appointmentInput) toEntity(id int) entity.Appointment {
	return entity.Appointment{
		ID:           id,
		Time:         in.time,
		Day:          in.day,
		PatientEmail: in.patientEmail,
		DoctorEmail:  in.doctorEmail,
		Status:       in.status,
	}
}

// Create books a new appointment.
//
// Flow:
// 1. Validate input shape
// 2. Patient and doctor must be registered
// 3. Doctor must be available, no other live appointment in the slot
// 4. Save (doctor schedules first when syncing occupancy)
func (u *appointmentUsecase) Create(ctx context.Context, req *dto.AppointmentRequest) (resp *dto.AppointmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAppointment, "create", start, err) }()

	input, err := parseAppointmentRequest(req)
	if err != nil {
		u.log.Debugf("Rejected appointment request: %v", err)
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionDoctors, repository.CollectionPatients, repository.CollectionAppointments)
	defer unlock()

	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, persistenceErr(err, "failed to load appointments")
	}

	plan, err := u.loadOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	if err := u.checkBooking(ctx, plan, input, appointments, 0); err != nil {
		return nil, err
	}

	appointment := input.toEntity(nextID(appointments, func(a *entity.Appointment) int { return a.ID }))
	plan.hold(appointment)

	updated := append(cloneSlice(appointments), appointment)
	if err := u.save(ctx, plan, updated); err != nil {
		return nil, err
	}

	if err := u.audit.LogCreate(ctx, entity.AuditActionAppointmentCreate, resourceAppointment, appointment.ID, appointment); err != nil {
		u.log.Debugf("Audit entry skipped for appointment %d: %v", appointment.ID, err)
	}

	u.log.Infof("Appointment created: id=%d, doctor=%s, day=%s, time=%s", appointment.ID, appointment.DoctorEmail, appointment.Day, appointment.Time)
	return converter.AppointmentToResponse(&appointment), nil
}

// Update replaces an appointment's fields, keeping its id. The appointment
// itself never conflicts with its own slot.
func (u *appointmentUsecase) Update(ctx context.Context, id int, req *dto.AppointmentRequest) (resp *dto.AppointmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAppointment, "update", start, err) }()

	input, err := parseAppointmentRequest(req)
	if err != nil {
		u.log.Debugf("Rejected appointment %d update: %v", id, err)
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionDoctors, repository.CollectionPatients, repository.CollectionAppointments)
	defer unlock()

	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, persistenceErr(err, "failed to load appointments")
	}

	idx := indexOf(appointments, func(a *entity.Appointment) bool { return a.ID == id })
	if idx < 0 {
		return nil, ErrAppointmentNotFound
	}
	previous := appointments[idx]

	plan, err := u.loadOccupancy(ctx)
	if err != nil {
		return nil, err
	}
	plan.release(previous, appointments)

	if err := u.checkBooking(ctx, plan, input, appointments, id); err != nil {
		return nil, err
	}

	appointment := input.toEntity(id)
	plan.hold(appointment)

	updated := cloneSlice(appointments)
	updated[idx] = appointment
	if err := u.save(ctx, plan, updated); err != nil {
		return nil, err
	}

	if err := u.audit.LogUpdate(ctx, entity.AuditActionAppointmentUpdate, resourceAppointment, id, previous, appointment); err != nil {
		u.log.Debugf("Audit entry skipped for appointment %d: %v", id, err)
	}

	u.log.Infof("Appointment updated: id=%d", id)
	return converter.AppointmentToResponse(&appointment), nil
}

// Cancel sets the status to cancelled whatever it was before.
func (u *appointmentUsecase) Cancel(ctx context.Context, id int) (resp *dto.AppointmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAppointment, "cancel", start, err) }()

	return u.transition(ctx, id, entity.AuditActionAppointmentCancel, func(plan *occupancyPlan, a *entity.Appointment, all []entity.Appointment) {
		plan.release(*a, all)
		a.Cancel()
	})
}

// Attend sets the status to attended whatever it was before.
func (u *appointmentUsecase) Attend(ctx context.Context, id int) (resp *dto.AppointmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAppointment, "attend", start, err) }()

	return u.transition(ctx, id, entity.AuditActionAppointmentAttend, func(plan *occupancyPlan, a *entity.Appointment, _ []entity.Appointment) {
		wasCancelled := a.IsCancelled()
		a.Attend()
		if wasCancelled {
			plan.hold(*a)
		}
	})
}

func (u *appointmentUsecase) transition(ctx context.Context, id int, action string, apply func(*occupancyPlan, *entity.Appointment, []entity.Appointment)) (*dto.AppointmentResponse, error) {
	unlock := u.locks.Lock(repository.CollectionDoctors, repository.CollectionAppointments)
	defer unlock()

	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return nil, persistenceErr(err, "failed to load appointments")
	}

	idx := indexOf(appointments, func(a *entity.Appointment) bool { return a.ID == id })
	if idx < 0 {
		return nil, ErrAppointmentNotFound
	}

	plan, err := u.loadOccupancy(ctx)
	if err != nil {
		return nil, err
	}

	updated := cloneSlice(appointments)
	previous := updated[idx]
	apply(plan, &updated[idx], updated)

	if err := u.save(ctx, plan, updated); err != nil {
		return nil, err
	}

	if err := u.audit.LogUpdate(ctx, action, resourceAppointment, id, previous, updated[idx]); err != nil {
		u.log.Debugf("Audit entry skipped for appointment %d: %v", id, err)
	}

	u.log.Infof("Appointment %d status: %s -> %s", id, previous.Status, updated[idx].Status)
	return converter.AppointmentToResponse(&updated[idx]), nil
}

// Delete removes the appointment regardless of its status.
func (u *appointmentUsecase) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAppointment, "delete", start, err) }()

	unlock := u.locks.Lock(repository.CollectionDoctors, repository.CollectionAppointments)
	defer unlock()

	appointments, err := u.appointmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load appointments: %+v", err)
		return persistenceErr(err, "failed to load appointments")
	}

	idx := indexOf(appointments, func(a *entity.Appointment) bool { return a.ID == id })
	if idx < 0 {
		return ErrAppointmentNotFound
	}
	removed := appointments[idx]

	plan, err := u.loadOccupancy(ctx)
	if err != nil {
		return err
	}
	plan.release(removed, appointments)

	if err := u.save(ctx, plan, without(appointments, idx)); err != nil {
		return err
	}

	if err := u.audit.LogDelete(ctx, entity.AuditActionAppointmentDelete, resourceAppointment, id, removed); err != nil {
		u.log.Debugf("Audit entry skipped for appointment %d: %v", id, err)
	}

	u.log.Infof("Appointment deleted: id=%d", id)
	return nil
}

func (u *appointmentUsecase) GetByID(ctx context.Context, id int) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find appointment %d: %+v", id, err)
		return nil, persistenceErr(err, "failed to load appointments")
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}
	return converter.AppointmentToResponse(appointment), nil
}

// List returns the appointments matching every non-empty filter field.
func (u *appointmentUsecase) List(ctx context.Context, filter *dto.AppointmentFilterRequest) (*dto.AppointmentListResponse, error) {
	criteria := entity.AppointmentFilter{}
	if filter != nil {
		if strings.TrimSpace(filter.Status) != "" {
			status, err := entity.ParseAppointmentStatus(filter.Status)
			if err != nil {
				return nil, err
			}
			criteria.Status = status
		}
		criteria.PatientEmail = strings.TrimSpace(filter.PatientEmail)
		criteria.DoctorEmail = strings.TrimSpace(filter.DoctorEmail)
		criteria.Day = strings.TrimSpace(filter.Day)
		// Known aliases (lunes, Monday) map to the stored day name; anything
		// else is compared as given and simply matches nothing.
		if day, err := entity.ParseDay(criteria.Day); err == nil {
			criteria.Day = day.String()
		}
	}

	appointments, err := u.appointmentRepo.FindByFilter(ctx, criteria)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, persistenceErr(err, "failed to load appointments")
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

// ListActiveByDoctor returns the doctor's scheduled and attended appointments.
func (u *appointmentUsecase) ListActiveByDoctor(ctx context.Context, doctorEmail string) (*dto.AppointmentListResponse, error) {
	appointments, err := u.appointmentRepo.FindActiveByDoctor(ctx, strings.TrimSpace(doctorEmail))
	if err != nil {
		u.log.Warnf("Failed to list appointments for doctor %s: %+v", doctorEmail, err)
		return nil, persistenceErr(err, "failed to load appointments")
	}
	return converter.AppointmentsToListResponse(appointments), nil
}

// checkBooking applies the reference and conflict rules in order. excludeID
// is the appointment being edited, 0 on create.
func (u *appointmentUsecase) checkBooking(ctx context.Context, plan *occupancyPlan, input *appointmentInput, appointments []entity.Appointment, excludeID int) error {
	patient, err := u.patientRepo.FindByEmail(ctx, input.patientEmail)
	if err != nil {
		u.log.Warnf("Failed to find patient %s: %+v", input.patientEmail, err)
		return persistenceErr(err, "failed to load patients")
	}
	if patient == nil {
		u.log.Debugf("Appointment rejected, unknown patient %s", input.patientEmail)
		return ErrPatientNotRegistered
	}

	doctor, err := u.findDoctor(ctx, plan, input.doctorEmail)
	if err != nil {
		return err
	}
	if doctor == nil {
		u.log.Debugf("Appointment rejected, unknown doctor %s", input.doctorEmail)
		return ErrDoctorNotRegistered
	}

	if !doctor.IsAvailable(input.day, input.time) {
		u.log.Debugf("Appointment rejected, doctor %s unavailable on %s at %s", doctor.Email, input.day, input.time)
		return ErrDoctorUnavailable
	}

	for i := range appointments {
		if appointments[i].ID != excludeID && appointments[i].Occupies(input.doctorEmail, input.day, input.time) {
			u.log.Debugf("Appointment rejected, doctor %s already booked by appointment %d", doctor.Email, appointments[i].ID)
			return ErrDoctorDoubleBooked
		}
	}
	return nil
}

func (u *appointmentUsecase) findDoctor(ctx context.Context, plan *occupancyPlan, email string) (*entity.Doctor, error) {
	if plan.enabled {
		return plan.find(email), nil
	}
	doctor, err := u.doctorRepo.FindByEmail(ctx, email)
	if err != nil {
		u.log.Warnf("Failed to find doctor %s: %+v", email, err)
		return nil, persistenceErr(err, "failed to load doctors")
	}
	return doctor, nil
}

// save persists appointments. When the plan changed doctor schedules they are
// saved first, and restored if the appointment save then fails.
func (u *appointmentUsecase) save(ctx context.Context, plan *occupancyPlan, appointments []entity.Appointment) error {
	if plan.dirty {
		if err := u.doctorRepo.SaveAll(ctx, plan.working); err != nil {
			u.log.Warnf("Failed to save doctor schedules: %+v", err)
			return persistenceErr(err, "failed to save doctor schedules")
		}
	}

	if err := u.appointmentRepo.SaveAll(ctx, appointments); err != nil {
		u.log.Warnf("Failed to save appointments: %+v", err)

		if plan.dirty {
			u.log.Errorf("Appointment save failed, restoring doctor schedules")
			restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
			defer cancel()
			restoreErr := u.doctorRepo.SaveAll(restoreCtx, plan.original)
			if restoreErr != nil {
				u.log.Errorf("CRITICAL: Failed to restore doctor schedules after appointment save failure: %+v", restoreErr)
			}
			u.metrics.ObserveCompensation(restoreErr != nil)
		}

		return persistenceErr(err, "failed to save appointments")
	}
	return nil
}

// occupancyPlan is a working copy of the doctor store used to keep schedule
// occupancy in step with appointments. Disabled plans ignore every call.
type occupancyPlan struct {
	enabled  bool
	original []entity.Doctor
	working  []entity.Doctor
	dirty    bool
}

func (u *appointmentUsecase) loadOccupancy(ctx context.Context) (*occupancyPlan, error) {
	plan := &occupancyPlan{enabled: u.syncOccupancy}
	if !plan.enabled {
		return plan, nil
	}

	doctors, err := u.doctorRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load doctors: %+v", err)
		return nil, persistenceErr(err, "failed to load doctors")
	}

	plan.original = doctors
	plan.working = make([]entity.Doctor, len(doctors))
	for i := range doctors {
		plan.working[i] = doctors[i]
		plan.working[i].Schedule = *doctors[i].Schedule.Clone()
	}
	return plan, nil
}

func (p *occupancyPlan) find(email string) *entity.Doctor {
	idx := indexOf(p.working, func(d *entity.Doctor) bool { return strings.EqualFold(d.Email, email) })
	if idx < 0 {
		return nil
	}
	return &p.working[idx]
}

// release frees the slot a live appointment holds, unless another live
// appointment in appointments still sits in the same slot.
func (p *occupancyPlan) release(a entity.Appointment, appointments []entity.Appointment) {
	if !p.enabled || a.IsCancelled() {
		return
	}
	for i := range appointments {
		if appointments[i].ID != a.ID && appointments[i].Occupies(a.DoctorEmail, a.Day, a.Time) {
			return
		}
	}
	if doctor := p.find(a.DoctorEmail); doctor != nil && doctor.Schedule.Cancel(a.Day, a.Time) {
		p.dirty = true
	}
}

// hold books the slot for a live appointment.
func (p *occupancyPlan) hold(a entity.Appointment) {
	if !p.enabled || a.IsCancelled() {
		return
	}
	if doctor := p.find(a.DoctorEmail); doctor != nil && doctor.Schedule.Book(a.Day, a.Time) {
		p.dirty = true
	}
}
