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
	ErrPatientNotFound   = apperror.New(apperror.KindNotFound, "patient not found")
	ErrPatientEmailTaken = apperror.New(apperror.KindConflict, "a patient with this email already exists")
)

const resourcePatient = "patient"

type PatientUsecase interface {
	Create(ctx context.Context, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Update(ctx context.Context, id int, req *dto.PatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*dto.PatientResponse, error)
	GetByEmail(ctx context.Context, email string) (*dto.PatientResponse, error)
	GetByNationalID(ctx context.Context, nationalID string) (*dto.PatientResponse, error)
	List(ctx context.Context) (*dto.PatientListResponse, error)
}

type patientUsecase struct {
	log         *logrus.Logger
	locks       *service.CollectionLocks
	audit       service.AuditService
	metrics     *metrics.SchedulerMetrics
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(
	log *logrus.Logger,
	locks *service.CollectionLocks,
	audit service.AuditService,
	schedulerMetrics *metrics.SchedulerMetrics,
	patientRepo repository.PatientRepository,
) PatientUsecase {
	return &patientUsecase{
		log:         log,
		locks:       locks,
		audit:       audit,
		metrics:     schedulerMetrics,
		patientRepo: patientRepo,
	}
}

func buildPatient(req *dto.PatientRequest) (*entity.Patient, error) {
	insurance, err := entity.ParseInsuranceType(req.Insurance)
	if err != nil {
		return nil, err
	}
	return &entity.Patient{
		FirstName:  strings.TrimSpace(req.FirstName),
		LastName:   strings.TrimSpace(req.LastName),
		Email:      strings.TrimSpace(req.Email),
		NationalID: strings.TrimSpace(req.NationalID),
		Insurance:  insurance,
	}, nil
}

func (u *patientUsecase) Create(ctx context.Context, req *dto.PatientRequest) (resp *dto.PatientResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourcePatient, "create", start, err) }()

	patient, err := buildPatient(req)
	if err != nil {
		return nil, err
	}
	patient.TreatmentIDs = []int{}

	unlock := u.locks.Lock(repository.CollectionPatients)
	defer unlock()

	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, persistenceErr(err, "failed to load patients")
	}

	if indexOf(patients, func(p *entity.Patient) bool { return strings.EqualFold(p.Email, patient.Email) }) >= 0 {
		return nil, ErrPatientEmailTaken
	}

	patient.ID = nextID(patients, func(p *entity.Patient) int { return p.ID })
	if err := u.patientRepo.SaveAll(ctx, append(cloneSlice(patients), *patient)); err != nil {
		u.log.Warnf("Failed to save patients: %+v", err)
		return nil, persistenceErr(err, "failed to save patients")
	}

	if err := u.audit.LogCreate(ctx, entity.AuditActionPatientCreate, resourcePatient, patient.ID, converter.PatientToResponse(patient)); err != nil {
		u.log.Debugf("Audit entry skipped for patient %d: %v", patient.ID, err)
	}

	u.log.Infof("Patient created: id=%d, email=%s", patient.ID, patient.Email)
	return converter.PatientToResponse(patient), nil
}

// Update replaces the patient's details. Assigned treatment ids are kept.
func (u *patientUsecase) Update(ctx context.Context, id int, req *dto.PatientRequest) (resp *dto.PatientResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourcePatient, "update", start, err) }()

	patient, err := buildPatient(req)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionPatients)
	defer unlock()

	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, persistenceErr(err, "failed to load patients")
	}

	idx := indexOf(patients, func(p *entity.Patient) bool { return p.ID == id })
	if idx < 0 {
		return nil, ErrPatientNotFound
	}
	taken := indexOf(patients, func(p *entity.Patient) bool {
		return p.ID != id && strings.EqualFold(p.Email, patient.Email)
	})
	if taken >= 0 {
		return nil, ErrPatientEmailTaken
	}

	patient.ID = id
	patient.TreatmentIDs = append([]int{}, patients[idx].TreatmentIDs...)

	updated := cloneSlice(patients)
	updated[idx] = *patient
	if err := u.patientRepo.SaveAll(ctx, updated); err != nil {
		u.log.Warnf("Failed to save patients: %+v", err)
		return nil, persistenceErr(err, "failed to save patients")
	}

	oldValue := converter.PatientToResponse(&patients[idx])
	if err := u.audit.LogUpdate(ctx, entity.AuditActionPatientUpdate, resourcePatient, id, oldValue, converter.PatientToResponse(patient)); err != nil {
		u.log.Debugf("Audit entry skipped for patient %d: %v", id, err)
	}

	u.log.Infof("Patient updated: id=%d", id)
	return converter.PatientToResponse(patient), nil
}

// Delete removes the patient. Appointments and treatment assignments that
// reference the patient's email are left in place.
func (u *patientUsecase) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourcePatient, "delete", start, err) }()

	unlock := u.locks.Lock(repository.CollectionPatients)
	defer unlock()

	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return persistenceErr(err, "failed to load patients")
	}

	idx := indexOf(patients, func(p *entity.Patient) bool { return p.ID == id })
	if idx < 0 {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.SaveAll(ctx, without(patients, idx)); err != nil {
		u.log.Warnf("Failed to save patients: %+v", err)
		return persistenceErr(err, "failed to save patients")
	}

	if err := u.audit.LogDelete(ctx, entity.AuditActionPatientDelete, resourcePatient, id, converter.PatientToResponse(&patients[idx])); err != nil {
		u.log.Debugf("Audit entry skipped for patient %d: %v", id, err)
	}

	u.log.Infof("Patient deleted: id=%d, email=%s", id, patients[idx].Email)
	return nil
}

func (u *patientUsecase) GetByID(ctx context.Context, id int) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByID(ctx, id)
	return u.found(patient, err)
}

func (u *patientUsecase) GetByEmail(ctx context.Context, email string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByEmail(ctx, email)
	return u.found(patient, err)
}

func (u *patientUsecase) GetByNationalID(ctx context.Context, nationalID string) (*dto.PatientResponse, error) {
	patient, err := u.patientRepo.FindByNationalID(ctx, nationalID)
	return u.found(patient, err)
}

func (u *patientUsecase) List(ctx context.Context) (*dto.PatientListResponse, error) {
	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, persistenceErr(err, "failed to load patients")
	}
	return converter.PatientsToListResponse(patients), nil
}

func (u *patientUsecase) found(patient *entity.Patient, err error) (*dto.PatientResponse, error) {
	if err != nil {
		u.log.Warnf("Failed to find patient: %+v", err)
		return nil, persistenceErr(err, "failed to load patients")
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}
	return converter.PatientToResponse(patient), nil
}
