package usecase

import (
	"context"
	"strings"
	"time"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/pricing"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/observability/metrics"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/apperror"
	"go-hospital-scheduling/pkg/clock"

	"github.com/sirupsen/logrus"
)

var (
	ErrAssignmentNotFound     = apperror.New(apperror.KindNotFound, "treatment assignment not found")
	ErrTreatmentNotRegistered = apperror.New(apperror.KindReference, "treatment is not registered")
)

const resourceAssignment = "treatment_assignment"

type TreatmentAssignmentUsecase interface {
	Assign(ctx context.Context, req *dto.AssignTreatmentRequest) (*dto.AssignmentResponse, error)
	Complete(ctx context.Context, id int) (*dto.AssignmentResponse, error)
	Cancel(ctx context.Context, id int) (*dto.AssignmentResponse, error)
	Delete(ctx context.Context, id int) error
	GetByID(ctx context.Context, id int) (*dto.AssignmentResponse, error)
	List(ctx context.Context, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error)
	PatientsWithTreatments(ctx context.Context) (*dto.PatientsWithTreatmentsResponse, error)
}

type treatmentAssignmentUsecase struct {
	log            *logrus.Logger
	locks          *service.CollectionLocks
	metrics        *metrics.SchedulerMetrics
	clock          clock.Clock
	calc           *pricing.Calculator
	assignmentRepo repository.TreatmentAssignmentRepository
	patientRepo    repository.PatientRepository
	treatmentRepo  repository.TreatmentRepository
}

func NewTreatmentAssignmentUsecase(
	log *logrus.Logger,
	locks *service.CollectionLocks,
	schedulerMetrics *metrics.SchedulerMetrics,
	clk clock.Clock,
	calc *pricing.Calculator,
	assignmentRepo repository.TreatmentAssignmentRepository,
	patientRepo repository.PatientRepository,
	treatmentRepo repository.TreatmentRepository,
) TreatmentAssignmentUsecase {
	return &treatmentAssignmentUsecase{
		log:            log,
		locks:          locks,
		metrics:        schedulerMetrics,
		clock:          clk,
		calc:           calc,
		assignmentRepo: assignmentRepo,
		patientRepo:    patientRepo,
		treatmentRepo:  treatmentRepo,
	}
}

// Assign links a stored treatment to a registered patient.
//
// Flow:
// 1. Patient and treatment must exist
// 2. Save the new assignment
// 3. Append its id to the patient's treatment list
// 4. If the patient save fails -> compensate: restore the previous assignments
func (u *treatmentAssignmentUsecase) Assign(ctx context.Context, req *dto.AssignTreatmentRequest) (resp *dto.AssignmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAssignment, "assign", start, err) }()

	patientEmail := strings.TrimSpace(req.PatientEmail)
	if !looksLikeEmail(patientEmail) {
		return nil, ErrInvalidPatientEmail
	}
	category, err := entity.ParseTreatmentCategory(req.Category)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionPatients, repository.CollectionTreatments, repository.CollectionTreatmentAssignments)
	defer unlock()

	patients, err := u.patientRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load patients: %+v", err)
		return nil, persistenceErr(err, "failed to load patients")
	}
	patientIdx := indexOf(patients, func(p *entity.Patient) bool { return strings.EqualFold(p.Email, patientEmail) })
	if patientIdx < 0 {
		return nil, ErrPatientNotRegistered
	}

	treatment, err := u.treatmentRepo.FindByRef(ctx, category, req.TreatmentID)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s/%d: %+v", category, req.TreatmentID, err)
		return nil, persistenceErr(err, "failed to load treatments")
	}
	if treatment == nil {
		return nil, ErrTreatmentNotRegistered
	}

	assignments, err := u.assignmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatment assignments")
	}

	assignment := entity.TreatmentAssignment{
		ID:           nextID(assignments, func(a *entity.TreatmentAssignment) int { return a.ID }),
		PatientEmail: patients[patientIdx].Email,
		Treatment:    *treatment,
		AssignedAt:   u.clock.Now(),
		Note:         strings.TrimSpace(req.Note),
		Status:       entity.AssignmentActive,
	}

	if err := u.assignmentRepo.SaveAll(ctx, append(cloneSlice(assignments), assignment)); err != nil {
		u.log.Warnf("Failed to save treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to save treatment assignments")
	}

	updatedPatients := cloneSlice(patients)
	updatedPatients[patientIdx].TreatmentIDs = append(append([]int{}, patients[patientIdx].TreatmentIDs...), assignment.ID)
	if err := u.patientRepo.SaveAll(ctx, updatedPatients); err != nil {
		u.log.Errorf("Failed to save patient treatment list, compensating assignments: %+v", err)

		restoreCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), compensationTimeout)
		defer cancel()
		if restoreErr := u.assignmentRepo.SaveAll(restoreCtx, assignments); restoreErr != nil {
			u.log.Errorf("CRITICAL: Failed to restore treatment assignments after patient save failure: %+v", restoreErr)
		}

		return nil, persistenceErr(err, "failed to save patients")
	}

	u.log.Infof("Treatment assigned: id=%d, patient=%s, treatment=%s/%d", assignment.ID, assignment.PatientEmail, category, treatment.ID)
	return converter.AssignmentToResponse(&assignment, u.calc), nil
}

func (u *treatmentAssignmentUsecase) Complete(ctx context.Context, id int) (*dto.AssignmentResponse, error) {
	return u.setStatus(ctx, id, "complete", entity.AssignmentCompleted)
}

func (u *treatmentAssignmentUsecase) Cancel(ctx context.Context, id int) (*dto.AssignmentResponse, error) {
	return u.setStatus(ctx, id, "cancel", entity.AssignmentCancelled)
}

func (u *treatmentAssignmentUsecase) setStatus(ctx context.Context, id int, operation string, status entity.AssignmentStatus) (resp *dto.AssignmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAssignment, operation, start, err) }()

	unlock := u.locks.Lock(repository.CollectionTreatmentAssignments)
	defer unlock()

	assignments, err := u.assignmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatment assignments")
	}

	idx := indexOf(assignments, func(a *entity.TreatmentAssignment) bool { return a.ID == id })
	if idx < 0 {
		return nil, ErrAssignmentNotFound
	}

	updated := cloneSlice(assignments)
	updated[idx].Status = status
	if err := u.assignmentRepo.SaveAll(ctx, updated); err != nil {
		u.log.Warnf("Failed to save treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to save treatment assignments")
	}

	u.log.Infof("Treatment assignment %d status: %s -> %s", id, assignments[idx].Status, status)
	return converter.AssignmentToResponse(&updated[idx], u.calc), nil
}

// Delete removes the assignment. The id stays in the patient's treatment list.
func (u *treatmentAssignmentUsecase) Delete(ctx context.Context, id int) (err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceAssignment, "delete", start, err) }()

	unlock := u.locks.Lock(repository.CollectionTreatmentAssignments)
	defer unlock()

	assignments, err := u.assignmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatment assignments: %+v", err)
		return persistenceErr(err, "failed to load treatment assignments")
	}

	idx := indexOf(assignments, func(a *entity.TreatmentAssignment) bool { return a.ID == id })
	if idx < 0 {
		return ErrAssignmentNotFound
	}

	if err := u.assignmentRepo.SaveAll(ctx, without(assignments, idx)); err != nil {
		u.log.Warnf("Failed to save treatment assignments: %+v", err)
		return persistenceErr(err, "failed to save treatment assignments")
	}

	u.log.Infof("Treatment assignment deleted: id=%d", id)
	return nil
}

func (u *treatmentAssignmentUsecase) GetByID(ctx context.Context, id int) (*dto.AssignmentResponse, error) {
	assignment, err := u.assignmentRepo.FindByID(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment assignment %d: %+v", id, err)
		return nil, persistenceErr(err, "failed to load treatment assignments")
	}
	if assignment == nil {
		return nil, ErrAssignmentNotFound
	}
	return converter.AssignmentToResponse(assignment, u.calc), nil
}

func (u *treatmentAssignmentUsecase) List(ctx context.Context, filter *dto.AssignmentFilterRequest) (*dto.AssignmentListResponse, error) {
	var (
		assignments []entity.TreatmentAssignment
		err         error
		status      entity.AssignmentStatus
	)
	patientEmail := ""
	if filter != nil {
		patientEmail = strings.TrimSpace(filter.PatientEmail)
		if strings.TrimSpace(filter.Status) != "" {
			status, err = entity.ParseAssignmentStatus(filter.Status)
			if err != nil {
				return nil, err
			}
		}
	}

	switch {
	case patientEmail != "":
		assignments, err = u.assignmentRepo.FindByPatient(ctx, patientEmail)
	case status != "":
		assignments, err = u.assignmentRepo.FindByStatus(ctx, status)
	default:
		assignments, err = u.assignmentRepo.FindAll(ctx)
	}
	if err != nil {
		u.log.Warnf("Failed to list treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatment assignments")
	}

	if patientEmail != "" && status != "" {
		filtered := assignments[:0]
		for _, a := range assignments {
			if a.Status == status {
				filtered = append(filtered, a)
			}
		}
		assignments = filtered
	}

	responses := converter.AssignmentsToResponses(assignments, u.calc)
	return &dto.AssignmentListResponse{Assignments: responses, Total: len(responses)}, nil
}

// PatientsWithTreatments lists distinct patient emails in first-assigned order.
func (u *treatmentAssignmentUsecase) PatientsWithTreatments(ctx context.Context) (*dto.PatientsWithTreatmentsResponse, error) {
	assignments, err := u.assignmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to list treatment assignments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatment assignments")
	}

	emails := distinctPatientEmails(assignments)
	return &dto.PatientsWithTreatmentsResponse{PatientEmails: emails, Total: len(emails)}, nil
}

func distinctPatientEmails(assignments []entity.TreatmentAssignment) []string {
	seen := make(map[string]struct{}, len(assignments))
	emails := make([]string, 0, len(assignments))
	for _, a := range assignments {
		key := strings.ToLower(a.PatientEmail)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		emails = append(emails, a.PatientEmail)
	}
	return emails
}
