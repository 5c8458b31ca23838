package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"sync"
	"testing"
	"time"

	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/pricing"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/internal/infrastructure/storage"
	"go-hospital-scheduling/internal/observability/metrics"
	"go-hospital-scheduling/internal/repository"
	"go-hospital-scheduling/internal/service"
	"go-hospital-scheduling/pkg/clock"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

var fixtureNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

// flakyStore wraps a RecordStore and fails saves of chosen collections.
type flakyStore struct {
	domainRepo.RecordStore

	mu       sync.Mutex
	failSave map[string]bool
	failLoad map[string]bool
}

func (s *flakyStore) failSaves(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failSave[collection] = true
}

func (s *flakyStore) failLoads(collection string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failLoad[collection] = true
}

func (s *flakyStore) LoadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	s.mu.Lock()
	fail := s.failLoad[collection]
	s.mu.Unlock()
	if fail {
		return nil, errDiskFull
	}
	return s.RecordStore.LoadAll(ctx, collection)
}

func (s *flakyStore) SaveAll(ctx context.Context, collection string, records []json.RawMessage) error {
	s.mu.Lock()
	fail := s.failSave[collection]
	s.mu.Unlock()
	if fail {
		return errDiskFull
	}
	return s.RecordStore.SaveAll(ctx, collection, records)
}

type fixture struct {
	store    *flakyStore
	registry *prometheus.Registry
	metrics  *metrics.SchedulerMetrics
	audit    service.AuditService
	calc     *pricing.Calculator

	doctorRepo      domainRepo.DoctorRepository
	patientRepo     domainRepo.PatientRepository
	appointmentRepo domainRepo.AppointmentRepository
	treatmentRepo   domainRepo.TreatmentRepository
	assignmentRepo  domainRepo.TreatmentAssignmentRepository

	doctors      DoctorUsecase
	patients     PatientUsecase
	appointments AppointmentUsecase
	treatments   TreatmentUsecase
	assignments  TreatmentAssignmentUsecase
	reports      ReportUsecase
}

func newFixture(t *testing.T, syncOccupancy bool) *fixture {
	t.Helper()

	fileStore, err := storage.NewFileStore(afero.NewMemMapFs(), "data")
	require.NoError(t, err)

	log := logrus.New()
	log.SetOutput(io.Discard)

	f := &fixture{
		store:    &flakyStore{RecordStore: fileStore, failSave: map[string]bool{}, failLoad: map[string]bool{}},
		registry: prometheus.NewRegistry(),
		calc:     pricing.NewCalculator(pricing.TherapySurcharge),
	}
	f.metrics = metrics.NewSchedulerMetrics(f.registry)

	f.doctorRepo = repository.NewDoctorRepository(f.store)
	f.patientRepo = repository.NewPatientRepository(f.store)
	f.appointmentRepo = repository.NewAppointmentRepository(f.store)
	f.treatmentRepo = repository.NewTreatmentRepository(f.store)
	f.assignmentRepo = repository.NewTreatmentAssignmentRepository(f.store)

	clk := clock.Fixed(fixtureNow)
	locks := service.NewCollectionLocks()
	f.audit = service.NewAuditService(log, locks, clk, repository.NewAuditLogRepository(f.store))

	f.doctors = NewDoctorUsecase(log, locks, f.audit, f.metrics, f.doctorRepo, 60)
	f.patients = NewPatientUsecase(log, locks, f.audit, f.metrics, f.patientRepo)
	f.appointments = NewAppointmentUsecase(log, locks, f.audit, f.metrics, f.appointmentRepo, f.doctorRepo, f.patientRepo, syncOccupancy)
	f.treatments = NewTreatmentUsecase(log, locks, f.metrics, f.calc, f.treatmentRepo)
	f.assignments = NewTreatmentAssignmentUsecase(log, locks, f.metrics, clk, f.calc, f.assignmentRepo, f.patientRepo, f.treatmentRepo)
	f.reports = NewReportUsecase(log, clk, f.calc, f.appointmentRepo, f.doctorRepo, f.patientRepo, f.treatmentRepo, f.assignmentRepo)
	return f
}

func doctorRequest(email, specialty string) *dto.DoctorRequest {
	return &dto.DoctorRequest{
		FirstName: "Greg",
		LastName:  "House",
		Email:     email,
		License:   "LIC-" + email,
		Gender:    "M",
		Specialty: specialty,
		Schedule: dto.ScheduleRequest{
			Start:       "08:00",
			End:         "12:00",
			Days:        []string{"MONDAY", "TUESDAY", "WEDNESDAY", "THURSDAY", "FRIDAY"},
			SlotMinutes: 60,
		},
	}
}

func patientRequest(email, nationalID string) *dto.PatientRequest {
	return &dto.PatientRequest{
		FirstName:  "Ana",
		LastName:   "Lopez",
		Email:      email,
		NationalID: nationalID,
		Insurance:  "private",
	}
}

func (f *fixture) seedDoctor(t *testing.T, email, specialty string) *dto.DoctorResponse {
	t.Helper()
	doctor, err := f.doctors.Create(context.Background(), doctorRequest(email, specialty))
	require.NoError(t, err)
	return doctor
}

func (f *fixture) seedPatient(t *testing.T, email, nationalID string) *dto.PatientResponse {
	t.Helper()
	patient, err := f.patients.Create(context.Background(), patientRequest(email, nationalID))
	require.NoError(t, err)
	return patient
}

func (f *fixture) seedTreatment(t *testing.T, category, name string, quantity int, unitPrice string) *dto.TreatmentResponse {
	t.Helper()
	treatment, err := f.treatments.Create(context.Background(), treatmentRequest(category, name, quantity, unitPrice))
	require.NoError(t, err)
	return treatment
}

func appointmentRequest(tm, day, patient, doctor string) *dto.AppointmentRequest {
	return &dto.AppointmentRequest{Time: tm, Day: day, PatientEmail: patient, DoctorEmail: doctor}
}

func treatmentRequest(category, name string, quantity int, unitPrice string) *dto.TreatmentRequest {
	return &dto.TreatmentRequest{
		Category:  category,
		Name:      name,
		Quantity:  quantity,
		UnitPrice: decimal.RequireFromString(unitPrice),
	}
}

func (f *fixture) auditActions(t *testing.T) []string {
	t.Helper()
	logs, err := f.audit.List(context.Background())
	require.NoError(t, err)
	actions := make([]string, len(logs))
	for i, l := range logs {
		actions[i] = l.Action
	}
	return actions
}
