package usecase

import (
	"context"
	"strings"

	"go-hospital-scheduling/internal/converter"
	"go-hospital-scheduling/internal/delivery/dto"
	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/pricing"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/pkg/clock"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

type ReportUsecase interface {
	AttendedBySpecialty(ctx context.Context) (*dto.AttendedBySpecialtyResponse, error)
	AttendedForSpecialty(ctx context.Context, specialty string) (*dto.AttendedForSpecialtyResponse, error)
	RevenueByCategory(ctx context.Context) (*dto.RevenueByCategoryResponse, error)
	RevenueForCategory(ctx context.Context, category string) (*dto.CategoryRevenueResponse, error)
	TreatmentHistory(ctx context.Context) (*dto.TreatmentHistoryResponse, error)
	PatientHistory(ctx context.Context, patientEmail string) (*dto.PatientHistory, error)
	Specialties(ctx context.Context) (*dto.SpecialtiesResponse, error)
	Categories(ctx context.Context) (*dto.CategoriesResponse, error)
	GeneralStats(ctx context.Context) (*dto.GeneralStatsResponse, error)
	Invoice(ctx context.Context, patientEmail string) (*dto.InvoiceResponse, error)
}

type reportUsecase struct {
	log             *logrus.Logger
	clock           clock.Clock
	calc            *pricing.Calculator
	appointmentRepo repository.AppointmentRepository
	doctorRepo      repository.DoctorRepository
	patientRepo     repository.PatientRepository
	treatmentRepo   repository.TreatmentRepository
	assignmentRepo  repository.TreatmentAssignmentRepository
}

func NewReportUsecase(
	log *logrus.Logger,
	clk clock.Clock,
	calc *pricing.Calculator,
	appointmentRepo repository.AppointmentRepository,
	doctorRepo repository.DoctorRepository,
	patientRepo repository.PatientRepository,
	treatmentRepo repository.TreatmentRepository,
	assignmentRepo repository.TreatmentAssignmentRepository,
) ReportUsecase {
	return &reportUsecase{
		log:             log,
		clock:           clk,
		calc:            calc,
		appointmentRepo: appointmentRepo,
		doctorRepo:      doctorRepo,
		patientRepo:     patientRepo,
		treatmentRepo:   treatmentRepo,
		assignmentRepo:  assignmentRepo,
	}
}

// snapshot is a read-only view over the collections a report needs.
type snapshot struct {
	appointments []entity.Appointment
	doctors      []entity.Doctor
	patients     []entity.Patient
	assignments  []entity.TreatmentAssignment
}

type snapshotParts struct {
	appointments, doctors, patients, assignments bool
}

// load reads the requested collections concurrently.
func (u *reportUsecase) load(ctx context.Context, parts snapshotParts) (*snapshot, error) {
	s := &snapshot{}
	g, gctx := errgroup.WithContext(ctx)

	if parts.appointments {
		g.Go(func() (err error) {
			s.appointments, err = u.appointmentRepo.FindAll(gctx)
			return err
		})
	}
	if parts.doctors {
		g.Go(func() (err error) {
			s.doctors, err = u.doctorRepo.FindAll(gctx)
			return err
		})
	}
	if parts.patients {
		g.Go(func() (err error) {
			s.patients, err = u.patientRepo.FindAll(gctx)
			return err
		})
	}
	if parts.assignments {
		g.Go(func() (err error) {
			s.assignments, err = u.assignmentRepo.FindAll(gctx)
			return err
		})
	}

	if err := g.Wait(); err != nil {
		u.log.Warnf("Failed to load report data: %+v", err)
		return nil, persistenceErr(err, "failed to load report data")
	}
	return s, nil
}

func (s *snapshot) specialtyOf(doctorEmail string) string {
	idx := indexOf(s.doctors, func(d *entity.Doctor) bool { return strings.EqualFold(d.Email, doctorEmail) })
	if idx < 0 {
		return ""
	}
	return strings.TrimSpace(s.doctors[idx].Specialty)
}

// AttendedBySpecialty counts attended appointments per doctor specialty.
// Appointments whose doctor is gone or has no specialty are not counted.
func (u *reportUsecase) AttendedBySpecialty(ctx context.Context) (*dto.AttendedBySpecialtyResponse, error) {
	s, err := u.load(ctx, snapshotParts{appointments: true, doctors: true})
	if err != nil {
		return nil, err
	}

	resp := &dto.AttendedBySpecialtyResponse{Counts: map[string]int{}}
	for _, a := range s.appointments {
		if a.Status != entity.AppointmentAttended {
			continue
		}
		if specialty := s.specialtyOf(a.DoctorEmail); specialty != "" {
			resp.Counts[specialty]++
			resp.Total++
		}
	}
	return resp, nil
}

func (u *reportUsecase) AttendedForSpecialty(ctx context.Context, specialty string) (*dto.AttendedForSpecialtyResponse, error) {
	s, err := u.load(ctx, snapshotParts{appointments: true, doctors: true})
	if err != nil {
		return nil, err
	}

	specialty = strings.TrimSpace(specialty)
	matched := make([]entity.Appointment, 0)
	for _, a := range s.appointments {
		if a.Status == entity.AppointmentAttended && strings.EqualFold(s.specialtyOf(a.DoctorEmail), specialty) {
			matched = append(matched, a)
		}
	}

	list := converter.AppointmentsToListResponse(matched)
	return &dto.AttendedForSpecialtyResponse{
		Specialty:    specialty,
		Appointments: list.Appointments,
		Total:        list.Total,
	}, nil
}

// RevenueByCategory sums the cost of every assignment, whatever its status.
func (u *reportUsecase) RevenueByCategory(ctx context.Context) (*dto.RevenueByCategoryResponse, error) {
	s, err := u.load(ctx, snapshotParts{assignments: true})
	if err != nil {
		return nil, err
	}

	resp := &dto.RevenueByCategoryResponse{Revenue: map[string]decimal.Decimal{}, Total: decimal.Zero}
	for _, c := range entity.Categories() {
		resp.Revenue[string(c)] = decimal.Zero
	}
	for _, a := range s.assignments {
		cost := u.calc.Cost(a.Treatment)
		key := string(a.Treatment.Category)
		resp.Revenue[key] = resp.Revenue[key].Add(cost)
		resp.Total = resp.Total.Add(cost)
	}
	return resp, nil
}

func (u *reportUsecase) RevenueForCategory(ctx context.Context, category string) (*dto.CategoryRevenueResponse, error) {
	cat, err := entity.ParseTreatmentCategory(category)
	if err != nil {
		return nil, err
	}
	s, err := u.load(ctx, snapshotParts{assignments: true})
	if err != nil {
		return nil, err
	}

	total := decimal.Zero
	for _, a := range s.assignments {
		if a.Treatment.Category == cat {
			total = total.Add(u.calc.Cost(a.Treatment))
		}
	}
	return &dto.CategoryRevenueResponse{Category: string(cat), Revenue: total}, nil
}

// TreatmentHistory groups assignments by patient, in first-assigned order.
func (u *reportUsecase) TreatmentHistory(ctx context.Context) (*dto.TreatmentHistoryResponse, error) {
	s, err := u.load(ctx, snapshotParts{patients: true, assignments: true})
	if err != nil {
		return nil, err
	}

	resp := &dto.TreatmentHistoryResponse{Patients: []dto.PatientHistory{}}
	for _, email := range distinctPatientEmails(s.assignments) {
		resp.Patients = append(resp.Patients, u.history(s, email))
	}
	return resp, nil
}

func (u *reportUsecase) PatientHistory(ctx context.Context, patientEmail string) (*dto.PatientHistory, error) {
	s, err := u.load(ctx, snapshotParts{patients: true, assignments: true})
	if err != nil {
		return nil, err
	}
	history := u.history(s, strings.TrimSpace(patientEmail))
	return &history, nil
}

func (u *reportUsecase) history(s *snapshot, email string) dto.PatientHistory {
	history := dto.PatientHistory{PatientEmail: email, Total: decimal.Zero}
	if idx := indexOf(s.patients, func(p *entity.Patient) bool { return strings.EqualFold(p.Email, email) }); idx >= 0 {
		history.PatientName = s.patients[idx].FullName()
	}

	var assignments []entity.TreatmentAssignment
	for _, a := range s.assignments {
		if strings.EqualFold(a.PatientEmail, email) {
			assignments = append(assignments, a)
		}
	}
	history.Assignments = converter.AssignmentsToResponses(assignments, u.calc)
	for _, a := range history.Assignments {
		history.Total = history.Total.Add(a.Cost)
	}
	return history
}

// Specialties lists distinct doctor specialties in store order.
func (u *reportUsecase) Specialties(ctx context.Context) (*dto.SpecialtiesResponse, error) {
	s, err := u.load(ctx, snapshotParts{doctors: true})
	if err != nil {
		return nil, err
	}

	seen := map[string]struct{}{}
	resp := &dto.SpecialtiesResponse{Specialties: []string{}}
	for _, d := range s.doctors {
		specialty := strings.TrimSpace(d.Specialty)
		if _, ok := seen[specialty]; ok || specialty == "" {
			continue
		}
		seen[specialty] = struct{}{}
		resp.Specialties = append(resp.Specialties, specialty)
	}
	return resp, nil
}

// Categories lists the treatment categories that have at least one treatment.
func (u *reportUsecase) Categories(ctx context.Context) (*dto.CategoriesResponse, error) {
	treatments, err := u.treatmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatments")
	}

	present := map[entity.TreatmentCategory]bool{}
	for _, t := range treatments {
		present[t.Category] = true
	}
	resp := &dto.CategoriesResponse{Categories: []string{}}
	for _, c := range entity.Categories() {
		if present[c] {
			resp.Categories = append(resp.Categories, string(c))
		}
	}
	return resp, nil
}

func (u *reportUsecase) GeneralStats(ctx context.Context) (*dto.GeneralStatsResponse, error) {
	s, err := u.load(ctx, snapshotParts{appointments: true, doctors: true, assignments: true})
	if err != nil {
		return nil, err
	}

	stats := &dto.GeneralStatsResponse{
		TotalAppointments:      len(s.appointments),
		TotalAssignments:       len(s.assignments),
		TotalRevenue:           decimal.Zero,
		TotalDoctors:           len(s.doctors),
		PatientsWithTreatments: len(distinctPatientEmails(s.assignments)),
	}
	for _, a := range s.appointments {
		switch a.Status {
		case entity.AppointmentAttended:
			stats.AttendedAppointments++
		case entity.AppointmentScheduled:
			stats.ScheduledAppointments++
		case entity.AppointmentCancelled:
			stats.CancelledAppointments++
		}
	}
	for _, a := range s.assignments {
		stats.TotalRevenue = stats.TotalRevenue.Add(u.calc.Cost(a.Treatment))
	}
	return stats, nil
}

// Invoice bills the patient's assignments that are not cancelled.
func (u *reportUsecase) Invoice(ctx context.Context, patientEmail string) (*dto.InvoiceResponse, error) {
	patientEmail = strings.TrimSpace(patientEmail)
	if !looksLikeEmail(patientEmail) {
		return nil, ErrInvalidPatientEmail
	}

	s, err := u.load(ctx, snapshotParts{patients: true, assignments: true})
	if err != nil {
		return nil, err
	}

	idx := indexOf(s.patients, func(p *entity.Patient) bool { return strings.EqualFold(p.Email, patientEmail) })
	if idx < 0 {
		return nil, ErrPatientNotFound
	}
	patient := s.patients[idx]

	invoice := &entity.Invoice{
		Number:       uuid.New(),
		PatientEmail: patient.Email,
		Lines:        []entity.InvoiceLine{},
		Total:        decimal.Zero,
		IssuedAt:     u.clock.Now(),
	}
	for _, a := range s.assignments {
		if !strings.EqualFold(a.PatientEmail, patient.Email) || a.Status == entity.AssignmentCancelled {
			continue
		}
		cost := u.calc.Cost(a.Treatment)
		invoice.Lines = append(invoice.Lines, entity.InvoiceLine{
			AssignmentID:  a.ID,
			TreatmentName: a.Treatment.Name,
			Category:      a.Treatment.Category,
			Cost:          cost,
		})
		invoice.Total = invoice.Total.Add(cost)
	}

	u.log.Infof("Invoice %s issued for %s: %d lines, total %s", invoice.Number, patient.Email, len(invoice.Lines), invoice.Total)
	return converter.InvoiceToResponse(invoice, patient.FullName()), nil
}
