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

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

var (
	ErrTreatmentNotFound       = apperror.New(apperror.KindNotFound, "treatment not found")
	ErrTreatmentCategoryChange = apperror.New(apperror.KindValidation, "treatment category cannot be changed, create a new treatment instead")
	ErrNegativeUnitPrice       = apperror.New(apperror.KindValidation, "unit price must not be negative")
	ErrNegativeQuantity        = apperror.New(apperror.KindValidation, "quantity must not be negative")
	ErrTreatmentNameRequired   = apperror.New(apperror.KindValidation, "treatment name is required")
)

const resourceTreatment = "treatment"

type TreatmentUsecase interface {
	Create(ctx context.Context, req *dto.TreatmentRequest) (*dto.TreatmentResponse, error)
	Update(ctx context.Context, category string, id int, req *dto.TreatmentRequest) (*dto.TreatmentResponse, error)
	Delete(ctx context.Context, category string, id int) error
	Get(ctx context.Context, category string, id int) (*dto.TreatmentResponse, error)
	List(ctx context.Context, filter *dto.TreatmentFilterRequest) (*dto.TreatmentListResponse, error)
	Stats(ctx context.Context, category string) (*dto.TreatmentStatsResponse, error)
}

type treatmentUsecase struct {
	log           *logrus.Logger
	locks         *service.CollectionLocks
	metrics       *metrics.SchedulerMetrics
	calc          *pricing.Calculator
	treatmentRepo repository.TreatmentRepository
}

func NewTreatmentUsecase(
	log *logrus.Logger,
	locks *service.CollectionLocks,
	schedulerMetrics *metrics.SchedulerMetrics,
	calc *pricing.Calculator,
	treatmentRepo repository.TreatmentRepository,
) TreatmentUsecase {
	return &treatmentUsecase{
		log:           log,
		locks:         locks,
		metrics:       schedulerMetrics,
		calc:          calc,
		treatmentRepo: treatmentRepo,
	}
}

func buildTreatment(req *dto.TreatmentRequest) (entity.Treatment, error) {
	treatment, err := entity.NewTreatment(req.Category, strings.TrimSpace(req.Name), req.Quantity, req.UnitPrice)
	if err != nil {
		return entity.Treatment{}, err
	}
	if treatment.Name == "" {
		return entity.Treatment{}, ErrTreatmentNameRequired
	}
	if treatment.Quantity < 0 {
		return entity.Treatment{}, ErrNegativeQuantity
	}
	if treatment.UnitPrice.IsNegative() {
		return entity.Treatment{}, ErrNegativeUnitPrice
	}
	return treatment, nil
}

// Create stores the treatment under the next id of its category.
func (u *treatmentUsecase) Create(ctx context.Context, req *dto.TreatmentRequest) (resp *dto.TreatmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceTreatment, "create", start, err) }()

	treatment, err := buildTreatment(req)
	if err != nil {
		return nil, err
	}

	unlock := u.locks.Lock(repository.CollectionTreatments)
	defer unlock()

	treatments, err := u.treatmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatments")
	}

	treatment.ID = nextID(treatments, func(t *entity.Treatment) int {
		if t.Category != treatment.Category {
			return 0
		}
		return t.ID
	})
	if err := u.treatmentRepo.SaveAll(ctx, append(cloneSlice(treatments), treatment)); err != nil {
		u.log.Warnf("Failed to save treatments: %+v", err)
		return nil, persistenceErr(err, "failed to save treatments")
	}

	u.log.Infof("Treatment created: category=%s, id=%d", treatment.Category, treatment.ID)
	return converter.TreatmentToResponse(&treatment, u.calc), nil
}

// Update replaces a treatment definition. Assignments keep the copy they
// were made with.
func (u *treatmentUsecase) Update(ctx context.Context, category string, id int, req *dto.TreatmentRequest) (resp *dto.TreatmentResponse, err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceTreatment, "update", start, err) }()

	cat, err := entity.ParseTreatmentCategory(category)
	if err != nil {
		return nil, err
	}
	treatment, err := buildTreatment(req)
	if err != nil {
		return nil, err
	}
	if treatment.Category != cat {
		return nil, ErrTreatmentCategoryChange
	}

	unlock := u.locks.Lock(repository.CollectionTreatments)
	defer unlock()

	treatments, err := u.treatmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatments")
	}

	idx := indexOf(treatments, func(t *entity.Treatment) bool { return t.Category == cat && t.ID == id })
	if idx < 0 {
		return nil, ErrTreatmentNotFound
	}

	treatment.ID = id
	updated := cloneSlice(treatments)
	updated[idx] = treatment
	if err := u.treatmentRepo.SaveAll(ctx, updated); err != nil {
		u.log.Warnf("Failed to save treatments: %+v", err)
		return nil, persistenceErr(err, "failed to save treatments")
	}

	u.log.Infof("Treatment updated: category=%s, id=%d", cat, id)
	return converter.TreatmentToResponse(&treatment, u.calc), nil
}

func (u *treatmentUsecase) Delete(ctx context.Context, category string, id int) (err error) {
	start := time.Now()
	defer func() { u.metrics.ObserveOperation(resourceTreatment, "delete", start, err) }()

	cat, err := entity.ParseTreatmentCategory(category)
	if err != nil {
		return err
	}

	unlock := u.locks.Lock(repository.CollectionTreatments)
	defer unlock()

	treatments, err := u.treatmentRepo.FindAll(ctx)
	if err != nil {
		u.log.Warnf("Failed to load treatments: %+v", err)
		return persistenceErr(err, "failed to load treatments")
	}

	idx := indexOf(treatments, func(t *entity.Treatment) bool { return t.Category == cat && t.ID == id })
	if idx < 0 {
		return ErrTreatmentNotFound
	}

	if err := u.treatmentRepo.SaveAll(ctx, without(treatments, idx)); err != nil {
		u.log.Warnf("Failed to save treatments: %+v", err)
		return persistenceErr(err, "failed to save treatments")
	}

	u.log.Infof("Treatment deleted: category=%s, id=%d", cat, id)
	return nil
}

func (u *treatmentUsecase) Get(ctx context.Context, category string, id int) (*dto.TreatmentResponse, error) {
	cat, err := entity.ParseTreatmentCategory(category)
	if err != nil {
		return nil, err
	}

	treatment, err := u.treatmentRepo.FindByRef(ctx, cat, id)
	if err != nil {
		u.log.Warnf("Failed to find treatment %s/%d: %+v", cat, id, err)
		return nil, persistenceErr(err, "failed to load treatments")
	}
	if treatment == nil {
		return nil, ErrTreatmentNotFound
	}
	return converter.TreatmentToResponse(treatment, u.calc), nil
}

// List applies every set filter: category, case-insensitive name substring,
// maximum unit price and maximum quantity.
func (u *treatmentUsecase) List(ctx context.Context, filter *dto.TreatmentFilterRequest) (*dto.TreatmentListResponse, error) {
	treatments, err := u.load(ctx, filterCategory(filter))
	if err != nil {
		return nil, err
	}
	if filter == nil {
		return converter.TreatmentsToListResponse(treatments, u.calc), nil
	}

	name := strings.ToLower(strings.TrimSpace(filter.Name))
	result := make([]entity.Treatment, 0, len(treatments))
	for _, t := range treatments {
		if name != "" && !strings.Contains(strings.ToLower(t.Name), name) {
			continue
		}
		if filter.MaxUnitPrice != nil && t.UnitPrice.GreaterThan(*filter.MaxUnitPrice) {
			continue
		}
		if filter.MaxQuantity != nil && t.Quantity > *filter.MaxQuantity {
			continue
		}
		result = append(result, t)
	}
	return converter.TreatmentsToListResponse(result, u.calc), nil
}

// Stats summarises treatments, optionally for a single category.
func (u *treatmentUsecase) Stats(ctx context.Context, category string) (*dto.TreatmentStatsResponse, error) {
	treatments, err := u.load(ctx, category)
	if err != nil {
		return nil, err
	}

	stats := &dto.TreatmentStatsResponse{Count: len(treatments), AverageCost: decimal.Zero}
	if category != "" && len(treatments) > 0 {
		stats.Category = string(treatments[0].Category)
	}
	if len(treatments) == 0 {
		return stats, nil
	}

	total := decimal.Zero
	mostExpensive := 0
	var maxCost decimal.Decimal
	for i, t := range treatments {
		cost := u.calc.Cost(t)
		total = total.Add(cost)
		if i == 0 || cost.GreaterThan(maxCost) {
			maxCost = cost
			mostExpensive = i
		}
	}

	stats.AverageCost = total.Div(decimal.NewFromInt(int64(len(treatments)))).Round(2)
	stats.MostExpensive = converter.TreatmentToResponse(&treatments[mostExpensive], u.calc)
	return stats, nil
}

func (u *treatmentUsecase) load(ctx context.Context, category string) ([]entity.Treatment, error) {
	var (
		treatments []entity.Treatment
		err        error
	)
	if strings.TrimSpace(category) == "" {
		treatments, err = u.treatmentRepo.FindAll(ctx)
	} else {
		cat, parseErr := entity.ParseTreatmentCategory(category)
		if parseErr != nil {
			return nil, parseErr
		}
		treatments, err = u.treatmentRepo.FindByCategory(ctx, cat)
	}
	if err != nil {
		u.log.Warnf("Failed to list treatments: %+v", err)
		return nil, persistenceErr(err, "failed to load treatments")
	}
	return treatments, nil
}

func filterCategory(filter *dto.TreatmentFilterRequest) string {
	if filter == nil {
		return ""
	}
	return filter.Category
}
