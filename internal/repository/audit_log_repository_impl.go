package repository

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

type auditLogRepository struct {
	records collection[entity.AuditLog]
}

func NewAuditLogRepository(store domainRepo.RecordStore) domainRepo.AuditLogRepository {
	return &auditLogRepository{
		records: newCollection[entity.AuditLog](store, domainRepo.CollectionAuditLogs),
	}
}

// Create appends log and assigns the next id.
func (r *auditLogRepository) Create(ctx context.Context, log *entity.AuditLog) error {
	logs, err := r.records.all(ctx)
	if err != nil {
		return err
	}

	var maxID int64
	for _, l := range logs {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	log.ID = maxID + 1

	return r.records.replace(ctx, append(logs, *log))
}

func (r *auditLogRepository) FindAll(ctx context.Context) ([]entity.AuditLog, error) {
	return r.records.all(ctx)
}
