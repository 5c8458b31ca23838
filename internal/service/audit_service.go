package service

import (
	"context"

	"go-hospital-scheduling/internal/domain/entity"
	"go-hospital-scheduling/internal/domain/repository"
	"go-hospital-scheduling/pkg/clock"

	"github.com/sirupsen/logrus"
)

type actorKey struct{}

// WithActor attaches the authenticated actor to ctx for the audit trail.
func WithActor(ctx context.Context, actor string) context.Context {
	return context.WithValue(ctx, actorKey{}, actor)
}

// ActorFromContext returns the actor set by WithActor, or "system".
func ActorFromContext(ctx context.Context) string {
	if actor, ok := ctx.Value(actorKey{}).(string); ok && actor != "" {
		return actor
	}
	return "system"
}

type AuditService interface {
	LogCreate(ctx context.Context, action string, entityName string, entityID int, newValue interface{}) error
	LogUpdate(ctx context.Context, action string, entityName string, entityID int, oldValue, newValue interface{}) error
	LogDelete(ctx context.Context, action string, entityName string, entityID int, oldValue interface{}) error
	List(ctx context.Context) ([]entity.AuditLog, error)
}

type auditService struct {
	log       *logrus.Logger
	locks     *CollectionLocks
	clock     clock.Clock
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, locks *CollectionLocks, clk clock.Clock, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		locks:     locks,
		clock:     clk,
		auditRepo: auditRepo,
	}
}

// LogCreate logs a create action
func (s *auditService) LogCreate(ctx context.Context, action string, entityName string, entityID int, newValue interface{}) error {
	return s.write(ctx, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": nil,
		"new_value": newValue,
	})
}

// LogUpdate logs an update action with old and new values
func (s *auditService) LogUpdate(ctx context.Context, action string, entityName string, entityID int, oldValue, newValue interface{}) error {
	return s.write(ctx, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": newValue,
	})
}

// LogDelete logs a delete action with old value
func (s *auditService) LogDelete(ctx context.Context, action string, entityName string, entityID int, oldValue interface{}) error {
	return s.write(ctx, action, entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
		"old_value": oldValue,
		"new_value": nil,
	})
}

func (s *auditService) List(ctx context.Context) ([]entity.AuditLog, error) {
	return s.auditRepo.FindAll(ctx)
}

func (s *auditService) write(ctx context.Context, action string, metadata entity.JSON) error {
	unlock := s.locks.Lock(repository.CollectionAuditLogs)
	defer unlock()

	auditLog := &entity.AuditLog{
		Actor:     ActorFromContext(ctx),
		Action:    action,
		Metadata:  metadata,
		CreatedAt: s.clock.Now(),
	}

	if err := s.auditRepo.Create(ctx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
