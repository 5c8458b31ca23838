package repository

import (
	"context"
	"encoding/json"
)

// Collection names shared by every RecordStore backend.
const (
	CollectionDoctors              = "doctors"
	CollectionPatients             = "patients"
	CollectionAppointments         = "appointments"
	CollectionTreatments           = "treatments"
	CollectionTreatmentAssignments = "treatment_assignments"
	CollectionAuditLogs            = "audit_logs"
)

// RecordStore persists whole collections. LoadAll of a collection that was
// never saved returns an empty list; SaveAll replaces the collection atomically.
type RecordStore interface {
	LoadAll(ctx context.Context, collection string) ([]json.RawMessage, error)
	SaveAll(ctx context.Context, collection string, records []json.RawMessage) error
}
