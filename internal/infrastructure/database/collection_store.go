package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// recordCollection is one row per collection; payload is the JSON array of records.
type recordCollection struct {
	Name      string    `gorm:"column:name;primaryKey"`
	Payload   string    `gorm:"column:payload;type:jsonb"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (recordCollection) TableName() string {
	return "record_collections"
}

// CollectionStore is a RecordStore backed by the record_collections table.
type CollectionStore struct {
	db *gorm.DB
}

func NewCollectionStore(db *gorm.DB) *CollectionStore {
	return &CollectionStore{db: db}
}

func (s *CollectionStore) LoadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	var rows []recordCollection
	if err := s.db.WithContext(ctx).Where("name = ?", collection).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("query collection %s%s: %w", collection, sqlState(err), err)
	}
	if len(rows) == 0 || rows[0].Payload == "" {
		return []json.RawMessage{}, nil
	}

	var records []json.RawMessage
	if err := json.Unmarshal([]byte(rows[0].Payload), &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

// SaveAll upserts the collection row in a single statement.
func (s *CollectionStore) SaveAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	payload, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	row := recordCollection{Name: collection, Payload: string(payload)}
	err = s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "name"}},
			DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
		}).
		Create(&row).Error
	if err != nil {
		return fmt.Errorf("save collection %s%s: %w", collection, sqlState(err), err)
	}
	return nil
}

// sqlState renders the SQLSTATE of a postgres error for log lines.
func sqlState(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return fmt.Sprintf(" (sqlstate %s)", pgErr.Code)
	}
	return ""
}
