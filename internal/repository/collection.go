package repository

import (
	"context"
	"encoding/json"
	"fmt"

	domainRepo "go-hospital-scheduling/internal/domain/repository"
)

// collection decodes and encodes one RecordStore collection as typed records.
type collection[T any] struct {
	store domainRepo.RecordStore
	name  string
}

func newCollection[T any](store domainRepo.RecordStore, name string) collection[T] {
	return collection[T]{store: store, name: name}
}

func (c collection[T]) all(ctx context.Context) ([]T, error) {
	raw, err := c.store.LoadAll(ctx, c.name)
	if err != nil {
		return nil, fmt.Errorf("load %s: %w", c.name, err)
	}

	records := make([]T, 0, len(raw))
	for i, r := range raw {
		var record T
		if err := json.Unmarshal(r, &record); err != nil {
			return nil, fmt.Errorf("decode %s record %d: %w", c.name, i, err)
		}
		records = append(records, record)
	}
	return records, nil
}

func (c collection[T]) replace(ctx context.Context, records []T) error {
	raw := make([]json.RawMessage, 0, len(records))
	for i := range records {
		b, err := json.Marshal(records[i])
		if err != nil {
			return fmt.Errorf("encode %s record %d: %w", c.name, i, err)
		}
		raw = append(raw, b)
	}

	if err := c.store.SaveAll(ctx, c.name, raw); err != nil {
		return fmt.Errorf("save %s: %w", c.name, err)
	}
	return nil
}

func (c collection[T]) filter(ctx context.Context, keep func(*T) bool) ([]T, error) {
	records, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]T, 0, len(records))
	for i := range records {
		if keep(&records[i]) {
			result = append(result, records[i])
		}
	}
	return result, nil
}

// first returns nil, nil when no record matches.
func (c collection[T]) first(ctx context.Context, match func(*T) bool) (*T, error) {
	records, err := c.all(ctx)
	if err != nil {
		return nil, err
	}
	for i := range records {
		if match(&records[i]) {
			return &records[i], nil
		}
	}
	return nil, nil
}
