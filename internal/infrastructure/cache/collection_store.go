package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// DefaultKeyPrefix namespaces collection keys.
const DefaultKeyPrefix = "hospital:records:"

// CollectionStore is a RecordStore keeping each collection as one JSON value
// under <prefix><collection>. Keys never expire.
type CollectionStore struct {
	client redis.UniversalClient
	prefix string
}

func NewCollectionStore(client redis.UniversalClient, prefix string) *CollectionStore {
	if prefix == "" {
		prefix = DefaultKeyPrefix
	}
	return &CollectionStore{client: client, prefix: prefix}
}

func (s *CollectionStore) key(collection string) string {
	return s.prefix + collection
}

func (s *CollectionStore) LoadAll(ctx context.Context, collection string) ([]json.RawMessage, error) {
	data, err := s.client.Get(ctx, s.key(collection)).Bytes()
	if errors.Is(err, redis.Nil) {
		return []json.RawMessage{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get collection %s: %w", collection, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse collection %s: %w", collection, err)
	}
	if records == nil {
		records = []json.RawMessage{}
	}
	return records, nil
}

func (s *CollectionStore) SaveAll(ctx context.Context, collection string, records []json.RawMessage) error {
	if records == nil {
		records = []json.RawMessage{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encode collection %s: %w", collection, err)
	}

	if err := s.client.Set(ctx, s.key(collection), data, 0).Err(); err != nil {
		return fmt.Errorf("set collection %s: %w", collection, err)
	}
	return nil
}
