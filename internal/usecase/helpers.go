package usecase

import (
	"strings"

	"go-hospital-scheduling/pkg/apperror"
)

// nextID returns max(id)+1, or 1 for an empty collection.
func nextID[T any](records []T, id func(*T) int) int {
	maxID := 0
	for i := range records {
		if v := id(&records[i]); v > maxID {
			maxID = v
		}
	}
	return maxID + 1
}

// indexOf returns the position of the first record matching, or -1.
func indexOf[T any](records []T, match func(*T) bool) int {
	for i := range records {
		if match(&records[i]) {
			return i
		}
	}
	return -1
}

// without returns a copy of records minus position i.
func without[T any](records []T, i int) []T {
	out := make([]T, 0, len(records)-1)
	out = append(out, records[:i]...)
	return append(out, records[i+1:]...)
}

// cloneSlice copies records so the caller can mutate without touching the
// loaded snapshot.
func cloneSlice[T any](records []T) []T {
	return append([]T(nil), records...)
}

// looksLikeEmail is the minimal shape check used before lookups.
func looksLikeEmail(email string) bool {
	return strings.Contains(email, "@")
}

func persistenceErr(err error, msg string) error {
	return apperror.Persistence(err, msg)
}
