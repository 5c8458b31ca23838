package service

import (
	"sort"
	"sync"

	"go-hospital-scheduling/internal/domain/repository"
)

// lockOrder is the only order in which collection mutexes are ever taken.
// Collections missing from it sort after the known ones, by name.
var lockOrder = map[string]int{
	repository.CollectionDoctors:              1,
	repository.CollectionPatients:             2,
	repository.CollectionTreatments:           3,
	repository.CollectionTreatmentAssignments: 4,
	repository.CollectionAppointments:         5,
	repository.CollectionAuditLogs:            6,
}

// CollectionLocks serializes load-mutate-save cycles per collection.
//
// Lock Ordering (to prevent deadlocks):
// 1. Acquire every collection a call writes or validates against, in one Lock call
// 2. Then load, validate and save
// Audit writes lock audit_logs separately; it is last in the order, so holding
// any other collection while auditing is safe.
type CollectionLocks struct {
	mu sync.Map // map[string]*sync.Mutex
}

func NewCollectionLocks() *CollectionLocks {
	return &CollectionLocks{}
}

// Lock acquires the named collections in the fixed order and returns a
// function releasing them in reverse. Duplicates are ignored.
func (l *CollectionLocks) Lock(collections ...string) (unlock func()) {
	names := orderCollections(collections)

	held := make([]*sync.Mutex, 0, len(names))
	for _, name := range names {
		mu := l.collectionMutex(name)
		mu.Lock()
		held = append(held, mu)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			for i := len(held) - 1; i >= 0; i-- {
				held[i].Unlock()
			}
		})
	}
}

func (l *CollectionLocks) collectionMutex(name string) *sync.Mutex {
	mu, _ := l.mu.LoadOrStore(name, &sync.Mutex{})
	return mu.(*sync.Mutex)
}

func orderCollections(collections []string) []string {
	seen := make(map[string]struct{}, len(collections))
	names := make([]string, 0, len(collections))
	for _, c := range collections {
		if _, ok := seen[c]; ok {
			continue
		}
		seen[c] = struct{}{}
		names = append(names, c)
	}

	rank := func(name string) int {
		if r, ok := lockOrder[name]; ok {
			return r
		}
		return len(lockOrder) + 1
	}
	sort.Slice(names, func(i, j int) bool {
		ri, rj := rank(names[i]), rank(names[j])
		if ri != rj {
			return ri < rj
		}
		return names[i] < names[j]
	})
	return names
}
