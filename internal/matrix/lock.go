package matrix

import (
	"context"
	"sort"
	"sync"

	"github.com/confinamento/feedlot-engine/internal/domain"
)

// KeyLocker is implemented by stores that can serialise writers across processes. WithKeyLock
// holds every key in keys until fn returns and hands fn a Store bound to the same unit of work,
// so the overlap check and the write commit together or not at all.
type KeyLocker interface {
	WithKeyLock(ctx context.Context, keys []domain.MatrixKey, fn func(Store) error) error
}

// SortedKeys returns the distinct keys in a fixed order. Locks are always taken in this order.
func SortedKeys(keys []domain.MatrixKey) []domain.MatrixKey {
	seen := make(map[domain.MatrixKey]struct{}, len(keys))
	out := make([]domain.MatrixKey, 0, len(keys))
	for _, k := range keys {
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}

// keyLocks is an in-process mutex per matrix key.
type keyLocks struct {
	mu    sync.Mutex
	locks map[domain.MatrixKey]*sync.Mutex
}

func (l *keyLocks) get(k domain.MatrixKey) *sync.Mutex {
	l.mu.Lock()
	defer l.mu.Unlock()
	if l.locks == nil {
		l.locks = make(map[domain.MatrixKey]*sync.Mutex)
	}
	m, ok := l.locks[k]
	if !ok {
		m = &sync.Mutex{}
		l.locks[k] = m
	}
	return m
}

// lock acquires every key in sorted order and returns the matching unlock.
func (l *keyLocks) lock(keys []domain.MatrixKey) func() {
	held := make([]*sync.Mutex, 0, len(keys))
	for _, k := range SortedKeys(keys) {
		m := l.get(k)
		m.Lock()
		held = append(held, m)
	}
	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].Unlock()
		}
	}
}
