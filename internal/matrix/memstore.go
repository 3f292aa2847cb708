package matrix

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/confinamento/feedlot-engine/internal/domain"
)

// MemoryStore is an in-memory Store used by the CLI and tests. Rows are cloned on the way in and out.
type MemoryStore struct {
	mu   sync.RWMutex
	rows map[string]domain.PricingMatrixRow
}

var _ Store = (*MemoryStore)(nil)

// NewMemoryStore creates a store seeded with rows. Seeds bypass overlap validation.
func NewMemoryStore(seed ...domain.PricingMatrixRow) *MemoryStore {
	s := &MemoryStore{rows: make(map[string]domain.PricingMatrixRow, len(seed))}
	for _, r := range seed {
		s.rows[r.ID] = r.Clone()
	}
	return s
}

func (s *MemoryStore) FindCandidates(_ context.Context, q domain.MatrixQuery) ([]domain.PricingMatrixRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PricingMatrixRow
	for _, r := range s.rows {
		if Match(r, q) {
			out = append(out, r.Clone())
		}
	}
	return out, nil
}

func (s *MemoryStore) ListByKey(_ context.Context, key domain.MatrixKey) ([]domain.PricingMatrixRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	var out []domain.PricingMatrixRow
	for _, r := range s.rows {
		if r.MatrixKey == key {
			out = append(out, r.Clone())
		}
	}
	sortByID(out)
	return out, nil
}

func (s *MemoryStore) Get(_ context.Context, id string) (*domain.PricingMatrixRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	r, ok := s.rows[id]
	if !ok {
		return nil, fmt.Errorf("pricing row %s: %w", id, domain.ErrNotFound)
	}
	c := r.Clone()
	return &c, nil
}

func (s *MemoryStore) List(_ context.Context, filter ListFilter) ([]domain.PricingMatrixRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.PricingMatrixRow, 0, len(s.rows))
	for _, r := range s.rows {
		if filter.matches(r) {
			out = append(out, r.Clone())
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].MatrixKey != out[j].MatrixKey {
			return out[i].MatrixKey.String() < out[j].MatrixKey.String()
		}
		return candidateLess(out[i], out[j])
	})
	return out, nil
}

func (s *MemoryStore) Insert(_ context.Context, row *domain.PricingMatrixRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[row.ID]; exists {
		return fmt.Errorf("pricing row %s already exists", row.ID)
	}
	s.rows[row.ID] = row.Clone()
	return nil
}

func (s *MemoryStore) Update(_ context.Context, row *domain.PricingMatrixRow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.rows[row.ID]; !exists {
		return fmt.Errorf("pricing row %s: %w", row.ID, domain.ErrNotFound)
	}
	s.rows[row.ID] = row.Clone()
	return nil
}

func sortByID(rows []domain.PricingMatrixRow) {
	sort.Slice(rows, func(i, j int) bool { return rows[i].ID < rows[j].ID })
}
