package matrix

import (
	"context"
	"fmt"
	"sort"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Resolver finds the single pricing row that applies to a lot.
type Resolver struct {
	store  Store
	logger *zap.Logger
	// Strict turns a multiple match into ErrAmbiguousPrice instead of using the first row.
	Strict bool
}

// NewResolver creates a resolver over store.
func NewResolver(store Store, logger *zap.Logger) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Resolver{store: store, logger: logger}
}

// Resolve returns the applicable row or a *domain.NoPriceError. Candidates are ordered by peso_de
// ascending (unbounded first) then peso_ate ascending (unbounded last).
func (r *Resolver) Resolve(ctx context.Context, q domain.MatrixQuery) (*domain.PricingMatrixRow, error) {
	rows, err := r.store.FindCandidates(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("find pricing candidates: %w", err)
	}

	candidates := rows[:0]
	for _, row := range rows {
		if Match(row, q) {
			candidates = append(candidates, row)
		}
	}
	if len(candidates) == 0 {
		return nil, &domain.NoPriceError{Query: q}
	}
	sortCandidates(candidates)

	if len(candidates) > 1 {
		ids := make([]string, len(candidates))
		for i, c := range candidates {
			ids[i] = c.ID
		}
		if r.Strict {
			return nil, fmt.Errorf("%w: %s matched %v", domain.ErrAmbiguousPrice, q.Key, ids)
		}
		r.logger.Warn("multiple pricing rows match, using the first",
			zap.String("key", q.Key.String()),
			zap.String("entry_weight_kg", q.EntryWeightKg.String()),
			zap.Time("date_ref", q.DateRef),
			zap.Strings("row_ids", ids))
	}

	row := candidates[0]
	return &row, nil
}

func sortCandidates(rows []domain.PricingMatrixRow) {
	sort.SliceStable(rows, func(i, j int) bool { return candidateLess(rows[i], rows[j]) })
}

func candidateLess(a, b domain.PricingMatrixRow) bool {
	if c := compareBound(a.PesoDeKg, b.PesoDeKg, true); c != 0 {
		return c < 0
	}
	if c := compareBound(a.PesoAteKg, b.PesoAteKg, false); c != 0 {
		return c < 0
	}
	return a.ID < b.ID
}

// compareBound orders optional bounds; nilFirst places an unbounded side before any value.
func compareBound(a, b *decimal.Decimal, nilFirst bool) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		if nilFirst {
			return -1
		}
		return 1
	case b == nil:
		if nilFirst {
			return 1
		}
		return -1
	}
	return a.Cmp(*b)
}
