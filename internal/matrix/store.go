// Package matrix resolves and maintains the feedlot service rate card.
package matrix

import (
	"context"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// Store is the persistence port for pricing rows.
type Store interface {
	// FindCandidates returns active rows that may apply to q. Implementations may over-select;
	// the resolver filters again.
	FindCandidates(ctx context.Context, q domain.MatrixQuery) ([]domain.PricingMatrixRow, error)
	// ListByKey returns every row, active or not, sharing the categorical key.
	ListByKey(ctx context.Context, key domain.MatrixKey) ([]domain.PricingMatrixRow, error)
	// Get returns domain.ErrNotFound when the row does not exist.
	Get(ctx context.Context, id string) (*domain.PricingMatrixRow, error)
	List(ctx context.Context, filter ListFilter) ([]domain.PricingMatrixRow, error)
	Insert(ctx context.Context, row *domain.PricingMatrixRow) error
	Update(ctx context.Context, row *domain.PricingMatrixRow) error
}

// ListFilter narrows a List call. Empty fields match everything.
type ListFilter struct {
	UnitCode   string
	Modalidade string
	ActiveOnly bool
}

// Match reports whether the row applies to the query: active, same key, entry weight inside the
// half-open window [peso_de, peso_ate) and reference date inside the inclusive validity window.
func Match(row domain.PricingMatrixRow, q domain.MatrixQuery) bool {
	if !row.IsActive || row.MatrixKey != q.Key {
		return false
	}
	if !weightInWindow(q.EntryWeightKg, row.PesoDeKg, row.PesoAteKg) {
		return false
	}
	return dateutil.WithinDays(q.DateRef, row.StartValidity, row.EndValidity)
}

func weightInWindow(w decimal.Decimal, from, to *decimal.Decimal) bool {
	if from != nil && w.LessThan(*from) {
		return false
	}
	if to != nil && w.GreaterThanOrEqual(*to) {
		return false
	}
	return true
}

func (f ListFilter) matches(row domain.PricingMatrixRow) bool {
	if f.ActiveOnly && !row.IsActive {
		return false
	}
	if f.UnitCode != "" && row.UnitCode != f.UnitCode {
		return false
	}
	if f.Modalidade != "" && row.Modalidade != f.Modalidade {
		return false
	}
	return true
}
