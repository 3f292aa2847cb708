package matrix

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/pkg/dateutil"
	"github.com/shopspring/decimal"
)

// ValidateNoOverlap lists the existing rows that collide with candidate. Two rows collide when they
// share the key, both are active, their weight windows intersect and their validity windows
// intersect. Weight windows are half-open, so rows that only touch at a bound do not collide.
func ValidateNoOverlap(candidate domain.PricingMatrixRow, existing []domain.PricingMatrixRow) []domain.Conflict {
	if !candidate.IsActive {
		return nil
	}
	var conflicts []domain.Conflict
	for _, ex := range existing {
		if candidate.ID != "" && ex.ID == candidate.ID {
			continue
		}
		if Overlaps(candidate, ex) {
			conflicts = append(conflicts, domain.Conflict{
				RowID:       candidate.ID,
				ConflictsID: ex.ID,
				Label:       ex.BuildLabel(),
			})
		}
	}
	return conflicts
}

// Overlaps reports whether two rows occupy the same key, weight and date space.
func Overlaps(a, b domain.PricingMatrixRow) bool {
	if !a.IsActive || !b.IsActive || a.MatrixKey != b.MatrixKey {
		return false
	}
	return weightsOverlap(a, b) &&
		dateutil.DaysOverlap(a.StartValidity, a.EndValidity, b.StartValidity, b.EndValidity)
}

// weightsOverlap is newMax > exMin && newMin < exMax with nil bounds as ±∞.
func weightsOverlap(a, b domain.PricingMatrixRow) bool {
	return lessBound(b.PesoDeKg, a.PesoAteKg) && lessBound(a.PesoDeKg, b.PesoAteKg)
}

// lessBound reports lower < upper where a nil lower is -∞ and a nil upper is +∞.
func lessBound(lower, upper *decimal.Decimal) bool {
	if lower == nil || upper == nil {
		return true
	}
	return lower.LessThan(*upper)
}

// FindOverlaps checks a batch of rows against each other, e.g. before a bulk import.
func FindOverlaps(rows []domain.PricingMatrixRow) []domain.Conflict {
	var conflicts []domain.Conflict
	for i := range rows {
		for j := i + 1; j < len(rows); j++ {
			if Overlaps(rows[i], rows[j]) {
				conflicts = append(conflicts, domain.Conflict{
					RowID:       rows[i].ID,
					ConflictsID: rows[j].ID,
					Label:       rows[j].BuildLabel(),
				})
			}
		}
	}
	return conflicts
}
