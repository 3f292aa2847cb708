package matrix

import (
	"strings"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/pkg/dateutil"
)

// ValidateRow checks a row before it is written. Every failure is a *domain.ValidationError.
func ValidateRow(row *domain.PricingMatrixRow) error {
	required := map[string]string{
		"unit_code":   row.UnitCode,
		"modalidade":  row.Modalidade,
		"dieta":       row.Dieta,
		"tipo_animal": row.TipoAnimal,
	}
	for _, field := range []string{"unit_code", "modalidade", "dieta", "tipo_animal"} {
		if strings.TrimSpace(required[field]) == "" {
			return domain.NewValidationError(field, "is required")
		}
	}
	if row.Modalidade != domain.ModalityDaily && row.Modalidade != domain.ModalityArrobaGain {
		return domain.NewValidationError("modalidade", "must be %q or %q, got %q",
			domain.ModalityDaily, domain.ModalityArrobaGain, row.Modalidade)
	}

	if row.PesoDeKg != nil && row.PesoDeKg.IsNegative() {
		return domain.NewValidationError("peso_de_kg", "cannot be negative")
	}
	if row.PesoDeKg != nil && row.PesoAteKg != nil && row.PesoDeKg.GreaterThanOrEqual(*row.PesoAteKg) {
		return domain.NewValidationError("peso_ate_kg", "must be greater than peso_de_kg (%s >= %s)",
			row.PesoDeKg, row.PesoAteKg)
	}

	if row.StartValidity.IsZero() {
		return domain.NewValidationError("start_validity", "is required")
	}
	if row.EndValidity != nil && dateutil.DateOnly(row.StartValidity).After(dateutil.DateOnly(*row.EndValidity)) {
		return domain.NewValidationError("end_validity", "must not be before start_validity")
	}

	switch row.Modalidade {
	case domain.ModalityArrobaGain:
		if row.TabelaFinalRPorArroba == nil {
			return domain.NewValidationError("tabela_final_r_por_arroba", "is required for %s", row.Modalidade)
		}
		if row.TabelaFinalRPorArroba.IsNegative() {
			return domain.NewValidationError("tabela_final_r_por_arroba", "cannot be negative")
		}
	case domain.ModalityDaily:
		if row.DiariaRPorCabDia == nil {
			return domain.NewValidationError("diaria_r_por_cab_dia", "is required for %s", row.Modalidade)
		}
		if row.DiariaRPorCabDia.IsNegative() {
			return domain.NewValidationError("diaria_r_por_cab_dia", "cannot be negative")
		}
	}
	return nil
}
