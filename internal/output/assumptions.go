package output

import (
	"fmt"

	"github.com/confinamento/feedlot-engine/internal/domain"
)

// GenerateAssumptions lists the modeling conventions behind a report.
func GenerateAssumptions(d domain.Defaults) []string {
	d = d.OrStandard()
	return []string{
		fmt.Sprintf("Arroba: %s kg de carcaça", d.ArrobaKg.String()),
		fmt.Sprintf("Rendimento de carcaça padrão: %s%%", d.CarcassYieldPct.String()),
		fmt.Sprintf("Consumo de MS padrão: %s%% do peso vivo", d.DMIPctBW.String()),
		"Mortalidade aplicada sobre o custo de compra do animal",
		"Valores monetários arredondados em centavos por componente",
	}
}
