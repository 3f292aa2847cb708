package domain

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/confinamento/feedlot-engine/pkg/dateutil"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// MatrixKey is the categorical key of a pricing row.
type MatrixKey struct {
	UnitCode   string `yaml:"unit_code" json:"unit_code"`
	Modalidade string `yaml:"modalidade" json:"modalidade"`
	Dieta      string `yaml:"dieta" json:"dieta"`
	TipoAnimal string `yaml:"tipo_animal" json:"tipo_animal"`
}

func (k MatrixKey) String() string {
	return fmt.Sprintf("%s/%s/%s/%s", k.UnitCode, k.Modalidade, k.Dieta, k.TipoAnimal)
}

// MatrixQuery is the input of a pricing-row lookup.
type MatrixQuery struct {
	Key           MatrixKey       `json:"key"`
	EntryWeightKg decimal.Decimal `json:"entry_weight_kg"`
	DateRef       time.Time       `json:"date_ref"`
}

// PricingMatrixRow is one rate-card entry. A nil weight bound is unbounded on that side and a nil
// EndValidity is open-ended.
type PricingMatrixRow struct {
	ID        string `yaml:"id" json:"id"`
	MatrixKey `yaml:",inline"`

	PesoDeKg      *decimal.Decimal `yaml:"peso_de_kg,omitempty" json:"peso_de_kg"`
	PesoAteKg     *decimal.Decimal `yaml:"peso_ate_kg,omitempty" json:"peso_ate_kg"`
	StartValidity time.Time        `yaml:"start_validity" json:"start_validity"`
	EndValidity   *time.Time       `yaml:"end_validity,omitempty" json:"end_validity"`

	// Suggested zootechnical parameters.
	DaysOnFeed      *int             `yaml:"dias_confinamento,omitempty" json:"dias_confinamento,omitempty"`
	ADGKgDay        *decimal.Decimal `yaml:"gmd_kg_dia,omitempty" json:"gmd_kg_dia,omitempty"`
	DMIPctBW        *decimal.Decimal `yaml:"pct_pv,omitempty" json:"pct_pv,omitempty"`
	DMIKgDay        *decimal.Decimal `yaml:"cms_kg_dia,omitempty" json:"cms_kg_dia,omitempty"`
	CarcassYieldPct *decimal.Decimal `yaml:"rendimento_carcaca_pct,omitempty" json:"rendimento_carcaca_pct,omitempty"`
	FeedCostKgDM    *decimal.Decimal `yaml:"custo_ms_kg,omitempty" json:"custo_ms_kg,omitempty"`

	TabelaFinalRPorArroba *decimal.Decimal `yaml:"tabela_final_r_por_arroba,omitempty" json:"tabela_final_r_por_arroba,omitempty"`
	DiariaRPorCabDia      *decimal.Decimal `yaml:"diaria_r_por_cab_dia,omitempty" json:"diaria_r_por_cab_dia,omitempty"`

	ConcatLabel string    `yaml:"concat_label,omitempty" json:"concat_label"`
	IsActive    bool      `yaml:"is_active" json:"is_active"`
	CreatedAt   time.Time `yaml:"-" json:"created_at"`
	UpdatedAt   time.Time `yaml:"-" json:"updated_at"`
}

// Key returns the categorical key of the row.
func (r *PricingMatrixRow) Key() MatrixKey { return r.MatrixKey }

// ServicePrice returns the price field that applies to the row's modality.
func (r *PricingMatrixRow) ServicePrice() (decimal.Decimal, bool) {
	switch r.Modalidade {
	case ModalityArrobaGain:
		if r.TabelaFinalRPorArroba != nil {
			return *r.TabelaFinalRPorArroba, true
		}
	case ModalityDaily:
		if r.DiariaRPorCabDia != nil {
			return *r.DiariaRPorCabDia, true
		}
	}
	return decimal.Zero, false
}

// BuildLabel renders the human-readable concat_label of the row.
func (r *PricingMatrixRow) BuildLabel() string {
	from, to := "0", "∞"
	if r.PesoDeKg != nil {
		from = r.PesoDeKg.String()
	}
	if r.PesoAteKg != nil {
		to = r.PesoAteKg.String()
	}
	end := "aberto"
	if r.EndValidity != nil {
		end = r.EndValidity.Format("02/01/2006")
	}
	return fmt.Sprintf("%s | %s | %s | %s | %s-%s kg | %s a %s",
		r.UnitCode, r.Modalidade, r.Dieta, r.TipoAnimal, from, to,
		r.StartValidity.Format("02/01/2006"), end)
}

// Clone returns a deep copy of the row.
func (r PricingMatrixRow) Clone() PricingMatrixRow {
	out := r
	out.PesoDeKg = cloneDecimal(r.PesoDeKg)
	out.PesoAteKg = cloneDecimal(r.PesoAteKg)
	if r.EndValidity != nil {
		end := *r.EndValidity
		out.EndValidity = &end
	}
	if r.DaysOnFeed != nil {
		days := *r.DaysOnFeed
		out.DaysOnFeed = &days
	}
	out.ADGKgDay = cloneDecimal(r.ADGKgDay)
	out.DMIPctBW = cloneDecimal(r.DMIPctBW)
	out.DMIKgDay = cloneDecimal(r.DMIKgDay)
	out.CarcassYieldPct = cloneDecimal(r.CarcassYieldPct)
	out.FeedCostKgDM = cloneDecimal(r.FeedCostKgDM)
	out.TabelaFinalRPorArroba = cloneDecimal(r.TabelaFinalRPorArroba)
	out.DiariaRPorCabDia = cloneDecimal(r.DiariaRPorCabDia)
	return out
}

// UnmarshalYAML decodes a row from a rate-card file. Rows without is_active are active.
func (r *PricingMatrixRow) UnmarshalYAML(value *yaml.Node) error {
	type plain PricingMatrixRow
	p := plain{IsActive: true}
	if err := value.Decode(&p); err != nil {
		return err
	}
	*r = PricingMatrixRow(p)
	return nil
}

// calendarDate decodes a JSON date written as YYYY-MM-DD or as an RFC 3339 timestamp.
type calendarDate time.Time

func (d *calendarDate) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	if t, err := dateutil.ParseDate(s); err == nil {
		*d = calendarDate(t)
		return nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return fmt.Errorf("invalid date %q: expected YYYY-MM-DD", s)
	}
	*d = calendarDate(t)
	return nil
}

// UnmarshalJSON accepts date_ref as YYYY-MM-DD as well as RFC 3339.
func (q *MatrixQuery) UnmarshalJSON(b []byte) error {
	type plain MatrixQuery
	aux := struct {
		*plain
		DateRef *calendarDate `json:"date_ref"`
	}{plain: (*plain)(q)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.DateRef != nil {
		q.DateRef = time.Time(*aux.DateRef)
	}
	return nil
}

// UnmarshalJSON accepts the validity dates as YYYY-MM-DD as well as RFC 3339.
func (r *PricingMatrixRow) UnmarshalJSON(b []byte) error {
	type plain PricingMatrixRow
	aux := struct {
		*plain
		StartValidity *calendarDate `json:"start_validity"`
		EndValidity   *calendarDate `json:"end_validity"`
	}{plain: (*plain)(r)}
	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}
	if aux.StartValidity != nil {
		r.StartValidity = time.Time(*aux.StartValidity)
	}
	if aux.EndValidity != nil {
		end := time.Time(*aux.EndValidity)
		r.EndValidity = &end
	}
	return nil
}
