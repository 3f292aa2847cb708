package domain

import "github.com/shopspring/decimal"

// Defaults groups the engine constants that callers may override (e.g. in tests or per tenant).
type Defaults struct {
	ArrobaKg        decimal.Decimal `yaml:"arroba_kg" json:"arroba_kg" mapstructure:"arroba_kg"`
	CarcassYieldPct decimal.Decimal `yaml:"carcass_yield_pct" json:"carcass_yield_pct" mapstructure:"carcass_yield_pct"`
	DMIPctBW        decimal.Decimal `yaml:"dmi_pct_bw" json:"dmi_pct_bw" mapstructure:"dmi_pct_bw"`
}

// StandardDefaults returns the market conventions: 15 kg arroba, 53% carcass yield, 2.5% DMI.
func StandardDefaults() Defaults {
	return Defaults{
		ArrobaKg:        decimal.NewFromInt(15),
		CarcassYieldPct: decimal.NewFromInt(53),
		DMIPctBW:        decimal.NewFromFloat(2.5),
	}
}

// OrStandard fills zero-valued fields from StandardDefaults.
func (d Defaults) OrStandard() Defaults {
	std := StandardDefaults()
	if !d.ArrobaKg.IsPositive() {
		d.ArrobaKg = std.ArrobaKg
	}
	if !d.CarcassYieldPct.IsPositive() {
		d.CarcassYieldPct = std.CarcassYieldPct
	}
	if !d.DMIPctBW.IsPositive() {
		d.DMIPctBW = std.DMIPctBW
	}
	return d
}
