package output

import (
	"testing"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func lot(name string, roi, margin int64) LotReport {
	return LotReport{Result: &domain.SimulationResult{
		Name:        name,
		ROIPct:      decimal.NewFromInt(roi),
		MarginTotal: decimal.NewFromInt(margin),
	}}
}

func TestAnalyzeLots_SelectsHighestROI(t *testing.T) {
	r := &Report{Lots: []LotReport{lot("A", 5, 300), lot("B", 8, 250), lot("C", 2, 100)}}

	rec := AnalyzeLots(r)
	assert.Equal(t, "B", rec.LotName)
	assert.True(t, rec.ROIPct.Equal(decimal.NewFromInt(8)))
	assert.True(t, rec.MarginGap.Equal(decimal.NewFromInt(-50)), "gap is measured against the runner-up by ROI")
}

func TestAnalyzeLots_TieKeepsFirst(t *testing.T) {
	r := &Report{Lots: []LotReport{lot("A", 5, 300), lot("B", 5, 400)}}
	assert.Equal(t, "A", AnalyzeLots(r).LotName)
}

func TestAnalyzeLots_Empty(t *testing.T) {
	rec := AnalyzeLots(&Report{Lots: []LotReport{{}}})
	assert.Empty(t, rec.LotName)
	assert.True(t, rec.MarginGap.IsZero())
}

func TestGenerateAssumptions_FillsDefaults(t *testing.T) {
	got := GenerateAssumptions(domain.Defaults{CarcassYieldPct: decimal.NewFromInt(54)})
	assert.Contains(t, got[0], "15 kg")
	assert.Contains(t, got[1], "54%")
	assert.Contains(t, got[2], "2.5%")
}
