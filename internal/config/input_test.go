package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	tmpfile, err := os.CreateTemp("", "test_study_*.yaml")
	require.NoError(t, err)
	t.Cleanup(func() { os.Remove(tmpfile.Name()) })

	_, err = tmpfile.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, tmpfile.Close())
	return tmpfile.Name()
}

func TestNewInputParser(t *testing.T) {
	parser := NewInputParser()
	assert.NotNil(t, parser)
}

func TestLoadFromFile_Success(t *testing.T) {
	testStudy := "simulations:\n" +
		"  - name: \"Lote 12\"\n" +
		"    entry_weight_kg: 300\n" +
		"    days_on_feed: 120\n" +
		"    adg_kg_day: 1.4\n" +
		"    dmi_pct_bw: 2.5\n" +
		"    use_average_weight: true\n" +
		"    feed_waste_pct: 5\n" +
		"    selling_price_per_at: \"320.00\"\n" +
		"    purchase_price_per_at: 200\n" +
		"    feed_cost_kg_dm: 0.45\n" +
		"    negotiation:\n" +
		"      modalidade: \"Arroba Prod.\"\n" +
		"      service_price: 250\n" +
		"      qty: 100\n" +
		"      lean_yield_pct: 50\n" +
		"sensitivity:\n" +
		"  price_deltas: [-5, 0, 5]\n"

	parser := NewInputParser()
	study, err := parser.LoadFromFile(writeTemp(t, testStudy))

	require.NoError(t, err)
	require.Len(t, study.Simulations, 1)
	sim := study.Simulations[0]
	assert.Equal(t, "Lote 12", sim.Name)
	assert.True(t, sim.ADGKgDay.Equal(decimal.RequireFromString("1.4")))
	require.NotNil(t, sim.DMIPctBW)
	assert.True(t, sim.DMIPctBW.Equal(decimal.RequireFromString("2.5")))
	assert.Nil(t, sim.DMIKgDay)
	assert.Nil(t, sim.CarcassYieldPct)
	assert.True(t, sim.SellingPricePerAt.Equal(decimal.NewFromInt(320)))
	require.NotNil(t, sim.Negotiation)
	assert.Equal(t, domain.ModalityArrobaGain, sim.Negotiation.Modality)
	assert.Equal(t, 100, sim.Negotiation.HeadCount)
	require.NotNil(t, sim.Negotiation.LeanYieldPct)

	require.NotNil(t, study.Sensitivity)
	assert.Len(t, study.Sensitivity.PriceDeltas, 3)
	assert.Len(t, study.Sensitivity.FeedDeltas, 5, "missing feed deltas default to the standard steps")
}

func TestLoadFromFile_FileNotFound(t *testing.T) {
	parser := NewInputParser()
	study, err := parser.LoadFromFile("nonexistent_file.yaml")

	assert.Error(t, err)
	assert.Nil(t, study)
	assert.Contains(t, err.Error(), "failed to read file")
}

func TestLoadFromFile_InvalidYAML(t *testing.T) {
	testStudy := `
simulations:
	- name: "Lote"
		entry_weight_kg: "not-a-number"
`
	parser := NewInputParser()
	study, err := parser.LoadFromFile(writeTemp(t, testStudy))

	assert.Error(t, err)
	assert.Nil(t, study)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestParse_InvalidDecimal(t *testing.T) {
	_, err := NewInputParser().Parse([]byte("simulations:\n  - entry_weight_kg: abc\n"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse YAML")
}

func TestValidateStudy_NoSimulations(t *testing.T) {
	err := NewInputParser().ValidateStudy(&StudyFile{})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "no simulations provided")
}

func TestValidateStudy_InvalidSimulation(t *testing.T) {
	parser := NewInputParser()
	study := parser.CreateExampleStudy()
	study.Simulations[0].EntryWeightKg = decimal.Zero

	err := parser.ValidateStudy(study)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "simulation 1 (Lote exemplo)")
	assert.Contains(t, err.Error(), "entry_weight_kg")
}

func TestValidateStudy_DeltaTooLow(t *testing.T) {
	parser := NewInputParser()
	study := parser.CreateExampleStudy()
	study.Sensitivity.FeedDeltas = []decimal.Decimal{decimal.NewFromInt(-100)}

	err := parser.ValidateStudy(study)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateExampleStudy(t *testing.T) {
	parser := NewInputParser()
	study := parser.CreateExampleStudy()
	assert.NoError(t, parser.ValidateStudy(study))
	assert.Len(t, study.Simulations, 1)
}

const testMatrix = `rows:
  - id: cgb-1
    unit_code: CGB
    modalidade: "Arroba Prod."
    dieta: Grão
    tipo_animal: Macho
    peso_de_kg: 300
    peso_ate_kg: 450
    start_validity: 2024-01-01
    end_validity: 2024-12-31
    dias_confinamento: 110
    gmd_kg_dia: 1.5
    tabela_final_r_por_arroba: 245.5
  - id: cgb-2
    unit_code: CGB
    modalidade: "Arroba Prod."
    dieta: Grão
    tipo_animal: Macho
    peso_de_kg: 450
    start_validity: 2024-01-01
    tabela_final_r_por_arroba: 260
  - id: cgb-old
    unit_code: CGB
    modalidade: "Arroba Prod."
    dieta: Grão
    tipo_animal: Macho
    start_validity: 2023-01-01
    tabela_final_r_por_arroba: 230
    is_active: false
`

func TestLoadMatrixFromFile(t *testing.T) {
	parser := NewInputParser()
	m, err := parser.LoadMatrixFromFile(writeTemp(t, testMatrix))
	require.NoError(t, err)
	require.Len(t, m.Rows, 3)

	first := m.Rows[0]
	assert.Equal(t, "CGB", first.UnitCode)
	assert.True(t, first.IsActive)
	require.NotNil(t, first.EndValidity)
	assert.Equal(t, "2024-12-31", first.EndValidity.Format("2006-01-02"))
	require.NotNil(t, first.DaysOnFeed)
	assert.Equal(t, 110, *first.DaysOnFeed)
	assert.Equal(t, "CGB | Arroba Prod. | Grão | Macho | 300-450 kg | 01/01/2024 a 31/12/2024", first.ConcatLabel)

	assert.Nil(t, m.Rows[1].PesoAteKg)
	assert.Nil(t, m.Rows[1].EndValidity)
	assert.False(t, m.Rows[2].IsActive)
}

func TestLoadMatrixFromFile_Overlap(t *testing.T) {
	overlapping := testMatrix + `  - id: cgb-3
    unit_code: CGB
    modalidade: "Arroba Prod."
    dieta: Grão
    tipo_animal: Macho
    peso_de_kg: 400
    peso_ate_kg: 500
    start_validity: 2024-06-01
    end_validity: 2025-06-01
    tabela_final_r_por_arroba: 250
`
	_, err := NewInputParser().LoadMatrixFromFile(writeTemp(t, overlapping))
	assert.ErrorIs(t, err, domain.ErrOverlapConflict)
}

func TestLoadMatrixFromFile_MissingPrice(t *testing.T) {
	bad := `rows:
  - unit_code: CGB
    modalidade: "Diária"
    dieta: Grão
    tipo_animal: Macho
    start_validity: 2024-01-01
`
	_, err := NewInputParser().LoadMatrixFromFile(writeTemp(t, bad))
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "diaria_r_por_cab_dia")
}

func TestLoadFromFile_Fixtures(t *testing.T) {
	parser := NewInputParser()
	_, err := parser.LoadFromFile(filepath.Join("..", "..", "test", "testdata", "study.yaml"))
	require.NoError(t, err)
	_, err = parser.LoadMatrixFromFile(filepath.Join("..", "..", "test", "testdata", "matrix.yaml"))
	require.NoError(t, err)
}
