package output

import (
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func scenario(price, feed int64, margin, roi string) domain.Scenario {
	return domain.Scenario{
		Label:      "cell",
		PriceDelta: decimal.NewFromInt(price),
		FeedDelta:  decimal.NewFromInt(feed),
		Margin:     d(margin),
		ROI:        d(roi),
	}
}

func buildTestReport() *Report {
	payback := d("112.81")
	negotiated := &domain.SimulationResult{
		Name: "Lote B",
		WeightProjection: domain.WeightProjection{
			ExitWeightKg: d("468"), CarcassWeightKg: d("248.04"),
			ArrobasHook: d("16.536"), ArrobasGain: d("11.2"), ArrobasLean: d("20"),
		},
		DMIKgDay:      d("9.6"),
		CostBreakdown: domain.CostBreakdown{PurchaseCost: d("4000"), FeedCostTotal: d("544.32"), TotalCost: d("4974.32")},
		Revenue:       d("5291.52"),
		MarginTotal:   d("317.2"),
		CostPerArroba: d("86.99"),
		Spread:        d("19.18"),
		BreakEven:     d("300.82"),
		ROIPct:        d("6.38"),
		PaybackDays:   &payback,

		ServiceRevenue: d("2800"),
		DrePecuarista:  &domain.RancherDRE{HeadCount: 100, ResultPerHead: d("-3123.48"), ResultPerLot: d("-312348")},
		DreJBS:         &domain.FeedlotDRE{HeadCount: 100, ResultPerHead: d("1825.68"), ResultPerLot: d("182568")},
	}
	degraded := &domain.SimulationResult{
		Name:           "Lote A",
		MarginTotal:    d("-1629.52"),
		ROIPct:         d("-32.76"),
		Degraded:       true,
		DegradedReason: "no negotiation context",
	}
	grid := &domain.SensitivityGrid{
		PriceDeltas: []decimal.Decimal{decimal.NewFromInt(-10), decimal.NewFromInt(10)},
		FeedDeltas:  []decimal.Decimal{decimal.NewFromInt(0)},
		Cells: [][]domain.Scenario{
			{scenario(-10, 0, "-211.95", "-4.26")},
			{scenario(10, 0, "846.35", "17.01")},
		},
	}
	grid.Best, grid.Worst = grid.Cells[1][0], grid.Cells[0][0]

	r := NewReport("Estudo", domain.StandardDefaults())
	r.GeneratedAt = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	r.Add(negotiated, grid)
	r.Add(degraded, nil)
	return r
}

func TestConsoleLiteFormatter(t *testing.T) {
	out, err := ConsoleFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "Recommended: Lote B")
	assert.Contains(t, content, "sem DRE: no negotiation context")
	assert.Less(t, strings.Index(content, "Lote A:"), strings.Index(content, "Lote B:"), "lots are sorted by name")
}

func TestConsoleVerboseFormatter(t *testing.T) {
	out, err := ConsoleVerboseFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "DETAILED FEEDLOT ECONOMICS ANALYSIS")
	assert.Contains(t, content, "DRE PECUARISTA (100 cab.)")
	assert.Contains(t, content, "DRE BOITEL (100 cab.)")
	assert.Contains(t, content, "DRE not computed: no negotiation context")
	assert.Contains(t, content, "SENSITIVITY")
	assert.Contains(t, content, "Best lot: Lote B")
}

func TestCSVSummarizerDeterministicOrder(t *testing.T) {
	out, err := CSVSummarizer{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "header plus one row per lot")
	assert.Equal(t, "Lote A", records[1][0])
	assert.Equal(t, "Lote B", records[2][0])

	b := records[2]
	assert.Equal(t, "4974.32", b[5])
	assert.Equal(t, "112.81", b[12])
	assert.Equal(t, "-312348.00", b[14])
	assert.Equal(t, "182568.00", b[15])
	assert.Equal(t, "false", b[16])

	a := records[1]
	assert.Equal(t, "", a[12], "missing payback renders empty")
	assert.Equal(t, "", a[14])
	assert.Equal(t, "true", a[16])
}

func TestCSVSensitivityExporter(t *testing.T) {
	out, err := CSVSensitivityExporter{}.Format(buildTestReport())
	require.NoError(t, err)

	records, err := csv.NewReader(strings.NewReader(string(out))).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3, "lots without a grid are skipped")
	assert.Equal(t, []string{"Lote B", "1", "0", "cell", "10", "0", "846.35", "0.00", "0.00", "17.01"}, records[2])
}

func TestJSONFormatter(t *testing.T) {
	out, err := JSONFormatter{}.Format(buildTestReport())
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, "Estudo", decoded["title"])
	lots := decoded["lots"].([]any)
	require.Len(t, lots, 2)
	first := lots[0].(map[string]any)["result"].(map[string]any)
	assert.Equal(t, "Lote B", first["name"])
	assert.Equal(t, "4974.32", first["total_cost"])
}

func TestHTMLFormatter(t *testing.T) {
	out, err := HTMLFormatter{}.Format(buildTestReport())
	require.NoError(t, err)
	content := string(out)
	assert.Contains(t, content, "<title>Estudo</title>")
	assert.Contains(t, content, "01/05/2024 10:00")
	assert.Contains(t, content, "DRE Pecuarista (100 cab.)")
	assert.Contains(t, content, "DRE não calculada")
	assert.Contains(t, content, "Sensibilidade")
	assert.Contains(t, content, "Melhor lote: <strong>Lote B</strong>")
}

func TestGetFormatterByName(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"json", "json"},
		{" JSON-Pretty ", "json"},
		{"verbose", "console"},
		{"summary", "console-lite"},
		{"grid", "sensitivity-csv"},
		{"csv", "csv"},
		{"html", "html"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := GetFormatterByName(tt.name)
			require.NotNil(t, f)
			assert.Equal(t, tt.want, f.Name())
		})
	}
	assert.Nil(t, GetFormatterByName("pdf"))
}

func TestExtensionFor(t *testing.T) {
	assert.Equal(t, "csv", ExtensionFor("grid"))
	assert.Equal(t, "txt", ExtensionFor("console-lite"))
	assert.Equal(t, "html", ExtensionFor("html"))
	assert.Equal(t, "json", ExtensionFor("json"))
}

func TestFormatterFunc(t *testing.T) {
	f := FormatterFunc{ID: "count", F: func(r *Report) ([]byte, error) {
		return []byte(intToString(len(r.Lots))), nil
	}}
	out, err := f.Format(buildTestReport())
	require.NoError(t, err)
	assert.Equal(t, "2", string(out))
	assert.Equal(t, "count", f.Name())
}

func TestGenerateReport(t *testing.T) {
	dir := t.TempDir()
	r := buildTestReport()

	files, err := GenerateReport(r, "json", dir)
	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, ".json", filepath.Ext(files[0]))
	_, err = os.Stat(files[0])
	require.NoError(t, err)

	files, err = GenerateReport(r, "all", dir)
	require.NoError(t, err)
	assert.Len(t, files, 3)

	_, err = GenerateReport(r, "pdf", dir)
	assert.ErrorIs(t, err, ErrUnsupportedFormat)
	assert.Contains(t, err.Error(), "sensitivity-csv")
}

func TestSaveConfiguration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "defaults.yaml")
	require.NoError(t, SaveConfiguration(domain.StandardDefaults(), path))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "arroba_kg")
}
