package config

import (
	"fmt"
	"os"

	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// StudyFile is a YAML document with one or more lots to simulate and an optional sensitivity grid.
type StudyFile struct {
	Defaults    *domain.Defaults         `yaml:"defaults,omitempty"`
	Simulations []domain.SimulationInput `yaml:"simulations"`
	Sensitivity *SensitivityConfig       `yaml:"sensitivity,omitempty"`
}

// SensitivityConfig lists the perturbation steps in percent.
type SensitivityConfig struct {
	PriceDeltas []decimal.Decimal `yaml:"price_deltas"`
	FeedDeltas  []decimal.Decimal `yaml:"feed_deltas"`
}

// MatrixFile is a YAML export of the rate card.
type MatrixFile struct {
	Rows []domain.PricingMatrixRow `yaml:"rows"`
}

// InputParser handles parsing of input files
type InputParser struct{}

// NewInputParser creates a new input parser
func NewInputParser() *InputParser {
	return &InputParser{}
}

// LoadFromFile loads a study from a YAML or JSON file
func (ip *InputParser) LoadFromFile(filename string) (*StudyFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}
	return ip.Parse(data)
}

// Parse decodes and validates a study document.
func (ip *InputParser) Parse(data []byte) (*StudyFile, error) {
	var study StudyFile
	if err := yaml.Unmarshal(data, &study); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateStudy(&study); err != nil {
		return nil, fmt.Errorf("study validation failed: %w", err)
	}

	return &study, nil
}

// ValidateStudy validates the loaded study
func (ip *InputParser) ValidateStudy(study *StudyFile) error {
	if len(study.Simulations) == 0 {
		return domain.NewValidationError("simulations", "no simulations provided")
	}

	for i := range study.Simulations {
		if err := calculation.ValidateInput(&study.Simulations[i]); err != nil {
			return fmt.Errorf("simulation %d (%s): %w", i+1, study.Simulations[i].Name, err)
		}
	}

	if s := study.Sensitivity; s != nil {
		if len(s.PriceDeltas) == 0 {
			s.PriceDeltas = calculation.DefaultDeltas()
		}
		if len(s.FeedDeltas) == 0 {
			s.FeedDeltas = calculation.DefaultDeltas()
		}
		for _, d := range append(append([]decimal.Decimal{}, s.PriceDeltas...), s.FeedDeltas...) {
			if d.LessThanOrEqual(decimal.NewFromInt(-100)) {
				return domain.NewValidationError("sensitivity", "delta %s%% would make a price non-positive", d)
			}
		}
	}

	return nil
}

// LoadMatrixFromFile loads and validates a rate-card export. Rows are checked individually and
// against each other.
func (ip *InputParser) LoadMatrixFromFile(filename string) (*MatrixFile, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filename, err)
	}

	var m MatrixFile
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := ip.ValidateMatrix(&m); err != nil {
		return nil, fmt.Errorf("matrix validation failed: %w", err)
	}
	return &m, nil
}

// ValidateMatrix validates every row and rejects overlapping active rows.
func (ip *InputParser) ValidateMatrix(m *MatrixFile) error {
	if len(m.Rows) == 0 {
		return domain.NewValidationError("rows", "no pricing rows provided")
	}
	for i := range m.Rows {
		if err := matrix.ValidateRow(&m.Rows[i]); err != nil {
			return fmt.Errorf("row %d (%s): %w", i+1, m.Rows[i].ID, err)
		}
		m.Rows[i].ConcatLabel = m.Rows[i].BuildLabel()
	}
	if conflicts := matrix.FindOverlaps(m.Rows); len(conflicts) > 0 {
		return &domain.OverlapError{Conflicts: conflicts}
	}
	return nil
}

// CreateExampleStudy returns the reference 300 kg lot used in documentation and smoke tests.
func (ip *InputParser) CreateExampleStudy() *StudyFile {
	pct := decimal.NewFromFloat(2.5)
	purchase := decimal.NewFromInt(200)
	return &StudyFile{
		Simulations: []domain.SimulationInput{
			{
				Name:                      "Lote exemplo",
				EntryWeightKg:             decimal.NewFromInt(300),
				DaysOnFeed:                120,
				ADGKgDay:                  decimal.NewFromFloat(1.4),
				DMIPctBW:                  &pct,
				UseAverageWeight:          true,
				MortalityPct:              decimal.NewFromInt(1),
				FeedWastePct:              decimal.NewFromInt(5),
				SellingPricePerAt:         decimal.NewFromInt(320),
				PurchasePricePerAt:        &purchase,
				FeedCostKgDM:              decimal.NewFromFloat(0.45),
				HealthCostTotal:           decimal.NewFromInt(50),
				TransportCostTotal:        decimal.NewFromInt(40),
				FinancialCostTotal:        decimal.NewFromInt(30),
				DepreciationTotal:         decimal.NewFromInt(20),
				OverheadTotal:             decimal.NewFromInt(10),
				FixedCostDailyPerHead:     decimal.NewFromFloat(1.5),
				AdminOverheadDailyPerHead: decimal.NewFromFloat(0.5),
				Negotiation: &domain.NegotiationContext{
					Modality:       domain.ModalityArrobaGain,
					ServicePrice:   decimal.NewFromInt(250),
					HeadCount:      100,
					LeanPricePerAt: decimal.NewFromInt(280),
					TransportFee:   decimal.NewFromInt(1000),
					AbattoirFee:    decimal.NewFromInt(500),
				},
			},
		},
		Sensitivity: &SensitivityConfig{
			PriceDeltas: calculation.DefaultDeltas(),
			FeedDeltas:  calculation.DefaultDeltas(),
		},
	}
}
