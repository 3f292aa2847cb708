package calculation

import (
	"github.com/confinamento/feedlot-engine/internal/domain"
	dec "github.com/confinamento/feedlot-engine/pkg/decimal"
	"github.com/shopspring/decimal"
)

// CalculationEngine orchestrates projection, intake, costs and the dual DRE.
type CalculationEngine struct {
	Defaults  domain.Defaults
	Projector WeightProjector
	Intake    DailyIntakeEstimator
	Costs     CostAggregator
	DRE       DualDRECalculator
	Logger    Logger
}

// NewCalculationEngine creates an engine with the standard market defaults.
func NewCalculationEngine() *CalculationEngine {
	return NewCalculationEngineWithDefaults(domain.StandardDefaults())
}

// NewCalculationEngineWithDefaults creates an engine with explicit defaults. Zero fields fall back
// to the standard values.
func NewCalculationEngineWithDefaults(defaults domain.Defaults) *CalculationEngine {
	d := defaults.OrStandard()
	return &CalculationEngine{
		Defaults:  d,
		Projector: NewWeightProjector(d),
		Intake:    NewDailyIntakeEstimator(d),
		DRE:       NewDualDRECalculator(d),
		Logger:    NopLogger{},
	}
}

// SetLogger sets the logger for the calculation engine. If nil is provided, a no-op logger is used.
func (ce *CalculationEngine) SetLogger(l Logger) {
	if l == nil {
		ce.Logger = NopLogger{}
		return
	}
	ce.Logger = l
}

// CalculateSimulation runs the full pipeline for one animal and, when the negotiation allows it,
// both income statements. Full precision is carried until values are placed in the result.
func (ce *CalculationEngine) CalculateSimulation(in *domain.SimulationInput) (*domain.SimulationResult, error) {
	if err := ValidateInput(in); err != nil {
		return nil, err
	}

	proj := ce.Projector.Project(in.EntryWeightKg, in.ADGKgDay, in.DaysOnFeed, in.CarcassYieldPct)
	dmi := ce.Intake.Estimate(in, proj.ExitWeightKg)
	feed := ce.Intake.FeedCostTotal(in, dmi)
	purchase := ce.Costs.PurchaseCost(in, proj.ArrobasLean)
	fixedAdmin := ce.Costs.FixedAdminTotal(in)
	costs := roundBreakdown(ce.Costs.Aggregate(in, feed, fixedAdmin, purchase))

	revenue := dec.RoundMoney(proj.ArrobasHook.Mul(in.SellingPricePerAt))
	margin := revenue.Sub(costs.TotalCost)

	res := &domain.SimulationResult{
		Name: in.Name,
		WeightProjection: domain.WeightProjection{
			ExitWeightKg:    dec.RoundWeight(proj.ExitWeightKg),
			CarcassWeightKg: dec.RoundWeight(proj.CarcassWeightKg),
			ArrobasHook:     dec.RoundArrobas(proj.ArrobasHook),
			ArrobasGain:     dec.RoundArrobas(proj.ArrobasGain),
			ArrobasLean:     dec.RoundArrobas(proj.ArrobasLean),
		},
		DMIKgDay:      dmi.Round(3),
		CostBreakdown: costs,
		Revenue:       revenue,
		MarginTotal:   margin,
		CostPerAnimal: costs.TotalCost,
	}
	ce.fillKPIs(res, in, proj, costs)

	switch terms := in.Terms().(type) {
	case domain.NegotiatedTerms:
		service := dec.RoundMoney(ServiceRevenue(terms.Modality, terms.ServicePrice, proj.ArrobasGain, in.DaysOnFeed))
		shared := dreInputs{in: in, terms: terms, projection: proj, costs: costs, serviceRevenue: service}
		res.ServiceRevenue = service
		res.DrePecuarista = ce.DRE.Rancher(shared)
		res.DreJBS = ce.DRE.Feedlot(shared)
	case domain.BaseTerms:
		res.ServiceRevenue = decimal.Zero
		res.Degraded = true
		res.DegradedReason = terms.Reason
		ce.Logger.Debugf("simulation %q without DRE: %s", in.Name, terms.Reason)
	}

	return res, nil
}

func (ce *CalculationEngine) fillKPIs(res *domain.SimulationResult, in *domain.SimulationInput, proj domain.WeightProjection, costs domain.CostBreakdown) {
	res.BreakEven = dec.RoundMoney(dec.SafeDiv(costs.TotalCost, proj.ArrobasHook))
	res.Spread = dec.RoundMoney(in.SellingPricePerAt).Sub(res.BreakEven)
	res.CostPerArroba = dec.RoundMoney(dec.SafeDiv(costs.TotalCost.Sub(costs.PurchaseCost), proj.ArrobasGain))
	res.ROIPct = dec.SafeDiv(res.MarginTotal, costs.TotalCost).Mul(dec.Hundred()).Round(2)

	days := effectiveDays(in.DaysOnFeed)
	if res.MarginTotal.IsPositive() && res.Revenue.IsPositive() && days > 0 {
		dailyRevenue := res.Revenue.Div(decimal.NewFromInt(int64(days)))
		payback := costs.TotalCost.Div(dailyRevenue).Round(2)
		res.PaybackDays = &payback
	}
}

// CalculateMatrixDrivenDRE fills the zootechnical parameters the caller left empty from the pricing
// row, takes the service price from the row's modality field and returns both statements.
func (ce *CalculationEngine) CalculateMatrixDrivenDRE(in MatrixDREInput) (*domain.MatrixDREResult, error) {
	sim, err := in.simulationInput()
	if err != nil {
		return nil, err
	}
	res, err := ce.CalculateSimulation(&sim)
	if err != nil {
		return nil, err
	}
	return &domain.MatrixDREResult{
		Pecuarista: res.DrePecuarista,
		Boitel:     res.DreJBS,
		Simulation: res,
	}, nil
}

// MatrixDREInput is the input of a matrix-driven DRE. Base carries the caller's figures; the row
// supplies every zero or missing zootechnical parameter.
type MatrixDREInput struct {
	Row         domain.PricingMatrixRow   `json:"row"`
	Base        domain.SimulationInput    `json:"base"`
	Negotiation domain.NegotiationContext `json:"negotiation"`
}

func (m MatrixDREInput) simulationInput() (domain.SimulationInput, error) {
	price, ok := m.Row.ServicePrice()
	if !ok {
		return domain.SimulationInput{}, domain.NewValidationError("row", "%s has no service price for modality %q", m.Row.ID, m.Row.Modalidade)
	}

	sim := m.Base.Clone()
	row := m.Row
	if sim.DaysOnFeed == 0 && row.DaysOnFeed != nil {
		sim.DaysOnFeed = *row.DaysOnFeed
	}
	if sim.ADGKgDay.IsZero() && row.ADGKgDay != nil {
		sim.ADGKgDay = *row.ADGKgDay
	}
	// intake is one choice: a caller %BW must not be overridden by the row's direct DMI
	if sim.DMIPctBW == nil && sim.DMIKgDay == nil {
		if row.DMIPctBW != nil {
			sim.DMIPctBW = dec.Ptr(*row.DMIPctBW)
		}
		if row.DMIKgDay != nil {
			sim.DMIKgDay = dec.Ptr(*row.DMIKgDay)
		}
	}
	if sim.CarcassYieldPct == nil && row.CarcassYieldPct != nil {
		sim.CarcassYieldPct = dec.Ptr(*row.CarcassYieldPct)
	}
	if sim.FeedCostKgDM.IsZero() && row.FeedCostKgDM != nil {
		sim.FeedCostKgDM = *row.FeedCostKgDM
	}

	n := m.Negotiation
	n.Modality = row.Modalidade
	n.ServicePrice = price
	sim.Negotiation = &n
	return sim, nil
}
