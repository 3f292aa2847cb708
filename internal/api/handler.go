package api

import (
	"strings"
	"time"

	"github.com/confinamento/feedlot-engine/internal/calculation"
	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/confinamento/feedlot-engine/internal/matrix"
	"github.com/confinamento/feedlot-engine/pkg/dateutil"
	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Handler serves simulations and the pricing matrix.
type Handler struct {
	engine   *calculation.CalculationEngine
	resolver *matrix.Resolver
	rows     *matrix.Service
	logger   *zap.Logger
	now      func() time.Time
}

// NewHandler builds the handler. A nil logger discards output.
func NewHandler(engine *calculation.CalculationEngine, resolver *matrix.Resolver, rows *matrix.Service, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{engine: engine, resolver: resolver, rows: rows, logger: logger, now: time.Now}
}

// Simulate handles POST /simulations.
func (h *Handler) Simulate(c *fiber.Ctx) error {
	var in domain.SimulationInput
	if err := c.BodyParser(&in); err != nil {
		return badBody(c, err)
	}
	res, err := h.engine.CalculateSimulation(&in)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(res)
}

// Sensitivity handles POST /simulations/sensitivity.
func (h *Handler) Sensitivity(c *fiber.Ctx) error {
	var req SensitivityRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if len(req.PriceDeltas) == 0 {
		req.PriceDeltas = calculation.DefaultDeltas()
	}
	if len(req.FeedDeltas) == 0 {
		req.FeedDeltas = calculation.DefaultDeltas()
	}
	grid, err := h.engine.SensitivityGrid(c.UserContext(), req.Input, req.PriceDeltas, req.FeedDeltas)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(grid)
}

// SimulateFromMatrix handles POST /simulations/matrix: resolve the row, then compute both DREs.
func (h *Handler) SimulateFromMatrix(c *fiber.Ctx) error {
	var req MatrixSimulationRequest
	if err := c.BodyParser(&req); err != nil {
		return badBody(c, err)
	}
	if req.Query.DateRef.IsZero() {
		req.Query.DateRef = dateutil.DateOnly(h.now())
	}
	row, err := h.resolver.Resolve(c.UserContext(), req.Query)
	if err != nil {
		return h.writeError(c, err)
	}
	res, err := h.engine.CalculateMatrixDrivenDRE(req.dreInput(*row))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(fiber.Map{"row": row, "result": res})
}

// Resolve handles GET /matrix/resolve.
func (h *Handler) Resolve(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return h.writeError(c, err)
	}
	row, err := h.resolver.Resolve(c.UserContext(), q)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(row)
}

func (h *Handler) parseQuery(c *fiber.Ctx) (domain.MatrixQuery, error) {
	q := domain.MatrixQuery{
		Key: domain.MatrixKey{
			UnitCode:   strings.TrimSpace(c.Query("unit_code")),
			Modalidade: strings.TrimSpace(c.Query("modalidade")),
			Dieta:      strings.TrimSpace(c.Query("dieta")),
			TipoAnimal: strings.TrimSpace(c.Query("tipo_animal")),
		},
	}
	for _, f := range []struct{ name, value string }{
		{"unit_code", q.Key.UnitCode},
		{"modalidade", q.Key.Modalidade},
		{"dieta", q.Key.Dieta},
		{"tipo_animal", q.Key.TipoAnimal},
	} {
		if f.value == "" {
			return q, domain.NewValidationError(f.name, "is required")
		}
	}

	w, err := decimal.NewFromString(c.Query("entry_weight_kg"))
	if err != nil {
		return q, domain.NewValidationError("entry_weight_kg", "must be a number")
	}
	if w.IsNegative() {
		return q, domain.NewValidationError("entry_weight_kg", "must not be negative")
	}
	q.EntryWeightKg = w

	q.DateRef = dateutil.DateOnly(h.now())
	if s := c.Query("date_ref"); s != "" {
		if q.DateRef, err = dateutil.ParseDate(s); err != nil {
			return q, domain.NewValidationError("date_ref", "expected YYYY-MM-DD")
		}
	}
	return q, nil
}

// ListRows handles GET /matrix/rows.
func (h *Handler) ListRows(c *fiber.Ctx) error {
	rows, err := h.rows.List(c.UserContext(), matrix.ListFilter{
		UnitCode:   c.Query("unit_code"),
		Modalidade: c.Query("modalidade"),
		ActiveOnly: c.QueryBool("active_only", false),
	})
	if err != nil {
		return h.writeError(c, err)
	}
	if rows == nil {
		rows = []domain.PricingMatrixRow{}
	}
	return c.JSON(RowListResponse{Items: rows, Total: len(rows)})
}

// GetRow handles GET /matrix/rows/:id.
func (h *Handler) GetRow(c *fiber.Ctx) error {
	row, err := h.rows.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(row)
}

// CreateRow handles POST /matrix/rows.
func (h *Handler) CreateRow(c *fiber.Ctx) error {
	row := domain.PricingMatrixRow{IsActive: true}
	if err := c.BodyParser(&row); err != nil {
		return badBody(c, err)
	}
	created, err := h.rows.Create(c.UserContext(), row)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(created)
}

// UpdateRow handles PUT /matrix/rows/:id. Omitting is_active keeps the row active.
func (h *Handler) UpdateRow(c *fiber.Ctx) error {
	row := domain.PricingMatrixRow{IsActive: true}
	if err := c.BodyParser(&row); err != nil {
		return badBody(c, err)
	}
	row.ID = c.Params("id")
	updated, err := h.rows.Update(c.UserContext(), row)
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(updated)
}

// DeactivateRow handles DELETE /matrix/rows/:id. Rows are never removed.
func (h *Handler) DeactivateRow(c *fiber.Ctx) error {
	row, err := h.rows.Deactivate(c.UserContext(), c.Params("id"))
	if err != nil {
		return h.writeError(c, err)
	}
	return c.JSON(row)
}
