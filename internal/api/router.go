package api

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"
)

// Router registers the API routes. Reads are open; rate-card writes require the admin role.
func Router(app *fiber.App, h *Handler) {
	sims := app.Group("/simulations")
	sims.Post("/", h.Simulate)
	sims.Post("/sensitivity", h.Sensitivity)
	sims.Post("/matrix", h.SimulateFromMatrix)

	m := app.Group("/matrix")
	m.Get("/resolve", h.Resolve)
	m.Get("/rows", h.ListRows)
	m.Get("/rows/:id", h.GetRow)
	m.Post("/rows", RequireAdmin(), h.CreateRow)
	m.Put("/rows/:id", RequireAdmin(), h.UpdateRow)
	m.Delete("/rows/:id", RequireAdmin(), h.DeactivateRow)
}

// NewApp builds the fiber application with recovery, request logging and a health probe.
func NewApp(name string, h *Handler, logger *zap.Logger) *fiber.App {
	if logger == nil {
		logger = zap.NewNop()
	}
	app := fiber.New(fiber.Config{
		AppName:               name,
		ReadTimeout:           time.Second * 10,
		WriteTimeout:          time.Second * 30,
		IdleTimeout:           time.Second * 60,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(logger))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": name})
	})
	Router(app, h)
	return app
}
