package api

import (
	"errors"

	"github.com/confinamento/feedlot-engine/internal/domain"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// writeError maps domain errors onto HTTP statuses.
func (h *Handler) writeError(c *fiber.Ctx, err error) error {
	var (
		verr  *domain.ValidationError
		overr *domain.OverlapError
	)
	switch {
	case errors.As(err, &verr):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error(), Field: verr.Field})
	case errors.Is(err, domain.ErrValidation):
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.As(err, &overr):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "OVERLAP", Message: err.Error(), Conflicts: overr.Conflicts})
	case errors.Is(err, domain.ErrAmbiguousPrice):
		return c.Status(fiber.StatusConflict).JSON(ErrorResponse{Code: "AMBIGUOUS_PRICE", Message: err.Error()})
	case errors.Is(err, domain.ErrNoPriceFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NO_PRICE", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(ErrorResponse{Code: "FORBIDDEN", Message: err.Error()})
	}
	h.logger.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
	return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{Code: "INTERNAL", Message: "internal error"})
}

func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{Code: "INVALID_BODY", Message: err.Error()})
}
