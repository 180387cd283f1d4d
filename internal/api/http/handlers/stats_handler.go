package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-desk/internal/api/dto"
	"github.com/spec-kit/service-desk/internal/service"
)

// StatsHandler exposes the leadership statistics endpoint.
type StatsHandler struct {
	service *service.StatsService
}

// NewStatsHandler constructs handler.
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{service: statsService}
}

// Statistics GET /leader/statistics.
func (h *StatsHandler) Statistics(c *fiber.Ctx) error {
	bundle, err := h.service.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.StatisticsFromBundle(bundle)})
}
