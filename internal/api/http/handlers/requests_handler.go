package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-desk/internal/api/dto"
	"github.com/spec-kit/service-desk/internal/auth"
	"github.com/spec-kit/service-desk/internal/service"
	apperrors "github.com/spec-kit/service-desk/pkg/util"
)

// RequestsHandler manages the customer-facing request endpoints.
type RequestsHandler struct {
	service *service.RequestService
}

// NewRequestsHandler constructs handler.
func NewRequestsHandler(requestService *service.RequestService) *RequestsHandler {
	return &RequestsHandler{service: requestService}
}

// Create POST /customer/requests.
func (h *RequestsHandler) Create(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	var req dto.CreateRequestRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}
	if err := dto.Validate(req); err != nil {
		return err
	}

	request, err := h.service.Create(c.Context(), principal.User.ID, req.Company, req.Problem)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"data": dto.RequestSummaryFromDomain(request),
	})
}

// ListOwn GET /customer/requests.
func (h *RequestsHandler) ListOwn(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requests, err := h.service.ListOwn(c.Context(), principal.User.ID)
	if err != nil {
		return err
	}
	items := make([]dto.RequestSummary, 0, len(requests))
	for i := range requests {
		items = append(items, dto.RequestSummaryFromDomain(&requests[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Pay POST /customer/requests/:id/pay.
func (h *RequestsHandler) Pay(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requestID, err := parseID(c)
	if err != nil {
		return err
	}
	request, err := h.service.Pay(c.Context(), requestID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestSummaryFromDomain(request)})
}

func parseID(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.NewInvalidInput("invalid request id", nil)
	}
	return id, nil
}
