package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/service-desk/internal/api/dto"
	"github.com/spec-kit/service-desk/internal/auth"
	"github.com/spec-kit/service-desk/internal/domain"
	"github.com/spec-kit/service-desk/internal/service"
	apperrors "github.com/spec-kit/service-desk/pkg/util"
)

// BoardHandler manages the engineer and manager surfaces: grouped listings,
// claiming and completing work, and administrative overrides.
type BoardHandler struct {
	service *service.RequestService
}

// NewBoardHandler constructs handler.
func NewBoardHandler(requestService *service.RequestService) *BoardHandler {
	return &BoardHandler{service: requestService}
}

// ListOpen GET /engineer/requests.
func (h *BoardHandler) ListOpen(c *fiber.Ctx) error {
	board, err := h.service.EngineerBoard(c.Context())
	if err != nil {
		return err
	}
	grouped := make(map[string][]dto.BoardItem, len(board.Groups))
	for company, rows := range board.Groups {
		items := make([]dto.BoardItem, 0, len(rows))
		for i := range rows {
			items = append(items, dto.BoardItemFromDomain(&rows[i]))
		}
		grouped[company] = items
	}
	return c.JSON(fiber.Map{"data": dto.BoardResponse[dto.BoardItem]{
		Requests: grouped,
		Total:    board.Total,
	}})
}

// Take POST /engineer/requests/:id/take.
func (h *BoardHandler) Take(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requestID, err := parseID(c)
	if err != nil {
		return err
	}
	request, err := h.service.Take(c.Context(), requestID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestSummaryFromDomain(request)})
}

// Complete POST /engineer/requests/:id/complete.
func (h *BoardHandler) Complete(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requestID, err := parseID(c)
	if err != nil {
		return err
	}
	request, err := h.service.Complete(c.Context(), requestID, principal.User.ID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestSummaryFromDomain(request)})
}

// ListAll GET /manager/requests.
func (h *BoardHandler) ListAll(c *fiber.Ctx) error {
	board, err := h.service.ManagerBoard(c.Context())
	if err != nil {
		return err
	}
	grouped := make(map[string][]dto.ManagerBoardItem, len(board.Groups))
	for company, rows := range board.Groups {
		items := make([]dto.ManagerBoardItem, 0, len(rows))
		for i := range rows {
			items = append(items, dto.ManagerBoardItemFromDomain(&rows[i]))
		}
		grouped[company] = items
	}
	return c.JSON(fiber.Map{"data": dto.BoardResponse[dto.ManagerBoardItem]{
		Requests: grouped,
		Total:    board.Total,
	}})
}

// AdminUpdate PATCH /manager/requests/:id.
func (h *BoardHandler) AdminUpdate(c *fiber.Ctx) error {
	principal, ok := auth.PrincipalFromContext(c)
	if !ok || principal.User == nil {
		return apperrors.NewUnauthorized("authentication required")
	}
	requestID, err := parseID(c)
	if err != nil {
		return err
	}
	var req dto.AdminUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return apperrors.NewInvalidInput("invalid payload", nil)
	}

	patch := domain.AdminPatch{Paid: req.Paid, IsValid: req.IsValid, Price: req.Price}
	request, err := h.service.AdminUpdate(c.Context(), requestID, principal.User.ID, patch)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": dto.RequestSummaryFromDomain(request)})
}

// History GET /manager/requests/:id/history.
func (h *BoardHandler) History(c *fiber.Ctx) error {
	requestID, err := parseID(c)
	if err != nil {
		return err
	}
	entries, err := h.service.History(c.Context(), requestID)
	if err != nil {
		return err
	}
	items := make([]dto.HistoryEntry, 0, len(entries))
	for i := range entries {
		items = append(items, dto.HistoryEntryFromDomain(&entries[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}
