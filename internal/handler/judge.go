package handler

import (
	"strings"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/service"
)

type JudgeHandler struct {
	svc *service.JudgeService
}

func NewJudgeHandler(svc *service.JudgeService) *JudgeHandler {
	return &JudgeHandler{svc: svc}
}

// List handles GET /judges. Only displayed judges are returned;
// ?usa_only=true restricts the list to judges with US-resolved votes.
func (h *JudgeHandler) List(c fiber.Ctx) error {
	// Clients send True/true/TRUE interchangeably.
	usaOnly := strings.EqualFold(c.Query("usa_only"), "true")

	resp, err := h.svc.ListPublic(c.Context(), usaOnly)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("judge list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load judges")
	}

	return c.JSON(resp)
}
