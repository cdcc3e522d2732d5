package handler

import (
	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/repository"
	"github.com/mikl0s/JAI/internal/service"
)

type AnalyticsHandler struct {
	svc         *service.AnalyticsService
	submissions *repository.SubmissionRepo
}

func NewAnalyticsHandler(svc *service.AnalyticsService, submissions *repository.SubmissionRepo) *AnalyticsHandler {
	return &AnalyticsHandler{svc: svc, submissions: submissions}
}

// Suspicious handles GET /admin/analytics/suspicious.
func (h *AnalyticsHandler) Suspicious(c fiber.Ctx) error {
	resp, err := h.svc.SuspiciousVotes(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("suspicious vote analytics failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return c.JSON(resp)
}

// Geo handles GET /admin/analytics/geo.
func (h *AnalyticsHandler) Geo(c fiber.Ctx) error {
	resp, err := h.svc.GeoVotes(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("geo analytics failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return c.JSON(resp)
}

// Votes handles GET /admin/analytics/votes.
func (h *AnalyticsHandler) Votes(c fiber.Ctx) error {
	resp, err := h.svc.VoteAnalysis(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("vote analytics failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return c.JSON(resp)
}

// Submissions handles GET /admin/analytics/submissions.
func (h *AnalyticsHandler) Submissions(c fiber.Ctx) error {
	resp, err := h.submissions.StatusCounts(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("submission analytics failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load analytics")
	}
	return c.JSON(resp)
}
