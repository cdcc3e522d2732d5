package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/internal/service"
)

type SubmissionHandler struct {
	svc *service.SubmissionService
}

func NewSubmissionHandler(svc *service.SubmissionService) *SubmissionHandler {
	return &SubmissionHandler{svc: svc}
}

// Submit handles POST /submit-judge.
func (h *SubmissionHandler) Submit(c fiber.Ctx) error {
	var req model.SubmissionRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	name, errMsg := middleware.ValidateJudgeName(req.Name)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	req.Name = name

	if req.Position, errMsg = middleware.ValidatePosition(req.Position); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	if req.Ruling, errMsg = middleware.ValidateRuling(req.Ruling); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	if req.Link, errMsg = middleware.ValidateLink(req.Link); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}
	if req.XLink, errMsg = middleware.ValidateLink(req.XLink); errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	ip := middleware.ClientIP(c)

	if err := h.svc.Submit(c.Context(), ip, req); err != nil {
		switch {
		case errors.Is(err, service.ErrSubmissionRateLimited):
			return middleware.ErrorResponse(c, fiber.StatusTooManyRequests, err.Error())
		case errors.Is(err, service.ErrSubmissionRejected):
			// Honeypot trips get a generic rejection, no hint to the bot.
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMissingProof), errors.Is(err, service.ErrInvalidProof):
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		default:
			middleware.Logger.Error().Err(err).Msg("submission failed")
			// Persistence failures surface the underlying message.
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	Metrics.SubmissionsTotal.Inc()
	return c.JSON(fiber.Map{"success": true})
}
