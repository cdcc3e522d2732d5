package handler

import (
	"errors"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/internal/service"
)

type VoteHandler struct {
	svc *service.VoteService
}

func NewVoteHandler(svc *service.VoteService) *VoteHandler {
	return &VoteHandler{svc: svc}
}

// Cast handles POST /vote/:judgeId. The HMAC middleware has already
// authenticated the request by the time this runs.
func (h *VoteHandler) Cast(c fiber.Ctx) error {
	judgeID, errMsg := middleware.ValidateJudgeID(c.Params("judgeId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, errMsg)
	}

	var req model.VoteRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	req.Fingerprint = middleware.ValidateFingerprint(req.Fingerprint)

	ip := middleware.ClientIP(c)

	if err := h.svc.Cast(c.Context(), int64(judgeID), ip, req); err != nil {
		switch {
		case errors.Is(err, service.ErrJudgeNotFound):
			return middleware.ErrorResponse(c, fiber.StatusNotFound, err.Error())
		case errors.Is(err, service.ErrVoteCooldown):
			Metrics.VotesRejected.WithLabelValues("cooldown").Inc()
			return middleware.ErrorResponse(c, fiber.StatusTooManyRequests, err.Error())
		case errors.Is(err, service.ErrInvalidVoteType):
			Metrics.VotesRejected.WithLabelValues("vote_type").Inc()
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		case errors.Is(err, service.ErrMissingProof), errors.Is(err, service.ErrInvalidProof):
			Metrics.VotesRejected.WithLabelValues("proof_of_work").Inc()
			return middleware.ErrorResponse(c, fiber.StatusBadRequest, err.Error())
		default:
			middleware.Logger.Error().Err(err).Int("judge_id", judgeID).Msg("vote failed")
			// Persistence failures surface the underlying message.
			return middleware.ErrorResponse(c, fiber.StatusInternalServerError, err.Error())
		}
	}

	Metrics.VotesTotal.WithLabelValues(req.VoteType).Inc()
	return c.JSON(fiber.Map{"success": true})
}
