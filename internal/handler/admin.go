package handler

import (
	"errors"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"

	"github.com/mikl0s/JAI/internal/middleware"
	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/internal/repository"
	"github.com/mikl0s/JAI/internal/service"
	"github.com/mikl0s/JAI/pkg/hash"
)

// adminLogLimit caps the audit log page returned to the back office.
const adminLogLimit = 50

type AdminHandler struct {
	judges     *service.JudgeService
	moderation *service.ModerationService
	logs       *repository.AdminLogRepo
	whitelist  *repository.WhitelistRepo
	sessions   *middleware.SessionManager
	username   string
	password   string
}

func NewAdminHandler(
	judges *service.JudgeService,
	moderation *service.ModerationService,
	logs *repository.AdminLogRepo,
	whitelist *repository.WhitelistRepo,
	sessions *middleware.SessionManager,
	username, password string,
) *AdminHandler {
	return &AdminHandler{
		judges:     judges,
		moderation: moderation,
		logs:       logs,
		whitelist:  whitelist,
		sessions:   sessions,
		username:   username,
		password:   password,
	}
}

// Login handles POST /admin/login.
func (h *AdminHandler) Login(c fiber.Ctx) error {
	var req model.LoginRequest
	if err := c.Bind().JSON(&req); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}

	userOK := hash.SecureCompare(req.Username, h.username)
	passOK := hash.SecureCompare(req.Password, h.password)
	if !userOK || !passOK {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    h.sessions.Issue(req.Username),
		Expires:  time.Now().Add(middleware.SessionTTL),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	h.moderation.LogAction(c.Context(), req.Username, "login", "", middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true})
}

// Logout handles POST /admin/logout.
func (h *AdminHandler) Logout(c fiber.Ctx) error {
	admin := middleware.AdminUser(c)

	c.Cookie(&fiber.Cookie{
		Name:     middleware.SessionCookie,
		Value:    "",
		Expires:  time.Now().Add(-time.Hour),
		HTTPOnly: true,
		SameSite: fiber.CookieSameSiteLaxMode,
	})

	h.moderation.LogAction(c.Context(), admin, "logout", "", middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true})
}

// ListJudges handles GET /admin/judges, including hidden judges.
func (h *AdminHandler) ListJudges(c fiber.Ctx) error {
	judges, err := h.judges.ListAll(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("admin judge list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load judges")
	}
	return c.JSON(fiber.Map{"judges": judges})
}

// AddJudge handles POST /admin/judges.
func (h *AdminHandler) AddJudge(c fiber.Ctx) error {
	req, errMsg := h.bindJudgeRequest(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	id, err := h.judges.Add(c.Context(), *req)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("add judge failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to add judge")
	}

	h.moderation.LogAction(c.Context(), middleware.AdminUser(c), "add_judge",
		fmt.Sprintf("id=%d name=%s", id, req.Name), middleware.ClientIP(c))
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "id": id})
}

// UpdateJudge handles PUT /admin/judges/:judgeId.
func (h *AdminHandler) UpdateJudge(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateJudgeID(c.Params("judgeId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, errMsg)
	}

	req, errMsg := h.bindJudgeRequest(c)
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, errMsg)
	}

	if err := h.judges.Update(c.Context(), int64(id), *req); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Judge not found")
		}
		middleware.Logger.Error().Err(err).Int("judge_id", id).Msg("update judge failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update judge")
	}

	h.moderation.LogAction(c.Context(), middleware.AdminUser(c), "update_judge",
		fmt.Sprintf("id=%d", id), middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true})
}

// ToggleJudge handles POST /admin/judges/:judgeId/toggle.
func (h *AdminHandler) ToggleJudge(c fiber.Ctx) error {
	id, errMsg := middleware.ValidateJudgeID(c.Params("judgeId"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, errMsg)
	}

	displayed, err := h.judges.ToggleDisplayed(c.Context(), int64(id))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Judge not found")
		}
		middleware.Logger.Error().Err(err).Int("judge_id", id).Msg("toggle judge failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to toggle judge")
	}

	h.moderation.LogAction(c.Context(), middleware.AdminUser(c), "toggle_judge",
		fmt.Sprintf("id=%d displayed=%t", id, displayed), middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true, "displayed": displayed})
}

// ListSubmissions handles GET /admin/submissions: the pending queue
// grouped by identity fields, with submitter locations.
func (h *AdminHandler) ListSubmissions(c fiber.Ctx) error {
	groups, err := h.moderation.PendingQueue(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("submission queue failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load submissions")
	}
	return c.JSON(fiber.Map{"submissions": groups})
}

// ApproveSubmission handles POST /admin/submissions/:id/approve.
func (h *AdminHandler) ApproveSubmission(c fiber.Ctx) error {
	return h.moderate(c, "approve", func(c fiber.Ctx, id int64, admin, ip string) error {
		_, err := h.moderation.Approve(c.Context(), id, admin, ip)
		return err
	})
}

// RejectSubmission handles POST /admin/submissions/:id/reject.
func (h *AdminHandler) RejectSubmission(c fiber.Ctx) error {
	return h.moderate(c, "reject", func(c fiber.Ctx, id int64, admin, ip string) error {
		return h.moderation.Reject(c.Context(), id, admin, ip)
	})
}

// DeleteSubmission handles POST /admin/submissions/:id/delete.
func (h *AdminHandler) DeleteSubmission(c fiber.Ctx) error {
	return h.moderate(c, "delete", func(c fiber.Ctx, id int64, admin, ip string) error {
		return h.moderation.Delete(c.Context(), id, admin, ip)
	})
}

func (h *AdminHandler) moderate(c fiber.Ctx, action string, fn func(c fiber.Ctx, id int64, admin, ip string) error) error {
	id, errMsg := middleware.ValidateJudgeID(c.Params("id"))
	if errMsg != "" {
		return middleware.ErrorResponse(c, fiber.StatusNotFound, "Submission not found")
	}

	err := fn(c, int64(id), middleware.AdminUser(c), middleware.ClientIP(c))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return middleware.ErrorResponse(c, fiber.StatusNotFound, "Submission not found")
		}
		middleware.Logger.Error().Err(err).Int("submission_id", id).Str("action", action).Msg("moderation failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to process submission")
	}

	return c.JSON(fiber.Map{"success": true})
}

// RecalculateStatus handles POST /admin/recalculate-status: derives a
// fresh status for every judge from its current vote counts.
func (h *AdminHandler) RecalculateStatus(c fiber.Ctx) error {
	start := time.Now()
	changed, err := h.judges.RecalculateAll(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("status recalculation failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to recalculate statuses")
	}
	Metrics.StatusRecalcSeconds.Observe(time.Since(start).Seconds())

	h.moderation.LogAction(c.Context(), middleware.AdminUser(c), "recalculate_status",
		fmt.Sprintf("changed=%d", changed), middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true, "updated": changed})
}

// ListLogs handles GET /admin/logs.
func (h *AdminHandler) ListLogs(c fiber.Ctx) error {
	logs, err := h.logs.ListRecent(c.Context(), adminLogLimit)
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("audit log list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load logs")
	}
	return c.JSON(fiber.Map{"logs": logs})
}

// ListWhitelist handles GET /admin/whitelist.
func (h *AdminHandler) ListWhitelist(c fiber.Ctx) error {
	entries, err := h.whitelist.List(c.Context())
	if err != nil {
		middleware.Logger.Error().Err(err).Msg("whitelist list failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to load whitelist")
	}
	return c.JSON(fiber.Map{"whitelist": entries})
}

// UpsertWhitelist handles POST /admin/whitelist. One entry per IP;
// posting an existing IP replaces its reason and expiry.
func (h *AdminHandler) UpsertWhitelist(c fiber.Ctx) error {
	var entry model.WhitelistEntry
	if err := c.Bind().JSON(&entry); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request body")
	}
	if entry.IPAddress == "" {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "IP address is required")
	}
	if entry.Expiry.IsZero() {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Expiry is required")
	}

	if err := h.whitelist.Upsert(c.Context(), entry); err != nil {
		middleware.Logger.Error().Err(err).Msg("whitelist upsert failed")
		return middleware.ErrorResponse(c, fiber.StatusInternalServerError, "Failed to update whitelist")
	}

	h.moderation.LogAction(c.Context(), middleware.AdminUser(c), "whitelist_ip",
		fmt.Sprintf("ip=%s until=%s", entry.IPAddress, entry.Expiry.Format(time.RFC3339)), middleware.ClientIP(c))
	return c.JSON(fiber.Map{"success": true})
}

func (h *AdminHandler) bindJudgeRequest(c fiber.Ctx) (*model.JudgeRequest, string) {
	var req model.JudgeRequest
	if err := c.Bind().JSON(&req); err != nil {
		return nil, "Invalid request body"
	}

	var errMsg string
	if req.Name, errMsg = middleware.ValidateJudgeName(req.Name); errMsg != "" {
		return nil, errMsg
	}
	if req.Position, errMsg = middleware.ValidatePosition(req.Position); errMsg != "" {
		return nil, errMsg
	}
	if req.Ruling, errMsg = middleware.ValidateRuling(req.Ruling); errMsg != "" {
		return nil, errMsg
	}
	if req.Link, errMsg = middleware.ValidateLink(req.Link); errMsg != "" {
		return nil, errMsg
	}
	if req.XLink, errMsg = middleware.ValidateLink(req.XLink); errMsg != "" {
		return nil, errMsg
	}
	return &req, ""
}
