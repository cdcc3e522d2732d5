package router

import (
	"github.com/gofiber/fiber/v3"
	recoverer "github.com/gofiber/fiber/v3/middleware/recover"

	"github.com/mikl0s/JAI/internal/handler"
	"github.com/mikl0s/JAI/internal/middleware"
)

// Handlers holds all handler instances needed by the router.
type Handlers struct {
	Judge      *handler.JudgeHandler
	Vote       *handler.VoteHandler
	Submission *handler.SubmissionHandler
	Admin      *handler.AdminHandler
	Analytics  *handler.AnalyticsHandler
	Health     *handler.HealthHandler
}

// Middlewares holds the stateful middleware the router mounts per route.
type Middlewares struct {
	Identity *middleware.IdentityResolver
	HMAC     *middleware.HMACVerifier
	Sessions *middleware.SessionManager
}

// Setup configures the middleware stack and all API routes on the given Fiber app.
// The public paths are part of the signed wire contract (PATH is folded into the
// HMAC canonical string), so they are mounted at the root, not under a prefix.
func Setup(app *fiber.App, h *Handlers, m *Middlewares, corsOrigins string) {
	// Middleware stack (order matters)
	app.Use(recoverer.New())
	app.Use(middleware.NewRequestLogger())
	app.Use(middleware.NewCORS(corsOrigins))
	app.Use(m.Identity.Handler())
	app.Use(handler.MetricsMiddleware())

	// Health and metrics, no auth needed
	app.Get("/health/live", h.Health.Live)
	app.Get("/health/ready", h.Health.Ready)
	app.Get("/metrics", handler.MetricsHandler())

	// Public routes. Writes are HMAC-authenticated and burst-limited;
	// the judge listing only gets the burst limit.
	app.Get("/judges", h.Judge.List, middleware.NewJudgeListRateLimiter().Handler())
	app.Post("/vote/:judgeId", h.Vote.Cast,
		middleware.NewVoteRateLimiter().Handler(), m.HMAC.Handler())
	app.Post("/submit-judge", h.Submission.Submit,
		middleware.NewSubmissionRateLimiter().Handler(), m.HMAC.Handler())

	// Admin routes. Login is registered before the session guard so it
	// stays reachable without a cookie; everything after the Use requires
	// a valid session.
	admin := app.Group("/admin")
	admin.Post("/login", h.Admin.Login, middleware.NewLoginRateLimiter().Handler())
	admin.Use(m.Sessions.Handler())
	admin.Post("/logout", h.Admin.Logout)

	admin.Get("/judges", h.Admin.ListJudges)
	admin.Post("/judges", h.Admin.AddJudge)
	admin.Put("/judges/:judgeId", h.Admin.UpdateJudge)
	admin.Post("/judges/:judgeId/toggle", h.Admin.ToggleJudge)

	admin.Get("/submissions", h.Admin.ListSubmissions)
	admin.Post("/submissions/:id/approve", h.Admin.ApproveSubmission)
	admin.Post("/submissions/:id/reject", h.Admin.RejectSubmission)
	admin.Post("/submissions/:id/delete", h.Admin.DeleteSubmission)

	admin.Post("/recalculate-status", h.Admin.RecalculateStatus)
	admin.Get("/logs", h.Admin.ListLogs)

	admin.Get("/whitelist", h.Admin.ListWhitelist)
	admin.Post("/whitelist", h.Admin.UpsertWhitelist)

	admin.Get("/analytics/suspicious", h.Analytics.Suspicious)
	admin.Get("/analytics/geo", h.Analytics.Geo)
	admin.Get("/analytics/votes", h.Analytics.Votes)
	admin.Get("/analytics/submissions", h.Analytics.Submissions)
}
