package service

import (
	"context"
	"time"
)

const (
	// VoteCooldown is the per-(ip, judge) window between votes.
	VoteCooldown = 24 * time.Hour

	// SubmissionWindow is the rolling per-IP window between submissions.
	SubmissionWindow = 10 * time.Minute

	// localhostIP bypasses the submission rate limit unconditionally.
	localhostIP = "127.0.0.1"
)

// WhitelistChecker answers whether an IP holds an unexpired exemption.
type WhitelistChecker interface {
	IsWhitelisted(ctx context.Context, ip string) (bool, error)
}

// SubmissionHistory answers whether an IP submitted recently.
type SubmissionHistory interface {
	HasRecentSubmission(ctx context.Context, ip string, window time.Duration) (bool, error)
}

// GateService decides whether an identity may perform a write action now.
type GateService struct {
	whitelist   WhitelistChecker
	submissions SubmissionHistory
}

func NewGateService(whitelist WhitelistChecker, submissions SubmissionHistory) *GateService {
	return &GateService{whitelist: whitelist, submissions: submissions}
}

// IsWhitelisted reports whether the IP is exempt from cooldowns.
func (g *GateService) IsWhitelisted(ctx context.Context, ip string) (bool, error) {
	return g.whitelist.IsWhitelisted(ctx, ip)
}

// AllowSubmission enforces the one-submission-per-window limit.
// Localhost and whitelisted IPs bypass entirely.
func (g *GateService) AllowSubmission(ctx context.Context, ip string) (bool, error) {
	if ip == localhostIP {
		return true, nil
	}
	whitelisted, err := g.whitelist.IsWhitelisted(ctx, ip)
	if err != nil {
		return false, err
	}
	if whitelisted {
		return true, nil
	}

	recent, err := g.submissions.HasRecentSubmission(ctx, ip, SubmissionWindow)
	if err != nil {
		return false, err
	}
	return !recent, nil
}
