package service

import (
	"context"
	"fmt"
	"log"

	"github.com/mikl0s/JAI/internal/model"
)

// AuditLogger appends back-office audit records.
type AuditLogger interface {
	Insert(ctx context.Context, username, action, details, ip string) error
}

// SubmissionModerator is the repository surface moderation needs.
type SubmissionModerator interface {
	Approve(ctx context.Context, id int64) (int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	ListPendingGrouped(ctx context.Context) ([]model.PendingGroup, error)
}

// GeoFinder resolves cached geolocation rows.
type GeoFinder interface {
	FindByIP(ctx context.Context, ip string) (*model.GeoEntry, error)
}

// ModerationService handles admin submission moderation. Every action
// appends one audit record best-effort: an audit write failure is logged
// to process output and never aborts the moderation action itself.
type ModerationService struct {
	submissions SubmissionModerator
	geo         GeoFinder
	audit       AuditLogger
	cache       *CacheService
}

func NewModerationService(submissions SubmissionModerator, geo GeoFinder, audit AuditLogger, cache *CacheService) *ModerationService {
	return &ModerationService{submissions: submissions, geo: geo, audit: audit, cache: cache}
}

// Approve copies the submission into the judges table and marks it
// approved, in one transaction. Returns the new judge ID.
func (s *ModerationService) Approve(ctx context.Context, id int64, admin, adminIP string) (int64, error) {
	judgeID, err := s.submissions.Approve(ctx, id)
	if err != nil {
		return 0, err
	}

	s.logAction(ctx, admin, "approve_submission", fmt.Sprintf("Approved submission %d (judge %d)", id, judgeID), adminIP)
	if s.cache != nil {
		if err := s.cache.InvalidateJudges(ctx); err != nil {
			log.Printf("cache: invalidate judges error: %v", err)
		}
	}
	return judgeID, nil
}

// Reject marks a submission rejected.
func (s *ModerationService) Reject(ctx context.Context, id int64, admin, adminIP string) error {
	if err := s.submissions.UpdateStatus(ctx, id, model.SubmissionRejected); err != nil {
		return err
	}
	s.logAction(ctx, admin, "reject_submission", fmt.Sprintf("Rejected submission %d", id), adminIP)
	return nil
}

// Delete removes a submission row regardless of its current status.
func (s *ModerationService) Delete(ctx context.Context, id int64, admin, adminIP string) error {
	if err := s.submissions.Delete(ctx, id); err != nil {
		return err
	}
	s.logAction(ctx, admin, "delete_submission", fmt.Sprintf("Deleted submission %d", id), adminIP)
	return nil
}

// PendingQueue returns the moderation queue with submitter locations.
// Missing geolocation rows degrade to "Unknown".
func (s *ModerationService) PendingQueue(ctx context.Context) ([]model.PendingGroup, error) {
	groups, err := s.submissions.ListPendingGrouped(ctx)
	if err != nil {
		return nil, err
	}
	for i := range groups {
		for _, ip := range groups[i].IPAddresses {
			entry, err := s.geo.FindByIP(ctx, ip)
			if err != nil {
				log.Printf("geo: lookup failed for queue: %v", err)
				groups[i].Locations = append(groups[i].Locations, "Unknown")
				continue
			}
			groups[i].Locations = append(groups[i].Locations, entry.Location())
		}
	}
	return groups, nil
}

// LogAction records a non-moderation admin action (login, judge edits,
// status recompute), with the same best-effort policy.
func (s *ModerationService) LogAction(ctx context.Context, admin, action, details, adminIP string) {
	s.logAction(ctx, admin, action, details, adminIP)
}

func (s *ModerationService) logAction(ctx context.Context, admin, action, details, adminIP string) {
	if s.audit == nil {
		return
	}
	if err := s.audit.Insert(ctx, admin, action, details, adminIP); err != nil {
		log.Printf("admin-log: write failed (action=%s): %v", action, err)
	}
}
