package service

import (
	"context"
	"encoding/json"
	"log"

	"github.com/mikl0s/JAI/internal/model"
)

// JudgeStore is the repository surface the judge service needs.
type JudgeStore interface {
	ListWithVotes(ctx context.Context, displayedOnly, usaOnly bool) ([]model.JudgeWithVotes, error)
	Insert(ctx context.Context, req model.JudgeRequest) (int64, error)
	Update(ctx context.Context, id int64, req model.JudgeRequest) error
	ToggleDisplayed(ctx context.Context, id int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

// JudgeService serves the public judge listing and admin judge CRUD.
type JudgeService struct {
	repo   JudgeStore
	status *StatusService
	cache  *CacheService
}

func NewJudgeService(repo JudgeStore, status *StatusService, cache *CacheService) *JudgeService {
	return &JudgeService{repo: repo, status: status, cache: cache}
}

// ListPublic returns displayed judges with vote counts and derived status,
// served cache-aside from Redis with a short TTL.
func (s *JudgeService) ListPublic(ctx context.Context, usaOnly bool) (*model.JudgeListResponse, error) {
	if s.cache != nil {
		if data, err := s.cache.GetJudges(ctx, usaOnly); err == nil && data != nil {
			var cached model.JudgeListResponse
			if err := json.Unmarshal(data, &cached); err == nil {
				return &cached, nil
			}
		}
	}

	judges, err := s.repo.ListWithVotes(ctx, true, usaOnly)
	if err != nil {
		return nil, err
	}

	// Status is derived on the fly; the stored column is only a cache
	// maintained by the recompute pass and must agree with this.
	for i := range judges {
		judges[i].Status = s.status.Derive(judges[i].CorruptVotes, judges[i].NotCorruptVotes)
	}

	resp := &model.JudgeListResponse{Judges: judges}
	if resp.Judges == nil {
		resp.Judges = []model.JudgeWithVotes{}
	}

	if s.cache != nil {
		if err := s.cache.SetJudges(ctx, usaOnly, resp); err != nil {
			log.Printf("cache: set judges error: %v", err)
		}
	}
	return resp, nil
}

// ListAll returns every judge including hidden ones, for the back office.
func (s *JudgeService) ListAll(ctx context.Context) ([]model.JudgeWithVotes, error) {
	judges, err := s.repo.ListWithVotes(ctx, false, false)
	if err != nil {
		return nil, err
	}
	for i := range judges {
		judges[i].Status = s.status.Derive(judges[i].CorruptVotes, judges[i].NotCorruptVotes)
	}
	return judges, nil
}

// Add inserts a judge directly (admin path, no moderation).
func (s *JudgeService) Add(ctx context.Context, req model.JudgeRequest) (int64, error) {
	id, err := s.repo.Insert(ctx, req)
	if err != nil {
		return 0, err
	}
	s.invalidate(ctx)
	return id, nil
}

// Update rewrites a judge's descriptive fields.
func (s *JudgeService) Update(ctx context.Context, id int64, req model.JudgeRequest) error {
	if err := s.repo.Update(ctx, id, req); err != nil {
		return err
	}
	s.invalidate(ctx)
	return nil
}

// ToggleDisplayed flips visibility and returns the new state.
func (s *JudgeService) ToggleDisplayed(ctx context.Context, id int64) (bool, error) {
	displayed, err := s.repo.ToggleDisplayed(ctx, id)
	if err != nil {
		return false, err
	}
	s.invalidate(ctx)
	return displayed, nil
}

// RecalculateAll recomputes every judge's cached status column from its
// vote counts, using the same derivation as the read path. Returns the
// number of judges whose stored status changed.
func (s *JudgeService) RecalculateAll(ctx context.Context) (int, error) {
	judges, err := s.repo.ListWithVotes(ctx, false, false)
	if err != nil {
		return 0, err
	}

	changed := 0
	for _, j := range judges {
		status := s.status.Derive(j.CorruptVotes, j.NotCorruptVotes)
		if status == j.Status {
			continue
		}
		if err := s.repo.UpdateStatus(ctx, j.ID, status); err != nil {
			return changed, err
		}
		changed++
	}

	if changed > 0 {
		s.invalidate(ctx)
	}
	return changed, nil
}

func (s *JudgeService) invalidate(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateJudges(ctx); err != nil {
		log.Printf("cache: invalidate judges error: %v", err)
	}
}
