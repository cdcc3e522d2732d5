package service

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/pkg/pow"
)

// JudgeFinder resolves a displayed judge by ID.
type JudgeFinder interface {
	FindDisplayed(ctx context.Context, id int64) (*model.Judge, error)
}

// VoteStore persists votes with cooldown enforcement.
type VoteStore interface {
	HasRecentVote(ctx context.Context, ip string, judgeID int64, window time.Duration) (bool, error)
	InsertVote(ctx context.Context, judgeID int64, ip, voteType, fingerprint string, cooldown time.Duration, bypassCooldown bool) (bool, error)
}

// VoteService runs the vote admission pipeline. Authenticity (HMAC) is
// enforced by middleware before the handler calls Cast; the remaining gates
// run here in a fixed order: existence, cooldown, vote type, proof of work,
// persistence. The order is part of the contract: a rate-limited caller
// must fail before its proof of work is ever inspected.
type VoteService struct {
	judges JudgeFinder
	votes  VoteStore
	gate   *GateService
	cache  *CacheService
}

func NewVoteService(judges JudgeFinder, votes VoteStore, gate *GateService, cache *CacheService) *VoteService {
	return &VoteService{judges: judges, votes: votes, gate: gate, cache: cache}
}

// Cast admits and persists one vote for the given judge and identity.
func (s *VoteService) Cast(ctx context.Context, judgeID int64, ip string, req model.VoteRequest) error {
	if _, err := s.judges.FindDisplayed(ctx, judgeID); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return ErrJudgeNotFound
		}
		return err
	}

	whitelisted, err := s.gate.IsWhitelisted(ctx, ip)
	if err != nil {
		return err
	}
	if !whitelisted {
		recent, err := s.votes.HasRecentVote(ctx, ip, judgeID, VoteCooldown)
		if err != nil {
			return err
		}
		if recent {
			return ErrVoteCooldown
		}
	}

	if !model.ValidVoteTypes[req.VoteType] {
		return ErrInvalidVoteType
	}

	if req.ProofOfWork.Nonce == "" && req.ProofOfWork.Hash == "" {
		return ErrMissingProof
	}
	if !pow.VerifyProof(req.ProofOfWork, pow.DefaultDifficulty) {
		return ErrInvalidProof
	}

	// Conditional insert re-checks the cooldown atomically, so two
	// concurrent votes racing past the check above cannot both land.
	inserted, err := s.votes.InsertVote(ctx, judgeID, ip, req.VoteType, req.Fingerprint, VoteCooldown, whitelisted)
	if err != nil {
		return err
	}
	if !inserted {
		return ErrVoteCooldown
	}

	if s.cache != nil {
		if err := s.cache.InvalidateJudges(ctx); err != nil {
			log.Printf("cache: invalidate judges error: %v", err)
		}
	}

	return nil
}
