package service

import (
	"context"

	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/pkg/pow"
)

// SubmissionStore persists candidate judges.
type SubmissionStore interface {
	Insert(ctx context.Context, req model.SubmissionRequest, ip string) (int64, error)
}

// GeoWarmer accepts best-effort geolocation warm requests. Dispatch must
// never block or fail the admission result.
type GeoWarmer interface {
	Warm(ip string)
}

// SubmissionService runs the submission admission pipeline: rate limit,
// honeypot, proof of work, persistence, then a fire-and-forget geolocation
// cache warm. HMAC runs in middleware before the handler.
type SubmissionService struct {
	store SubmissionStore
	gate  *GateService
	geo   GeoWarmer
}

func NewSubmissionService(store SubmissionStore, gate *GateService, geo GeoWarmer) *SubmissionService {
	return &SubmissionService{store: store, gate: gate, geo: geo}
}

// Submit admits and persists one candidate judge from the given identity.
func (s *SubmissionService) Submit(ctx context.Context, ip string, req model.SubmissionRequest) error {
	allowed, err := s.gate.AllowSubmission(ctx, ip)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrSubmissionRateLimited
	}

	// A populated honeypot field means a bot filled the hidden input.
	// The rejection message stays generic so the field is not revealed.
	if req.Honeypot != "" {
		return ErrSubmissionRejected
	}

	if req.ProofOfWork.Nonce == "" && req.ProofOfWork.Hash == "" {
		return ErrMissingProof
	}
	if !pow.VerifyProof(req.ProofOfWork, pow.DefaultDifficulty) {
		return ErrInvalidProof
	}

	if _, err := s.store.Insert(ctx, req, ip); err != nil {
		return err
	}

	if s.geo != nil {
		s.geo.Warm(ip)
	}
	return nil
}
