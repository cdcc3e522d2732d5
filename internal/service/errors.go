package service

import "errors"

// Admission failure sentinels. The messages are part of the public wire
// contract and are surfaced verbatim in error bodies.
var (
	ErrJudgeNotFound   = errors.New("Judge not found")
	ErrVoteCooldown    = errors.New("You can only vote once per judge every 24 hours")
	ErrInvalidVoteType = errors.New("Invalid vote type")
	ErrMissingProof    = errors.New("Missing proof of work")
	ErrInvalidProof    = errors.New("Invalid proof of work")

	ErrSubmissionRateLimited = errors.New("Rate limit exceeded. Please wait 10 minutes between submissions.")
	ErrSubmissionRejected    = errors.New("Submission rejected")
)
