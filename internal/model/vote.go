package model

import (
	"time"

	"github.com/mikl0s/JAI/pkg/pow"
)

// Vote type values. Anything else is rejected before persistence.
const (
	VoteCorrupt    = "corrupt"
	VoteNotCorrupt = "not_corrupt"
)

// ValidVoteTypes is the closed set of accepted vote_type values.
var ValidVoteTypes = map[string]bool{
	VoteCorrupt:    true,
	VoteNotCorrupt: true,
}

// Vote represents an individual rating event. Append-only.
type Vote struct {
	ID                 int64     `json:"id"`
	JudgeID            int64     `json:"judge_id"`
	IPAddress          string    `json:"-"`
	BrowserFingerprint string    `json:"-"`
	VoteType           string    `json:"vote_type"`
	CreatedAt          time.Time `json:"created_at"`
}

// VoteRequest is the API request body for casting a vote.
type VoteRequest struct {
	VoteType    string    `json:"vote_type"`
	Fingerprint string    `json:"fingerprint"`
	ProofOfWork pow.Proof `json:"proofOfWork"`
}
