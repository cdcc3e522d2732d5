package model

import (
	"time"

	"github.com/mikl0s/JAI/pkg/pow"
)

// Submission moderation states.
const (
	SubmissionPending  = "pending"
	SubmissionApproved = "approved"
	SubmissionRejected = "rejected"
)

// Submission is a candidate judge awaiting moderation.
// Immutable once approved or rejected, except for deletion.
type Submission struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Ruling      string    `json:"ruling"`
	Link        string    `json:"link"`
	XLink       string    `json:"x_link,omitempty"`
	Status      string    `json:"status"`
	IPAddress   string    `json:"-"`
	SubmittedAt time.Time `json:"submitted_at"`
}

// SubmissionRequest is the public request body for submitting a judge.
type SubmissionRequest struct {
	Name        string    `json:"name"`
	Position    string    `json:"position"`
	Ruling      string    `json:"ruling"`
	Link        string    `json:"link"`
	XLink       string    `json:"x_link"`
	Honeypot    string    `json:"honeypot,omitempty"`
	ProofOfWork pow.Proof `json:"proofOfWork"`
}

// PendingGroup is a set of pending submissions sharing the same descriptive
// fields, as shown on the moderation queue.
type PendingGroup struct {
	Name           string    `json:"name"`
	Position       string    `json:"position"`
	Ruling         string    `json:"ruling"`
	Link           string    `json:"link"`
	XLink          string    `json:"x_link,omitempty"`
	Count          int       `json:"submission_count"`
	SubmissionIDs  []int64   `json:"submission_ids"`
	IPAddresses    []string  `json:"-"`
	Locations      []string  `json:"locations"`
	FirstSubmitted time.Time `json:"first_submitted"`
}
