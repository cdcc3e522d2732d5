package model

import "time"

// Judge status values derived from vote counts.
const (
	StatusCorrupt    = "corrupt"
	StatusNotCorrupt = "not_corrupt"
	StatusUndecided  = "undecided"
)

// Judge represents a publicly rated figure.
type Judge struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Position  string    `json:"position"`
	Ruling    string    `json:"ruling"`
	Link      string    `json:"link"`
	XLink     string    `json:"x_link,omitempty"`
	Displayed bool      `json:"displayed"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"-"`
}

// JudgeWithVotes is a judge row joined with its vote aggregates.
type JudgeWithVotes struct {
	Judge
	CorruptVotes    int `json:"corrupt_votes"`
	NotCorruptVotes int `json:"not_corrupt_votes"`
}

// JudgeRequest is the admin request body for adding or updating a judge.
type JudgeRequest struct {
	Name     string `json:"name"`
	Position string `json:"position"`
	Ruling   string `json:"ruling"`
	Link     string `json:"link"`
	XLink    string `json:"x_link"`
}

// JudgeListResponse is the public listing response.
type JudgeListResponse struct {
	Judges []JudgeWithVotes `json:"judges"`
}
