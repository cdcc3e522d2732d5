package model

import "time"

// SuspiciousIP is an IP that cast an unusual number of votes for one judge
// within the last hour.
type SuspiciousIP struct {
	JudgeID     int64     `json:"judge_id"`
	JudgeName   string    `json:"judge_name"`
	IPAddress   string    `json:"ip_address"`
	CountryName string    `json:"country_name"`
	VoteCount   int       `json:"vote_count"`
	LatestVote  time.Time `json:"latest_vote"`
}

// SuspiciousFingerprint is a browser fingerprint with unusual vote frequency.
type SuspiciousFingerprint struct {
	JudgeID     int64     `json:"judge_id"`
	JudgeName   string    `json:"judge_name"`
	Fingerprint string    `json:"fingerprint"`
	VoteCount   int       `json:"vote_count"`
	LatestVote  time.Time `json:"latest_vote"`
}

// RatioChange captures a rapid swing in a judge's corrupt-vote ratio.
type RatioChange struct {
	JudgeID            int64   `json:"judge_id"`
	JudgeName          string  `json:"judge_name"`
	CorruptRatioBefore float64 `json:"corrupt_ratio_before"`
	CorruptRatioNow    float64 `json:"corrupt_ratio_now"`
	RatioChange        float64 `json:"ratio_change"`
	VotesBefore        int     `json:"votes_before"`
	VotesNow           int     `json:"votes_now"`
	NewVotes           int     `json:"new_votes"`
}

// SuspiciousVotesResponse is the admin suspicious-activity report.
type SuspiciousVotesResponse struct {
	SuspiciousIPs          []SuspiciousIP          `json:"suspicious_ips"`
	SuspiciousFingerprints []SuspiciousFingerprint `json:"suspicious_fingerprints"`
	RatioChanges           []RatioChange           `json:"ratio_changes"`
	HourlyVotes            [24]int                 `json:"hourly_votes"`
}

// CountryVotes is the vote count attributed to a single country.
type CountryVotes struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	VoteCount   int    `json:"vote_count"`
}

// RegionVotes is the vote count attributed to a region within a country.
type RegionVotes struct {
	CountryCode string `json:"country_code"`
	CountryName string `json:"country_name"`
	Region      string `json:"region"`
	VoteCount   int    `json:"vote_count"`
}

// GeoVotesResponse is the admin geographic distribution report.
type GeoVotesResponse struct {
	Countries []CountryVotes `json:"countries"`
	Regions   []RegionVotes  `json:"regions"`
	Hourly    [24]int        `json:"hourly"`
	Daily     [7]int         `json:"daily"`
}

// VoteTrendPoint is one day of vote counts by type.
type VoteTrendPoint struct {
	Date       string `json:"date"`
	Corrupt    int    `json:"corrupt"`
	NotCorrupt int    `json:"not_corrupt"`
}

// TopJudge is a judge ranked by total vote count.
type TopJudge struct {
	JudgeID   int64  `json:"judge_id"`
	JudgeName string `json:"judge_name"`
	VoteCount int    `json:"vote_count"`
}

// VoteAnalysisResponse is the admin vote-analysis report.
type VoteAnalysisResponse struct {
	VoteTypes map[string]int   `json:"vote_types"`
	Trends    []VoteTrendPoint `json:"trends"`
	TopJudges []TopJudge       `json:"top_judges"`
}

// SubmissionStatsResponse counts submissions per moderation state.
type SubmissionStatsResponse struct {
	Pending  int `json:"pending"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}
