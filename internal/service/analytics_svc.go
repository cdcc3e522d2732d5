package service

import (
	"context"
	"math"
	"sort"

	"github.com/mikl0s/JAI/internal/model"
	"github.com/mikl0s/JAI/internal/repository"
)

const (
	// Votes per IP or fingerprint per hour before activity is flagged.
	suspiciousVoteThreshold = 5

	// Ratio swing (in absolute ratio points) within an hour before a
	// judge is flagged, and the minimum sample for the comparison.
	ratioChangeThreshold = 0.15
	ratioMinVotes        = 10
)

// AnalyticsService builds the admin dashboard reports.
type AnalyticsService struct {
	repo *repository.AnalyticsRepo
}

func NewAnalyticsService(repo *repository.AnalyticsRepo) *AnalyticsService {
	return &AnalyticsService{repo: repo}
}

// SuspiciousVotes reports high-frequency identities and ratio swings.
func (s *AnalyticsService) SuspiciousVotes(ctx context.Context) (*model.SuspiciousVotesResponse, error) {
	ips, err := s.repo.SuspiciousIPs(ctx, suspiciousVoteThreshold)
	if err != nil {
		return nil, err
	}
	fingerprints, err := s.repo.SuspiciousFingerprints(ctx, suspiciousVoteThreshold)
	if err != nil {
		return nil, err
	}
	snapshots, err := s.repo.VoteSnapshots(ctx)
	if err != nil {
		return nil, err
	}
	hourly, err := s.repo.HourlyVotes(ctx, 1)
	if err != nil {
		return nil, err
	}

	resp := &model.SuspiciousVotesResponse{
		SuspiciousIPs:          ips,
		SuspiciousFingerprints: fingerprints,
		RatioChanges:           detectRatioChanges(snapshots),
		HourlyVotes:            hourly,
	}
	return resp, nil
}

// detectRatioChanges compares each judge's corrupt ratio now against one
// hour ago and flags swings past the threshold. Judges with too few votes
// on either side of the comparison are skipped.
func detectRatioChanges(snapshots []repository.JudgeVoteSnapshot) []model.RatioChange {
	var changes []model.RatioChange
	for _, snap := range snapshots {
		totalBefore := snap.CorruptBefore + snap.NotCorruptBefore
		totalNow := snap.CorruptNow + snap.NotCorruptNow
		if totalBefore < ratioMinVotes || totalNow < ratioMinVotes {
			continue
		}

		ratioBefore := float64(snap.CorruptBefore) / float64(totalBefore)
		ratioNow := float64(snap.CorruptNow) / float64(totalNow)
		change := math.Abs(ratioNow - ratioBefore)
		if change < ratioChangeThreshold {
			continue
		}

		changes = append(changes, model.RatioChange{
			JudgeID:            snap.JudgeID,
			JudgeName:          snap.JudgeName,
			CorruptRatioBefore: roundPct(ratioBefore),
			CorruptRatioNow:    roundPct(ratioNow),
			RatioChange:        roundPct(change),
			VotesBefore:        totalBefore,
			VotesNow:           totalNow,
			NewVotes:           totalNow - totalBefore,
		})
	}

	sort.Slice(changes, func(i, j int) bool {
		return changes[i].RatioChange > changes[j].RatioChange
	})
	return changes
}

// roundPct converts a ratio to a percentage rounded to one decimal.
func roundPct(ratio float64) float64 {
	return math.Round(ratio*1000) / 10
}

// GeoVotes reports the geographic vote distribution.
func (s *AnalyticsService) GeoVotes(ctx context.Context) (*model.GeoVotesResponse, error) {
	countries, err := s.repo.CountryDistribution(ctx)
	if err != nil {
		return nil, err
	}

	// Region breakdown only for the top five resolved countries
	var topCodes []string
	for _, c := range countries {
		if c.CountryCode == "Unknown" {
			continue
		}
		topCodes = append(topCodes, c.CountryCode)
		if len(topCodes) == 5 {
			break
		}
	}

	regions, err := s.repo.RegionDistribution(ctx, topCodes)
	if err != nil {
		return nil, err
	}
	hourly, err := s.repo.HourlyVotes(ctx, 7)
	if err != nil {
		return nil, err
	}
	daily, err := s.repo.DailyVotes(ctx)
	if err != nil {
		return nil, err
	}

	return &model.GeoVotesResponse{
		Countries: countries,
		Regions:   regions,
		Hourly:    hourly,
		Daily:     daily,
	}, nil
}

// VoteAnalysis reports vote distribution, trends, and top judges.
func (s *AnalyticsService) VoteAnalysis(ctx context.Context) (*model.VoteAnalysisResponse, error) {
	types, err := s.repo.VoteTypeCounts(ctx)
	if err != nil {
		return nil, err
	}
	trends, err := s.repo.VoteTrends(ctx)
	if err != nil {
		return nil, err
	}
	top, err := s.repo.TopJudges(ctx, 10)
	if err != nil {
		return nil, err
	}

	return &model.VoteAnalysisResponse{
		VoteTypes: types,
		Trends:    trends,
		TopJudges: top,
	}, nil
}
