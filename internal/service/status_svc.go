package service

import "github.com/mikl0s/JAI/internal/model"

const (
	// MinVotesForStatus is the minimum sample size before a verdict is issued.
	MinVotesForStatus = 5

	// Supermajority threshold of 5/6 (0.8333...), expressed as a ratio of
	// integers so the read path and the bulk recompute share exact
	// arithmetic with no floating-point divergence.
	thresholdNum = 5
	thresholdDen = 6
)

// StatusService derives the three-way verdict for a judge from its vote
// counts. Pure; both the read path and the bulk recompute call into it.
type StatusService struct{}

func NewStatusService() *StatusService {
	return &StatusService{}
}

// Derive returns corrupt / not_corrupt / undecided for the given tallies.
// Below MinVotesForStatus the verdict is always undecided. At or above it,
// a side wins iff its share reaches 5/6 of the total (inclusive boundary).
func (s *StatusService) Derive(corruptVotes, notCorruptVotes int) string {
	total := corruptVotes + notCorruptVotes
	if total < MinVotesForStatus {
		return model.StatusUndecided
	}

	// side/total >= 5/6  <=>  side*6 >= total*5
	if corruptVotes*thresholdDen >= total*thresholdNum {
		return model.StatusCorrupt
	}
	if notCorruptVotes*thresholdDen >= total*thresholdNum {
		return model.StatusNotCorrupt
	}
	return model.StatusUndecided
}
