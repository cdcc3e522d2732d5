package service

import (
	"testing"

	"github.com/mikl0s/JAI/internal/repository"
)

func TestDetectRatioChanges_FlagsLargeSwing(t *testing.T) {
	snapshots := []repository.JudgeVoteSnapshot{
		// 50% corrupt an hour ago, 80% now: 30-point swing
		{JudgeID: 1, JudgeName: "Judge A", CorruptBefore: 10, NotCorruptBefore: 10, CorruptNow: 40, NotCorruptNow: 10},
	}

	changes := detectRatioChanges(snapshots)
	if len(changes) != 1 {
		t.Fatalf("changes = %d, want 1", len(changes))
	}
	c := changes[0]
	if c.CorruptRatioBefore != 50.0 {
		t.Errorf("before = %.1f, want 50.0", c.CorruptRatioBefore)
	}
	if c.CorruptRatioNow != 80.0 {
		t.Errorf("now = %.1f, want 80.0", c.CorruptRatioNow)
	}
	if c.NewVotes != 30 {
		t.Errorf("new votes = %d, want 30", c.NewVotes)
	}
}

func TestDetectRatioChanges_SkipsSmallSamples(t *testing.T) {
	snapshots := []repository.JudgeVoteSnapshot{
		// Huge swing but below the 10-vote minimum an hour ago
		{JudgeID: 1, CorruptBefore: 1, NotCorruptBefore: 3, CorruptNow: 30, NotCorruptNow: 2},
	}
	if changes := detectRatioChanges(snapshots); len(changes) != 0 {
		t.Errorf("changes = %v, want none for small samples", changes)
	}
}

func TestDetectRatioChanges_SkipsStableRatios(t *testing.T) {
	snapshots := []repository.JudgeVoteSnapshot{
		// 60% then 62%: below the 15-point threshold
		{JudgeID: 1, CorruptBefore: 60, NotCorruptBefore: 40, CorruptNow: 62, NotCorruptNow: 38},
	}
	if changes := detectRatioChanges(snapshots); len(changes) != 0 {
		t.Errorf("changes = %v, want none for stable ratios", changes)
	}
}

func TestDetectRatioChanges_SortedBySwing(t *testing.T) {
	snapshots := []repository.JudgeVoteSnapshot{
		{JudgeID: 1, JudgeName: "Small", CorruptBefore: 10, NotCorruptBefore: 10, CorruptNow: 14, NotCorruptNow: 6},
		{JudgeID: 2, JudgeName: "Large", CorruptBefore: 10, NotCorruptBefore: 10, CorruptNow: 19, NotCorruptNow: 1},
	}

	changes := detectRatioChanges(snapshots)
	if len(changes) != 2 {
		t.Fatalf("changes = %d, want 2", len(changes))
	}
	if changes[0].JudgeName != "Large" {
		t.Errorf("first change = %s, want the largest swing first", changes[0].JudgeName)
	}
}
