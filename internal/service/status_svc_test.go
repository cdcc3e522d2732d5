package service

import (
	"testing"

	"github.com/mikl0s/JAI/internal/model"
)

func TestDerive_BelowMinimumSample(t *testing.T) {
	svc := NewStatusService()

	tests := []struct {
		corrupt, notCorrupt int
	}{
		{0, 0},
		{4, 0},
		{0, 4},
		{2, 2},
	}
	for _, tt := range tests {
		if got := svc.Derive(tt.corrupt, tt.notCorrupt); got != model.StatusUndecided {
			t.Errorf("Derive(%d, %d) = %s, want undecided (below minimum sample)",
				tt.corrupt, tt.notCorrupt, got)
		}
	}
}

func TestDerive_Verdicts(t *testing.T) {
	svc := NewStatusService()

	tests := []struct {
		corrupt, notCorrupt int
		want                string
	}{
		{5, 0, model.StatusCorrupt},
		{0, 5, model.StatusNotCorrupt},
		{3, 2, model.StatusUndecided}, // 60% < 83.33%
		{4, 1, model.StatusUndecided}, // 80% < 83.33%
		{5, 1, model.StatusCorrupt},   // exactly 5/6, boundary is inclusive
		{1, 5, model.StatusNotCorrupt},
		{10, 1, model.StatusCorrupt},
		{10, 2, model.StatusCorrupt},  // 10/12 = 5/6
		{10, 3, model.StatusUndecided},
		{100, 19, model.StatusCorrupt},
		{100, 21, model.StatusUndecided},
	}
	for _, tt := range tests {
		if got := svc.Derive(tt.corrupt, tt.notCorrupt); got != tt.want {
			t.Errorf("Derive(%d, %d) = %s, want %s", tt.corrupt, tt.notCorrupt, got, tt.want)
		}
	}
}

func TestDerive_MirrorSymmetry(t *testing.T) {
	svc := NewStatusService()

	mirror := map[string]string{
		model.StatusCorrupt:    model.StatusNotCorrupt,
		model.StatusNotCorrupt: model.StatusCorrupt,
		model.StatusUndecided:  model.StatusUndecided,
	}

	for c := 0; c <= 30; c++ {
		for n := 0; n <= 30; n++ {
			got := svc.Derive(n, c)
			want := mirror[svc.Derive(c, n)]
			if got != want {
				t.Fatalf("Derive(%d, %d) = %s, want mirror %s of Derive(%d, %d)",
					n, c, got, want, c, n)
			}
		}
	}
}

func TestDerive_BothThresholdsCannotHold(t *testing.T) {
	_ = NewStatusService()

	// The supermajority cutoff partitions the outcome space: no tally can
	// satisfy both sides at once. Exhaustively check small totals.
	for c := 0; c <= 50; c++ {
		for n := 0; n <= 50; n++ {
			total := c + n
			if total < MinVotesForStatus {
				continue
			}
			corruptWins := c*6 >= total*5
			notCorruptWins := n*6 >= total*5
			if corruptWins && notCorruptWins {
				t.Fatalf("both thresholds hold for (%d, %d)", c, n)
			}
		}
	}
}
