package service

import (
	"context"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestJudgesKeyVariants(t *testing.T) {
	if got := judgesKey(false); got != "judges:list:all" {
		t.Errorf("judgesKey(false) = %q", got)
	}
	if got := judgesKey(true); got != "judges:list:us" {
		t.Errorf("judgesKey(true) = %q", got)
	}
}

func TestDisabledCacheRecordsNoCounts(t *testing.T) {
	c := NewCacheService("")
	hits := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cache_hits"})
	misses := prometheus.NewCounter(prometheus.CounterOpts{Name: "test_cache_misses"})
	c.SetCounters(hits, misses)

	data, err := c.GetJudges(context.Background(), false)
	if err != nil || data != nil {
		t.Fatalf("GetJudges on disabled cache = (%v, %v), want (nil, nil)", data, err)
	}
	if err := c.SetJudges(context.Background(), false, map[string]string{"k": "v"}); err != nil {
		t.Fatalf("SetJudges on disabled cache: %v", err)
	}
	if err := c.InvalidateJudges(context.Background()); err != nil {
		t.Fatalf("InvalidateJudges on disabled cache: %v", err)
	}

	// A disabled cache never served or missed a lookup, so neither
	// counter may move.
	if got := testutil.ToFloat64(hits); got != 0 {
		t.Errorf("hits = %v, want 0", got)
	}
	if got := testutil.ToFloat64(misses); got != 0 {
		t.Errorf("misses = %v, want 0", got)
	}
}

func TestCacheCountersOptional(t *testing.T) {
	c := NewCacheService("")
	// No SetCounters call; lookups must not panic on nil counters.
	if _, err := c.GetJudges(context.Background(), true); err != nil {
		t.Fatalf("GetJudges: %v", err)
	}
}
