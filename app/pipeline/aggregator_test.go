package pipeline

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/lysyi3m/contest-comb/app/contest"
)

type fakeSource struct {
	platform string
	contests []contest.Contest
	err      error
}

func (s *fakeSource) Platform() string {
	return s.platform
}

func (s *fakeSource) Fetch(ctx context.Context) ([]contest.Contest, error) {
	return s.contests, s.err
}

func timePtr(t time.Time) *time.Time {
	return &t
}

func newTestAggregator(startSearchFrom int, now time.Time, srcs ...*fakeSource) *Aggregator {
	a := &Aggregator{
		startSearchFrom: startSearchFrom,
		now:             func() time.Time { return now },
	}
	for _, src := range srcs {
		a.sources = append(a.sources, src)
	}
	return a
}

func TestAggregator_TagsPlatform(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces", contests: []contest.Contest{
			{Name: "CF Round", StartAt: timePtr(now.Add(time.Hour)), Phase: contest.PhaseUpcoming},
		}},
		&fakeSource{platform: "AtCoder", contests: []contest.Contest{
			{Name: "ABC 400", StartAt: timePtr(now.Add(2 * time.Hour)), Phase: contest.PhaseUpcoming},
		}},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result) != 2 {
		t.Fatalf("Expected 2 contests, got: %d", len(result))
	}
	for _, c := range result {
		if c.Platform == "" {
			t.Errorf("Expected platform to be set on contest '%s'", c.Name)
		}
	}
}

func TestAggregator_SingleSourceFailureDegrades(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces", err: errors.New("connection refused")},
		&fakeSource{platform: "AtCoder", contests: []contest.Contest{
			{Name: "ABC 400", StartAt: timePtr(now.Add(time.Hour)), Phase: contest.PhaseUpcoming},
		}},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error when one source fails, got: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest from the surviving source, got: %d", len(result))
	}
	if result[0].Platform != "AtCoder" {
		t.Errorf("Expected surviving contest from AtCoder, got: %s", result[0].Platform)
	}
}

func TestAggregator_AllSourcesFailed(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces", err: errors.New("connection refused")},
		&fakeSource{platform: "AtCoder", err: errors.New("timeout")},
	)

	_, err := aggregator.Run(context.Background())
	if !errors.Is(err, ErrAllSourcesFailed) {
		t.Errorf("Expected ErrAllSourcesFailed, got: %v", err)
	}
}

func TestAggregator_EmptySourceIsNotFailure(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces"},
		&fakeSource{platform: "AtCoder"},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error for empty sources, got: %v", err)
	}
	if len(result) != 0 {
		t.Errorf("Expected empty result, got: %d contests", len(result))
	}
}

func TestAggregator_RetentionWindowBoundary(t *testing.T) {
	now := time.Date(2025, 6, 3, 12, 0, 0, 0, time.UTC)
	dayStart := now.Add(-2 * 24 * time.Hour)

	// end == dayStart is kept, end == dayStart-1s is dropped
	onBoundary := contest.Contest{
		Name:     "OnBoundary",
		StartAt:  timePtr(dayStart.Add(-2 * time.Hour)),
		Duration: 2 * time.Hour,
		Phase:    contest.PhaseEnded,
	}
	justOutside := contest.Contest{
		Name:     "JustOutside",
		StartAt:  timePtr(dayStart.Add(-2 * time.Hour)),
		Duration: 2*time.Hour - time.Second,
		Phase:    contest.PhaseEnded,
	}

	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces", contests: []contest.Contest{onBoundary, justOutside}},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest, got: %d", len(result))
	}
	if result[0].Name != "OnBoundary" {
		t.Errorf("Expected 'OnBoundary' to survive the retention window, got: %s", result[0].Name)
	}
}

func TestAggregator_NegativeStartSearchFrom(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	// Negative offset means "look from N days in the future": contests
	// ending before then are dropped even if they just finished.
	justEnded := contest.Contest{
		Name:     "JustEnded",
		StartAt:  timePtr(now.Add(-3 * time.Hour)),
		Duration: time.Hour,
		Phase:    contest.PhaseEnded,
	}
	farFuture := contest.Contest{
		Name:     "FarFuture",
		StartAt:  timePtr(now.Add(5 * 24 * time.Hour)),
		Duration: 2 * time.Hour,
		Phase:    contest.PhaseUpcoming,
	}

	aggregator := newTestAggregator(-1, now,
		&fakeSource{platform: "Codeforces", contests: []contest.Contest{justEnded, farFuture}},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest, got: %d", len(result))
	}
	if result[0].Name != "FarFuture" {
		t.Errorf("Expected only 'FarFuture' to survive, got: %s", result[0].Name)
	}
}

func TestAggregator_MissingStartSurvivesRetention(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	aggregator := newTestAggregator(2, now,
		&fakeSource{platform: "Codeforces", contests: []contest.Contest{
			{Name: "NoStart", Phase: contest.PhaseEnded},
		}},
	)

	result, err := aggregator.Run(context.Background())
	if err != nil {
		t.Fatalf("Expected no error, got: %v", err)
	}

	if len(result) != 1 {
		t.Errorf("Expected contest without start time to survive retention, got %d contests", len(result))
	}
}
