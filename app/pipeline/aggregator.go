package pipeline

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
	"github.com/lysyi3m/contest-comb/app/sources"
)

// ErrAllSourcesFailed is returned when no source produced a result at all.
// A single failing source is not an error: it degrades to an empty
// contribution so the other sources still answer the query.
var ErrAllSourcesFailed = errors.New("all contest sources failed")

type Aggregator struct {
	sources         []sources.Source
	startSearchFrom int
	now             func() time.Time
}

func NewAggregator(srcs []sources.Source) *Aggregator {
	cfg := cfg.Get()

	return &Aggregator{
		sources:         srcs,
		startSearchFrom: cfg.StartSearchFrom,
		now:             time.Now,
	}
}

// Run fetches every source concurrently, waits for all of them to settle,
// tags each surviving record with its source's platform label and applies
// the retention window.
func (a *Aggregator) Run(ctx context.Context) ([]contest.Contest, error) {
	results := make([][]contest.Contest, len(a.sources))
	failures := make([]bool, len(a.sources))

	var wg sync.WaitGroup
	for i, src := range a.sources {
		wg.Add(1)
		go func(i int, src sources.Source) {
			defer wg.Done()

			contests, err := src.Fetch(ctx)
			if err != nil {
				slog.Warn("Contest source failed, contributing nothing",
					"platform", src.Platform(), "error", err)
				failures[i] = true
				return
			}
			results[i] = contests
		}(i, src)
	}
	wg.Wait()

	failureCount := 0
	for _, failed := range failures {
		if failed {
			failureCount++
		}
	}
	if len(a.sources) > 0 && failureCount == len(a.sources) {
		return nil, ErrAllSourcesFailed
	}

	dayStart := a.now().Add(-time.Duration(a.startSearchFrom) * 24 * time.Hour)

	merged := make([]contest.Contest, 0)
	for i, contests := range results {
		platform := a.sources[i].Platform()
		for _, c := range contests {
			c.Platform = platform
			if !a.withinRetentionWindow(c, dayStart) {
				continue
			}
			merged = append(merged, c)
		}
	}

	slog.Debug("Aggregated contest sources",
		"sources", len(a.sources),
		"failed", failureCount,
		"contests", len(merged))

	return merged, nil
}

// withinRetentionWindow keeps contests whose end instant is at or after
// dayStart. Records with no usable start time cannot be aged out, so they
// stay.
func (a *Aggregator) withinRetentionWindow(c contest.Contest, dayStart time.Time) bool {
	if c.StartAt == nil {
		return true
	}
	return !c.EndAt().Before(dayStart)
}
