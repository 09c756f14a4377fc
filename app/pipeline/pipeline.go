package pipeline

import (
	"context"
	"fmt"

	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
	"github.com/lysyi3m/contest-comb/app/platforms"
	"github.com/lysyi3m/contest-comb/app/sources"
)

// Options is the typed query the command layer hands to the pipeline. All
// fields are optional; zero values mean "no constraint".
type Options struct {
	Platform string
	Phase    string
	Date     string
	Count    int
}

// Pipeline orchestrates aggregate -> filter -> sort -> cap. An empty result
// is a successful outcome, distinguishable from a returned error.
type Pipeline struct {
	aggregator  *Aggregator
	filterer    *Filterer
	sorter      *contest.Sorter
	maxContests int
}

func New(srcs []sources.Source, platformsConfig *platforms.Config) *Pipeline {
	cfg := cfg.Get()

	return &Pipeline{
		aggregator:  NewAggregator(srcs),
		filterer:    NewFilterer(platformsConfig.Aliases),
		sorter:      contest.NewSorter(),
		maxContests: cfg.MaxContests,
	}
}

func (p *Pipeline) Run(ctx context.Context, opts Options) ([]contest.Contest, error) {
	contests, err := p.aggregator.Run(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to aggregate contests: %w", err)
	}

	contests = p.filterer.Run(contests, opts)
	contests = p.sorter.Run(contests)

	return contest.Cap(contests, opts.Count, p.maxContests), nil
}
