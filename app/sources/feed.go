package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
	"github.com/lysyi3m/contest-comb/app/platforms"
)

// Feed adapts an RSS/Atom contest calendar into a source. Each entry's
// published date is taken as the contest start; the duration is unknown and
// stays zero.
type Feed struct {
	platform     string
	url          string
	gofeedParser *gofeed.Parser
	httpClient   *http.Client
	userAgent    string
	timeout      time.Duration
}

func NewFeed(httpClient *http.Client, feedSource platforms.FeedSource) *Feed {
	cfg := cfg.Get()

	return &Feed{
		platform:     feedSource.Platform,
		url:          feedSource.URL,
		gofeedParser: gofeed.NewParser(),
		httpClient:   httpClient,
		userAgent:    cfg.UserAgent,
		timeout:      time.Duration(cfg.SourceTimeout) * time.Second,
	}
}

func (s *Feed) Platform() string {
	return s.platform
}

func (s *Feed) Fetch(ctx context.Context) ([]contest.Contest, error) {
	data, err := fetchURL(ctx, s.httpClient, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch feed: %w", err)
	}

	feed, err := s.gofeedParser.Parse(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed: %w", err)
	}

	now := time.Now()
	contests := make([]contest.Contest, 0, len(feed.Items))
	for _, item := range feed.Items {
		if item == nil || item.Title == "" || item.Link == "" {
			slog.Debug("Skipping malformed feed entry", "source", s.platform)
			continue
		}

		c := contest.Contest{
			Name: item.Title,
			URL:  item.Link,
		}

		if item.PublishedParsed != nil {
			start := *item.PublishedParsed
			c.StartAt = &start
			c.Phase = contest.ComputePhase(start, 0, now)
		} else {
			// No date at all: announced but not yet scheduled.
			c.Phase = contest.PhaseUpcoming
		}

		contests = append(contests, c)
	}

	return contests, nil
}
