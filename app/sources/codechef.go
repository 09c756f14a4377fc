package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/araddon/dateparse"
	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
)

const codechefListURL = "https://www.codechef.com/api/list/contests/all"

type CodeChef struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	url        string
}

func NewCodeChef(httpClient *http.Client) *CodeChef {
	cfg := cfg.Get()

	return &CodeChef{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.SourceTimeout) * time.Second,
		url:        codechefListURL,
	}
}

func (s *CodeChef) Platform() string {
	return "CodeChef"
}

type codechefContest struct {
	Code     string `json:"contest_code"`
	Name     string `json:"contest_name"`
	StartISO string `json:"contest_start_date_iso"`
	EndISO   string `json:"contest_end_date_iso"`
}

type codechefResponse struct {
	Status  string            `json:"status"`
	Future  []codechefContest `json:"future_contests"`
	Present []codechefContest `json:"present_contests"`
	Past    []codechefContest `json:"past_contests"`
}

func (s *CodeChef) Fetch(ctx context.Context) ([]contest.Contest, error) {
	data, err := fetchURL(ctx, s.httpClient, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contest list: %w", err)
	}

	var resp codechefResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse contest list: %w", err)
	}
	if resp.Status != "success" {
		return nil, fmt.Errorf("API returned status %q", resp.Status)
	}

	now := time.Now()
	var contests []contest.Contest
	for _, bucket := range [][]codechefContest{resp.Present, resp.Future, resp.Past} {
		for _, raw := range bucket {
			c, ok := s.normalize(raw, now)
			if !ok {
				continue
			}
			contests = append(contests, c)
		}
	}

	return contests, nil
}

func (s *CodeChef) normalize(raw codechefContest, now time.Time) (contest.Contest, bool) {
	if raw.Name == "" || raw.Code == "" {
		slog.Debug("Skipping malformed record", "source", s.Platform(), "code", raw.Code)
		return contest.Contest{}, false
	}

	start, err := dateparse.ParseAny(raw.StartISO)
	if err != nil {
		slog.Debug("Skipping record with unparsable start date",
			"source", s.Platform(), "code", raw.Code, "start", raw.StartISO)
		return contest.Contest{}, false
	}

	// Duration is derived from the end date; an unparsable end date leaves
	// a zero duration, which downstream treats as degenerate but legal.
	var duration time.Duration
	if end, err := dateparse.ParseAny(raw.EndISO); err == nil && end.After(start) {
		duration = end.Sub(start)
	}

	return contest.Contest{
		Name:     raw.Name,
		StartAt:  &start,
		Duration: duration,
		Phase:    contest.ComputePhase(start, duration, now),
		URL:      fmt.Sprintf("https://www.codechef.com/%s", raw.Code),
	}, true
}
