package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
)

const codeforcesListURL = "https://codeforces.com/api/contest.list"

type Codeforces struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	url        string
}

func NewCodeforces(httpClient *http.Client) *Codeforces {
	cfg := cfg.Get()

	return &Codeforces{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.SourceTimeout) * time.Second,
		url:        codeforcesListURL,
	}
}

func (s *Codeforces) Platform() string {
	return "Codeforces"
}

type codeforcesResponse struct {
	Status  string `json:"status"`
	Comment string `json:"comment"`
	Result  []struct {
		ID               int64  `json:"id"`
		Name             string `json:"name"`
		Phase            string `json:"phase"`
		StartTimeSeconds *int64 `json:"startTimeSeconds"`
		DurationSeconds  int64  `json:"durationSeconds"`
	} `json:"result"`
}

func (s *Codeforces) Fetch(ctx context.Context) ([]contest.Contest, error) {
	data, err := fetchURL(ctx, s.httpClient, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contest list: %w", err)
	}

	var resp codeforcesResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse contest list: %w", err)
	}
	if resp.Status != "OK" {
		return nil, fmt.Errorf("API returned status %q: %s", resp.Status, resp.Comment)
	}

	now := time.Now()
	contests := make([]contest.Contest, 0, len(resp.Result))
	for _, raw := range resp.Result {
		if raw.Name == "" || raw.ID == 0 {
			slog.Debug("Skipping malformed record", "source", s.Platform(), "id", raw.ID)
			continue
		}

		c := contest.Contest{
			Name:     raw.Name,
			Duration: time.Duration(raw.DurationSeconds) * time.Second,
			URL:      fmt.Sprintf("https://codeforces.com/contests/%d", raw.ID),
		}

		// The API reports its own phase, but it is recomputed here so all
		// sources share one clock and one boundary rule. The reported phase
		// is only a fallback for records with no start time.
		if raw.StartTimeSeconds != nil {
			start := time.Unix(*raw.StartTimeSeconds, 0)
			c.StartAt = &start
			c.Phase = contest.ComputePhase(start, c.Duration, now)
		} else {
			phase, ok := codeforcesPhase(raw.Phase)
			if !ok {
				slog.Debug("Skipping record with no start time and unknown phase",
					"source", s.Platform(), "name", raw.Name, "phase", raw.Phase)
				continue
			}
			c.Phase = phase
		}

		contests = append(contests, c)
	}

	return contests, nil
}

func codeforcesPhase(phase string) (contest.Phase, bool) {
	switch phase {
	case "BEFORE":
		return contest.PhaseUpcoming, true
	case "CODING":
		return contest.PhaseCoding, true
	case "FINISHED", "PENDING_SYSTEM_TEST", "SYSTEM_TEST":
		return contest.PhaseEnded, true
	default:
		return "", false
	}
}
