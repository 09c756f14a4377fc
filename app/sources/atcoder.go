package sources

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
	"github.com/lysyi3m/contest-comb/app/cfg"
	"github.com/lysyi3m/contest-comb/app/contest"
)

const atcoderContestsURL = "https://atcoder.jp/contests/"

// AtCoder has no public listing API; the contests page is a set of HTML
// tables with one row per contest: a start timestamp cell, a linked name
// cell and a "HH:MM" duration cell.
type AtCoder struct {
	httpClient *http.Client
	userAgent  string
	timeout    time.Duration
	url        string
}

func NewAtCoder(httpClient *http.Client) *AtCoder {
	cfg := cfg.Get()

	return &AtCoder{
		httpClient: httpClient,
		userAgent:  cfg.UserAgent,
		timeout:    time.Duration(cfg.SourceTimeout) * time.Second,
		url:        atcoderContestsURL,
	}
}

func (s *AtCoder) Platform() string {
	return "AtCoder"
}

func (s *AtCoder) Fetch(ctx context.Context) ([]contest.Contest, error) {
	data, err := fetchURL(ctx, s.httpClient, s.url, s.userAgent, s.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch contests page: %w", err)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to parse contests page: %w", err)
	}

	now := time.Now()
	var contests []contest.Contest
	doc.Find("table tbody tr").Each(func(_ int, row *goquery.Selection) {
		c, ok := s.normalizeRow(row, now)
		if !ok {
			return
		}
		contests = append(contests, c)
	})

	return contests, nil
}

func (s *AtCoder) normalizeRow(row *goquery.Selection, now time.Time) (contest.Contest, bool) {
	cells := row.Find("td")
	if cells.Length() < 3 {
		return contest.Contest{}, false
	}

	link := cells.Eq(1).Find("a").First()
	name := strings.TrimSpace(link.Text())
	href, hasHref := link.Attr("href")
	if name == "" || !hasHref {
		slog.Debug("Skipping row without contest link", "source", s.Platform())
		return contest.Contest{}, false
	}

	start, err := parseAtCoderTime(strings.TrimSpace(cells.Eq(0).Text()))
	if err != nil {
		slog.Debug("Skipping row with unparsable start time",
			"source", s.Platform(), "name", name)
		return contest.Contest{}, false
	}

	duration, err := parseColonDuration(strings.TrimSpace(cells.Eq(2).Text()))
	if err != nil {
		slog.Debug("Skipping row with unparsable duration",
			"source", s.Platform(), "name", name)
		return contest.Contest{}, false
	}

	url := href
	if strings.HasPrefix(href, "/") {
		url = "https://atcoder.jp" + href
	}

	return contest.Contest{
		Name:     name,
		StartAt:  &start,
		Duration: duration,
		Phase:    contest.ComputePhase(start, duration, now),
		URL:      url,
	}, true
}

// parseAtCoderTime parses the start cell. The page writes timestamps with
// the zone offset glued on ("2025-01-04 21:00:00+0900"); anything else
// falls through to dateparse.
func parseAtCoderTime(value string) (time.Time, error) {
	if t, err := time.Parse("2006-01-02 15:04:05-0700", value); err == nil {
		return t, nil
	}
	return dateparse.ParseAny(value)
}

// parseColonDuration parses the "HH:MM" duration cell. Hours can exceed 24
// for long-running heuristic contests.
func parseColonDuration(value string) (time.Duration, error) {
	parts := strings.Split(value, ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("unexpected duration format: %q", value)
	}

	hours, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, fmt.Errorf("unexpected duration format: %q", value)
	}
	minutes, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, fmt.Errorf("unexpected duration format: %q", value)
	}

	return time.Duration(hours)*time.Hour + time.Duration(minutes)*time.Minute, nil
}
