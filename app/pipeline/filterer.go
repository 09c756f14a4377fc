package pipeline

import (
	"log/slog"
	"strings"
	"time"

	"github.com/lysyi3m/contest-comb/app/contest"
)

type Filterer struct {
	aliases map[string]string
}

func NewFilterer(aliases map[string]string) *Filterer {
	return &Filterer{aliases: aliases}
}

// Run applies the platform, phase and date filters. Each stage is optional
// and skipped when its option is empty; the stages are independent, so
// order does not matter for the result.
func (f *Filterer) Run(contests []contest.Contest, opts Options) []contest.Contest {
	if opts.Platform != "" {
		contests = f.byPlatform(contests, opts.Platform)
	}
	if opts.Phase != "" {
		contests = f.byPhase(contests, opts.Phase)
	}
	if opts.Date != "" {
		contests = f.byDate(contests, opts.Date)
	}
	return contests
}

// byPlatform resolves the user token against alias keys first, then
// against canonical names. An unrecognized token empties the whole result
// set: strict match, deliberately not a silent no-op.
func (f *Filterer) byPlatform(contests []contest.Contest, token string) []contest.Contest {
	canonical, ok := f.resolvePlatform(token)
	if !ok {
		slog.Debug("Unknown platform token, returning empty result", "token", token)
		return []contest.Contest{}
	}

	kept := make([]contest.Contest, 0, len(contests))
	for _, c := range contests {
		if strings.EqualFold(c.Platform, canonical) {
			kept = append(kept, c)
		}
	}
	return kept
}

func (f *Filterer) resolvePlatform(token string) (string, bool) {
	for alias, canonical := range f.aliases {
		if strings.EqualFold(alias, token) {
			return canonical, true
		}
	}
	for _, canonical := range f.aliases {
		if strings.EqualFold(canonical, token) {
			return canonical, true
		}
	}
	return "", false
}

// byPhase keeps contests whose phase contains the token, case-insensitive.
// Substring matching is user-facing contract here ("up" matches upcoming),
// unlike the exact alias-resolved platform match.
func (f *Filterer) byPhase(contests []contest.Contest, token string) []contest.Contest {
	token = strings.ToLower(token)

	kept := make([]contest.Contest, 0, len(contests))
	for _, c := range contests {
		if strings.Contains(string(c.Phase), token) {
			kept = append(kept, c)
		}
	}
	return kept
}

// byDate keeps contests starting on the target local calendar day. The
// token is either "today" or a strict YYYY-MM-DD date; anything else
// disables the filter rather than failing the query. Comparison is against
// the process's local calendar, with no normalization to the contest's
// origin time zone.
func (f *Filterer) byDate(contests []contest.Contest, token string) []contest.Contest {
	var target time.Time
	if strings.EqualFold(token, "today") {
		target = time.Now().In(time.Local)
	} else {
		parsed, err := time.ParseInLocation("2006-01-02", token, time.Local)
		if err != nil {
			slog.Debug("Ignoring unparsable date token", "token", token)
			return contests
		}
		target = parsed
	}

	targetYear, targetMonth, targetDay := target.Date()

	kept := make([]contest.Contest, 0, len(contests))
	for _, c := range contests {
		if c.StartAt == nil {
			continue
		}
		year, month, day := c.StartAt.In(time.Local).Date()
		if year == targetYear && month == targetMonth && day == targetDay {
			kept = append(kept, c)
		}
	}
	return kept
}
