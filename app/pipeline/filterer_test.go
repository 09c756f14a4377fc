package pipeline

import (
	"testing"
	"time"

	"github.com/lysyi3m/contest-comb/app/contest"
)

func testAliases() map[string]string {
	return map[string]string{
		"cf":      "Codeforces",
		"forces":  "Codeforces",
		"ac":      "AtCoder",
		"atcoder": "AtCoder",
	}
}

func testContests() []contest.Contest {
	return []contest.Contest{
		{Name: "CF Round", Platform: "Codeforces", Phase: contest.PhaseUpcoming},
		{Name: "ABC 400", Platform: "AtCoder", Phase: contest.PhaseCoding},
		{Name: "Old CF Round", Platform: "Codeforces", Phase: contest.PhaseEnded},
	}
}

func TestFilterer_NoOptions(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{})

	if len(result) != 3 {
		t.Errorf("Expected all 3 contests without options, got: %d", len(result))
	}
}

func TestFilterer_PlatformAlias(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Platform: "cf"})

	if len(result) != 2 {
		t.Fatalf("Expected 2 Codeforces contests, got: %d", len(result))
	}
	for _, c := range result {
		if c.Platform != "Codeforces" {
			t.Errorf("Expected only Codeforces contests, got: %s", c.Platform)
		}
	}
}

func TestFilterer_PlatformAliasAndCanonicalRoundTrip(t *testing.T) {
	filterer := NewFilterer(testAliases())

	byAlias := filterer.Run(testContests(), Options{Platform: "CF"})
	byCanonical := filterer.Run(testContests(), Options{Platform: "codeforces"})

	if len(byAlias) != len(byCanonical) {
		t.Fatalf("Expected identical result sets, got %d vs %d", len(byAlias), len(byCanonical))
	}
	for i := range byAlias {
		if byAlias[i].Name != byCanonical[i].Name {
			t.Errorf("Result %d differs: '%s' vs '%s'", i, byAlias[i].Name, byCanonical[i].Name)
		}
	}
}

func TestFilterer_UnknownPlatformYieldsEmpty(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Platform: "topcoder"})

	// Strict match policy: unknown token empties the result, it is not a no-op
	if len(result) != 0 {
		t.Errorf("Expected empty result for unknown platform, got: %d contests", len(result))
	}
	if result == nil {
		t.Error("Expected empty slice, not nil")
	}
}

func TestFilterer_PhaseSubstring(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Phase: "up"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 upcoming contest, got: %d", len(result))
	}
	if result[0].Phase != contest.PhaseUpcoming {
		t.Errorf("Expected upcoming contest, got: %s", result[0].Phase)
	}
}

func TestFilterer_PhaseSubstringCaseInsensitive(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Phase: "CODING"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 coding contest, got: %d", len(result))
	}
	if result[0].Name != "ABC 400" {
		t.Errorf("Expected 'ABC 400', got: %s", result[0].Name)
	}
}

func TestFilterer_PhasePartialTokenMatchesOnlyContaining(t *testing.T) {
	filterer := NewFilterer(testAliases())

	// "ing" is a substring of "coding" only; documented substring semantics
	result := filterer.Run(testContests(), Options{Phase: "ing"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest matching 'ing', got: %d", len(result))
	}
	if result[0].Phase != contest.PhaseCoding {
		t.Errorf("Expected coding contest, got: %s", result[0].Phase)
	}
}

func TestFilterer_DateMatchesLocalCalendarDay(t *testing.T) {
	filterer := NewFilterer(testAliases())

	start := time.Date(2025, 1, 1, 23, 0, 0, 0, time.Local)
	contests := []contest.Contest{
		{Name: "LateEvening", StartAt: &start, Platform: "Codeforces", Phase: contest.PhaseEnded},
	}

	matched := filterer.Run(contests, Options{Date: "2025-01-01"})
	if len(matched) != 1 {
		t.Errorf("Expected contest at 23:00 local to match its calendar day, got: %d", len(matched))
	}

	missed := filterer.Run(contests, Options{Date: "2025-01-02"})
	if len(missed) != 0 {
		t.Errorf("Expected no match for the following day, got: %d", len(missed))
	}
}

func TestFilterer_InvalidDateTokenIsIgnored(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Date: "not-a-date"})

	if len(result) != 3 {
		t.Errorf("Expected invalid date token to leave the set unfiltered, got: %d contests", len(result))
	}
}

func TestFilterer_DateExcludesMissingStart(t *testing.T) {
	filterer := NewFilterer(testAliases())

	start := time.Date(2025, 1, 1, 10, 0, 0, 0, time.Local)
	contests := []contest.Contest{
		{Name: "WithStart", StartAt: &start, Phase: contest.PhaseEnded},
		{Name: "NoStart", Phase: contest.PhaseUpcoming},
	}

	result := filterer.Run(contests, Options{Date: "2025-01-01"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest, got: %d", len(result))
	}
	if result[0].Name != "WithStart" {
		t.Errorf("Expected contest without start time excluded by date filter, got: %s", result[0].Name)
	}
}

func TestFilterer_DateToday(t *testing.T) {
	filterer := NewFilterer(testAliases())

	now := time.Now().In(time.Local)
	contests := []contest.Contest{
		{Name: "Today", StartAt: &now, Phase: contest.PhaseCoding},
	}

	result := filterer.Run(contests, Options{Date: "today"})

	if len(result) != 1 {
		t.Errorf("Expected contest starting now to match 'today', got: %d", len(result))
	}
}

func TestFilterer_StagesCompose(t *testing.T) {
	filterer := NewFilterer(testAliases())

	result := filterer.Run(testContests(), Options{Platform: "cf", Phase: "end"})

	if len(result) != 1 {
		t.Fatalf("Expected 1 contest, got: %d", len(result))
	}
	if result[0].Name != "Old CF Round" {
		t.Errorf("Expected 'Old CF Round', got: %s", result[0].Name)
	}
}
