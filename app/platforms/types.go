package platforms

// Configuration types for the platforms file

type Config struct {
	Aliases  map[string]string   `yaml:"aliases"` // alias -> canonical platform name, matched case-insensitively
	Feeds    []FeedSource        `yaml:"feeds"`
	Messages map[string]Messages `yaml:"messages"` // BCP 47 language tag -> text table
}

// FeedSource is a calendar feed treated as an extra contest source: each
// entry's published date is the contest start, duration is unknown.
type FeedSource struct {
	Platform string `yaml:"platform"`
	URL      string `yaml:"url"`
}

type Messages struct {
	GreetingMorning   string `yaml:"greeting_morning"`
	GreetingAfternoon string `yaml:"greeting_afternoon"`
	GreetingEvening   string `yaml:"greeting_evening"`
	PhaseUpcoming     string `yaml:"phase_upcoming"`
	PhaseCoding       string `yaml:"phase_coding"`
	PhaseEnded        string `yaml:"phase_ended"`
	NoContests        string `yaml:"no_contests"`
	QueryFailed       string `yaml:"query_failed"`
}
