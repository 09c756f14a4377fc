package contest

import (
	"time"
)

// Phase is a contest's lifecycle state relative to the current instant.
// It is a closed enum: every phase comparison in the codebase goes through
// these constants, so a stray string like "ongoing" cannot silently match
// nothing.
type Phase string

const (
	PhaseUpcoming Phase = "upcoming"
	PhaseCoding   Phase = "coding"
	PhaseEnded    Phase = "ended"
)

// Contest is the unified record all sources normalize into.
type Contest struct {
	Name     string        `json:"name"`
	StartAt  *time.Time    `json:"start_at,omitempty"` // nil when the source record had no usable start
	Duration time.Duration `json:"duration"`
	Phase    Phase         `json:"phase"`
	URL      string        `json:"url"`
	Platform string        `json:"platform"` // set exactly once, by the aggregator
}

// EndAt returns the contest's end instant. Callers must check StartAt first.
func (c Contest) EndAt() time.Time {
	return c.StartAt.Add(c.Duration)
}
