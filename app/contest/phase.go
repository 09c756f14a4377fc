package contest

import "time"

// ComputePhase derives the lifecycle phase of a contest from its start
// instant and duration, relative to now. Boundary equality resolves to the
// more advanced phase: now == start is already coding, now == end is
// already ended.
func ComputePhase(start time.Time, duration time.Duration, now time.Time) Phase {
	if now.After(start.Add(duration)) || now.Equal(start.Add(duration)) {
		return PhaseEnded
	}
	if now.After(start) || now.Equal(start) {
		return PhaseCoding
	}
	return PhaseUpcoming
}
