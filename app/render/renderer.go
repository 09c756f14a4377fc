package render

import (
	"fmt"
	"strings"
	"time"

	"golang.org/x/text/language"

	"github.com/lysyi3m/contest-comb/app/contest"
	"github.com/lysyi3m/contest-comb/app/platforms"
)

// Renderer is pure presentation over the pipeline's already-filtered,
// already-sorted output. Language is negotiated with an Accept-Language
// header against the languages configured in the platforms file; the first
// configured language (preferring "en") is the fallback.
type Renderer struct {
	messages map[string]platforms.Messages
	matcher  language.Matcher
	tagKeys  []string
}

func NewRenderer(config *platforms.Config) *Renderer {
	keys := make([]string, 0, len(config.Messages))
	if _, ok := config.Messages["en"]; ok {
		keys = append(keys, "en")
	}
	for key := range config.Messages {
		if key != "en" {
			keys = append(keys, key)
		}
	}

	tags := make([]language.Tag, 0, len(keys))
	for _, key := range keys {
		tags = append(tags, language.Make(key))
	}

	return &Renderer{
		messages: config.Messages,
		matcher:  language.NewMatcher(tags),
		tagKeys:  keys,
	}
}

// Run assembles the full message: a time-of-day greeting followed by one
// block per contest.
func (r *Renderer) Run(contests []contest.Contest, acceptLanguage string, now time.Time) string {
	messages := r.messagesFor(acceptLanguage)

	if len(contests) == 0 {
		return messages.NoContests
	}

	var b strings.Builder
	b.WriteString(r.greeting(messages, now))
	for _, c := range contests {
		b.WriteString("\n\n")
		b.WriteString(r.contestLines(c, messages))
	}
	return b.String()
}

// NoContests returns the localized successful-but-empty status line.
func (r *Renderer) NoContests(acceptLanguage string) string {
	return r.messagesFor(acceptLanguage).NoContests
}

// QueryFailed returns the localized apology for a pipeline failure.
func (r *Renderer) QueryFailed(acceptLanguage string) string {
	return r.messagesFor(acceptLanguage).QueryFailed
}

func (r *Renderer) messagesFor(acceptLanguage string) platforms.Messages {
	_, index := language.MatchStrings(r.matcher, acceptLanguage)
	return r.messages[r.tagKeys[index]]
}

func (r *Renderer) greeting(messages platforms.Messages, now time.Time) string {
	hour := now.In(time.Local).Hour()
	switch {
	case hour < 12:
		return messages.GreetingMorning
	case hour < 18:
		return messages.GreetingAfternoon
	default:
		return messages.GreetingEvening
	}
}

func (r *Renderer) contestLines(c contest.Contest, messages platforms.Messages) string {
	line := fmt.Sprintf("[%s] %s - %s", c.Platform, c.Name, r.phaseLabel(c.Phase, messages))

	if c.StartAt != nil {
		line += fmt.Sprintf(", %s", c.StartAt.In(time.Local).Format("Mon, 02 Jan 15:04"))
		if c.Duration > 0 {
			line += fmt.Sprintf(" (%s)", formatDuration(c.Duration))
		}
	}

	if c.URL != "" {
		line += "\n  " + c.URL
	}

	return line
}

func (r *Renderer) phaseLabel(phase contest.Phase, messages platforms.Messages) string {
	switch phase {
	case contest.PhaseUpcoming:
		return messages.PhaseUpcoming
	case contest.PhaseCoding:
		return messages.PhaseCoding
	case contest.PhaseEnded:
		return messages.PhaseEnded
	default:
		return string(phase)
	}
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if minutes == 0 {
		return fmt.Sprintf("%dh", hours)
	}
	return fmt.Sprintf("%dh%02dm", hours, minutes)
}
