package platforms

import (
	"fmt"
	"log/slog"
	"os"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// Load reads the platforms configuration file. A missing file is not an
// error: the compiled-in defaults are enough to run with.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		slog.Debug("Platforms file not found, using defaults", "path", path)
		return Defaults(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}

	config := Defaults()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validate(config); err != nil {
		return nil, fmt.Errorf("invalid platforms config %s: %w", path, err)
	}

	slog.Debug("Platforms configuration loaded",
		"path", path,
		"aliases", len(config.Aliases),
		"feeds", len(config.Feeds),
		"languages", len(config.Messages))

	return config, nil
}

// Defaults returns the compiled-in configuration: the alias table for the
// built-in sources and the English message table.
func Defaults() *Config {
	return &Config{
		Aliases: map[string]string{
			"cf":         "Codeforces",
			"forces":     "Codeforces",
			"codeforces": "Codeforces",
			"cc":         "CodeChef",
			"chef":       "CodeChef",
			"codechef":   "CodeChef",
			"ac":         "AtCoder",
			"atcoder":    "AtCoder",
		},
		Messages: map[string]Messages{
			"en": {
				GreetingMorning:   "Good morning! Here are the contests around now:",
				GreetingAfternoon: "Good afternoon! Here are the contests around now:",
				GreetingEvening:   "Good evening! Here are the contests around now:",
				PhaseUpcoming:     "upcoming",
				PhaseCoding:       "running",
				PhaseEnded:        "ended",
				NoContests:        "No matching contests found.",
				QueryFailed:       "Sorry, something went wrong while looking up contests.",
			},
		},
	}
}

func validate(config *Config) error {
	for alias, canonical := range config.Aliases {
		if alias == "" || canonical == "" {
			return fmt.Errorf("alias entries must have non-empty key and value")
		}
	}

	for i, feed := range config.Feeds {
		if feed.Platform == "" {
			return fmt.Errorf("feed at index %d: platform is required", i)
		}
		if feed.URL == "" {
			return fmt.Errorf("feed at index %d: url is required", i)
		}
	}

	if len(config.Messages) == 0 {
		return fmt.Errorf("at least one message language is required")
	}
	for tag := range config.Messages {
		if _, err := language.Parse(tag); err != nil {
			return fmt.Errorf("invalid language tag '%s': %w", tag, err)
		}
	}

	return nil
}
