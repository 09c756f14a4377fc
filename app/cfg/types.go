package cfg

type Cfg struct {
	// Application configuration
	Port            string
	PlatformsFile   string
	MaxContests     int
	StartSearchFrom int
	SourceTimeout   int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
