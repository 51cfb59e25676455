package constants

const (
	AppName = "mnemo"
	Version = "v0.2.0"

	// DateFormat is the calendar date format used for diary dates and event
	// day filters (YYYY-MM-DD)
	DateFormat = "2006-01-02"

	// DatePrefixLen is the number of leading characters of a client timestamp
	// that form its calendar date
	DatePrefixLen = 10

	DefaultListenAddr = ":8000"
	DefaultEventsFile = "/var/lib/mnemo/events.jsonl"
	DefaultDiaryFile  = "/var/lib/mnemo/diary.jsonl"
	DefaultCORSOrigin = "http://localhost:3000"

	DefaultModel = "gpt-4o-mini"

	// KeyringAPIKeyUser is the keyring account name under which the
	// completion API key is stored
	KeyringAPIKeyUser = "openai-api-key"
)
