package storage

// Log names one of the two append-only logs.
type Log string

const (
	LogEvents Log = "events"
	LogDiary  Log = "diary"
)

// Provider is the append-only log store abstraction. The reference
// implementation is newline-delimited text files; SQLite and Postgres
// ordered-log stores sit behind the same interface so the repository
// contracts never change.
type Provider interface {
	// Lifecycle
	Init() error
	Load() error
	Close() error

	// Append writes one record line to the named log. Each append is a
	// single bounded write; relative ordering between concurrent appends is
	// unspecified beyond whatever order the backing store assigns.
	Append(log Log, line string) error

	// Scan returns every non-empty line of the named log in append order.
	// A missing log yields an empty result, not an error. Each call re-reads
	// from the start.
	Scan(log Log) ([]string, error)

	// ReadAll returns the raw text of the named log, one record per line.
	// A missing log yields an empty string.
	ReadAll(log Log) (string, error)

	// Location describes the backing store for diagnostics.
	Location() string
}
