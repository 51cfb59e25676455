// Package repo implements the event and diary repositories on top of the
// append-only log store.
package repo

import (
	"fmt"
	"time"

	"github.com/julianstephens/mnemo/internal/codec"
	"github.com/julianstephens/mnemo/internal/constants"
	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/storage"
)

// ScanPolicy decides what a repository does with a malformed log line.
type ScanPolicy string

const (
	// ScanAbort fails the whole listing on the first malformed line.
	ScanAbort ScanPolicy = "abort"
	// ScanSkip logs a warning and continues past malformed lines. This also
	// covers a truncated trailing line left by a crash mid-append.
	ScanSkip ScanPolicy = "skip"
)

// Filter selects events for listing. Zero value means "today in UTC".
// Date and From/To are mutually exclusive; the boundary enforces that.
type Filter struct {
	Date string
	From string
	To   string
}

type EventRepo struct {
	store  storage.Provider
	policy ScanPolicy
	now    func() time.Time
}

func NewEventRepo(store storage.Provider, policy ScanPolicy) *EventRepo {
	return &EventRepo{
		store:  store,
		policy: policy,
		now:    time.Now,
	}
}

// Create stamps the event with a server-assigned receipt timestamp and
// appends it. The caller-supplied id and client_timestamp pass through
// untouched; duplicate ids are accepted silently.
func (r *EventRepo) Create(in models.EventInput) (models.Event, error) {
	event := models.Event{
		ID:              in.ID,
		ClientTimestamp: in.ClientTimestamp,
		ReceivedAt:      r.now().UTC().Format(time.RFC3339),
		Type:            in.Type,
		Text:            in.Text,
		Metrics:         in.Metrics,
		Meta:            in.Meta,
	}

	line, err := codec.Encode(event)
	if err != nil {
		return models.Event{}, err
	}
	if err := r.store.Append(storage.LogEvents, line); err != nil {
		return models.Event{}, err
	}

	return event, nil
}

// List returns events matching the filter in append order. Matching is on
// the date prefix of client_timestamp; ranges are inclusive and compared
// lexicographically, which is valid for zero-padded ISO dates.
func (r *EventRepo) List(f Filter) ([]models.Event, error) {
	match := r.matcher(f)
	return r.scan(func(e models.Event) bool {
		return match(models.DatePrefix(e.ClientTimestamp))
	})
}

// DayEvents returns the events for one date, excluding diary-derived events
// so diary summarization never feeds on its own output.
func (r *EventRepo) DayEvents(date string) ([]models.Event, error) {
	return r.scan(func(e models.Event) bool {
		if e.Type == models.EventTypeDiary {
			return false
		}
		return models.DatePrefix(e.ClientTimestamp) == date
	})
}

func (r *EventRepo) matcher(f Filter) func(string) bool {
	switch {
	case f.Date != "":
		return func(prefix string) bool { return prefix == f.Date }
	case f.From != "" || f.To != "":
		return func(prefix string) bool { return prefix >= f.From && prefix <= f.To }
	default:
		today := r.now().UTC().Format(constants.DateFormat)
		return func(prefix string) bool { return prefix == today }
	}
}

func (r *EventRepo) scan(keep func(models.Event) bool) ([]models.Event, error) {
	lines, err := r.store.Scan(storage.LogEvents)
	if err != nil {
		return nil, err
	}

	events := make([]models.Event, 0)
	for _, line := range lines {
		var event models.Event
		if err := codec.Decode(line, &event); err != nil {
			if r.policy == ScanSkip {
				logger.Warn("Skipping malformed event record", "error", err)
				continue
			}
			return nil, fmt.Errorf("events log: %w", err)
		}
		if keep(event) {
			events = append(events, event)
		}
	}

	return events, nil
}
