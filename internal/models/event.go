package models

import "github.com/julianstephens/mnemo/internal/constants"

// EventTypeDiary marks events derived from diary submissions. Day summaries
// exclude them so diary context is never fed back into itself.
const EventTypeDiary = "Diary"

// Event is one logged occurrence, as stored in the events log.
type Event struct {
	ID              string         `json:"id"`
	ClientTimestamp string         `json:"client_timestamp"`
	ReceivedAt      string         `json:"received_at"` // server-assigned, UTC, second precision
	Type            string         `json:"type"`
	Text            string         `json:"text"`
	Metrics         map[string]any `json:"metrics,omitempty"`
	Meta            map[string]any `json:"meta,omitempty"`
}

// EventInput is the caller-supplied portion of an event. The id is assigned
// by the client and is not deduplicated; client_timestamp is treated as an
// opaque sortable string and never validated against a calendar.
type EventInput struct {
	ID              string         `json:"id"`
	ClientTimestamp string         `json:"client_timestamp"`
	Type            string         `json:"type"`
	Text            string         `json:"text"`
	Metrics         map[string]any `json:"metrics,omitempty"`
	Meta            map[string]any `json:"meta,omitempty"`
}

// DatePrefix returns the calendar-date portion of a client timestamp
// (the first 10 characters of an ISO-8601 string).
func DatePrefix(timestamp string) string {
	if len(timestamp) < constants.DatePrefixLen {
		return timestamp
	}
	return timestamp[:constants.DatePrefixLen]
}
