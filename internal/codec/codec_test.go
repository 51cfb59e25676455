package codec

import (
	"errors"
	"strings"
	"testing"

	"github.com/julianstephens/mnemo/internal/models"
)

func TestEventRoundTrip(t *testing.T) {
	event := models.Event{
		ID:              "evt-1",
		ClientTimestamp: "2026-02-14T09:00:00Z",
		ReceivedAt:      "2026-02-14T09:00:03Z",
		Type:            "Symptom",
		Text:            "mild headache",
		Metrics:         map[string]any{"severity": float64(4)},
		Meta:            map[string]any{"source": "pwa"},
	}

	line, err := Encode(event)
	if err != nil {
		t.Fatalf("failed to encode event: %v", err)
	}
	if strings.Contains(line, "\n") {
		t.Error("encoded line must not contain a newline")
	}

	var decoded models.Event
	if err := Decode(line, &decoded); err != nil {
		t.Fatalf("failed to decode event: %v", err)
	}

	if decoded.ID != event.ID {
		t.Errorf("expected id %s, got %s", event.ID, decoded.ID)
	}
	if decoded.ClientTimestamp != event.ClientTimestamp {
		t.Errorf("expected client_timestamp %s, got %s", event.ClientTimestamp, decoded.ClientTimestamp)
	}
	if decoded.ReceivedAt != event.ReceivedAt {
		t.Errorf("expected received_at %s, got %s", event.ReceivedAt, decoded.ReceivedAt)
	}
	if decoded.Type != event.Type || decoded.Text != event.Text {
		t.Errorf("type/text mismatch: got %s / %s", decoded.Type, decoded.Text)
	}
	if decoded.Metrics["severity"] != float64(4) {
		t.Errorf("expected severity 4, got %v", decoded.Metrics["severity"])
	}
}

func TestDiaryEntryRoundTrip(t *testing.T) {
	entry := models.DiaryEntry{
		ID:      "d4e5",
		Date:    "2026-03-01",
		Answers: map[string]any{"energy": float64(7), "gratitude": "sunshine"},
		SavedAt: "2026-03-01T21:10:00Z",
		Meta:    map[string]any{"version": float64(1)},
	}

	line, err := Encode(entry)
	if err != nil {
		t.Fatalf("failed to encode entry: %v", err)
	}

	var decoded models.DiaryEntry
	if err := Decode(line, &decoded); err != nil {
		t.Fatalf("failed to decode entry: %v", err)
	}

	if decoded.ID != entry.ID || decoded.Date != entry.Date || decoded.SavedAt != entry.SavedAt {
		t.Errorf("identity fields mismatch: %+v", decoded)
	}
	if decoded.Answers["gratitude"] != "sunshine" {
		t.Errorf("expected gratitude answer, got %v", decoded.Answers["gratitude"])
	}
	if decoded.Meta["version"] != float64(1) {
		t.Errorf("expected meta version 1, got %v", decoded.Meta["version"])
	}
}

func TestDecodeOptionalFieldsAbsent(t *testing.T) {
	line := `{"id":"evt-2","client_timestamp":"2026-02-14T10:00:00Z","received_at":"2026-02-14T10:00:01Z","type":"Note","text":"no extras"}`

	var decoded models.Event
	if err := Decode(line, &decoded); err != nil {
		t.Fatalf("failed to decode event without optional fields: %v", err)
	}
	if decoded.Metrics != nil {
		t.Errorf("expected nil metrics, got %v", decoded.Metrics)
	}
	if decoded.Meta != nil {
		t.Errorf("expected nil meta, got %v", decoded.Meta)
	}
}

func TestDecodeMalformedLine(t *testing.T) {
	cases := []string{
		`{"id": "evt-3", "type": `,
		`not json at all`,
		`{"id":"evt-4","type":3`,
	}

	for _, line := range cases {
		var decoded models.Event
		err := Decode(line, &decoded)
		if err == nil {
			t.Errorf("expected error decoding %q, got nil", line)
			continue
		}
		if !errors.Is(err, ErrMalformedRecord) {
			t.Errorf("expected ErrMalformedRecord for %q, got %v", line, err)
		}
	}
}
