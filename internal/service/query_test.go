package service

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/julianstephens/mnemo/internal/llm"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/storage"
)

// fakeCompleter records prompts and counts invocations so tests can assert
// the short-circuit paths never reach the collaborator.
type fakeCompleter struct {
	calls    int
	response string
	err      error
	lastSys  string
	lastUser string
}

func (f *fakeCompleter) Complete(_ context.Context, system, user string) (string, error) {
	f.calls++
	f.lastSys = system
	f.lastUser = user
	if f.err != nil {
		return "", f.err
	}
	return f.response, nil
}

func setupService(t *testing.T, completer llm.Completer) (*Service, storage.Provider, *repo.EventRepo) {
	tempDir := t.TempDir()
	store := storage.NewJSONLStore(
		filepath.Join(tempDir, "events.jsonl"),
		filepath.Join(tempDir, "diary.jsonl"),
	)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	events := repo.NewEventRepo(store, repo.ScanAbort)
	return New(store, events, completer), store, events
}

func TestQueryEmptyLogsShortCircuits(t *testing.T) {
	fake := &fakeCompleter{response: "should not be used"}
	svc, _, _ := setupService(t, fake)

	answer, err := svc.Query(context.Background(), "how am I doing?")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if answer != NoDataAnswer {
		t.Errorf("expected sentinel answer, got %q", answer)
	}
	if fake.calls != 0 {
		t.Errorf("collaborator must not be invoked on empty logs, got %d calls", fake.calls)
	}
}

func TestQueryEmbedsBothLogs(t *testing.T) {
	fake := &fakeCompleter{response: "you logged one symptom"}
	svc, store, events := setupService(t, fake)

	if _, err := events.Create(models.EventInput{
		ID:              "evt-1",
		ClientTimestamp: "2026-02-14T09:00:00Z",
		Type:            "Symptom",
		Text:            "headache",
	}); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if err := store.Append(storage.LogDiary, `{"id":"d1","date":"2026-02-14","answers":{}}`); err != nil {
		t.Fatalf("failed to append diary line: %v", err)
	}

	answer, err := svc.Query(context.Background(), "how am I doing?")
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if answer != "you logged one symptom" {
		t.Errorf("unexpected answer: %q", answer)
	}
	if fake.calls != 1 {
		t.Fatalf("expected one collaborator call, got %d", fake.calls)
	}
	if !strings.Contains(fake.lastUser, "headache") {
		t.Error("prompt must embed the raw events log")
	}
	if !strings.Contains(fake.lastUser, `"d1"`) {
		t.Error("prompt must embed the raw diary log")
	}
	if !strings.Contains(fake.lastUser, "Question: how am I doing?") {
		t.Error("prompt must embed the question")
	}
}

func TestQueryUnconfigured(t *testing.T) {
	svc, _, _ := setupService(t, nil)

	_, err := svc.Query(context.Background(), "anything")
	if !errors.Is(err, llm.ErrUnconfigured) {
		t.Errorf("expected ErrUnconfigured, got %v", err)
	}
}

func TestSummarizeDayNoEventsShortCircuits(t *testing.T) {
	fake := &fakeCompleter{response: "should not be used"}
	svc, _, events := setupService(t, fake)

	// An event on another date must not count
	if _, err := events.Create(models.EventInput{
		ID:              "evt-1",
		ClientTimestamp: "2026-03-31T09:00:00Z",
		Type:            "Symptom",
		Text:            "x",
	}); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	summary, err := svc.SummarizeDay(context.Background(), "2026-04-01")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if summary != NoEventsSummary {
		t.Errorf("expected sentinel summary, got %q", summary)
	}
	if fake.calls != 0 {
		t.Errorf("collaborator must not be invoked with no events, got %d calls", fake.calls)
	}
}

func TestSummarizeDayExcludesDiaryEvents(t *testing.T) {
	fake := &fakeCompleter{response: "quiet day"}
	svc, _, events := setupService(t, fake)

	if _, err := events.Create(models.EventInput{
		ID:              "evt-diary",
		ClientTimestamp: "2026-04-01T08:00:00Z",
		Type:            models.EventTypeDiary,
		Text:            "diary submitted",
	}); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}
	if _, err := events.Create(models.EventInput{
		ID:              "evt-walk",
		ClientTimestamp: "2026-04-01T10:00:00Z",
		Type:            "Intervention",
		Text:            "morning walk",
	}); err != nil {
		t.Fatalf("failed to create event: %v", err)
	}

	summary, err := svc.SummarizeDay(context.Background(), "2026-04-01")
	if err != nil {
		t.Fatalf("summarize failed: %v", err)
	}
	if summary != "quiet day" {
		t.Errorf("unexpected summary: %q", summary)
	}
	if strings.Contains(fake.lastUser, "diary submitted") {
		t.Error("diary-typed events must be excluded from the summary input")
	}
	if !strings.Contains(fake.lastUser, "morning walk") {
		t.Error("matching events must be included in the summary input")
	}
}

func TestParseAnswersCompleteness(t *testing.T) {
	fake := &fakeCompleter{response: `{"energy":"7"}`}
	svc, _, _ := setupService(t, fake)

	questions := []models.Question{
		{Key: "energy", Label: "Energy"},
		{Key: "mood", Label: "Mood"},
	}
	answers, err := svc.ParseAnswers(context.Background(), "felt pretty energetic", questions)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}

	if len(answers) != 2 {
		t.Fatalf("expected 2 keys, got %d", len(answers))
	}
	if answers["energy"] != "7" {
		t.Errorf("expected energy 7, got %q", answers["energy"])
	}
	if answers["mood"] != "" {
		t.Errorf("expected empty mood, got %q", answers["mood"])
	}
}

func TestParseAnswersDropsExtrasAndCoercesNumbers(t *testing.T) {
	fake := &fakeCompleter{response: `{"energy":7,"unrequested":"x"}`}
	svc, _, _ := setupService(t, fake)

	answers, err := svc.ParseAnswers(context.Background(), "text", []models.Question{{Key: "energy", Label: "Energy"}})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if answers["energy"] != "7" {
		t.Errorf("expected numeric answer coerced to \"7\", got %q", answers["energy"])
	}
	if _, ok := answers["unrequested"]; ok {
		t.Error("keys outside the requested set must be dropped")
	}
}

func TestParseAnswersStripsFences(t *testing.T) {
	fake := &fakeCompleter{response: "```json\n{\"energy\":\"5\"}\n```"}
	svc, _, _ := setupService(t, fake)

	answers, err := svc.ParseAnswers(context.Background(), "text", []models.Question{{Key: "energy", Label: "Energy"}})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if answers["energy"] != "5" {
		t.Errorf("expected energy 5, got %q", answers["energy"])
	}
}

func TestParseAnswersMalformedPayload(t *testing.T) {
	fake := &fakeCompleter{response: "sorry, I can't do that"}
	svc, _, _ := setupService(t, fake)

	_, err := svc.ParseAnswers(context.Background(), "text", []models.Question{{Key: "energy", Label: "Energy"}})
	if !errors.Is(err, llm.ErrCollaborator) {
		t.Errorf("expected ErrCollaborator, got %v", err)
	}
}
