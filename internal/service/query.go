// Package service composes repository reads with the external
// text-completion collaborator.
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/julianstephens/mnemo/internal/codec"
	"github.com/julianstephens/mnemo/internal/llm"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/storage"
)

const (
	// NoDataAnswer is returned by Query when both logs are empty; the
	// collaborator is never invoked in that case.
	NoDataAnswer = "No events have been logged yet."
	// NoEventsSummary is returned by SummarizeDay when no events match the
	// date; the collaborator is never invoked in that case.
	NoEventsSummary = "No events logged for this date."
)

const querySystemPrompt = "You are analyzing a personal event log and diary. " +
	"Each line under Events is a JSON event with fields: id, client_timestamp, received_at, type, text, metrics, meta. " +
	"Each line under Diary is a JSON diary entry with fields: id, date, answers, saved_at, meta. " +
	"Answer the user's question based on these records. Be concise and helpful."

const summarySystemPrompt = "Summarize these personal log events as a brief context for a daily diary entry. " +
	"Be concise — a few sentences at most."

type Service struct {
	store     storage.Provider
	events    *repo.EventRepo
	completer llm.Completer
}

// New builds the query façade. completer may be nil when the collaborator is
// unconfigured; operations that need it then fail with llm.ErrUnconfigured.
func New(store storage.Provider, events *repo.EventRepo, completer llm.Completer) *Service {
	return &Service{
		store:     store,
		events:    events,
		completer: completer,
	}
}

// Query answers a free-text question over the raw text of both logs.
func (s *Service) Query(ctx context.Context, question string) (string, error) {
	if s.completer == nil {
		return "", llm.ErrUnconfigured
	}

	eventsText, err := s.store.ReadAll(storage.LogEvents)
	if err != nil {
		return "", err
	}
	diaryText, err := s.store.ReadAll(storage.LogDiary)
	if err != nil {
		return "", err
	}

	if strings.TrimSpace(eventsText) == "" && strings.TrimSpace(diaryText) == "" {
		return NoDataAnswer, nil
	}

	user := fmt.Sprintf("Events:\n%s\n\nDiary:\n%s\n\nQuestion: %s", eventsText, diaryText, question)
	return s.completer.Complete(ctx, querySystemPrompt, user)
}

// SummarizeDay produces a short summary of one day's events as diary
// context. Diary-typed events are excluded from the input set.
func (s *Service) SummarizeDay(ctx context.Context, date string) (string, error) {
	if s.completer == nil {
		return "", llm.ErrUnconfigured
	}

	events, err := s.events.DayEvents(date)
	if err != nil {
		return "", err
	}
	if len(events) == 0 {
		return NoEventsSummary, nil
	}

	var lines []string
	for _, event := range events {
		line, err := codec.Encode(event)
		if err != nil {
			return "", err
		}
		lines = append(lines, line)
	}

	return s.completer.Complete(ctx, summarySystemPrompt, strings.Join(lines, "\n"))
}

// ParseAnswers extracts diary answers from free text. The result contains
// every requested key — empty string when the collaborator found nothing —
// and drops any extra keys the collaborator returns.
func (s *Service) ParseAnswers(ctx context.Context, text string, questions []models.Question) (map[string]string, error) {
	if s.completer == nil {
		return nil, llm.ErrUnconfigured
	}

	var b strings.Builder
	b.WriteString("Extract answers to the following diary questions from the user's text. ")
	b.WriteString("Return a single JSON object mapping question key to a short string answer. ")
	b.WriteString("Omit keys the text does not answer. Return ONLY valid JSON, no markdown fences or extra text.\n\nQuestions:\n")
	for _, q := range questions {
		fmt.Fprintf(&b, "- %s: %s\n", q.Key, q.Label)
	}

	raw, err := s.completer.Complete(ctx, b.String(), text)
	if err != nil {
		return nil, err
	}

	var parsed map[string]any
	if err := json.Unmarshal([]byte(stripFences(raw)), &parsed); err != nil {
		return nil, fmt.Errorf("%w: malformed answers payload: %v", llm.ErrCollaborator, err)
	}

	answers := make(map[string]string, len(questions))
	for _, q := range questions {
		value, ok := parsed[q.Key]
		if !ok || value == nil {
			answers[q.Key] = ""
			continue
		}
		answers[q.Key] = fmt.Sprintf("%v", value)
	}

	return answers, nil
}

// stripFences removes a surrounding markdown code fence, which some models
// add despite instructions.
func stripFences(raw string) string {
	raw = strings.TrimSpace(raw)
	if !strings.HasPrefix(raw, "```") {
		return raw
	}

	if idx := strings.Index(raw, "\n"); idx != -1 {
		raw = raw[idx+1:]
	}
	raw = strings.TrimSpace(raw)
	raw = strings.TrimSuffix(raw, "```")
	return strings.TrimSpace(raw)
}
