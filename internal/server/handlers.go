package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/julianstephens/mnemo/internal/codec"
	"github.com/julianstephens/mnemo/internal/llm"
	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/repo"
)

type queryRequest struct {
	Question string `json:"question"`
}

type queryResponse struct {
	Answer string `json:"answer"`
}

type summaryResponse struct {
	Summary string `json:"summary"`
}

type parseRequest struct {
	Text      string            `json:"text"`
	Questions []models.Question `json:"questions,omitempty"`
}

type parseResponse struct {
	Answers map[string]string `json:"answers"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateEvent(w http.ResponseWriter, r *http.Request) {
	var in models.EventInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.ID == "" || in.ClientTimestamp == "" || in.Type == "" {
		writeError(w, http.StatusBadRequest, "id, client_timestamp, and type are required")
		return
	}

	event, err := s.events.Create(in)
	if err != nil {
		s.internalError(w, "failed to store event", err)
		return
	}
	writeJSON(w, http.StatusCreated, event)
}

func (s *Server) handleListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := repo.Filter{
		Date: q.Get("date"),
		From: q.Get("from"),
		To:   q.Get("to"),
	}
	if filter.Date != "" && (filter.From != "" || filter.To != "") {
		writeError(w, http.StatusBadRequest, "date and from/to are mutually exclusive")
		return
	}
	if (filter.From == "") != (filter.To == "") {
		writeError(w, http.StatusBadRequest, "from and to must be provided together")
		return
	}

	events, err := s.events.List(filter)
	if err != nil {
		if errors.Is(err, codec.ErrMalformedRecord) {
			s.internalError(w, "events log is corrupted", err)
			return
		}
		s.internalError(w, "failed to read events", err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"events": events})
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var in queryRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Question == "" {
		writeError(w, http.StatusBadRequest, "question is required")
		return
	}

	answer, err := s.svc.Query(r.Context(), in.Question)
	if err != nil {
		s.collaboratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, queryResponse{Answer: answer})
}

func (s *Server) handleCreateDiary(w http.ResponseWriter, r *http.Request) {
	var in models.DiaryInput
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Date == "" {
		writeError(w, http.StatusBadRequest, "date is required")
		return
	}

	entry, err := s.diary.Create(in)
	if err != nil {
		s.internalError(w, "failed to store diary entry", err)
		return
	}
	writeJSON(w, http.StatusCreated, entry)
}

func (s *Server) handleGetDiary(w http.ResponseWriter, r *http.Request) {
	entry, err := s.diary.GetByDate(r.PathValue("date"))
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			writeError(w, http.StatusNotFound, "No diary entry for this date")
			return
		}
		s.internalError(w, "failed to read diary", err)
		return
	}
	writeJSON(w, http.StatusOK, entry)
}

func (s *Server) handleDiarySummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.svc.SummarizeDay(r.Context(), r.PathValue("date"))
	if err != nil {
		s.collaboratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summaryResponse{Summary: summary})
}

func (s *Server) handleParseAnswers(w http.ResponseWriter, r *http.Request) {
	var in parseRequest
	if err := decodeBody(r, &in); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if in.Text == "" {
		writeError(w, http.StatusBadRequest, "text is required")
		return
	}
	questions := in.Questions
	if len(questions) == 0 {
		questions = models.DefaultQuestions
	}

	answers, err := s.svc.ParseAnswers(r.Context(), in.Text, questions)
	if err != nil {
		s.collaboratorError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, parseResponse{Answers: answers})
}

func (s *Server) collaboratorError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, llm.ErrUnconfigured):
		writeError(w, http.StatusInternalServerError, "OpenAI API key not configured")
	case errors.Is(err, llm.ErrCollaborator):
		logger.Error("Collaborator request failed", "error", err)
		writeError(w, http.StatusBadGateway, "completion service error")
	default:
		s.internalError(w, "failed to read logs", err)
	}
}

func (s *Server) internalError(w http.ResponseWriter, msg string, err error) {
	logger.Error(msg, "error", err)
	writeError(w, http.StatusInternalServerError, msg)
}

func decodeBody(r *http.Request, v any) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		return errors.New("invalid JSON body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("Failed to encode response", "error", err)
	}
}

// writeError emits the {"detail": ...} error shape the diary frontend
// already understands.
func writeError(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
