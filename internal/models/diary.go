package models

// DiaryEntry is one submission of answers to the diary questions for a
// calendar date. Entries are append-only; multiple entries may exist for the
// same date and the last one appended wins on retrieval.
type DiaryEntry struct {
	ID      string         `json:"id"` // server-assigned
	Date    string         `json:"date"`
	Answers map[string]any `json:"answers"`
	SavedAt string         `json:"saved_at"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// DiaryInput is the caller-supplied portion of a diary entry.
type DiaryInput struct {
	Date    string         `json:"date"`
	Answers map[string]any `json:"answers"`
}

// Question describes one diary question for answer extraction.
type Question struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// DefaultQuestions is the advisory diary question schema. The store does not
// enforce it; it drives answer extraction and the diary frontend.
var DefaultQuestions = []Question{
	{Key: "headaches", Label: "Headaches (1-10)"},
	{Key: "energy", Label: "Energy (1-10)"},
	{Key: "gut", Label: "Gut"},
	{Key: "physical", Label: "Physical"},
	{Key: "hip_pain", Label: "Hip pain (1-10)"},
	{Key: "mental", Label: "Mental"},
	{Key: "life", Label: "Life"},
	{Key: "gratitude", Label: "Gratitude"},
	{Key: "activity", Label: "Activity"},
}
