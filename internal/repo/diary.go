package repo

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/julianstephens/mnemo/internal/codec"
	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/storage"
)

// ErrNotFound is returned when no diary entry exists for a date. It is
// terminal and non-retryable.
var ErrNotFound = errors.New("no diary entry for this date")

// MetaVersion tags every stored diary entry for forward compatibility.
const MetaVersion = 1

type DiaryRepo struct {
	store  storage.Provider
	policy ScanPolicy
	now    func() time.Time
	newID  func() string
}

func NewDiaryRepo(store storage.Provider, policy ScanPolicy) *DiaryRepo {
	return &DiaryRepo{
		store:  store,
		policy: policy,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Create assigns a fresh id and save timestamp, tags the entry with the
// current meta version, and appends it.
func (r *DiaryRepo) Create(in models.DiaryInput) (models.DiaryEntry, error) {
	entry := models.DiaryEntry{
		ID:      r.newID(),
		Date:    in.Date,
		Answers: in.Answers,
		SavedAt: r.now().UTC().Format(time.RFC3339),
		Meta:    map[string]any{"version": MetaVersion},
	}

	line, err := codec.Encode(entry)
	if err != nil {
		return models.DiaryEntry{}, err
	}
	if err := r.store.Append(storage.LogDiary, line); err != nil {
		return models.DiaryEntry{}, err
	}

	return entry, nil
}

// GetByDate scans the full diary log and returns the last entry appended for
// the date. Order in the log is authoritative, not saved_at comparison.
func (r *DiaryRepo) GetByDate(date string) (models.DiaryEntry, error) {
	lines, err := r.store.Scan(storage.LogDiary)
	if err != nil {
		return models.DiaryEntry{}, err
	}

	var latest *models.DiaryEntry
	for _, line := range lines {
		var entry models.DiaryEntry
		if err := codec.Decode(line, &entry); err != nil {
			if r.policy == ScanSkip {
				logger.Warn("Skipping malformed diary record", "error", err)
				continue
			}
			return models.DiaryEntry{}, fmt.Errorf("diary log: %w", err)
		}
		if entry.Date == date {
			e := entry
			latest = &e
		}
	}

	if latest == nil {
		return models.DiaryEntry{}, ErrNotFound
	}
	return *latest, nil
}
