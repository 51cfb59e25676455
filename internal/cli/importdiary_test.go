package cli

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/service"
	"github.com/julianstephens/mnemo/internal/storage"
)

type fakeCompleter struct {
	response string
}

func (f *fakeCompleter) Complete(_ context.Context, _, _ string) (string, error) {
	return f.response, nil
}

func setupImport(t *testing.T, response string) (*service.Service, *repo.DiaryRepo) {
	t.Helper()

	tempDir := t.TempDir()
	store := storage.NewJSONLStore(
		filepath.Join(tempDir, "events.jsonl"),
		filepath.Join(tempDir, "diary.jsonl"),
	)
	if err := store.Init(); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}

	events := repo.NewEventRepo(store, repo.ScanAbort)
	diary := repo.NewDiaryRepo(store, repo.ScanAbort)
	return service.New(store, events, &fakeCompleter{response: response}), diary
}

func TestImportFileDateFromFilename(t *testing.T) {
	svc, diary := setupImport(t, `{"energy":"7","gratitude":"sunshine"}`)

	dir := t.TempDir()
	path := filepath.Join(dir, "2026-05-02.md")
	if err := os.WriteFile(path, []byte("# Diary\n\nFelt energetic, grateful for sunshine."), 0600); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	entry, err := importFile(svc, diary, path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if entry.Date != "2026-05-02" {
		t.Errorf("expected date from filename stem, got %q", entry.Date)
	}
	if entry.Answers["energy"] != "7" {
		t.Errorf("expected energy answer, got %+v", entry.Answers)
	}
	if _, ok := entry.Answers["headaches"]; ok {
		t.Error("unanswered questions must be dropped from the stored entry")
	}

	stored, err := diary.GetByDate("2026-05-02")
	if err != nil {
		t.Fatalf("entry must be retrievable after import: %v", err)
	}
	if stored.ID != entry.ID {
		t.Errorf("expected stored entry %s, got %s", entry.ID, stored.ID)
	}
}

func TestImportFileSkipsEmpty(t *testing.T) {
	svc, diary := setupImport(t, `{}`)

	dir := t.TempDir()
	path := filepath.Join(dir, "2026-05-03.md")
	if err := os.WriteFile(path, []byte("   \n\n"), 0600); err != nil {
		t.Fatalf("failed to write note: %v", err)
	}

	entry, err := importFile(svc, diary, path)
	if err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if entry != nil {
		t.Errorf("empty files must be skipped, got %+v", entry)
	}
}
