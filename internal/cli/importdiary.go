package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/julianstephens/mnemo/internal/llm"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/service"
)

// ImportDiaryCmd extracts diary entries from a directory of markdown notes
// (one file per day, date taken from the filename stem) and appends them to
// the diary log.
type ImportDiaryCmd struct {
	Dir string `arg:"" type:"existingdir" help:"Directory containing .md diary files."`
}

func (cmd *ImportDiaryCmd) Run(ctx *Context) error {
	completer := newCompleter(ctx.Config)
	if completer == nil {
		return llm.ErrUnconfigured
	}

	entries, err := os.ReadDir(cmd.Dir)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", cmd.Dir, err)
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".md") {
			files = append(files, entry.Name())
		}
	}
	if len(files) == 0 {
		return fmt.Errorf("no .md files found in %s", cmd.Dir)
	}
	sort.Strings(files)

	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	events := repo.NewEventRepo(ctx.Store, scanPolicy(ctx.Config))
	diary := repo.NewDiaryRepo(ctx.Store, scanPolicy(ctx.Config))
	svc := service.New(ctx.Store, events, completer)

	count := 0
	for _, name := range files {
		fmt.Printf("Processing: %s\n", name)

		entry, err := importFile(svc, diary, filepath.Join(cmd.Dir, name))
		if err != nil {
			fmt.Printf("  Error: %v\n", err)
			continue
		}
		if entry == nil {
			fmt.Printf("  Skipping empty file\n")
			continue
		}

		count++
		fmt.Printf("  -> %s\n", entry.Date)
	}

	fmt.Printf("\nDone. Imported %d entries to %s\n", count, ctx.Store.Location())
	return nil
}

func importFile(svc *service.Service, diary *repo.DiaryRepo, path string) (*models.DiaryEntry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(string(content)) == "" {
		return nil, nil
	}

	parsed, err := svc.ParseAnswers(context.Background(), string(content), models.DefaultQuestions)
	if err != nil {
		return nil, err
	}

	// Keep only answered questions, matching what a direct diary submission
	// would store
	answers := make(map[string]any)
	for key, value := range parsed {
		if value != "" {
			answers[key] = value
		}
	}

	entry, err := diary.Create(models.DiaryInput{
		Date:    strings.TrimSuffix(filepath.Base(path), ".md"),
		Answers: answers,
	})
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
