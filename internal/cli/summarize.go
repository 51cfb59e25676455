package cli

import (
	"fmt"
	"sort"

	"github.com/julianstephens/mnemo/internal/repo"
)

// SummarizeCmd prints an offline per-type breakdown of one day's events. It
// never touches the completion collaborator; use the diary summary endpoint
// for prose.
type SummarizeCmd struct {
	Date string `arg:"" help:"Date to summarize (YYYY-MM-DD)."`
}

func (cmd *SummarizeCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	events, err := repo.NewEventRepo(ctx.Store, scanPolicy(ctx.Config)).List(repo.Filter{Date: cmd.Date})
	if err != nil {
		return err
	}

	counts := make(map[string]int)
	for _, event := range events {
		counts[event.Type]++
	}

	types := make([]string, 0, len(counts))
	for t := range counts {
		types = append(types, t)
	}
	// Most frequent first, name as tiebreaker
	sort.Slice(types, func(i, j int) bool {
		if counts[types[i]] != counts[types[j]] {
			return counts[types[i]] > counts[types[j]]
		}
		return types[i] < types[j]
	})

	fmt.Printf("Summary for %s\n", cmd.Date)
	fmt.Printf("Total events: %d\n", len(events))
	fmt.Println()
	for _, t := range types {
		fmt.Printf("  %s: %d\n", t, counts[t])
	}
	fmt.Println()
	for _, event := range events {
		fmt.Printf("  [%s] %s\n", event.Type, event.Text)
	}

	return nil
}
