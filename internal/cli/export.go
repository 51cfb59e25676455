package cli

import (
	"fmt"

	"github.com/julianstephens/mnemo/internal/codec"
	"github.com/julianstephens/mnemo/internal/logger"
	"github.com/julianstephens/mnemo/internal/models"
	"github.com/julianstephens/mnemo/internal/repo"
	"github.com/julianstephens/mnemo/internal/storage"
)

// ExportCmd writes matching events to stdout, one JSON record per line, so
// the output can be piped straight into jq or another log.
type ExportCmd struct {
	Type  string `help:"Keep only events of this type."`
	Since string `help:"Keep only events on or after this date (YYYY-MM-DD)." placeholder:"DATE"`
}

func (cmd *ExportCmd) Run(ctx *Context) error {
	if err := ctx.Store.Load(); err != nil {
		return err
	}
	defer ctx.Store.Close()

	lines, err := ctx.Store.Scan(storage.LogEvents)
	if err != nil {
		return err
	}

	policy := scanPolicy(ctx.Config)
	for _, line := range lines {
		var event models.Event
		if err := codec.Decode(line, &event); err != nil {
			if policy == repo.ScanSkip {
				logger.Warn("Skipping malformed event record", "error", err)
				continue
			}
			return fmt.Errorf("events log: %w", err)
		}

		if cmd.Type != "" && event.Type != cmd.Type {
			continue
		}
		if cmd.Since != "" && event.ClientTimestamp < cmd.Since {
			continue
		}

		out, err := codec.Encode(event)
		if err != nil {
			return err
		}
		fmt.Println(out)
	}

	return nil
}
