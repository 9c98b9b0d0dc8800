package cli

import (
	"context"
	"fmt"
	"time"
)

type pruneJSON struct {
	Cutoff string `json:"cutoff"`
	DryRun bool   `json:"dry_run"`
	Count  int64  `json:"count"`
}

// Execute implements the go-flags Commander interface for PruneCommand.
func (c *PruneCommand) Execute(args []string) error {
	age, err := parseDuration(c.OlderThan)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(c.globals)
	if err != nil {
		return err
	}
	logger := newLogger(c.globals, cfg)

	ctx := context.Background()
	store, _, cleanup, err := openArchive(ctx, c.globals, cfg)
	if err != nil {
		return err
	}
	defer cleanup()

	cutoff := time.Now().Add(-age)

	var n int64
	if c.DryRun {
		n, err = store.CountBefore(ctx, cutoff)
	} else {
		n, err = store.PruneBefore(ctx, cutoff)
	}
	if err != nil {
		return err
	}

	logger.Info().
		Time("cutoff", cutoff).
		Bool("dry_run", c.DryRun).
		Int64("records", n).
		Msg("prune finished")

	if c.globals != nil && c.globals.JSON {
		return writeJSON(pruneJSON{
			Cutoff: cutoff.UTC().Format(time.RFC3339),
			DryRun: c.DryRun,
			Count:  n,
		})
	}

	if c.DryRun {
		fmt.Printf("Would prune %s records older than %s\n", formatNumber(n), formatDurationHuman(age))
		return nil
	}
	fmt.Printf("Pruned %s records older than %s\n", formatNumber(n), formatDurationHuman(age))
	return nil
}
