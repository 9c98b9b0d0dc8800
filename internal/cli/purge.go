package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
)

// confirmInput is read for the purge confirmation; tests replace it.
var confirmInput io.Reader = os.Stdin

// Execute implements the go-flags Commander interface for PurgeCommand.
func (c *PurgeCommand) Execute(args []string) error {
	if !c.All {
		return fmt.Errorf("purge requires --all flag for safety")
	}

	if !c.Force {
		fmt.Println("⚠ WARNING: This will permanently delete the whole archive.")
		fmt.Println("  - All import runs")
		fmt.Println("  - All archived search records")
		fmt.Println()
		fmt.Println("Export files on disk are not touched. This action cannot be undone.")
		fmt.Println()
		fmt.Print(`Type "PURGE" to confirm: `)

		scanner := bufio.NewScanner(confirmInput)
		if !scanner.Scan() {
			return fmt.Errorf("aborted: no input received")
		}
		input := strings.TrimSpace(scanner.Text())
		if input != "PURGE" {
			return fmt.Errorf("aborted: confirmation text did not match")
		}
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

	if err := store.PurgeAll(ctx); err != nil {
		return fmt.Errorf("purge failed: %w", err)
	}
	logger.Warn().Msg("archive purged")

	if c.globals != nil && c.globals.JSON {
		return writeJSON(map[string]interface{}{
			"purged":  true,
			"message": "all data deleted",
		})
	}

	fmt.Println("Purged all data. The archive is empty.")
	return nil
}
