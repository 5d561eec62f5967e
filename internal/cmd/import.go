package cmd

import (
	"fmt"

	"github.com/jimezsa/opptrack/internal/tracker"
)

type ImportCmd struct {
	Input string `name:"input" required:"" help:"Path to a JSON array of records, e.g. from list --json."`
	Stats bool   `name:"stats" help:"Print merge stats."`
}

func (c *ImportCmd) Run(ctx *Context) error {
	incoming, err := tracker.ReadRecords(c.Input)
	if err != nil {
		return fmt.Errorf("read --input: %w", err)
	}

	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	merged, stats := tracker.MergeImported(state.Records, incoming)
	state.Records = merged
	if _, err := svc.Commit(ctx.background(), state); err != nil {
		return err
	}

	if c.Stats {
		_, err := fmt.Fprintf(
			ctx.Out,
			"total_existing=%d total_input=%d invalid_skipped=%d duplicates=%d added=%d total_out=%d\n",
			stats.TotalExisting,
			stats.TotalInput,
			stats.InvalidInput,
			stats.Duplicates,
			stats.Added,
			stats.TotalOut,
		)
		return err
	}
	ctx.UI.Successf("Imported %d new records (%d duplicates skipped)", stats.Added, stats.Duplicates)
	return nil
}
