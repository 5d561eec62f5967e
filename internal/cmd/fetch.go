package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/models"
)

type FetchCmd struct {
	URL     string `arg:"" help:"Opportunity page to read."`
	Proxies string `help:"Comma-separated upstream proxies."`
}

func (c *FetchCmd) Run(ctx *Context) error {
	lookup, err := ctx.newLookup(c.Proxies)
	if err != nil {
		return err
	}
	fields, err := lookup.Fetch(ctx.background(), c.URL)
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, fields)
	}
	return writeFields(ctx, fields)
}

// writeFields prints the non-empty fields in form order.
func writeFields(ctx *Context, fields models.Fields) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	for _, name := range models.FieldNames {
		if value := fields.Get(name); value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", name, value)
		}
	}
	return tw.Flush()
}
