package cmd

import (
	"github.com/jimezsa/opptrack/internal/dashboard"
	"github.com/jimezsa/opptrack/internal/export"
)

type DashboardCmd struct {
	Limit   int    `help:"Rows per section; 0 uses the configured limit."`
	DueSoon int    `name:"due-soon" help:"Days ahead counted as due soon; 0 uses the configured window."`
	Format  string `help:"Output format: table, csv, tsv, json, md."`
}

func (c *DashboardCmd) Run(ctx *Context) error {
	_, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	limit := firstPositive(c.Limit, ctx.Config.DashboardLimit)
	summary := dashboard.Build(state.Records, state.Profile, ctx.now(), dashboard.Limits{
		NextActions: limit,
		Watchlist:   limit,
		Radar:       limit,
		DueSoonDays: firstPositive(c.DueSoon, ctx.Config.DueSoonDays),
	})

	format, err := resolveFormat(ctx, c.Format, "")
	if err != nil {
		return err
	}
	if format == export.FormatTable {
		ctx.UI.Infof("%s", ctx.UI.Heading("Dashboard for "+displayUser(state.User)))
	}
	return export.WriteDashboard(ctx.Out, summary, format)
}

func firstPositive(values ...int) int {
	for _, value := range values {
		if value > 0 {
			return value
		}
	}
	return 0
}
