package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/config"
)

type ConfigCmd struct {
	Init InitConfigCmd `cmd:"" help:"Write default config and proxies files."`
	Path PathConfigCmd `cmd:"" help:"Print config directory."`
	Show ShowConfigCmd `cmd:"" help:"Print the effective configuration."`
}

type InitConfigCmd struct{}

type PathConfigCmd struct{}

type ShowConfigCmd struct{}

func (c *InitConfigCmd) Run(ctx *Context) error {
	paths, err := config.Init()
	if err != nil {
		return err
	}
	if len(paths) == 0 {
		ctx.UI.Infof("Config already initialized at %s", ctx.ConfigDir)
		return nil
	}
	ctx.UI.Infof("Created: %s", strings.Join(paths, ", "))
	return nil
}

func (c *PathConfigCmd) Run(ctx *Context) error {
	_, err := fmt.Fprintln(ctx.Out, ctx.ConfigDir)
	return err
}

func (c *ShowConfigCmd) Run(ctx *Context) error {
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, ctx.Config)
	}

	dsn, err := ctx.Config.StoreDSN()
	if err != nil {
		return err
	}
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "store\t%s\n", dsn)
	fmt.Fprintf(tw, "proxy_base\t%s\n", ctx.Config.ProxyBase)
	fmt.Fprintf(tw, "key_prefix\t%s\n", ctx.Config.KeyPrefix)
	fmt.Fprintf(tw, "fetch_timeout\t%s\n", ctx.Config.FetchTimeout())
	fmt.Fprintf(tw, "dashboard_limit\t%d\n", ctx.Config.DashboardLimit)
	fmt.Fprintf(tw, "due_soon_days\t%d\n", ctx.Config.DueSoonDays)
	return tw.Flush()
}
