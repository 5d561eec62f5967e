package main

import (
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/jimezsa/opptrack/internal/cmd"
	"github.com/jimezsa/opptrack/internal/config"
	"github.com/jimezsa/opptrack/internal/ui"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout io.Writer, stderr io.Writer) int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	env := config.LoadEnvFlags()
	cli := cmd.NewCLI()
	cli.ApplyEnv(env)

	parser, err := kong.New(cli,
		kong.Name("opptrack"),
		kong.Description("Track internships, scholarships and other opportunities."),
		kong.ConfigureHelp(kong.HelpOptions{Compact: true}),
		kong.Vars{"version": buildVersion()},
		kong.Writers(stdout, stderr),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}

	kctx, err := parser.Parse(args)
	if err != nil {
		ui.New(stdout, stderr, ui.NormalizeColorMode(env.Color), false).Errorf("%v", err)
		return 1
	}

	runCtx, err := cmd.NewContext(cli, buildVersion(), stdout, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return 1
	}
	if err := kctx.Run(runCtx); err != nil {
		runCtx.UI.Errorf("%v", err)
		return 1
	}
	return 0
}

func buildVersion() string {
	if commit == "" && date == "" {
		return version
	}
	if commit == "" {
		return fmt.Sprintf("%s (%s)", version, date)
	}
	if date == "" {
		return fmt.Sprintf("%s (%s)", version, commit)
	}
	return fmt.Sprintf("%s (%s, %s)", version, commit, date)
}
