package cmd

import (
	"github.com/alecthomas/kong"
	"github.com/jimezsa/opptrack/internal/config"
)

type CLI struct {
	Color   string `help:"Color output: auto, always, never." enum:"auto,always,never" default:"auto"`
	JSON    bool   `help:"JSON output to stdout; disables colors."`
	Plain   bool   `help:"TSV output to stdout; disables colors."`
	Verbose bool   `help:"Enable debug logging."`

	VersionFlag kong.VersionFlag `help:"Print version."`

	Version   VersionCmd   `cmd:"" help:"Print version."`
	Config    ConfigCmd    `cmd:"" help:"Manage configuration."`
	Login     LoginCmd     `cmd:"" help:"Sign in as a user."`
	Logout    LogoutCmd    `cmd:"" help:"Sign out."`
	Whoami    WhoamiCmd    `cmd:"" help:"Print the signed-in user."`
	Fetch     FetchCmd     `cmd:"" help:"Read an opportunity page and print the extracted fields."`
	Add       AddCmd       `cmd:"" help:"Track a new opportunity."`
	List      ListCmd      `cmd:"" help:"List tracked opportunities."`
	Show      ShowCmd      `cmd:"" help:"Show one opportunity with its eligibility assessment."`
	Edit      EditCmd      `cmd:"" help:"Change fields of an opportunity."`
	Status    StatusCmd    `cmd:"" help:"Move an opportunity to another workflow status."`
	Delete    DeleteCmd    `cmd:"" help:"Stop tracking an opportunity."`
	Clear     ClearCmd     `cmd:"" help:"Remove every tracked opportunity."`
	Profile   ProfileCmd   `cmd:"" help:"Show or update the applicant profile."`
	Dashboard DashboardCmd `cmd:"" help:"Summarize deadlines, next actions and eligibility."`
	Import    ImportCmd    `cmd:"" help:"Merge opportunities from a JSON file."`
	Proxies   ProxiesCmd   `cmd:"" help:"Proxy utilities."`
}

func NewCLI() *CLI {
	return &CLI{}
}

// ApplyEnv copies environment defaults onto the global flags.
func (c *CLI) ApplyEnv(env config.EnvFlags) {
	if env.JSON {
		c.JSON = true
	}
	if env.Verbose {
		c.Verbose = true
	}
	if env.Color != "" {
		c.Color = env.Color
	}
}
