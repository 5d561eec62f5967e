package cmd

import (
	"errors"
	"fmt"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/dateparse"
)

type ProfileCmd struct {
	Show ProfileShowCmd `cmd:"" help:"Print the applicant profile."`
	Set  ProfileSetCmd  `cmd:"" help:"Update profile fields; records are reassessed."`
}

type ProfileShowCmd struct{}

type ProfileSetCmd struct {
	Unset []string `help:"Comma-separated profile fields to clear."`

	ProfileFlags `embed:""`
}

func (c *ProfileShowCmd) Run(ctx *Context) error {
	_, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, state.Profile)
	}
	if state.Profile.IsEmpty() {
		ctx.UI.Infof("Profile is empty; set it with `opptrack profile set`")
		return nil
	}

	profile := state.Profile
	values := profileFields(&profile)
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	for _, name := range profileFieldNames {
		if value := *values[name]; value != "" {
			fmt.Fprintf(tw, "%s\t%s\n", name, value)
		}
	}
	if !profile.LastUpdated.IsZero() {
		fmt.Fprintf(tw, "lastUpdated\t%s\n", dateparse.Format(profile.LastUpdated))
	}
	return tw.Flush()
}

func (c *ProfileSetCmd) Run(ctx *Context) error {
	if err := checkFieldNames(c.Unset, profileFieldNames); err != nil {
		return err
	}
	values := c.values()
	if len(values) == 0 && len(c.Unset) == 0 {
		return errors.New("nothing to change; pass profile flags or --unset")
	}

	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	profile := state.Profile
	targets := profileFields(&profile)
	for name, value := range values {
		*targets[name] = value
	}
	for _, name := range c.Unset {
		*targets[canonicalField(name, profileFieldNames)] = ""
	}

	state, err = svc.Commit(ctx.background(), state.WithProfile(profile, ctx.now()))
	if err != nil {
		return err
	}

	var attention int
	for _, record := range state.Records {
		if record.Assessment != nil && record.Assessment.NeedsAttention() {
			attention++
		}
	}
	ctx.UI.Successf("Profile updated; %d of %d records need eligibility attention", attention, len(state.Records))
	return nil
}
