package cmd

import (
	"errors"
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/jimezsa/opptrack/internal/export"
	"github.com/jimezsa/opptrack/internal/models"
	"github.com/jimezsa/opptrack/internal/tracker"
)

type AddCmd struct {
	URL     string `arg:"" optional:"" help:"Opportunity page to read details from."`
	NoFetch bool   `name:"no-fetch" help:"Do not read the page; use flags only."`
	Proxies string `help:"Comma-separated upstream proxies for the page fetch."`

	RecordFlags `embed:""`
}

type ListCmd struct {
	Status string `help:"Only list records with this status."`
	Format string `help:"Output format: table, csv, tsv, json, md."`
	Output string `short:"o" help:"Write output to a file."`
	Links  string `help:"Link display in tables: short or full." enum:"short,full" default:"short"`
}

type ShowCmd struct {
	ID string `arg:"" help:"Record id or unique id prefix."`
}

type EditCmd struct {
	ID    string   `arg:"" help:"Record id or unique id prefix."`
	Unset []string `help:"Comma-separated fields to clear."`

	RecordFlags `embed:""`
}

type StatusCmd struct {
	ID     string `arg:"" help:"Record id or unique id prefix."`
	Status string `arg:"" help:"New status: Not Started, In Progress, Submitted, Interview, Offer."`
}

type DeleteCmd struct {
	ID string `arg:"" help:"Record id or unique id prefix."`
}

type ClearCmd struct {
	Yes bool `help:"Confirm removing every record."`
	All bool `help:"Also remove the profile."`
}

// recordView is a record with its assessment, as shown by show and add.
type recordView struct {
	models.Opportunity
	Fit *models.Assessment `json:"assessment,omitempty"`
}

func (c *AddCmd) Run(ctx *Context) error {
	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	form := c.fields()
	target := strings.TrimSpace(c.URL)
	if target != "" && !c.NoFetch {
		lookup, err := ctx.newLookup(c.Proxies)
		if err != nil {
			return err
		}
		proposed, err := lookup.Fetch(ctx.background(), target)
		if err != nil {
			ctx.UI.Warnf("Could not read details from %s: %v", target, err)
		} else {
			form = tracker.MergeFields(form, proposed)
		}
	}
	if target != "" && form.Get(models.FieldLink) == "" {
		form[models.FieldLink] = target
	}
	if err := validateRequired(form); err != nil {
		return err
	}

	record, err := models.Opportunity{}.ApplyFields(form)
	if err != nil {
		return err
	}
	state, record, err = state.AddRecord(record, ctx.now())
	if err != nil {
		return err
	}
	if _, err := svc.Commit(ctx.background(), state); err != nil {
		return err
	}

	if ctx.JSONOutput {
		return writeJSON(ctx.Out, recordView{Opportunity: record, Fit: record.Assessment})
	}
	ctx.UI.Successf("Added %s %s (%s)", export.ShortID(record.ID), record.Title, record.Organization)
	return nil
}

func validateRequired(form models.Fields) error {
	var missing []string
	if form.Get(models.FieldTitle) == "" {
		missing = append(missing, models.FieldTitle)
	}
	if form.Get(models.FieldOrganization) == "" {
		missing = append(missing, models.FieldOrganization)
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}
	return nil
}

func (c *ListCmd) Run(ctx *Context) error {
	_, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	records := state.Records
	if strings.TrimSpace(c.Status) != "" {
		status, err := models.ParseStatus(c.Status)
		if err != nil {
			return err
		}
		filtered := make([]models.Opportunity, 0, len(records))
		for _, record := range records {
			if record.Status == status {
				filtered = append(filtered, record)
			}
		}
		records = filtered
	}

	format, err := resolveFormat(ctx, c.Format, c.Output)
	if err != nil {
		return err
	}
	writer, closeOutput, err := openOutput(ctx, c.Output)
	if err != nil {
		return err
	}
	if err := export.WriteRecords(writer, records, format, writeOptions(ctx, writer, c.Links)); err != nil {
		_ = closeOutput()
		return err
	}
	if err := closeOutput(); err != nil {
		return err
	}
	if c.Output != "" {
		ctx.UI.Infof("Wrote %d records to %s", len(records), c.Output)
	}
	return nil
}

func (c *ShowCmd) Run(ctx *Context) error {
	_, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := state.Find(c.ID)
	if err != nil {
		return err
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, recordView{Opportunity: record, Fit: record.Assessment})
	}
	return writeRecordDetail(ctx, record)
}

func writeRecordDetail(ctx *Context, record models.Opportunity) error {
	tw := tabwriter.NewWriter(ctx.Out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "id\t%s\n", record.ID)
	fields := record.Fields()
	for _, name := range models.FieldNames {
		value := fields.Get(name)
		if value == "" {
			continue
		}
		if name == models.FieldLink || name == models.FieldApplyLink {
			value = ctx.UI.LinkText(value)
		}
		fmt.Fprintf(tw, "%s\t%s\n", name, value)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	fit := record.Assessment
	if fit == nil {
		return nil
	}
	fmt.Fprintln(ctx.Out)
	fmt.Fprintf(ctx.Out, "%s %s\n", ctx.UI.Heading("Fit"), ctx.UI.Badge(fit.Status))
	fmt.Fprintf(ctx.Out, "  %s\n", fit.Summary)
	for _, match := range fit.Matches {
		fmt.Fprintf(ctx.Out, "  + %s\n", match)
	}
	for _, gap := range fit.Gaps {
		fmt.Fprintf(ctx.Out, "  - %s\n", gap)
	}
	if fit.Detail != "" {
		fmt.Fprintf(ctx.Out, "  %s\n", fit.Detail)
	}
	return nil
}

func (c *EditCmd) Run(ctx *Context) error {
	if err := checkFieldNames(c.Unset, models.FieldNames); err != nil {
		return err
	}
	patch := c.fields()
	for _, name := range c.Unset {
		patch[canonicalField(name, models.FieldNames)] = ""
	}
	if len(patch) == 0 {
		return errors.New("nothing to change; pass field flags or --unset")
	}

	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := state.Find(c.ID)
	if err != nil {
		return err
	}
	state, updated, err := state.UpdateRecord(record.ID, patch)
	if err != nil {
		return err
	}
	if err := validateRequired(updated.Fields()); err != nil {
		return err
	}
	if _, err := svc.Commit(ctx.background(), state); err != nil {
		return err
	}
	ctx.UI.Successf("Updated %s %s", export.ShortID(updated.ID), updated.Title)
	return nil
}

func (c *StatusCmd) Run(ctx *Context) error {
	status, err := models.ParseStatus(c.Status)
	if err != nil {
		return err
	}

	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := state.Find(c.ID)
	if err != nil {
		return err
	}
	previous := record.Status
	state, record, err = state.SetStatus(record.ID, status)
	if err != nil {
		return err
	}
	if _, err := svc.Commit(ctx.background(), state); err != nil {
		return err
	}
	ctx.UI.Successf("%s %s: %s -> %s", export.ShortID(record.ID), record.Title, previous, record.Status)
	return nil
}

func (c *DeleteCmd) Run(ctx *Context) error {
	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	record, err := state.Find(c.ID)
	if err != nil {
		return err
	}
	state, removed, err := state.DeleteRecord(record.ID)
	if err != nil {
		return err
	}
	if _, err := svc.Commit(ctx.background(), state); err != nil {
		return err
	}
	ctx.UI.Successf("Deleted %s %s", export.ShortID(removed.ID), removed.Title)
	return nil
}

func (c *ClearCmd) Run(ctx *Context) error {
	if !c.Yes {
		return errors.New("refusing to clear records without --yes")
	}

	svc, state, closeStore, err := ctx.loadState(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	count := len(state.Records)
	if c.All {
		if err := svc.Repository().DeleteUserData(ctx.background(), state.User.ID); err != nil {
			return err
		}
		ctx.UI.Successf("Removed %d records and the profile", count)
		return nil
	}
	if _, err := svc.Commit(ctx.background(), state.ClearRecords()); err != nil {
		return err
	}
	ctx.UI.Successf("Removed %d records", count)
	return nil
}
