package cmd

import (
	"fmt"
	"strings"

	"github.com/jimezsa/opptrack/internal/models"
	"github.com/jimezsa/opptrack/internal/tracker"
)

type LoginCmd struct {
	ID       string `name:"id" required:"" help:"Stable user id; records are stored under it."`
	Name     string `help:"Display name."`
	Email    string `help:"Email address."`
	Provider string `help:"Identity provider label." default:"local"`
	Avatar   string `help:"Avatar URL."`
}

type LogoutCmd struct{}

type WhoamiCmd struct{}

func (c *LoginCmd) Run(ctx *Context) error {
	user := models.User{
		ID:       strings.TrimSpace(c.ID),
		Name:     strings.TrimSpace(c.Name),
		Email:    strings.TrimSpace(c.Email),
		Provider: strings.TrimSpace(c.Provider),
		Avatar:   strings.TrimSpace(c.Avatar),
	}

	svc, closeStore, err := ctx.openService(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.SignIn(ctx.background(), user); err != nil {
		return err
	}
	ctx.UI.Successf("Signed in as %s", displayUser(user))
	return nil
}

func (c *LogoutCmd) Run(ctx *Context) error {
	svc, closeStore, err := ctx.openService(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	if err := svc.SignOut(ctx.background()); err != nil {
		return err
	}
	ctx.UI.Infof("Signed out")
	return nil
}

func (c *WhoamiCmd) Run(ctx *Context) error {
	svc, closeStore, err := ctx.openService(ctx.background())
	if err != nil {
		return err
	}
	defer closeStore()

	user, ok, err := svc.Repository().CurrentUser(ctx.background())
	if err != nil {
		return err
	}
	if !ok {
		return tracker.ErrNotSignedIn
	}
	if ctx.JSONOutput {
		return writeJSON(ctx.Out, user)
	}
	_, err = fmt.Fprintln(ctx.Out, displayUser(user))
	return err
}

func displayUser(user models.User) string {
	label := user.ID
	if user.Name != "" {
		label = user.Name + " (" + user.ID + ")"
	}
	if user.Email != "" {
		label += " <" + user.Email + ">"
	}
	return label
}
