package reset

import (
	"flag"
	"fmt"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "reset" }
func (c *Command) Short() string     { return "R" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "reset <commit>" }
func (c *Command) Brief() string     { return "Move the current branch to a commit" }
func (c *Command) Help() string {
	return `Check out every file tracked by <commit>, delete files tracked by the
head commit but not by <commit>, move the current branch to <commit> and
clear the staging area. A unique id prefix is accepted.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return lvcerrors.ErrIncorrectOperands
	}
	if err := ctx.Repo.Reset(ctx.Args[0]); err != nil {
		return err
	}

	branch, head, err := ctx.Repo.Head()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "%s is now at %s %s\n", branch, head.ID, head.Message)
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithIntegrityCheck(),
			middleware.WithRepoCheck(),
			middleware.WithDebugArgsPrint(),
		),
	)
}
