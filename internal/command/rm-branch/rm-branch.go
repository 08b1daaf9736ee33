package rm_branch

import (
	"flag"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "rm-branch" }
func (c *Command) Short() string     { return "D" }
func (c *Command) Aliases() []string { return []string{"delete-branch"} }
func (c *Command) Usage() string     { return "rm-branch <branch-name>" }
func (c *Command) Brief() string     { return "Delete a branch pointer" }
func (c *Command) Help() string {
	return `Delete the branch with the given name. Only the pointer goes away; the
commits it pointed to stay in the repository. The current branch cannot be
deleted.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return lvcerrors.ErrIncorrectOperands
	}
	return ctx.Repo.DeleteBranch(ctx.Args[0])
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithRepoCheck(),
			middleware.WithDebugArgsPrint(),
		),
	)
}
