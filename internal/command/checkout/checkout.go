package checkout

import (
	"flag"
	"fmt"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "checkout" }
func (c *Command) Short() string     { return "C" }
func (c *Command) Aliases() []string { return []string{"co"} }
func (c *Command) Usage() string {
	return "checkout <branch> | checkout -- <file> | checkout <commit> -- <file>"
}
func (c *Command) Brief() string { return "Switch branches or restore a file" }
func (c *Command) Help() string {
	return `Switch branches or restore a single file.

Usage:
  checkout <branch>             - make <branch> current and rewrite the working
                                  tree to its tip; clears the staging area
  checkout -- <file>            - restore <file> from the head commit
  checkout <commit> -- <file>   - restore <file> from <commit>; a unique id
                                  prefix is accepted

Switching branches refuses to overwrite an untracked file whose content
differs from the version being checked out.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	args := ctx.Raw
	switch {
	case len(args) == 2 && args[0] == "--":
		return c.restore(ctx, args[1], "")

	case len(args) == 3 && args[1] == "--":
		return c.restore(ctx, args[2], args[0])

	case len(args) == 1 && args[0] != "--":
		if err := ctx.Repo.CheckoutBranch(args[0]); err != nil {
			return err
		}
		fmt.Fprintf(ctx.Out, "Switched to branch '%s'\n", args[0])
		return nil

	default:
		return lvcerrors.ErrIncorrectOperands
	}
}

func (c *Command) restore(ctx *command.Context, file, ref string) error {
	p, err := ctx.RepoPath(file)
	if err != nil {
		return err
	}
	return ctx.Repo.CheckoutFile(p, ref)
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
