package merge

import (
	"flag"
	"fmt"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "merge" }
func (c *Command) Short() string     { return "M" }
func (c *Command) Aliases() []string { return []string{"mg"} }
func (c *Command) Usage() string     { return "merge <branch-name>" }
func (c *Command) Brief() string     { return "Merge another branch into the current branch" }
func (c *Command) Help() string {
	return `Perform a three-way merge of the specified branch into the current branch.

Files changed only on the given branch are taken from it, files removed only
there are removed, and files changed differently on both sides are written
with conflict markers:

  <<<<<<< HEAD
  (current version)
  =======
  (given version)
  >>>>>>>

The merge always ends in a commit with two parents. If the given branch is
an ancestor of the current one nothing happens; if the current branch is an
ancestor of the given one it is fast-forwarded.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) != 1 {
		return lvcerrors.ErrIncorrectOperands
	}

	res, err := ctx.Repo.Merge(ctx.Args[0])
	if err != nil {
		return err
	}

	switch res.Outcome {
	case repo.AlreadyAncestor:
		fmt.Fprintln(ctx.Out, "Given branch is an ancestor of the current branch.")
	case repo.FastForwarded:
		fmt.Fprintln(ctx.Out, "Current branch fast-forwarded.")
	case repo.Merged:
		if len(res.Conflicts) > 0 {
			fmt.Fprintln(ctx.Out, "Encountered a merge conflict.")
		}
	}
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
