package branch

import (
	"flag"
	"fmt"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "branch" }
func (c *Command) Short() string     { return "B" }
func (c *Command) Aliases() []string { return []string{"br"} }
func (c *Command) Usage() string     { return "branch [<branch-name>]" }
func (c *Command) Brief() string     { return "List all branches or create a new one" }

func (c *Command) Help() string {
	return `List all branches or create a new one.

Usage:
  branch        - list all branches (current marked with '*')
  branch <name> - create a branch at the head commit; HEAD does not move`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	r := ctx.Repo

	// case 1: create new branch
	if len(ctx.Args) > 0 {
		return r.Branch(ctx.Args[0])
	}

	// case 2: list branches
	current, err := r.Meta.CurrentBranch()
	if err != nil {
		return fmt.Errorf("failed to determine current branch: %w", err)
	}
	all, err := r.Meta.ListBranches()
	if err != nil {
		return fmt.Errorf("failed to list branches: %w", err)
	}

	for _, b := range all {
		prefix := "  "
		if b.Name == current {
			prefix = "* "
		}
		fmt.Fprintln(ctx.Out, prefix+b.Name)
	}
	return nil
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
