package rm

import (
	"flag"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "rm" }
func (c *Command) Short() string     { return "r" }
func (c *Command) Aliases() []string { return []string{"remove"} }
func (c *Command) Usage() string     { return "rm <file>..." }
func (c *Command) Brief() string     { return "Unstage a file or stage its removal" }
func (c *Command) Help() string {
	return `Unstage a file staged for addition. If the file is tracked by the current
commit, stage it for removal and delete it from the working tree.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return lvcerrors.Wrap(lvcerrors.ErrIncorrectOperands, "please enter a file name")
	}
	for _, arg := range ctx.Args {
		p, err := ctx.RepoPath(arg)
		if err != nil {
			return err
		}
		if err := ctx.Repo.Remove(p); err != nil {
			return err
		}
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
