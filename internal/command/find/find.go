package find

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "find" }
func (c *Command) Short() string     { return "f" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "find <message>" }
func (c *Command) Brief() string     { return "Print ids of commits with the given message" }
func (c *Command) Help() string {
	return `Print the ids of all commits whose message is exactly <message>, one
per line. Multiple arguments are joined with spaces.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return lvcerrors.Wrap(lvcerrors.ErrIncorrectOperands, "please enter a commit message")
	}

	ids, err := ctx.Repo.Find(strings.Join(ctx.Args, " "))
	if err != nil {
		return err
	}
	for _, id := range ids {
		fmt.Fprintln(ctx.Out, id)
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
