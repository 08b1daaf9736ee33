package commit

import (
	"flag"
	"fmt"
	"strings"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct {
	message string
}

func (c *Command) Name() string      { return "commit" }
func (c *Command) Short() string     { return "c" }
func (c *Command) Aliases() []string { return []string{"ci"} }
func (c *Command) Usage() string     { return "commit <message> | commit -m <message>" }
func (c *Command) Brief() string     { return "Record staged changes as a new commit" }
func (c *Command) Help() string {
	return `Record the staged changes as a new commit on the current branch.

Options:
  -m <message>  Commit message. Without it, the positional arguments are
                joined into the message.

Files not staged keep their version from the parent commit.`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.message, "m", "", "commit message")
}

func (c *Command) Run(ctx *command.Context) error {
	msg := c.message
	if msg == "" {
		msg = strings.Join(ctx.Args, " ")
	}

	cm, err := ctx.Repo.Commit(msg)
	if err != nil {
		return err
	}

	branch, _, err := ctx.Repo.Head()
	if err != nil {
		return err
	}
	fmt.Fprintf(ctx.Out, "[%s %s] %s\n", branch, short(cm.ID), cm.Message)
	return nil
}

func short(id string) string {
	if len(id) > 7 {
		return id[:7]
	}
	return id
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
