package global_log

import (
	"flag"

	"github.com/keshon/lvc/internal/command"
	logcmd "github.com/keshon/lvc/internal/command/log"
	"github.com/keshon/lvc/internal/middleware"
)

type Command struct{}

func (c *Command) Name() string      { return "global-log" }
func (c *Command) Short() string     { return "G" }
func (c *Command) Aliases() []string { return []string{"gl"} }
func (c *Command) Usage() string     { return "global-log" }
func (c *Command) Brief() string     { return "Show every commit ever made" }
func (c *Command) Help() string {
	return `Show every stored commit, reachable or not, in storage order.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	commits, err := ctx.Repo.GlobalLog()
	if err != nil {
		return err
	}
	for _, cm := range commits {
		logcmd.Print(ctx.Out, cm)
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
