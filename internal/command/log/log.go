package log

import (
	"flag"
	"fmt"
	"io"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo/meta"
)

// DateLayout is how commit dates are printed.
const DateLayout = "Mon Jan 2 15:04:05 2006 -0700"

type Command struct {
	oneline bool
	limit   int
}

func (c *Command) Name() string      { return "log" }
func (c *Command) Short() string     { return "l" }
func (c *Command) Aliases() []string { return []string{"commits"} }
func (c *Command) Usage() string     { return "log [options]" }
func (c *Command) Brief() string     { return "Show the history of the current branch" }
func (c *Command) Help() string {
	return `Show commits from the head commit back to the initial commit, following
first parents only.

Options:
  --oneline     Show each commit as a single line (short id + message).
  -n <count>    Limit to the last N commits.

Examples:
  lvc log
  lvc log --oneline -n 10`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.oneline, "oneline", false, "show each commit on one line")
	fs.IntVar(&c.limit, "n", 0, "limit number of commits")
}

func (c *Command) Run(ctx *command.Context) error {
	commits, err := ctx.Repo.Log()
	if err != nil {
		return err
	}
	if c.limit > 0 && len(commits) > c.limit {
		commits = commits[:c.limit]
	}

	for _, cm := range commits {
		if c.oneline {
			fmt.Fprintf(ctx.Out, "%s %s\n", abbrev(cm.ID), cm.Message)
			continue
		}
		Print(ctx.Out, cm)
	}
	return nil
}

// Print writes one commit in the long log format.
func Print(w io.Writer, c *meta.Commit) {
	fmt.Fprintln(w, "===")
	fmt.Fprintf(w, "commit %s\n", c.ID)
	if c.IsMerge() {
		fmt.Fprintf(w, "Merge: %s %s\n", abbrev(c.Parents[0]), abbrev(c.Parents[1]))
	}
	fmt.Fprintf(w, "Date: %s\n", c.Time().Local().Format(DateLayout))
	fmt.Fprintln(w, c.Message)
	fmt.Fprintln(w)
}

func abbrev(id string) string {
	return id[:min(7, len(id))]
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
