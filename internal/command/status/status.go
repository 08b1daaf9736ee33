package status

import (
	"flag"
	"fmt"
	"io"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct {
	short bool
}

func (c *Command) Name() string      { return "status" }
func (c *Command) Short() string     { return "S" }
func (c *Command) Aliases() []string { return []string{"st"} }
func (c *Command) Usage() string     { return "status [options]" }
func (c *Command) Brief() string     { return "Show working tree and staging area status" }

func (c *Command) Help() string {
	return `Show branches, staged files, files staged for removal, modifications not
staged for commit and untracked files.

Options:
  -s, --short   Show one line per file (XY path)

In short mode X is A (staged), D (staged for removal) or space, and Y is
M (modified), D (deleted) or ? (untracked).`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.short, "short", false, "show short summary")
	fs.BoolVar(&c.short, "s", false, "alias for --short")
}

func (c *Command) Run(ctx *command.Context) error {
	st, err := ctx.Repo.Status()
	if err != nil {
		return err
	}
	if c.short {
		printShort(ctx.Out, st)
		return nil
	}
	printLong(ctx.Out, st)
	return nil
}

func printLong(w io.Writer, st *repo.Status) {
	fmt.Fprintln(w, "=== Branches ===")
	for _, b := range st.Branches {
		if b == st.Branch {
			fmt.Fprintf(w, "*%s\n", b)
			continue
		}
		fmt.Fprintln(w, b)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Staged Files ===")
	for _, p := range st.Staged {
		fmt.Fprintln(w, p)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Removed Files ===")
	for _, p := range st.Removed {
		fmt.Fprintln(w, p)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Modifications Not Staged For Commit ===")
	for _, m := range st.Modified {
		fmt.Fprintf(w, "%s (%s)\n", m.Path, m.State)
	}

	fmt.Fprintln(w)
	fmt.Fprintln(w, "=== Untracked Files ===")
	for _, p := range st.Untracked {
		fmt.Fprintln(w, p)
	}
	fmt.Fprintln(w)
}

func printShort(w io.Writer, st *repo.Status) {
	fmt.Fprintf(w, "## %s\n", st.Branch)
	for _, p := range st.Staged {
		fmt.Fprintf(w, "A  %s\n", p)
	}
	for _, p := range st.Removed {
		fmt.Fprintf(w, "D  %s\n", p)
	}
	for _, m := range st.Modified {
		y := "M"
		if m.State == repo.Deleted {
			y = "D"
		}
		fmt.Fprintf(w, " %s %s\n", y, m.Path)
	}
	for _, p := range st.Untracked {
		fmt.Fprintf(w, "?? %s\n", p)
	}
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
