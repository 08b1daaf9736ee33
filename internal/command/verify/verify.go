package verify

import (
	"flag"
	"fmt"
	"sort"
	"time"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
	"github.com/keshon/lvc/internal/repo/store/object"
)

type Command struct {
	all bool
}

func (c *Command) Name() string      { return "verify" }
func (c *Command) Short() string     { return "V" }
func (c *Command) Aliases() []string { return []string{"scan", "check"} }
func (c *Command) Usage() string     { return "verify [--all]" }
func (c *Command) Brief() string     { return "Verify repository object integrity" }
func (c *Command) Help() string {
	return `Check that every file content referenced by a commit exists and still
hashes to its id.

Usage:
  verify         - check objects reachable from branch tips
  verify --all   - check objects of every stored commit, reachable or not`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.BoolVar(&c.all, "all", false, "check every stored commit")
}

func (c *Command) Run(ctx *command.Context) error {
	out, errCh := ctx.Repo.VerifyStream(c.all)

	fmt.Fprint(ctx.Out, "\033[90mLegend:\033[0m \033[32m█\033[0m OK   \033[31m█\033[0m Missing   \033[33m█\033[0m Damaged\n\n")

	start := time.Now()
	count, okCount, missingCount, damagedCount := 0, 0, 0, 0
	var bad []repo.ObjectCheck

	for out != nil || errCh != nil {
		select {
		case oc, ok := <-out:
			if !ok {
				out = nil
				continue
			}
			switch oc.Status {
			case object.OK:
				fmt.Fprint(ctx.Out, "\033[32m█\033[0m")
				okCount++
			case object.Missing:
				fmt.Fprint(ctx.Out, "\033[31m█\033[0m")
				missingCount++
				bad = append(bad, oc)
			case object.Damaged:
				fmt.Fprint(ctx.Out, "\033[33m█\033[0m")
				damagedCount++
				bad = append(bad, oc)
			}
			count++
			if count%100 == 0 {
				fmt.Fprintf(ctx.Out, "  %d\n", count)
			}

		case err, ok := <-errCh:
			if !ok {
				errCh = nil
				continue
			}
			if err != nil {
				return err
			}
		}
	}

	if count%100 != 0 {
		fmt.Fprintf(ctx.Out, "  %d\n", count)
	}

	fmt.Fprintf(ctx.Out, "\nScan complete in %s.\n", time.Since(start).Truncate(time.Millisecond))
	fmt.Fprintf(ctx.Out, "Objects OK: \033[32m%d\033[0m   Missing: \033[31m%d\033[0m   Damaged: \033[33m%d\033[0m\n",
		okCount, missingCount, damagedCount)

	if len(bad) == 0 {
		return nil
	}

	sort.Slice(bad, func(i, j int) bool { return bad[i].ID < bad[j].ID })
	fmt.Fprintln(ctx.Out, "\nProblem objects:")
	for _, oc := range bad {
		fmt.Fprintf(ctx.Out, "%s  %s  files: %v  commits: %v\n", oc.ID, oc.Status, oc.Paths, oc.Commits)
	}
	return fmt.Errorf("%d object(s) missing or damaged", len(bad))
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
