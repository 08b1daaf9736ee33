package add

import (
	"flag"
	"path/filepath"
	"strings"

	"github.com/keshon/lvc/internal/command"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct{}

func (c *Command) Name() string      { return "add" }
func (c *Command) Short() string     { return "a" }
func (c *Command) Aliases() []string { return nil }
func (c *Command) Usage() string     { return "add <file|glob|.>..." }
func (c *Command) Brief() string     { return "Stage files for the next commit" }
func (c *Command) Help() string {
	return `Stage the current content of files for the next commit.

Usage:
  add <file>   - stage a specific file
  add *.go     - stage files matching a glob
  add .        - stage every new or modified file

Adding a file whose content equals the current commit's version unstages it
and cancels a pending removal.`
}

func (c *Command) Subcommands() []command.Command { return nil }
func (c *Command) Flags(fs *flag.FlagSet)         {}

func (c *Command) Run(ctx *command.Context) error {
	if len(ctx.Args) == 0 {
		return lvcerrors.Wrap(lvcerrors.ErrIncorrectOperands, "please enter a file name")
	}
	r := ctx.Repo

	var toStage []string
	for _, arg := range ctx.Args {
		switch {
		case arg == ".":
			pending, err := pendingFiles(r)
			if err != nil {
				return err
			}
			toStage = append(toStage, pending...)

		case strings.ContainsAny(arg, "*?["):
			pattern := arg
			if !filepath.IsAbs(pattern) {
				pattern = filepath.Join(ctx.Dir, pattern)
			}
			matches, err := filepath.Glob(pattern)
			if err != nil {
				return err
			}
			for _, m := range matches {
				p, err := ctx.RepoPath(m)
				if err != nil {
					return err
				}
				toStage = append(toStage, p)
			}

		default:
			p, err := ctx.RepoPath(arg)
			if err != nil {
				return err
			}
			toStage = append(toStage, p)
		}
	}

	for _, p := range toStage {
		if err := r.Add(p); err != nil {
			return err
		}
	}
	return nil
}

// pendingFiles lists untracked and modified files that are present.
func pendingFiles(r *repo.Repository) ([]string, error) {
	st, err := r.Status()
	if err != nil {
		return nil, err
	}
	out := append([]string{}, st.Untracked...)
	for _, m := range st.Modified {
		if m.State == repo.Modified {
			out = append(out, m.Path)
		}
	}
	return out, nil
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
