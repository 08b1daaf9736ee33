package command

import (
	"flag"
	"io"
	"path/filepath"

	"github.com/keshon/lvc/internal/fs"
	"github.com/keshon/lvc/internal/repo"
)

// Command represents a cli command
type Command interface {
	Name() string
	Short() string
	Aliases() []string
	Usage() string
	Brief() string
	Help() string
	Subcommands() []Command
	Flags(fs *flag.FlagSet)
	Run(ctx *Context) error
}

// Context represents a cli context
type Context struct {
	// Args are the positional arguments left after flag parsing.
	Args []string

	// Raw holds the arguments as given, before flag parsing. Commands that
	// treat "--" specially read it.
	Raw []string

	Flags *flag.FlagSet

	// Dir is the absolute directory the command was started in.
	Dir string
	FS  fs.FS
	Out io.Writer
	Err io.Writer

	// Repo is set by middleware.WithRepoCheck.
	Repo *repo.Repository
}

// RepoPath converts a path given relative to ctx.Dir into a path relative
// to the working tree root of ctx.Repo.
func (ctx *Context) RepoPath(arg string) (string, error) {
	p := arg
	if !filepath.IsAbs(p) {
		p = filepath.Join(ctx.Dir, p)
	}
	rel, err := filepath.Rel(ctx.Repo.Config.WorkDir, p)
	if err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

// Middleware decorates a command with behavior that runs around it.
type Middleware func(Command) Command

// WrappedCommand is a command whose Run is replaced by Wrap. Every other
// method is served by the embedded command.
type WrappedCommand struct {
	Command
	Wrap func(ctx *Context) error
}

func (w *WrappedCommand) Run(ctx *Context) error {
	if w.Wrap != nil {
		return w.Wrap(ctx)
	}
	return w.Command.Run(ctx)
}

// ApplyMiddlewares wraps cmd with mws in order, so the last middleware
// runs first.
func ApplyMiddlewares(cmd Command, mws ...Middleware) Command {
	for _, mw := range mws {
		cmd = mw(cmd)
	}
	return cmd
}
