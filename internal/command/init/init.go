package init

import (
	"flag"
	"fmt"
	"os"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/config"
	"github.com/keshon/lvc/internal/hash"
	"github.com/keshon/lvc/internal/middleware"
	"github.com/keshon/lvc/internal/repo"
)

type Command struct {
	hash     string
	compress bool
	branch   string
}

func (c *Command) Name() string      { return "init" }
func (c *Command) Short() string     { return "i" }
func (c *Command) Aliases() []string { return []string{"initialize"} }
func (c *Command) Usage() string     { return "init [options]" }
func (c *Command) Brief() string     { return "Initialize a new repository" }
func (c *Command) Help() string {
	return `Initialize a new repository in the current directory.

Options:
  --hash <algo>    Fingerprint algorithm: xxh3, sha256 or cid (default xxh3).
  --compress       Store file contents gzip-compressed.
  -b <name>        Name of the initial branch (default master).

The repository starts with a single commit, "initial commit", that tracks
no files. Hash and compression are fixed once the repository exists.

Environment:
  LVC_HASH, LVC_DEFAULT_BRANCH override the defaults when no flag is given.`
}

func (c *Command) Subcommands() []command.Command { return nil }

func (c *Command) Flags(fs *flag.FlagSet) {
	fs.StringVar(&c.hash, "hash", "", "fingerprint algorithm")
	fs.BoolVar(&c.compress, "compress", false, "gzip stored contents")
	fs.StringVar(&c.branch, "b", "", "initial branch name")
}

func (c *Command) Run(ctx *command.Context) error {
	defaults := config.DefaultSettings()
	defaults.ApplyEnv(os.LookupEnv)

	opts := repo.InitOptions{
		Hash:          defaults.Core.Hash,
		Compress:      c.compress,
		DefaultBranch: defaults.Core.DefaultBranch,
	}
	if c.hash != "" {
		opts.Hash = c.hash
	}
	if c.branch != "" {
		opts.DefaultBranch = c.branch
	}
	if _, err := hash.New(opts.Hash); err != nil {
		return fmt.Errorf("%w (choose one of %v)", err, hash.Names())
	}

	r, err := repo.Init(config.NewRepoConfig(ctx.Dir), ctx.FS, opts)
	if err != nil {
		return err
	}

	fmt.Fprintf(ctx.Out, "Initialized empty lvc repository in %s (%s)\n", r.Config.RepoRoot, r.Hash())
	return nil
}

func init() {
	command.RegisterCommand(
		command.ApplyMiddlewares(
			&Command{},
			middleware.WithDebugArgsPrint(),
		),
	)
}
