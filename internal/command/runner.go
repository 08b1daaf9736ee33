package command

import (
	"flag"
	"fmt"
	"os"

	"github.com/keshon/lvc/internal/config"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/fs"
)

// NewContext returns a context bound to the process: the current directory,
// the real filesystem and the standard streams.
func NewContext() *Context {
	return &Context{
		Dir: config.Cwd(),
		FS:  fs.NewOSFS(),
		Out: os.Stdout,
		Err: os.Stderr,
	}
}

// Run resolves args against the registered commands, parses flags into
// ctx and runs the target command.
func Run(ctx *Context, args []string) error {
	node, remaining, err := ResolveCommand(args)
	if err != nil {
		return err
	}
	cmd := node.Cmd

	flags := flag.NewFlagSet(cmd.Name(), flag.ContinueOnError)
	flags.SetOutput(ctx.Err)
	cmd.Flags(flags)
	if err := flags.Parse(remaining); err != nil {
		return fmt.Errorf("%w: %v", lvcerrors.ErrIncorrectOperands, err)
	}

	ctx.Raw = remaining
	ctx.Args = flags.Args()
	ctx.Flags = flags
	return cmd.Run(ctx)
}

// RunCLI is the main entrypoint for executing commands.
// It prints any error and exits with status 1.
func RunCLI(args []string) {
	ctx := NewContext()
	if err := Run(ctx, args); err != nil {
		fmt.Fprintln(ctx.Err, "Error:", err)
		os.Exit(1)
	}
}
