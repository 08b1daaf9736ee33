package middleware

import (
	"log/slog"

	"github.com/keshon/lvc/internal/command"
)

// WithDebugArgsPrint logs the command name and its arguments at debug level
func WithDebugArgsPrint() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				slog.Debug("run command", "name", cmd.Name(), "args", ctx.Args, "dir", ctx.Dir)
				return cmd.Run(ctx)
			},
		}
	}
}
