package middleware

import (
	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/config"
	lvcerrors "github.com/keshon/lvc/internal/errors"
	"github.com/keshon/lvc/internal/repo"
)

// WithRepoCheck opens the repository enclosing ctx.Dir and stores it in
// ctx.Repo. It fails when there is none.
func WithRepoCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				root := config.ResolveWorkingTreeRoot(ctx.FS, ctx.Dir)
				if root == "" {
					return lvcerrors.ErrNotRepository
				}
				r, err := repo.Open(config.NewRepoConfig(root), ctx.FS)
				if err != nil {
					return err
				}
				ctx.Repo = r
				return cmd.Run(ctx)
			},
		}
	}
}
