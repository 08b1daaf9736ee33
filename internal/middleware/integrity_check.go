package middleware

import (
	"fmt"

	"github.com/keshon/lvc/internal/command"
	"github.com/keshon/lvc/internal/progress"
	"github.com/keshon/lvc/internal/repo/store/object"
)

// WithIntegrityCheck verifies the objects reachable from every branch
// before the command rewrites the working tree. It needs ctx.Repo, so it
// goes inside WithRepoCheck.
func WithIntegrityCheck() command.Middleware {
	return func(cmd command.Command) command.Command {
		return &command.WrappedCommand{
			Command: cmd,
			Wrap: func(ctx *command.Context) error {
				if ctx.Repo == nil {
					return fmt.Errorf("integrity check needs an open repository")
				}

				total, err := ctx.Repo.CountObjects(false)
				if err != nil {
					return err
				}

				bar := progress.NewProgress(ctx.Err, total, "Checking objects")
				out, errCh := ctx.Repo.VerifyStream(false)
				var bad []string
				for check := range out {
					bar.Increment()
					if check.Status != object.OK {
						bad = append(bad, fmt.Sprintf("%s (%s)", check.ID, check.Status))
					}
				}
				bar.Finish()

				if err := <-errCh; err != nil {
					return err
				}
				if len(bad) > 0 {
					return fmt.Errorf(
						"repository verification failed: %d object(s) missing or damaged, first %s\nRun `lvc verify --all` for details",
						len(bad), bad[0],
					)
				}
				return cmd.Run(ctx)
			},
		}
	}
}
