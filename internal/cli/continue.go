package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newContinueCmd creates the continue command
func newContinueCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "continue",
		Short: "Resume a paused operation after resolving conflicts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			// Auth is optional here: the post-continue submit is best effort
			if err := ctx.ConnectGitHub(cmd.Context()); err != nil {
				ctx.Splog.Debug("GitHub unavailable, skipping auto-submit: %v", err)
			}

			return actions.ContinueAction(ctx, cmd.Context())
		},
	}
}
