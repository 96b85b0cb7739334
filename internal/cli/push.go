package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newPushCmd creates the push command
func newPushCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "push",
		Short: "Push the current branch and update its pull request",
		Long: `Push only the current branch with --force-with-lease and create or update its
pull request. A lightweight submit for quick iterations; no sync happens first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if err := ctx.ConnectGitHub(cmd.Context()); err != nil {
				return err
			}

			return actions.PushAction(ctx, cmd.Context())
		},
	}
}
