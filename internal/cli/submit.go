package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newSubmitCmd creates the submit command
func newSubmitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "submit",
		Short: "Push the stack and create or update its pull requests",
		Long: `Sync the current stack, push every branch with --force-with-lease, and make
sure each branch has a pull request targeting its parent.`,
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

			return actions.SubmitAction(ctx, cmd.Context())
		},
	}
}
