package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
	"strand.dev/strand/internal/tui"
)

// newAbortCmd creates the abort command
func newAbortCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "abort",
		Short: "Cancel a paused operation",
		Long: `Cancel a paused operation: abort any in-progress rebase and return to the
branch you started from. Branches already rebased keep their new bases.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if !force {
				confirmed, err := tui.PromptConfirm("Abort the pending operation?", false)
				if err != nil {
					return err
				}
				if !confirmed {
					ctx.Splog.Info("Abort canceled.")
					return nil
				}
			}

			return actions.AbortAction(ctx, cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Abort without confirmation")

	return cmd
}
