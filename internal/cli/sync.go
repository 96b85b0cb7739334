package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newSyncCmd creates the sync command
func newSyncCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Rebase the current stack onto the latest trunk",
		Long: `Rebase every branch in the current stack onto its parent, bottom-up.
On conflict the operation pauses; resolve the conflicts and run
'strand continue', or cancel with 'strand abort'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.SyncAction(ctx, cmd.Context())
		},
	}
}
