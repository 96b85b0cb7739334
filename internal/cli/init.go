package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newInitCmd creates the init command
func newInitCmd() *cobra.Command {
	var (
		trunk string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize strand in the current repository",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			return actions.InitAction(ctx, actions.InitOptions{
				Trunk: trunk,
				Force: force,
			})
		},
	}

	cmd.Flags().StringVarP(&trunk, "trunk", "t", "", "Trunk branch name (auto-detected if not specified)")
	cmd.Flags().BoolVarP(&force, "force", "f", false, "Reinitialize, discarding the tracked tree")

	return cmd
}
