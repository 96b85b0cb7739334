package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
	"strand.dev/strand/internal/tui"
)

// newDeleteCmd creates the delete command
func newDeleteCmd() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete <branch>",
		Short: "Delete a branch from the stack",
		Long: `Untrack a branch and delete it. Its children are reparented onto the deleted
branch's parent.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			if !force {
				confirmed, err := tui.PromptConfirm("Delete branch "+args[0]+"?", false)
				if err != nil {
					return err
				}
				if !confirmed {
					ctx.Splog.Info("Delete canceled.")
					return nil
				}
			}

			return actions.DeleteAction(ctx, cmd.Context(), actions.DeleteOptions{Name: args[0]})
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Delete without confirmation")

	return cmd
}
