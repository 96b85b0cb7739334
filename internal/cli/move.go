package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newMoveCmd creates the move command
func newMoveCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "move <branch>",
		Short: "Move a branch onto a new parent",
		Long: `Reparent a branch: update the tracked tree, rebase the branch onto its new
parent, and retarget its pull request if one exists.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			// PR retargeting is best effort, proceed without GitHub
			if err := ctx.ConnectGitHub(cmd.Context()); err != nil {
				ctx.Splog.Debug("GitHub unavailable, skipping PR retarget: %v", err)
			}

			return actions.MoveAction(ctx, cmd.Context(), actions.MoveOptions{
				Branch:    args[0],
				NewParent: parent,
			})
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "New parent branch (required)")
	_ = cmd.MarkFlagRequired("parent")

	return cmd
}
