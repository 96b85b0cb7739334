package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
	"strand.dev/strand/internal/tui"
)

// newCreateCmd creates the create command
func newCreateCmd() *cobra.Command {
	var parent string

	cmd := &cobra.Command{
		Use:   "create [name]",
		Short: "Create a new stacked branch",
		Long: `Create a new branch at HEAD, check it out, and track it on top of the current
branch (or the branch given with --parent).`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			var name string
			if len(args) > 0 {
				name = args[0]
			} else {
				name, err = tui.PromptText("Branch name:", "")
				if err != nil {
					return err
				}
			}

			return actions.CreateAction(ctx, cmd.Context(), actions.CreateOptions{
				Name:   name,
				Parent: parent,
			})
		},
	}

	cmd.Flags().StringVarP(&parent, "parent", "p", "", "Parent branch (defaults to the current branch)")

	return cmd
}
