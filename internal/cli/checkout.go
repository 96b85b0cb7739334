package cli

import (
	"github.com/spf13/cobra"

	"strand.dev/strand/internal/actions"
	"strand.dev/strand/internal/runtime"
)

// newCheckoutCmd creates the checkout command
func newCheckoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "checkout [branch]",
		Aliases: []string{"co"},
		Short:   "Switch to a tracked branch",
		Long:    `Switch to a tracked branch. With no argument, opens an interactive picker.`,
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, err := runtime.GetContext()
			if err != nil {
				return err
			}
			defer ctx.Splog.Close()

			var name string
			if len(args) > 0 {
				name = args[0]
			}

			return actions.CheckoutAction(ctx, cmd.Context(), actions.CheckoutOptions{Name: name})
		},
	}
}
