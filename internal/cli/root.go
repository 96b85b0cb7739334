// Package cli defines the cobra command tree. Each command builds the runtime
// context and delegates to its action.
package cli

import (
	"github.com/spf13/cobra"
)

// NewRootCmd creates the root cobra command
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "strand",
		Short: "Strand manages stacked git branches",
		Long: `Strand manages stacked git branches: chains of dependent feature branches
layered on a trunk. It keeps the stack rebased, pushes it, and keeps each
branch's pull request targeting its parent.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(
		newInitCmd(),
		newCreateCmd(),
		newCheckoutCmd(),
		newLogCmd(),
		newDeleteCmd(),
		newSyncCmd(),
		newContinueCmd(),
		newAbortCmd(),
		newSubmitCmd(),
		newPushCmd(),
		newMoveCmd(),
	)

	return rootCmd
}
