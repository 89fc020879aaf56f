package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner data",
	Long:  "Delete all completion state for the current learner: the shared lesson set and dates, and the learner's scoped items and markers.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if force, _ := cmd.Flags().GetBool("force"); !force {
			return fmt.Errorf("refusing to reset without --force")
		}
		return withEnv(cmd, func(e *appEnv) error {
			n, err := e.rec.Reset(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed %d keys\n", n)
			return nil
		})
	},
}

func init() {
	resetCmd.Flags().Bool("force", false, "Confirm deletion")
}
