package cmd

import (
	"github.com/spf13/cobra"
)

func newRootHashCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "root",
		Short: "Print the merkle root committing to the current records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			env, err := loadBuiltEnvironment(cmd)
			if err != nil {
				return err
			}
			c, err := env.prover.Commitment()
			if err != nil {
				return err
			}
			view, err := c.View()
			if err != nil {
				return err
			}
			return writeJSON(cmd, view)
		},
	}
}
