package cmd

import (
	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

func newAddCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "add <id> <balance>",
		Short: "Add a record and print the new merkle root",
		Long: `Add a record and print the new merkle root

Adding an id that is already present fails and leaves the records unchanged.
Proofs issued before the add do not verify against the new root.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reserve.ParseRecord(args[0], args[1])
			if err != nil {
				return err
			}
			env, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}
			c, err := env.prover.AddRecord(cmd.Context(), r)
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
