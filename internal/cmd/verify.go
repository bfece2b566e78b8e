package cmd

import (
	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

func newVerifyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "verify <id> <balance>",
		Short: "Check whether a record with the given balance is committed",
		Long: `Check whether a record with the given balance is committed

The proof for the committed record with the id is checked against the claimed
balance. An id that is not committed at all is an error.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			r, err := reserve.ParseRecord(args[0], args[1])
			if err != nil {
				return err
			}
			env, err := loadBuiltEnvironment(cmd)
			if err != nil {
				return err
			}
			ok, err := env.prover.Verify(r.ID, r.Balance)
			if err != nil {
				return err
			}
			return writeJSON(cmd, reserve.VerifyView{IsValid: ok})
		},
	}
}
