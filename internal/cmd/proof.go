package cmd

import (
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: id %q", reserve.ErrBadRecordField, s)
	}
	return id, nil
}

func newProofCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "proof <id>",
		Short: "Print the balance and inclusion proof for a record",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			env, err := loadBuiltEnvironment(cmd)
			if err != nil {
				return err
			}
			resp, err := env.prover.Proof(id)
			if err != nil {
				return err
			}
			return writeJSON(cmd, resp.View())
		},
	}
}

func newReceiptCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "receipt <id>",
		Short: "Print a hex encoded CBOR receipt for a record",
		Long: `Print a hex encoded CBOR receipt for a record

The receipt carries the record, its inclusion proof and the root, and can be
checked without access to the record store.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			env, err := loadBuiltEnvironment(cmd)
			if err != nil {
				return err
			}
			receipt, err := env.prover.Receipt(id)
			if err != nil {
				return err
			}
			data, err := reserve.EncodeReceipt(receipt)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), hex.EncodeToString(data))
			return nil
		},
	}
}
