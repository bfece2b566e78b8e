package cmd

import (
	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

func newWatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Print the merkle root each time the records change",
		Long: `Print the merkle root each time the records change

The record store is polled at the given interval. One JSON object is printed
for the initial root and for every subsequent change. Stop with an interrupt.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			interval, err := cmd.Flags().GetDuration("interval")
			if err != nil {
				return err
			}
			env, err := loadEnvironment(cmd)
			if err != nil {
				return err
			}
			var writeErr error
			err = env.prover.Watch(cmd.Context(), interval, func(c reserve.Commitment) {
				view, err := c.View()
				if err == nil {
					err = writeJSON(cmd, view)
				}
				if err != nil && writeErr == nil {
					writeErr = err
				}
			})
			if err != nil {
				return err
			}
			return writeErr
		},
	}
	cmd.Flags().DurationP("interval", "i", defaultWatchInterval, "How often to poll the record store")
	return cmd
}
