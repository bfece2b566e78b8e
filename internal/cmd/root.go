package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"
)

const (
	appName           = "reservectl"
	defaultConfigFile = "reserve.toml"

	defaultWatchInterval = 5 * time.Second
)

type rootCommand struct {
	use   string
	short string
	long  string
}

var _ cobraCommand = (*rootCommand)(nil)

// NewRootCommand returns the reservectl command with all subcommands added.
func NewRootCommand() *cobra.Command {
	rootCmd := &rootCommand{
		use:   appName,
		short: "Proof of reserve commitments over a record list",
		long: `reservectl commits to a list of (id, balance) records with a tagged-hash
merkle tree, and produces and checks inclusion proofs against the root.

Records are read from the store named in the TOML config given by --config.`,
	}
	cmd := rootCmd.Build()
	cmd.AddCommand(
		newInitCommand(),
		newRootHashCommand(),
		newProofCommand(),
		newVerifyCommand(),
		newAddCommand(),
		newReceiptCommand(),
		newSignCommand(),
		newWatchCommand(),
		NewVersionCommand(appName),
	)
	return cmd
}

func (rootCmd *rootCommand) Build() *cobra.Command {
	cmd := cobra.Command{
		Use:           rootCmd.use,
		Short:         rootCmd.short,
		Long:          rootCmd.long,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.PersistentFlags().StringP("config", "c", defaultConfigFile, "Path to the reserve configuration file")
	return &cmd
}

// Execute runs reservectl and exits non zero on failure. An interrupt cancels
// the context of the running command.
func Execute() {
	if err := execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(-1)
	}
}

func execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	return NewRootCommand().ExecuteContext(ctx)
}
