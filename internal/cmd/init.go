package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

const defaultRecordsFile = "records.json"

func newInitCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a configuration file and an empty record list",
		Long: `Create a configuration file and an empty record list

The configuration uses the default leaf and branch tags. Existing files are
never overwritten.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runInit(cmd, cmd.Flag("dir").Value.String())
		},
	}
	cmd.Flags().StringP("dir", "d", ".", "Location of directory for storing generated files")
	return cmd
}

func runInit(cmd *cobra.Command, dir string) error {
	confPath := filepath.Join(dir, defaultConfigFile)
	if _, err := os.Stat(confPath); err == nil {
		return fmt.Errorf("%s: %w", confPath, fs.ErrExist)
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	conf := reserve.DefaultConfig(defaultRecordsFile)
	if err := conf.Save(confPath); err != nil {
		return err
	}

	logger.New(conf.LogLevel)
	log := logger.Sugar.WithServiceName(appName)
	recordsPath := filepath.Join(dir, defaultRecordsFile)
	if _, err := reserve.CreateFileStore(log, recordsPath, []merkle.Record{}); err != nil {
		if !errors.Is(err, fs.ErrExist) {
			return err
		}
		log.Infof("keeping existing record list %s", recordsPath)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", confPath)
	return nil
}
