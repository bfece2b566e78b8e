package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/reserve"
	"github.com/spf13/cobra"
)

// environment is what every store backed command needs: the loaded config, a
// logger and a prover over the configured record store.
type environment struct {
	conf   *reserve.Config
	log    logger.Logger
	store  reserve.RecordStore
	prover *reserve.Prover
}

func loadEnvironment(cmd *cobra.Command) (*environment, error) {
	confPath := cmd.Flag("config").Value.String()
	conf, err := reserve.LoadConfig(confPath)
	if err != nil {
		return nil, err
	}

	logger.New(conf.LogLevel)
	log := logger.Sugar.WithServiceName(appName)

	store, err := openStore(log, conf)
	if err != nil {
		return nil, err
	}
	tags, err := conf.Tags()
	if err != nil {
		return nil, err
	}
	prover, err := reserve.NewProver(log, store, reserve.WithTags(tags))
	if err != nil {
		return nil, err
	}
	return &environment{
		conf:   conf,
		log:    log,
		store:  store,
		prover: prover,
	}, nil
}

// loadBuiltEnvironment is loadEnvironment followed by a rebuild of the
// commitment from the current records.
func loadBuiltEnvironment(cmd *cobra.Command) (*environment, error) {
	env, err := loadEnvironment(cmd)
	if err != nil {
		return nil, err
	}
	if _, err = env.prover.Rebuild(cmd.Context()); err != nil {
		return nil, err
	}
	return env, nil
}

func openStore(log logger.Logger, conf *reserve.Config) (reserve.RecordStore, error) {
	switch conf.Store {
	case reserve.StoreKindBlob:
		storer, err := azblob.NewDev(azblob.NewDevConfigFromEnv(), conf.BlobContainer)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to blob store: %w", err)
		}
		return reserve.NewBlobStore(log, storer, conf.BlobPath)
	default:
		return reserve.NewFileStore(log, conf.RecordsPath), nil
	}
}

func writeJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
