package reserve

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/forestrie/go-reserve/merkle"
)

const (
	StoreKindFile = "file"
	StoreKindBlob = "blob"

	DefaultLogLevel = "INFO"
	DefaultIssuer   = "go-reserve"
)

// Config is the on disk configuration of a prover. Relative record paths are
// resolved against the directory of the config file.
type Config struct {
	Store         string `toml:"store"`
	RecordsPath   string `toml:"records_path"`
	BlobContainer string `toml:"blob_container,omitempty"`
	BlobPath      string `toml:"blob_path,omitempty"`

	LeafTag         string `toml:"leaf_tag"`
	BranchTag       string `toml:"branch_tag"`
	LegacySingleTag bool   `toml:"legacy_single_tag"`

	Issuer   string `toml:"issuer"`
	LogLevel string `toml:"log_level"`
}

// DefaultConfig returns a file backed config using the default tags.
func DefaultConfig(recordsPath string) *Config {
	return &Config{
		Store:       StoreKindFile,
		RecordsPath: recordsPath,
		LeafTag:     merkle.DefaultLeafTag,
		BranchTag:   merkle.DefaultBranchTag,
		Issuer:      DefaultIssuer,
		LogLevel:    DefaultLogLevel,
	}
}

// LoadConfig reads a TOML config. Unset fields take their defaults, except
// that a config naming only one of the two tags is rejected.
func LoadConfig(file string) (*Config, error) {
	var conf Config
	if _, err := toml.DecodeFile(file, &conf); err != nil {
		return nil, fmt.Errorf("failed to load config %s: %w", file, err)
	}

	if conf.Store == "" {
		conf.Store = StoreKindFile
	}
	if conf.LogLevel == "" {
		conf.LogLevel = DefaultLogLevel
	}
	if conf.Issuer == "" {
		conf.Issuer = DefaultIssuer
	}
	if conf.LeafTag == "" && conf.BranchTag == "" && !conf.LegacySingleTag {
		conf.LeafTag = merkle.DefaultLeafTag
		conf.BranchTag = merkle.DefaultBranchTag
	}
	if conf.RecordsPath != "" && !filepath.IsAbs(conf.RecordsPath) {
		conf.RecordsPath = filepath.Join(filepath.Dir(file), conf.RecordsPath)
	}

	if _, err := conf.Tags(); err != nil {
		return nil, err
	}
	switch conf.Store {
	case StoreKindFile:
		if conf.RecordsPath == "" {
			return nil, fmt.Errorf("%w: records_path is required for a file store", ErrConfigStore)
		}
	case StoreKindBlob:
		if conf.BlobContainer == "" || conf.BlobPath == "" {
			return nil, fmt.Errorf("%w: blob_container and blob_path are required for a blob store", ErrConfigStore)
		}
	default:
		return nil, fmt.Errorf("%w: unknown store kind %q", ErrConfigStore, conf.Store)
	}
	return &conf, nil
}

// Save writes the config as TOML.
func (c *Config) Save(file string) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return err
	}
	return os.WriteFile(file, buf.Bytes(), 0o644)
}

// Tags returns the hashing scheme the config selects.
func (c *Config) Tags() (merkle.Tags, error) {
	if c.LegacySingleTag {
		if c.LeafTag == "" {
			return merkle.Tags{}, ErrConfigTagsMissing
		}
		return merkle.LegacySingleTag(c.LeafTag), nil
	}
	if c.LeafTag == "" || c.BranchTag == "" {
		return merkle.Tags{}, ErrConfigTagsMissing
	}
	return merkle.NewTags(c.LeafTag, c.BranchTag)
}
