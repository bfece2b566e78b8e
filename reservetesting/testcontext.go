package reservetesting

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/merkle"
	"github.com/stretchr/testify/require"
)

type TestContext struct {
	Log logger.Logger
	T   *testing.T
	// Dir is a per test scratch directory, removed when the test ends.
	Dir string
}

type TestConfig struct {
	TestLabelPrefix string
	// RecordCount, when non zero, causes a canonical record file of that many
	// records to be written to RecordsPath.
	RecordCount int
}

const RecordsFileName = "records.json"

func NewTestContext(t *testing.T, cfg TestConfig) TestContext {
	c := TestContext{
		T:   t,
		Dir: t.TempDir(),
	}
	logger.New("INFO")
	c.Log = logger.Sugar.WithServiceName(cfg.TestLabelPrefix)

	if cfg.RecordCount > 0 {
		c.WriteRecordsFile(RecordsFileName, CanonicalRecords(cfg.RecordCount))
	}
	return c
}

func (c *TestContext) GetLog() logger.Logger { return c.Log }

// RecordsPath is where NewTestContext writes the canonical record file.
func (c *TestContext) RecordsPath() string {
	return filepath.Join(c.Dir, RecordsFileName)
}

// CanonicalRecords returns records (1,1111), (2,2222) ... (n, n*1111).
func CanonicalRecords(n int) []merkle.Record {
	records := make([]merkle.Record, n)
	for i := range records {
		id := int64(i + 1)
		records[i] = merkle.Record{ID: id, Balance: uint64(id) * 1111}
	}
	return records
}

// WriteRecordsFile writes records in the record document layout and returns
// the path.
func (c *TestContext) WriteRecordsFile(name string, records []merkle.Record) string {
	type doc struct {
		ID      int64  `json:"Id"`
		Balance uint64 `json:"Balance"`
	}
	docs := make([]doc, len(records))
	for i, r := range records {
		docs[i] = doc{ID: r.ID, Balance: r.Balance}
	}
	data, err := json.Marshal(docs)
	require.NoError(c.T, err)
	return c.WriteFile(name, data)
}

// WriteFile writes data to name under Dir and returns the path.
func (c *TestContext) WriteFile(name string, data []byte) string {
	path := filepath.Join(c.Dir, name)
	require.NoError(c.T, os.WriteFile(path, data, 0o644))
	return path
}
