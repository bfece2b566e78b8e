package reserve

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/forestrie/go-reserve/merkle"
)

// RecordStore supplies the ordered record list that is committed to. The
// order of Records is the order of the leaves.
type RecordStore interface {
	Records(ctx context.Context) ([]merkle.Record, error)
	// Add appends r. It returns a *DuplicateRecordError if r.ID is present.
	Add(ctx context.Context, r merkle.Record) error
}

// storedRecord is the document layout, a JSON array of
//
//	{"Id": 1, "Balance": 1111}
type storedRecord struct {
	ID      int64  `json:"Id"`
	Balance uint64 `json:"Balance"`
}

// DecodeRecords parses a record document, preserving order.
func DecodeRecords(data []byte) ([]merkle.Record, error) {
	var stored []storedRecord
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStoreMalformed, err)
	}
	records := make([]merkle.Record, len(stored))
	for i, s := range stored {
		records[i] = merkle.Record{ID: s.ID, Balance: s.Balance}
	}
	return records, nil
}

// EncodeRecords renders records as an indented record document.
func EncodeRecords(records []merkle.Record) ([]byte, error) {
	stored := make([]storedRecord, len(records))
	for i, r := range records {
		stored[i] = storedRecord{ID: r.ID, Balance: r.Balance}
	}
	return json.MarshalIndent(stored, "", "  ")
}

// appendRecord returns records with r appended, or a *DuplicateRecordError.
func appendRecord(records []merkle.Record, r merkle.Record) ([]merkle.Record, error) {
	if merkle.IndexOf(records, r.ID) >= 0 {
		return nil, &DuplicateRecordError{ID: r.ID}
	}
	return append(records, r), nil
}

// ParseRecord parses decimal id and balance arguments.
func ParseRecord(id, balance string) (merkle.Record, error) {
	i, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return merkle.Record{}, fmt.Errorf("%w: id %q", ErrBadRecordField, id)
	}
	if strings.HasPrefix(balance, "-") {
		return merkle.Record{}, fmt.Errorf("%w: %s", ErrNegativeBalance, balance)
	}
	b, err := strconv.ParseUint(balance, 10, 64)
	if err != nil {
		return merkle.Record{}, fmt.Errorf("%w: balance %q", ErrBadRecordField, balance)
	}
	return merkle.Record{ID: i, Balance: b}, nil
}
