package reserve

import (
	"errors"
	"fmt"
)

var (
	ErrStoreNotFound     = errors.New("reserve: record store not found")
	ErrStoreMalformed    = errors.New("reserve: record store content is malformed")
	ErrNotBuilt          = errors.New("reserve: no commitment has been built yet")
	ErrBlobStoreNotSet   = errors.New("reserve: a blob store was required but not provided")
	ErrEtagRequired      = errors.New("reserve: etag is required when updating a record blob")
	ErrStoreConflict     = errors.New("reserve: record store was modified concurrently")
	ErrCommitmentRoot    = errors.New("reserve: commitment root must be 32 bytes")
	ErrSignedCommitment  = errors.New("reserve: signed commitment is malformed")
	ErrReceiptMalformed  = errors.New("reserve: receipt is malformed")
	ErrNegativeBalance   = errors.New("reserve: balance must not be negative")
	ErrConfigTagsMissing = errors.New("reserve: leaf and branch tags must be configured")
	ErrConfigStore       = errors.New("reserve: config does not describe a usable record store")
	ErrBadRecordField    = errors.New("reserve: record field is not a decimal integer")
	ErrWatchInterval     = errors.New("reserve: watch interval must be positive")
	ErrBlobNotFound      = errors.New("reserve: blob not found")
	ErrBlobConflict      = errors.New("reserve: blob precondition failed")
)

// DuplicateRecordError is returned when adding a record whose identifier is
// already committed.
type DuplicateRecordError struct {
	ID int64
}

func (e *DuplicateRecordError) Error() string {
	return fmt.Sprintf("reserve: record with id %d already exists", e.ID)
}

// IsDuplicateRecord checks whether err is a DuplicateRecordError and returns it.
func IsDuplicateRecord(err error) (*DuplicateRecordError, bool) {
	var d *DuplicateRecordError
	if errors.As(err, &d) {
		return d, true
	}
	return nil, false
}
