package reserve

import (
	"errors"

	azStorageBlob "github.com/Azure/azure-sdk-for-go/sdk/storage/azblob"
)

const (
	azblobBlobNotFound    = "BlobNotFound"
	azblobConditionNotMet = "ConditionNotMet"
	azblobBlobExists      = "BlobAlreadyExists"
)

// AsStorageError returns the azure storage error carried by err, if any.
func AsStorageError(err error) (azStorageBlob.StorageError, bool) {
	serr := &azStorageBlob.StorageError{}
	//nolint
	ierr, ok := err.(*azStorageBlob.InternalError)
	if ierr == nil || !ok {
		return azStorageBlob.StorageError{}, false
	}
	if !ierr.As(&serr) {
		return azStorageBlob.StorageError{}, false
	}
	return *serr, true
}

func hasStorageErrorCode(err error, codes ...string) bool {
	if err == nil {
		return false
	}
	serr, ok := AsStorageError(err)
	if !ok {
		return false
	}
	for _, code := range codes {
		if string(serr.ErrorCode) == code {
			return true
		}
	}
	return false
}

// IsBlobNotFound reports whether err is the azure blob not found error or
// wraps ErrBlobNotFound.
func IsBlobNotFound(err error) bool {
	if errors.Is(err, ErrBlobNotFound) {
		return true
	}
	return hasStorageErrorCode(err, azblobBlobNotFound)
}

// IsBlobConflict reports whether err is an azure precondition failure, which
// is how a lost etag race or an existing blob on create is reported. Errors
// wrapping ErrBlobConflict are also conflicts.
func IsBlobConflict(err error) bool {
	if errors.Is(err, ErrBlobConflict) {
		return true
	}
	return hasStorageErrorCode(err, azblobConditionNotMet, azblobBlobExists)
}
