package reserve

import (
	"bytes"
	"context"
	"io"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/forestrie/go-reserve/reservetesting"
)

type bytesSeekCloser struct{ *bytes.Reader }

func (bytesSeekCloser) Close() error { return nil }

func nopSeekCloser(data []byte) io.ReadSeekCloser {
	return bytesSeekCloser{bytes.NewReader(data)}
}

// newMemoryBlobs returns an in memory blob store whose errors classify the
// way the azure storage errors do.
func newMemoryBlobs() *reservetesting.MemoryBlobs {
	blobs := reservetesting.NewMemoryBlobs()
	blobs.NotFoundErr = ErrBlobNotFound
	blobs.ConflictErr = ErrBlobConflict
	return blobs
}

// racingBlobs lets another writer replace the blob straight after the first
// read, as a concurrent Add from a second process would.
type racingBlobs struct {
	*reservetesting.MemoryBlobs
	raced bool
	other func(ctx context.Context)
}

func (b *racingBlobs) Reader(
	ctx context.Context, identity string, opts ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	rr, err := b.MemoryBlobs.Reader(ctx, identity, opts...)
	if err == nil && !b.raced {
		b.raced = true
		b.other(ctx)
	}
	return rr, err
}
