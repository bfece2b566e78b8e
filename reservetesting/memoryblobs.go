package reservetesting

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
)

var (
	ErrMemoryBlobNotFound = errors.New("reservetesting: blob not found")
	ErrMemoryBlobConflict = errors.New("reservetesting: blob precondition failed")
)

type memoryBlob struct {
	data         []byte
	etag         string
	lastModified time.Time
	// served is the etag handed out by the most recent Reader call.
	served string
}

// MemoryBlobs is an in memory stand in for *azblob.Storer covering Reader and
// Put.
//
// The azblob options are opaque, so etag conditions are modeled on the
// behaviour of a single etag guarded writer: Put to an absent blob always
// succeeds, and Put to an existing blob succeeds only if the blob is unchanged
// since Reader last served it. A create over an existing blob that was never
// read, or a write after another writer replaced the blob, fails with
// ConflictErr.
type MemoryBlobs struct {
	mu      sync.Mutex
	blobs   map[string]*memoryBlob
	version int

	// NotFoundErr and ConflictErr are wrapped by the errors Reader and Put
	// return. Callers set them to the sentinels their classifiers recognise.
	NotFoundErr error
	ConflictErr error

	// PutErr, when set, is returned by every Put.
	PutErr error
	// Puts counts successful and failed Put calls.
	Puts int
}

func NewMemoryBlobs() *MemoryBlobs {
	return &MemoryBlobs{
		blobs:       map[string]*memoryBlob{},
		NotFoundErr: ErrMemoryBlobNotFound,
		ConflictErr: ErrMemoryBlobConflict,
	}
}

func (m *MemoryBlobs) Reader(
	ctx context.Context, identity string, opts ...azblob.Option,
) (*azblob.ReaderResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	b, ok := m.blobs[identity]
	if !ok {
		return nil, fmt.Errorf("%w: %s", m.NotFoundErr, identity)
	}
	b.served = b.etag
	etag := b.etag
	lastModified := b.lastModified
	return &azblob.ReaderResponse{
		Reader:        io.NopCloser(bytes.NewReader(b.data)),
		ETag:          &etag,
		LastModified:  &lastModified,
		ContentLength: int64(len(b.data)),
	}, nil
}

func (m *MemoryBlobs) Put(
	ctx context.Context, identity string, source io.ReadSeekCloser, opts ...azblob.Option,
) (*azblob.WriteResponse, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Puts++
	if m.PutErr != nil {
		return nil, m.PutErr
	}
	if b, ok := m.blobs[identity]; ok && b.served != b.etag {
		return nil, fmt.Errorf("%w: %s has etag %s", m.ConflictErr, identity, b.etag)
	}

	defer source.Close()
	data, err := io.ReadAll(source)
	if err != nil {
		return nil, err
	}
	m.version++
	m.blobs[identity] = &memoryBlob{
		data:         data,
		etag:         fmt.Sprintf("0x%08X", m.version),
		lastModified: time.Now(),
	}
	return &azblob.WriteResponse{}, nil
}

// Data returns the current content of a blob.
func (m *MemoryBlobs) Data(identity string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	b, ok := m.blobs[identity]
	if !ok {
		return nil, false
	}
	return b.data, true
}
