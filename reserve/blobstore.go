package reserve

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/datatrails/go-datatrails-common/azblob"
	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/merkle"
)

// recordBlobStore is the subset of *azblob.Storer used by BlobStore.
type recordBlobStore interface {
	Reader(
		ctx context.Context,
		identity string,
		opts ...azblob.Option,
	) (*azblob.ReaderResponse, error)

	Put(
		ctx context.Context,
		identity string,
		source io.ReadSeekCloser,
		opts ...azblob.Option,
	) (*azblob.WriteResponse, error)
}

// RecordBlobContext is the content and metadata of a record document blob as
// of the last read.
type RecordBlobContext struct {
	BlobPath      string
	ETag          string
	LastRead      time.Time
	LastModified  time.Time
	ContentLength int64
	Data          []byte
}

// ReadData reads the blob at BlobPath and populates the metadata fields from
// the response.
func (bc *RecordBlobContext) ReadData(ctx context.Context, store recordBlobStore, opts ...azblob.Option) error {
	rr, err := store.Reader(ctx, bc.BlobPath, opts...)
	if err != nil {
		if IsBlobNotFound(err) {
			return fmt.Errorf("%w: %s: %v", ErrStoreNotFound, bc.BlobPath, err)
		}
		return err
	}
	defer rr.Reader.Close()

	bc.Data, err = io.ReadAll(rr.Reader)
	if err != nil {
		return err
	}
	bc.ETag = ""
	if rr.ETag != nil {
		bc.ETag = *rr.ETag
	}
	bc.LastRead = time.Now()
	if rr.LastModified != nil {
		bc.LastModified = *rr.LastModified
	}
	bc.ContentLength = rr.ContentLength
	return nil
}

// BlobStore keeps the record document in a single blob. Updates are guarded by
// the etag of the blob that was read, so a concurrent writer causes Add to
// fail with ErrStoreConflict rather than silently dropping a record.
type BlobStore struct {
	log      logger.Logger
	store    recordBlobStore
	blobPath string
}

var _ RecordStore = (*BlobStore)(nil)

func NewBlobStore(log logger.Logger, store recordBlobStore, blobPath string) (*BlobStore, error) {
	if store == nil {
		return nil, ErrBlobStoreNotSet
	}
	return &BlobStore{
		log:      log,
		store:    store,
		blobPath: blobPath,
	}, nil
}

// BlobPath returns the path of the record document blob.
func (s *BlobStore) BlobPath() string { return s.blobPath }

func (s *BlobStore) Records(ctx context.Context) ([]merkle.Record, error) {
	bc, err := s.read(ctx)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(bc.Data)
}

func (s *BlobStore) Add(ctx context.Context, r merkle.Record) error {
	bc, err := s.read(ctx)
	if err != nil {
		return err
	}
	records, err := DecodeRecords(bc.Data)
	if err != nil {
		return err
	}
	if records, err = appendRecord(records, r); err != nil {
		return err
	}
	if bc.ETag == "" {
		return ErrEtagRequired
	}

	if err = s.put(ctx, records, azblob.WithEtagMatch(bc.ETag)); err != nil {
		return err
	}
	s.log.Infof("record %s added to blob %s (%d records)", r, s.blobPath, len(records))
	return nil
}

// Create writes the initial record document. The way to spell 'fail without
// modifying if the blob exists' is to require that no blob matches *any* etag.
func (s *BlobStore) Create(ctx context.Context, records []merkle.Record) error {
	return s.put(ctx, records, azblob.WithEtagNoneMatch("*"))
}

func (s *BlobStore) put(ctx context.Context, records []merkle.Record, opts ...azblob.Option) error {
	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	_, err = s.store.Put(ctx, s.blobPath, azblob.NewBytesReaderCloser(data), opts...)
	if IsBlobConflict(err) {
		return fmt.Errorf("%w: %s: %v", ErrStoreConflict, s.blobPath, err)
	}
	return err
}

func (s *BlobStore) read(ctx context.Context) (*RecordBlobContext, error) {
	bc := &RecordBlobContext{BlobPath: s.blobPath}
	if err := bc.ReadData(ctx, s.store); err != nil {
		return nil, err
	}
	s.log.Debugf("read %d bytes from record blob %s", len(bc.Data), s.blobPath)
	return bc, nil
}
