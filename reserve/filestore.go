package reserve

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/datatrails/go-datatrails-common/logger"
	"github.com/forestrie/go-reserve/merkle"
)

// Opener reads and writes named record documents. Every access a FileStore
// makes goes through its Opener.
type Opener interface {
	Open(string) (io.ReadCloser, error)
	// Create writes a new document and fails with fs.ErrExist if one exists.
	Create(string, []byte) error
	// Replace overwrites a document so that readers see either the old or
	// the new content.
	Replace(string, []byte) error
}

type osOpener struct{}

func (osOpener) Open(name string) (io.ReadCloser, error) { return os.Open(name) }

func (osOpener) Create(name string, data []byte) error {
	f, err := os.OpenFile(name, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	if _, err = f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Replace writes data beside name and renames it into place.
func (osOpener) Replace(name string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(name), filepath.Base(name)+".*.tmp")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name())

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), name)
}

type FileStoreOption func(*FileStore)

// WithOpener replaces the filesystem for both reads and writes.
func WithOpener(opener Opener) FileStoreOption {
	return func(s *FileStore) {
		s.opener = opener
	}
}

// FileStore keeps the record list in a single JSON document on the local
// filesystem. The document must exist before records can be read or added.
type FileStore struct {
	log    logger.Logger
	path   string
	opener Opener
}

var _ RecordStore = (*FileStore)(nil)

func NewFileStore(log logger.Logger, path string, opts ...FileStoreOption) *FileStore {
	s := &FileStore{
		log:    log,
		path:   path,
		opener: osOpener{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Path returns the location of the record document.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Records(ctx context.Context) ([]merkle.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := s.opener.Open(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrStoreNotFound, s.path)
		}
		return nil, err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, err
	}
	return DecodeRecords(data)
}

func (s *FileStore) Add(ctx context.Context, r merkle.Record) error {
	records, err := s.Records(ctx)
	if err != nil {
		return err
	}
	if records, err = appendRecord(records, r); err != nil {
		return err
	}
	data, err := EncodeRecords(records)
	if err != nil {
		return err
	}
	if err = s.opener.Replace(s.path, data); err != nil {
		return err
	}
	s.log.Infof("record %s added to %s (%d records)", r, s.path, len(records))
	return nil
}

// CreateFileStore writes an initial record document at path, failing if one
// exists.
func CreateFileStore(
	log logger.Logger, path string, records []merkle.Record, opts ...FileStoreOption,
) (*FileStore, error) {
	data, err := EncodeRecords(records)
	if err != nil {
		return nil, err
	}
	s := NewFileStore(log, path, opts...)
	if err = s.opener.Create(path, data); err != nil {
		return nil, err
	}
	return s, nil
}
