// Package fs implements the blob store on the local filesystem, for local
// development and tests. The upload timestamp is the file's mtime.
package fs

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/retail-cloud/pricedex/internal/db"
)

// Compile-time check: Store implements db.BlobStore.
var _ db.BlobStore = (*Store)(nil)

// Store keeps each blob as one file under a root directory. Blob keys map
// to file names with path separators replaced, so keys cannot escape the
// root.
type Store struct {
	root string
}

// NewStore creates the root directory if needed.
func NewStore(root string) (*Store, error) {
	if root == "" {
		return nil, fmt.Errorf("root directory is required")
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create root %s: %w", root, err)
	}
	return &Store{root: root}, nil
}

// Put writes the blob to a temp file and renames it into place, so readers
// never observe a partial body.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	path := s.path(key)
	tmp, err := os.CreateTemp(s.root, ".put-*")
	if err != nil {
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(body); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return &db.Error{Op: db.OpWrite, Err: err}
	}
	return nil
}

// Get returns the blob and its mtime. The filesystem keeps no content-type
// metadata; consumers of the two fixed blob keys know their formats.
func (s *Store) Get(ctx context.Context, key string) (db.Object, error) {
	if err := ctx.Err(); err != nil {
		return db.Object{}, err
	}

	path := s.path(key)
	info, err := os.Stat(path)
	if err != nil {
		return db.Object{}, mapNotFound(err)
	}
	body, err := os.ReadFile(path)
	if err != nil {
		return db.Object{}, mapNotFound(err)
	}

	return db.Object{
		Body:        body,
		ContentType: "application/octet-stream",
		UploadedAt:  info.ModTime().UTC(),
	}, nil
}

// Stat returns the blob's mtime.
func (s *Store) Stat(ctx context.Context, key string) (time.Time, error) {
	if err := ctx.Err(); err != nil {
		return time.Time{}, err
	}

	info, err := os.Stat(s.path(key))
	if err != nil {
		return time.Time{}, mapNotFound(err)
	}
	return info.ModTime().UTC(), nil
}

// Ping checks that the root directory is still accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := os.Stat(s.root); err != nil {
		return &db.Error{Op: db.OpStat, Err: err}
	}
	return nil
}

// Close is a no-op; the store holds no open handles between calls.
func (s *Store) Close() {}

// WaitForReady checks the root once; a local directory is ready or it isn't.
func (s *Store) WaitForReady(ctx context.Context, _ time.Duration) error {
	return s.Ping(ctx)
}

func (s *Store) path(key string) string {
	name := strings.NewReplacer("/", "_", string(os.PathSeparator), "_").Replace(key)
	return filepath.Join(s.root, name)
}

func mapNotFound(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return db.ErrKeyNotFound
	}
	return &db.Error{Op: db.OpRead, Err: err}
}
