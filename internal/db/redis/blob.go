package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/rueidis"

	"github.com/retail-cloud/pricedex/internal/db"
)

// Hash fields of one stored blob.
const (
	fieldBody        = "body"
	fieldContentType = "content_type"
	fieldUploadedAt  = "uploaded_at"
)

// Put stores a blob as a hash, stamping it with the current UTC time. The
// write is a single HSET, so readers never observe a body without its
// timestamp.
func (s *Store) Put(ctx context.Context, key string, body []byte, contentType string) error {
	uploadedAt := time.Now().UTC().Format(time.RFC3339Nano)
	cmd := s.b().Hset().Key(key).FieldValue().
		FieldValue(fieldBody, string(body)).
		FieldValue(fieldContentType, contentType).
		FieldValue(fieldUploadedAt, uploadedAt).
		Build()
	if err := s.do(ctx, cmd).Error(); err != nil {
		return &db.Error{Op: db.OpHSet, Err: err}
	}
	return nil
}

// Get returns a blob with its metadata.
func (s *Store) Get(ctx context.Context, key string) (db.Object, error) {
	cmd := s.b().Hgetall().Key(key).Build()
	fields, err := s.do(ctx, cmd).AsStrMap()
	if err != nil {
		return db.Object{}, &db.Error{Op: db.OpHGetAll, Err: err}
	}
	if len(fields) == 0 {
		// HGETALL on a missing key returns an empty map, not nil.
		return db.Object{}, db.ErrKeyNotFound
	}

	uploadedAt, err := parseUploadedAt(key, fields[fieldUploadedAt])
	if err != nil {
		return db.Object{}, err
	}

	return db.Object{
		Body:        []byte(fields[fieldBody]),
		ContentType: fields[fieldContentType],
		UploadedAt:  uploadedAt,
	}, nil
}

// Stat returns the upload timestamp without fetching the body.
func (s *Store) Stat(ctx context.Context, key string) (time.Time, error) {
	cmd := s.b().Hget().Key(key).Field(fieldUploadedAt).Build()
	raw, err := s.do(ctx, cmd).ToString()
	if err != nil {
		if rueidis.IsRedisNil(err) {
			return time.Time{}, db.ErrKeyNotFound
		}
		return time.Time{}, &db.Error{Op: db.OpHGet, Err: err}
	}
	return parseUploadedAt(key, raw)
}

func parseUploadedAt(key, raw string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339Nano, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("blob %s has bad uploaded_at %q: %w", key, raw, err)
	}
	return t, nil
}
