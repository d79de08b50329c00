// Package pricelist persists the ingested corpus and its serialized search
// index as two fixed blobs.
package pricelist

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/retail-cloud/pricedex/internal/db"
	"github.com/retail-cloud/pricedex/internal/domain"
)

// Blob keys, relative to the configured key prefix. There is no atomicity
// across the two keys; ingestion orders its writes so a failed upload never
// replaces a previously good pair.
const (
	CorpusKey = "pricelist:corpus"
	IndexKey  = "pricelist:index"
)

const (
	contentTypeNDJSON = "application/x-ndjson"
	contentTypeJSON   = "application/json"
)

// store is the consumer interface for blobs (ISP).
type store interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	Get(ctx context.Context, key string) (db.Object, error)
	Stat(ctx context.Context, key string) (time.Time, error)
}

// Repo implements the blob repositories of the ingest and search use cases.
type Repo struct {
	store  store
	prefix string
}

// New creates a price-list repository. keyPrefix namespaces the blob keys
// within a shared store.
func New(s store, keyPrefix string) *Repo {
	return &Repo{store: s, prefix: keyPrefix}
}

// PutCorpus overwrites the corpus blob with newline-delimited JSON records.
func (r *Repo) PutCorpus(ctx context.Context, ndjson []byte) error {
	if err := r.store.Put(ctx, r.prefix+CorpusKey, ndjson, contentTypeNDJSON); err != nil {
		return fmt.Errorf("put corpus: %w", err)
	}
	return nil
}

// PutIndex overwrites the serialized search index blob.
func (r *Repo) PutIndex(ctx context.Context, index []byte) error {
	if err := r.store.Put(ctx, r.prefix+IndexKey, index, contentTypeJSON); err != nil {
		return fmt.Errorf("put index: %w", err)
	}
	return nil
}

// GetCorpus fetches and decodes the full corpus.
func (r *Repo) GetCorpus(ctx context.Context) ([]domain.Record, error) {
	obj, err := r.store.Get(ctx, r.prefix+CorpusKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, domain.ErrNotIngested
		}
		return nil, fmt.Errorf("get corpus: %w", err)
	}
	return decodeNDJSON(obj.Body)
}

// GetIndex fetches the serialized index blob and its upload timestamp.
func (r *Repo) GetIndex(ctx context.Context) ([]byte, time.Time, error) {
	obj, err := r.store.Get(ctx, r.prefix+IndexKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return nil, time.Time{}, domain.ErrNotIngested
		}
		return nil, time.Time{}, fmt.Errorf("get index: %w", err)
	}
	return obj.Body, obj.UploadedAt, nil
}

// StatIndex returns the index blob's upload timestamp without its body.
func (r *Repo) StatIndex(ctx context.Context) (time.Time, error) {
	uploadedAt, err := r.store.Stat(ctx, r.prefix+IndexKey)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return time.Time{}, domain.ErrNotIngested
		}
		return time.Time{}, fmt.Errorf("stat index: %w", err)
	}
	return uploadedAt, nil
}

// decodeNDJSON parses one record per line, skipping blank lines.
func decodeNDJSON(body []byte) ([]domain.Record, error) {
	records := make([]domain.Record, 0, 256)
	scanner := bufio.NewScanner(bytes.NewReader(body))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	line := 0
	for scanner.Scan() {
		line++
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		var rec domain.Record
		if err := json.Unmarshal(raw, &rec); err != nil {
			return nil, fmt.Errorf("corpus line %d: %w", line, err)
		}
		records = append(records, rec)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan corpus: %w", err)
	}
	return records, nil
}
