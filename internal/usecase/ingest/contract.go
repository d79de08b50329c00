package ingest

import "context"

// Repository defines the storage contract for ingested price lists.
type Repository interface {
	PutCorpus(ctx context.Context, ndjson []byte) error
	PutIndex(ctx context.Context, index []byte) error
}
