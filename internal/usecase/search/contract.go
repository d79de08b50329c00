package search

import (
	"context"
	"time"

	"github.com/retail-cloud/pricedex/internal/domain"
)

// Repository defines the storage contract for search operations.
type Repository interface {
	// GetCorpus loads the full ingested record set.
	GetCorpus(ctx context.Context) ([]domain.Record, error)

	// GetIndex loads the serialized fuzzy index and its upload timestamp.
	GetIndex(ctx context.Context) ([]byte, time.Time, error)

	// StatIndex returns the index upload timestamp without fetching the blob.
	StatIndex(ctx context.Context) (time.Time, error)
}
