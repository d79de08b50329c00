package health

import (
	"context"
	"time"
)

// DBPinger checks blob storage availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// IndexStater reports whether a searchable price list index exists.
type IndexStater interface {
	StatIndex(ctx context.Context) (time.Time, error)
}
