package ingest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/retail-cloud/pricedex/internal/csv"
	"github.com/retail-cloud/pricedex/internal/domain"
	"github.com/retail-cloud/pricedex/internal/fuzzy"
	"github.com/retail-cloud/pricedex/internal/metrics"
)

const (
	// sinkBuffer bounds how far the decoder can run ahead of either sink.
	sinkBuffer = 64

	// maxLineBytes caps a single CSV line. Product rows are short; anything
	// past this is a corrupt upload, not data.
	maxLineBytes = 1 << 20
)

// Service ingests an uploaded price list: it decodes the CSV stream once and
// fans every record out to two sinks, one building the NDJSON corpus and one
// building the serialized fuzzy index. Both blobs are written only after the
// whole stream decoded cleanly, so a bad row never leaves a partial upload
// behind.
type Service struct {
	repo Repository
}

// New creates an ingest service.
func New(repo Repository) *Service {
	return &Service{repo: repo}
}

// Ingest replaces the stored price list with the contents of r. skipRows
// leading lines are discarded before decoding (header rows). It returns the
// number of records ingested.
func (s *Service) Ingest(ctx context.Context, r io.Reader, skipRows int) (int, error) {
	g, ctx := errgroup.WithContext(ctx)

	corpusCh := make(chan domain.Record, sinkBuffer)
	indexCh := make(chan domain.Record, sinkBuffer)

	var count int

	g.Go(func() error {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 64*1024), maxLineBytes)

		lineNo := 0
		for sc.Scan() {
			lineNo++
			if lineNo <= skipRows {
				continue
			}
			line := sc.Text()
			if strings.TrimSpace(line) == "" {
				continue
			}
			rec, err := csv.RecordFromRow(csv.DecodeLine(line))
			if err != nil {
				return fmt.Errorf("line %d: %w", lineNo, err)
			}
			count++
			select {
			case corpusCh <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
			select {
			case indexCh <- rec:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		if err := sc.Err(); err != nil {
			return fmt.Errorf("read upload: %w", err)
		}
		// Closed only on a clean decode. On error the group context cancels
		// and the sinks bail out before touching storage.
		close(corpusCh)
		close(indexCh)
		return nil
	})

	g.Go(func() error {
		var buf bytes.Buffer
		for {
			select {
			case rec, ok := <-corpusCh:
				if !ok {
					return s.repo.PutCorpus(ctx, buf.Bytes())
				}
				line, err := json.Marshal(rec)
				if err != nil {
					return fmt.Errorf("encode record %q: %w", rec.Code, err)
				}
				buf.Write(line)
				buf.WriteByte('\n')
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	g.Go(func() error {
		var projections []map[string]string
		for {
			select {
			case rec, ok := <-indexCh:
				if !ok {
					idx := fuzzy.CreateIndex(domain.IndexKeys, projections)
					data, err := idx.Marshal()
					if err != nil {
						return fmt.Errorf("%w: %w", domain.ErrIndexBuild, err)
					}
					return s.repo.PutIndex(ctx, data)
				}
				projections = append(projections, rec.Project().Fields())
			case <-ctx.Done():
				return ctx.Err()
			}
		}
	})

	if err := g.Wait(); err != nil {
		return 0, err
	}
	metrics.IngestRowsTotal.Add(float64(count))
	return count, nil
}
