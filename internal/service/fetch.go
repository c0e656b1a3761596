package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/hyperdash/monitor/internal/domain/models"
)

// fetchAll loads positions for every address in fixed-size batches.
// Addresses within a batch are fetched concurrently; batches run in order
// with a pause between them to stay under the API rate limits.
//
// A failed fetch is recorded on that trader's result and does not affect
// the rest of the batch. Only context cancellation aborts the whole run.
func (s *snapshotService) fetchAll(ctx context.Context, log zerolog.Logger, addresses []string) ([]models.TraderResult, error) {
	results := make([]models.TraderResult, len(addresses))

	for start := 0; start < len(addresses); start += s.opts.BatchSize {
		end := start + s.opts.BatchSize
		if end > len(addresses) {
			end = len(addresses)
		}

		g, gctx := errgroup.WithContext(ctx)
		for i := start; i < end; i++ {
			idx := i
			addr := addresses[idx]

			g.Go(func() error {
				positions, err := s.fetcher.Positions(gctx, addr)
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				results[idx] = models.TraderResult{Address: addr, Positions: positions, Err: err}
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return nil, err
		}

		log.Info().Int("done", end).Int("total", len(addresses)).Msg("positions fetched")

		if end < len(addresses) && s.opts.BatchDelay > 0 {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-time.After(s.opts.BatchDelay):
			}
		}
	}

	return results, nil
}
