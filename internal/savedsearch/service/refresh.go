package service

import (
	"context"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"
)

const (
	refreshBatchSize   = 200
	refreshParallelism = 4
)

// RefreshDynamic re-counts a batch of dynamic saved searches. It runs
// from the background worker, not from a request, so failures on
// individual searches are logged and skipped; the batch keeps going.
// Returns how many searches were refreshed.
func (s *Service) RefreshDynamic(ctx context.Context) (int, error) {
	searches, err := s.repo.ListDynamic(ctx, refreshBatchSize)
	if err != nil {
		return 0, err
	}

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(refreshParallelism)

	var refreshed atomic.Int64
	for _, saved := range searches {
		g.Go(func() error {
			criteria, err := unmarshalCriteria(saved.Criteria)
			if err != nil {
				s.log.DatabaseError("decode dynamic saved search", err)
				return nil
			}

			// Page size 1: only the total matters here.
			result, err := s.executor.Execute(ctx, saved.ChurchID, criteria, 1, 1)
			if err != nil {
				s.log.DatabaseError("refresh dynamic saved search", err)
				return nil
			}

			if err := s.repo.RecordExecution(ctx, saved.ChurchID, saved.ID, time.Now(), result.Total); err != nil {
				s.log.DatabaseError("record dynamic saved search refresh", err)
				return nil
			}
			refreshed.Add(1)
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return int(refreshed.Load()), err
	}
	return int(refreshed.Load()), nil
}
