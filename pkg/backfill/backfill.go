// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package backfill

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/panjf2000/ants/v2"
)

// Reindexer regenerates the derived embedding of one record
type Reindexer interface {
	Reindex(ctx context.Context, id int64, force bool) (bool, error)
}

// Lister returns one page of record IDs in a stable order
type Lister func(ctx context.Context, offset, limit int) ([]int64, error)

// Job is one table to walk
type Job struct {
	Name      string
	List      Lister
	Reindexer Reindexer
}

// Stats summarizes a finished job
type Stats struct {
	Processed int64
	Embedded  int64
	Failed    int64
}

func (s Stats) String() string {
	return fmt.Sprintf("processed=%d embedded=%d failed=%d", s.Processed, s.Embedded, s.Failed)
}

// Runner walks jobs page by page and reindexes records on a worker pool
type Runner struct {
	workers  int
	pageSize int
}

// NewRunner creates a new Runner
func NewRunner(cfg config.BackfillConfig) *Runner {
	r := &Runner{workers: cfg.Workers, pageSize: cfg.PageSize}
	if r.workers < 1 {
		r.workers = 1
	}
	if r.pageSize < 1 {
		r.pageSize = 100
	}
	return r
}

// Run reindexes every record of job. Individual failures are counted and
// logged; only a failure to list records or a cancelled context aborts the
// run.
func (r *Runner) Run(ctx context.Context, job Job, force bool) (Stats, error) {
	pool, err := ants.NewPool(r.workers)
	if err != nil {
		return Stats{}, fmt.Errorf("failed to create worker pool: %w", err)
	}
	defer pool.Release()

	var (
		wg                          sync.WaitGroup
		processed, embedded, failed atomic.Int64
	)
	snapshot := func() Stats {
		return Stats{Processed: processed.Load(), Embedded: embedded.Load(), Failed: failed.Load()}
	}

	for offset := 0; ; offset += r.pageSize {
		if err := ctx.Err(); err != nil {
			wg.Wait()
			return snapshot(), err
		}

		ids, err := job.List(ctx, offset, r.pageSize)
		if err != nil {
			wg.Wait()
			return snapshot(), fmt.Errorf("failed to list %s at offset %d: %w", job.Name, offset, err)
		}

		for _, id := range ids {
			id := id
			wg.Add(1)
			submitErr := pool.Submit(func() {
				defer wg.Done()
				ok, err := job.Reindexer.Reindex(ctx, id, force)
				processed.Add(1)
				if err != nil {
					failed.Add(1)
					log.Warnf("Backfill %s %d failed: %v", job.Name, id, err)
					return
				}
				if ok {
					embedded.Add(1)
				}
			})
			if submitErr != nil {
				wg.Done()
				failed.Add(1)
				log.Warnf("Backfill %s %d not scheduled: %v", job.Name, id, submitErr)
			}
		}

		if len(ids) < r.pageSize {
			break
		}
	}

	wg.Wait()
	stats := snapshot()
	log.Infof("Backfill %s finished: %s", job.Name, stats)
	return stats, nil
}

// SkillLister pages skill IDs in id order
func SkillLister(skills database.SkillFacadeInterface) Lister {
	return func(ctx context.Context, offset, limit int) ([]int64, error) {
		page, err := skills.Find(ctx, database.Query{Limit: limit, Offset: offset, Order: "id ASC"})
		if err != nil {
			return nil, err
		}
		ids := make([]int64, len(page))
		for i, s := range page {
			ids[i] = s.ID
		}
		return ids, nil
	}
}

// CandidateLister pages candidate IDs in id order
func CandidateLister(candidates database.CandidateFacadeInterface) Lister {
	return func(ctx context.Context, offset, limit int) ([]int64, error) {
		page, err := candidates.Find(ctx, database.Query{Limit: limit, Offset: offset, Order: "id ASC"})
		if err != nil {
			return nil, err
		}
		ids := make([]int64, len(page))
		for i, c := range page {
			ids[i] = c.ID
		}
		return ids, nil
	}
}
