// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package backfill

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingReindexer struct {
	mu     sync.Mutex
	ids    []int64
	forced bool
	fail   map[int64]bool
}

func (r *recordingReindexer) Reindex(ctx context.Context, id int64, force bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ids = append(r.ids, id)
	r.forced = force
	if r.fail[id] {
		return false, errors.New("provider failure")
	}
	return id%2 == 0, nil
}

func listOf(ids ...int64) Lister {
	return func(ctx context.Context, offset, limit int) ([]int64, error) {
		if offset >= len(ids) {
			return nil, nil
		}
		end := offset + limit
		if end > len(ids) {
			end = len(ids)
		}
		return ids[offset:end], nil
	}
}

func TestRunner_Run(t *testing.T) {
	reindexer := &recordingReindexer{fail: map[int64]bool{5: true}}
	runner := NewRunner(config.BackfillConfig{Workers: 3, PageSize: 2})

	stats, err := runner.Run(context.Background(), Job{
		Name:      "candidates",
		List:      listOf(1, 2, 3, 4, 5),
		Reindexer: reindexer,
	}, true)
	require.NoError(t, err)

	assert.Equal(t, Stats{Processed: 5, Embedded: 2, Failed: 1}, stats)
	sort.Slice(reindexer.ids, func(i, j int) bool { return reindexer.ids[i] < reindexer.ids[j] })
	assert.Equal(t, []int64{1, 2, 3, 4, 5}, reindexer.ids)
	assert.True(t, reindexer.forced)
}

func TestRunner_ListFailure(t *testing.T) {
	runner := NewRunner(config.BackfillConfig{Workers: 1, PageSize: 10})
	_, err := runner.Run(context.Background(), Job{
		Name: "skills",
		List: func(ctx context.Context, offset, limit int) ([]int64, error) {
			return nil, errors.New("db down")
		},
		Reindexer: &recordingReindexer{},
	}, false)
	assert.Error(t, err)
}

func TestRunner_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	reindexer := &recordingReindexer{}
	runner := NewRunner(config.BackfillConfig{})
	_, err := runner.Run(ctx, Job{Name: "skills", List: listOf(1, 2), Reindexer: reindexer}, false)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, reindexer.ids)
}
