// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package cache

import (
	"context"
	"testing"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/events"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type summary struct {
	ID   int64
	Name string
}

func TestStore_GetSet(t *testing.T) {
	s := New[summary](time.Minute, time.Minute)

	_, ok := s.Get(1)
	assert.False(t, ok)

	s.Set(1, summary{ID: 1, Name: "Ada"})
	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Equal(t, "Ada", got.Name)
	assert.Equal(t, 1, s.Len())

	s.Delete(1)
	_, ok = s.Get(1)
	assert.False(t, ok)
}

func TestStore_Expiry(t *testing.T) {
	s := New[summary](10*time.Millisecond, time.Minute)
	s.Set(1, summary{ID: 1})
	time.Sleep(30 * time.Millisecond)

	_, ok := s.Get(1)
	assert.False(t, ok)
}

func TestStore_NilIsDisabled(t *testing.T) {
	var s *Store[summary]
	s.Set(1, summary{ID: 1})
	_, ok := s.Get(1)
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
	assert.NotPanics(t, func() {
		s.Delete(1)
		s.Flush()
	})
}

func TestEvictionListener(t *testing.T) {
	s := New[summary](time.Minute, time.Minute)
	for _, id := range []int64{1, 2, 3} {
		s.Set(id, summary{ID: id})
	}
	l := NewEvictionListener(s)

	err := l.OnEmbeddingEvent(context.Background(), &events.EmbeddingEvent{
		Type:         events.EventTypeCandidateSaved,
		CandidateIDs: []int64{2},
	})
	require.NoError(t, err)
	_, ok := s.Get(2)
	assert.False(t, ok)
	_, ok = s.Get(1)
	assert.True(t, ok)

	err = l.OnEmbeddingEvent(context.Background(), &events.EmbeddingEvent{Type: events.EventTypeSkillSaved, SkillID: 9})
	require.NoError(t, err)
	assert.Equal(t, 0, s.Len())
}
