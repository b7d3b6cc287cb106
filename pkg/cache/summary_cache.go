// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package cache

import (
	"context"
	"strconv"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/events"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/metrics"
	gocache "github.com/patrickmn/go-cache"
)

// Store is a typed, ID-keyed wrapper around go-cache. A nil *Store (cache
// disabled) behaves as an always-empty cache.
//
// EvictionListener only sees writes made through this service. Profiles
// edited by other owners of the candidates table stay stale until the TTL
// expires, so keep the TTL short.
type Store[T any] struct {
	c *gocache.Cache
}

// New creates a Store with the given TTL and cleanup interval
func New[T any](ttl, cleanupInterval time.Duration) *Store[T] {
	return &Store[T]{c: gocache.New(ttl, cleanupInterval)}
}

func key(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Get returns the cached value for id
func (s *Store[T]) Get(id int64) (T, bool) {
	var zero T
	if s == nil {
		return zero, false
	}
	v, ok := s.c.Get(key(id))
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return zero, false
	}
	t, ok := v.(T)
	if !ok {
		metrics.CacheLookupsTotal.WithLabelValues("miss").Inc()
		return zero, false
	}
	metrics.CacheLookupsTotal.WithLabelValues("hit").Inc()
	return t, true
}

// Set stores v under id with the default TTL
func (s *Store[T]) Set(id int64, v T) {
	if s == nil {
		return
	}
	s.c.SetDefault(key(id), v)
}

// Delete evicts ids
func (s *Store[T]) Delete(ids ...int64) {
	if s == nil {
		return
	}
	for _, id := range ids {
		s.c.Delete(key(id))
	}
}

// Flush evicts everything
func (s *Store[T]) Flush() {
	if s == nil {
		return
	}
	s.c.Flush()
}

// Len returns the number of cached items, expired ones included until cleanup
func (s *Store[T]) Len() int {
	if s == nil {
		return 0
	}
	return s.c.ItemCount()
}

// evicter is the part of Store the eviction listener needs
type evicter interface {
	Delete(ids ...int64)
	Flush()
}

// EvictionListener keeps a summary cache coherent with writes. Candidate
// events evict the affected entries; skill events flush everything because
// a skill change alters the summaries of every candidate holding it.
type EvictionListener struct {
	cache evicter
}

// NewEvictionListener creates a new EvictionListener
func NewEvictionListener(cache evicter) *EvictionListener {
	return &EvictionListener{cache: cache}
}

// OnEmbeddingEvent implements events.Listener
func (l *EvictionListener) OnEmbeddingEvent(ctx context.Context, event *events.EmbeddingEvent) error {
	switch event.Type {
	case events.EventTypeCandidateSaved:
		l.cache.Delete(event.CandidateIDs...)
		log.Debugf("Evicted %d candidate summaries", len(event.CandidateIDs))
	case events.EventTypeSkillSaved:
		l.cache.Flush()
		log.Debugf("Flushed candidate summaries after skill %d was saved", event.SkillID)
	}
	return nil
}
