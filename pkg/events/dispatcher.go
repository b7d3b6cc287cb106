// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package events

import (
	"context"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
)

// EventType represents the type of write event
type EventType string

const (
	// EventTypeSkillSaved is fired after a skill and its derived fields are persisted
	EventTypeSkillSaved EventType = "skill_saved"
	// EventTypeCandidateSaved is fired after a candidate is persisted
	EventTypeCandidateSaved EventType = "candidate_saved"
)

// EmbeddingEvent is emitted after a successful write on the embedding path
type EmbeddingEvent struct {
	Type EventType
	// SkillID is set for skill events
	SkillID int64
	// CandidateIDs are the candidates whose summaries may have changed
	CandidateIDs []int64
	// Embedded reports whether a new embedding was stored
	Embedded bool
}

// Listener is the interface for listening to write events
type Listener interface {
	// OnEmbeddingEvent handles an event. Implementations should be non-blocking.
	OnEmbeddingEvent(ctx context.Context, event *EmbeddingEvent) error
}

// Publisher is what the write path depends on
type Publisher interface {
	Dispatch(ctx context.Context, event *EmbeddingEvent)
}

// Dispatcher manages listeners and dispatches events
type Dispatcher struct {
	mu        sync.RWMutex
	listeners []Listener
	inflight  sync.WaitGroup
}

// NewDispatcher creates a new event dispatcher
func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		listeners: make([]Listener, 0),
	}
}

// RegisterListener registers a new listener
func (d *Dispatcher) RegisterListener(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.listeners = append(d.listeners, listener)
	log.Infof("Registered embedding event listener (total: %d)", len(d.listeners))
}

// UnregisterListener removes a listener
func (d *Dispatcher) UnregisterListener(listener Listener) {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, l := range d.listeners {
		if l == listener {
			d.listeners = append(d.listeners[:i], d.listeners[i+1:]...)
			log.Infof("Unregistered embedding event listener (remaining: %d)", len(d.listeners))
			return
		}
	}
}

// Dispatch hands the event to every listener on its own goroutine and
// returns immediately. Listener errors and panics never reach the caller.
func (d *Dispatcher) Dispatch(ctx context.Context, event *EmbeddingEvent) {
	d.mu.RLock()
	listeners := make([]Listener, len(d.listeners))
	copy(listeners, d.listeners)
	d.mu.RUnlock()

	if len(listeners) == 0 {
		log.Debugf("No listeners registered for embedding event: type=%s", event.Type)
		return
	}

	for _, listener := range listeners {
		l := listener
		d.inflight.Add(1)

		go func() {
			defer d.inflight.Done()
			defer func() {
				if r := recover(); r != nil {
					log.Errorf("Listener panicked: %v", r)
				}
			}()

			// The request context is gone by the time listeners run
			if err := l.OnEmbeddingEvent(context.Background(), event); err != nil {
				log.Errorf("Listener error for event type=%s: %v", event.Type, err)
			}
		}()
	}
}

// Wait blocks until every dispatched listener call has returned
func (d *Dispatcher) Wait() {
	d.inflight.Wait()
}

// ListenerCount returns the number of registered listeners
func (d *Dispatcher) ListenerCount() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.listeners)
}

// NopPublisher drops every event
type NopPublisher struct{}

// Dispatch implements Publisher
func (NopPublisher) Dispatch(context.Context, *EmbeddingEvent) {}
