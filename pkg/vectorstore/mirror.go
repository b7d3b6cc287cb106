// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package vectorstore

import (
	"context"
	"errors"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/metrics"
	"github.com/jackc/pgx/v5/pgconn"
)

// Outcome of a mirror attempt
type Outcome string

const (
	OutcomeWritten Outcome = "written"
	// OutcomeNoVector means the embedding was absent or malformed; nothing
	// was attempted
	OutcomeNoVector Outcome = "no_vector"
	OutcomeSkipped  Outcome = "skipped"
	OutcomeTimeout  Outcome = "timeout"
	OutcomeFailed   Outcome = "failed"
)

// Postgres error codes meaning the vector column or type does not exist
const (
	pgUndefinedColumn = "42703"
	pgUndefinedObject = "42704"
)

// VectorWriter is the single statement the mirror needs
type VectorWriter interface {
	UpdateVectorColumn(ctx context.Context, target database.VectorTarget, id int64, literal string) error
}

// Mirror writes embeddings into the native vector column
type Mirror struct {
	writer  VectorWriter
	timeout time.Duration
}

// NewMirror creates a new Mirror
func NewMirror(writer VectorWriter, timeout time.Duration) *Mirror {
	return &Mirror{
		writer:  writer,
		timeout: timeout,
	}
}

// ValidVector reports whether value is a vector the store accepts: present,
// an array of numbers, and exactly VectorDimension long. JSON-decoded arrays
// ([]interface{} of float64) are accepted as well.
func ValidVector(value interface{}) ([]float32, bool) {
	var vec []float32
	switch v := value.(type) {
	case []float32:
		vec = v
	case model.Embedding:
		vec = v
	case []float64:
		vec = make([]float32, len(v))
		for i, f := range v {
			vec[i] = float32(f)
		}
	case []interface{}:
		vec = make([]float32, len(v))
		for i, item := range v {
			f, ok := item.(float64)
			if !ok {
				return nil, false
			}
			vec[i] = float32(f)
		}
	default:
		return nil, false
	}
	if len(vec) != config.VectorDimension {
		return nil, false
	}
	return vec, true
}

// Write mirrors vec into target for record id. It never returns an error:
// the JSON copy is authoritative and the mirror may lag.
func (m *Mirror) Write(ctx context.Context, target database.VectorTarget, id int64, vec []float32) Outcome {
	vec, ok := ValidVector(vec)
	if !ok {
		return OutcomeNoVector
	}

	literal := database.VectorLiteral(vec)
	writeCtx, cancel := context.WithTimeout(ctx, m.timeout)
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- m.writer.UpdateVectorColumn(writeCtx, target, id, literal)
	}()

	var err error
	select {
	case err = <-done:
	case <-writeCtx.Done():
		err = writeCtx.Err()
	}

	switch {
	case err == nil:
		metrics.VectorMirrorWritesTotal.WithLabelValues(target.Table, metrics.StatusSuccess).Inc()
		return OutcomeWritten
	case errors.Is(err, context.DeadlineExceeded):
		metrics.VectorMirrorWritesTotal.WithLabelValues(target.Table, metrics.StatusTimeout).Inc()
		log.Warnf("vector mirror %s.%s id=%d timed out after %s", target.Table, target.Column, id, m.timeout)
		return OutcomeTimeout
	default:
		metrics.VectorMirrorWritesTotal.WithLabelValues(target.Table, metrics.StatusError).Inc()
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == pgUndefinedColumn || pgErr.Code == pgUndefinedObject) {
			log.Warnf("vector mirror %s.%s id=%d skipped: pgvector column unavailable (%s)", target.Table, target.Column, id, pgErr.Message)
		} else {
			log.Warnf("vector mirror %s.%s id=%d failed: %v", target.Table, target.Column, id, err)
		}
		return OutcomeFailed
	}
}
