// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/auth"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/metrics"
)

// DiagnosticsTimings is the per-stage timing breakdown in milliseconds.
// EmbeddingMs and DbMs are absent when the stage did not run.
type DiagnosticsTimings struct {
	TotalMs     int64  `json:"totalMs"`
	EmbeddingMs *int64 `json:"embeddingMs,omitempty"`
	DbMs        *int64 `json:"dbMs,omitempty"`
}

// DiagnosticsResult reports a skill search together with the method that
// actually served it
type DiagnosticsResult struct {
	Skills  []SkillSummary     `json:"skills"`
	Method  string             `json:"method"`
	Timings DiagnosticsTimings `json:"timings"`
}

func addMs(dst **int64, d time.Duration) {
	ms := d.Milliseconds()
	if *dst != nil {
		ms += **dst
	}
	*dst = &ms
}

// DiagnoseSkills runs a skill search through the vector path and falls back
// to a name/group-text substring search when the vector path is unavailable,
// fails or finds nothing. When even the fallback fails the returned result
// is still populated (empty skills, method text, timings) next to an error
// wrapping ErrSearchFailed.
func (s *SearchService) DiagnoseSkills(ctx context.Context, claims *auth.Claims, query string, limit int) (*DiagnosticsResult, error) {
	start := time.Now()
	result := &DiagnosticsResult{Skills: []SkillSummary{}, Method: MethodText}
	finish := func() *DiagnosticsResult {
		result.Timings.TotalMs = time.Since(start).Milliseconds()
		metrics.SearchRequestsTotal.WithLabelValues("skills_diagnostics", result.Method).Inc()
		return result
	}

	if !claims.CanSearch() {
		return nil, fmt.Errorf("%w: role %q cannot search skills", ErrAccessDenied, claims.Role)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}
	limit = s.clampLimit(limit)

	if s.embedder != nil && s.embedder.Available() {
		embedStart := time.Now()
		vec, err := s.embedder.Embed(ctx, query)
		addMs(&result.Timings.EmbeddingMs, time.Since(embedStart))

		switch {
		case err != nil:
			log.Warnf("Skill diagnostics: query embedding failed: %v", err)
		case vec != nil:
			dbStart := time.Now()
			hits, err := s.vectors.NearestSkills(ctx, vec, s.cfg.DistanceThreshold, limit)
			addMs(&result.Timings.DbMs, time.Since(dbStart))
			if err != nil {
				log.Warnf("Skill diagnostics: vector search failed: %v", err)
				break
			}
			for _, h := range hits {
				if h.Distance >= s.cfg.DistanceThreshold {
					continue
				}
				distance := h.Distance
				result.Skills = append(result.Skills, SkillSummary{
					ID:        h.ID,
					Name:      h.Name,
					GroupText: h.GroupText,
					Distance:  &distance,
				})
			}
			if len(result.Skills) > 0 {
				result.Method = MethodVector
				return finish(), nil
			}
		}
	}

	dbStart := time.Now()
	hits, err := s.vectors.SearchSkillsByText(ctx, query, limit)
	addMs(&result.Timings.DbMs, time.Since(dbStart))
	if err != nil {
		result.Skills = []SkillSummary{}
		return finish(), fmt.Errorf("%w: skill text search: %w", ErrSearchFailed, err)
	}
	for _, h := range hits {
		result.Skills = append(result.Skills, SkillSummary{ID: h.ID, Name: h.Name, GroupText: h.GroupText})
	}
	return finish(), nil
}
