// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/auth"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/cache"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/embedding"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/metrics"
	"golang.org/x/sync/errgroup"
)

// Search methods
const (
	MethodVector = "pgvector"
	MethodText   = "text"
)

// Retrieval stages, used as metric labels
const (
	stageEmbed   = "embed"
	stageBio     = "bio_vector"
	stageSkill   = "skill_vector"
	stageKeyword = "keyword"
	stageFetch   = "fetch"
)

// SkillSummary is the public view of a skill
type SkillSummary struct {
	ID        int64    `json:"id"`
	Name      string   `json:"name"`
	GroupText string   `json:"group_text"`
	Distance  *float64 `json:"distance,omitempty"`
}

// CandidateSummary is the public view of a matched candidate
type CandidateSummary struct {
	ID              int64         `json:"id"`
	FirstName       string        `json:"first_name"`
	LastName        string        `json:"last_name"`
	JobTitle        string        `json:"job_title"`
	ExperienceYears *int          `json:"experience_years,omitempty"`
	PrimarySkill    *SkillSummary `json:"primary_skill,omitempty"`
}

func summarizeCandidate(c *model.Candidate) CandidateSummary {
	out := CandidateSummary{
		ID:              c.ID,
		FirstName:       c.FirstName,
		LastName:        c.LastName,
		JobTitle:        c.JobTitle,
		ExperienceYears: c.ExperienceYears,
	}
	if c.PrimarySkill != nil {
		out.PrimarySkill = &SkillSummary{
			ID:        c.PrimarySkill.ID,
			Name:      c.PrimarySkill.Name,
			GroupText: c.PrimarySkill.GroupText,
		}
	}
	return out
}

// SearchResult represents the result of a candidate search
type SearchResult struct {
	Candidates []CandidateSummary `json:"candidates"`
	Total      int                `json:"total"`
	// Method is only reported by diagnostics surfaces
	Method string `json:"-"`
}

// SearchService is the hybrid retrieval engine
type SearchService struct {
	candidates database.CandidateFacadeInterface
	vectors    database.VectorFacadeInterface
	embedder   embedding.Embedder
	summaries  *cache.Store[CandidateSummary]
	cfg        config.SearchConfig
}

// NewSearchService creates a new SearchService. summaries may be nil.
func NewSearchService(
	candidates database.CandidateFacadeInterface,
	vectors database.VectorFacadeInterface,
	embedder embedding.Embedder,
	summaries *cache.Store[CandidateSummary],
	cfg config.SearchConfig,
) *SearchService {
	return &SearchService{
		candidates: candidates,
		vectors:    vectors,
		embedder:   embedder,
		summaries:  summaries,
		cfg:        cfg,
	}
}

func (s *SearchService) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.cfg.DefaultLimit
	}
	if s.cfg.MaxLimit > 0 && limit > s.cfg.MaxLimit {
		limit = s.cfg.MaxLimit
	}
	return limit
}

// Search runs the hybrid candidate search. Failures in the embedding and
// vector stages degrade to empty stage results. The search fails with
// ErrSearchFailed when every retrieval stage that ran errored, or when the
// matched records cannot be fetched.
func (s *SearchService) Search(ctx context.Context, claims *auth.Claims, query string, limit int) (*SearchResult, error) {
	if !claims.CanSearch() {
		return nil, fmt.Errorf("%w: role %q cannot search candidates", ErrAccessDenied, claims.Role)
	}
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: query is required", ErrInvalidArgument)
	}
	limit = s.clampLimit(limit)

	method := MethodVector
	var bioIDs, skillIDs, keywordIDs []int64
	var ran int
	var failures []error

	vec, ok := s.embedQuery(ctx, query)
	if ok {
		var bioErr, skillErr error
		bioIDs, skillIDs, bioErr, skillErr = s.vectorSearch(ctx, vec)
		ran += 2
		failures = appendErr(failures, bioErr, skillErr)
	}
	if len(bioIDs) == 0 && len(skillIDs) == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		method = MethodText
		var err error
		keywordIDs, err = s.keywordSearch(ctx, query)
		ran++
		failures = appendErr(failures, err)
	}
	if ran > 0 && len(failures) == ran {
		return nil, fmt.Errorf("%w: every retrieval stage failed: %w", ErrSearchFailed, errors.Join(failures...))
	}

	matches := Merge(limit, bioIDs, skillIDs, keywordIDs)
	candidates, err := s.fetch(ctx, MatchIDs(matches))
	if err != nil {
		return nil, fmt.Errorf("%w: failed to fetch candidates: %w", ErrSearchFailed, err)
	}

	metrics.SearchRequestsTotal.WithLabelValues("candidates", method).Inc()
	log.Debugf("Candidate search %q: bio=%d skill=%d keyword=%d returned=%d method=%s",
		query, len(bioIDs), len(skillIDs), len(keywordIDs), len(candidates), method)

	return &SearchResult{
		Candidates: candidates,
		Total:      len(candidates),
		Method:     method,
	}, nil
}

// embedQuery embeds the query. ok is false when the provider is not
// configured or the call failed.
func (s *SearchService) embedQuery(ctx context.Context, query string) ([]float32, bool) {
	if s.embedder == nil || !s.embedder.Available() {
		return nil, false
	}
	start := time.Now()
	vec, err := s.embedder.Embed(ctx, query)
	metrics.SearchStageDuration.WithLabelValues(stageEmbed).Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.SearchStageFailuresTotal.WithLabelValues(stageEmbed).Inc()
		log.Warnf("Query embedding failed, falling back to keyword search: %v", err)
		return nil, false
	}
	if vec == nil {
		return nil, false
	}
	return vec, true
}

func appendErr(dst []error, errs ...error) []error {
	for _, err := range errs {
		if err != nil {
			dst = append(dst, err)
		}
	}
	return dst
}

// vectorSearch runs the bio and skill vector stages concurrently. A failed
// stage contributes nothing and never cancels the other one; its error is
// handed back so a total outage can be told apart from an empty result.
func (s *SearchService) vectorSearch(ctx context.Context, vec []float32) (bioIDs, skillIDs []int64, bioErr, skillErr error) {
	var g errgroup.Group
	g.Go(func() error {
		bioIDs, bioErr = s.bioSearch(ctx, vec)
		return nil
	})
	g.Go(func() error {
		skillIDs, skillErr = s.skillSearch(ctx, vec)
		return nil
	})
	_ = g.Wait()

	return bioIDs, skillIDs, bioErr, skillErr
}

func (s *SearchService) bioSearch(ctx context.Context, vec []float32) ([]int64, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues(stageBio).Observe(time.Since(start).Seconds())
	}()

	hits, err := s.vectors.NearestCandidates(ctx, vec, s.cfg.DistanceThreshold, s.cfg.BioLimit)
	if err != nil {
		metrics.SearchStageFailuresTotal.WithLabelValues(stageBio).Inc()
		log.Warnf("Bio vector search failed: %v", err)
		return nil, fmt.Errorf("bio vector search: %w", err)
	}

	ids := make([]int64, 0, len(hits))
	for _, h := range hits {
		if h.Distance < s.cfg.DistanceThreshold {
			ids = append(ids, h.ID)
		}
	}
	return ids, nil
}

func (s *SearchService) skillSearch(ctx context.Context, vec []float32) ([]int64, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues(stageSkill).Observe(time.Since(start).Seconds())
	}()

	skills, err := s.vectors.NearestSkills(ctx, vec, s.cfg.DistanceThreshold, s.cfg.SkillLimit)
	if err != nil {
		metrics.SearchStageFailuresTotal.WithLabelValues(stageSkill).Inc()
		log.Warnf("Skill vector search failed: %v", err)
		return nil, fmt.Errorf("skill vector search: %w", err)
	}

	skillIDs := make([]int64, 0, len(skills))
	for _, h := range skills {
		if h.Distance < s.cfg.DistanceThreshold {
			skillIDs = append(skillIDs, h.ID)
		}
	}
	if len(skillIDs) == 0 {
		return nil, nil
	}

	refs, err := s.vectors.CandidatesBySkills(ctx, skillIDs, s.cfg.SkillCandidateLimit)
	if err != nil {
		metrics.SearchStageFailuresTotal.WithLabelValues(stageSkill).Inc()
		log.Warnf("Skill candidate lookup failed: %v", err)
		return nil, fmt.Errorf("skill candidate lookup: %w", err)
	}

	ids := make([]int64, 0, len(refs))
	for _, r := range refs {
		ids = append(ids, r.ID)
	}
	return ids, nil
}

// keywordSearch matches the query as a substring of first name, last name or
// job title, in the store's native order
func (s *SearchService) keywordSearch(ctx context.Context, query string) ([]int64, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues(stageKeyword).Observe(time.Since(start).Seconds())
	}()

	found, err := s.candidates.Find(ctx, database.Query{
		Any: []database.Filter{
			{Field: "first_name", Op: database.OpContains, Value: query},
			{Field: "last_name", Op: database.OpContains, Value: query},
			{Field: "job_title", Op: database.OpContains, Value: query},
		},
		Limit: s.cfg.KeywordLimit,
	})
	if err != nil {
		metrics.SearchStageFailuresTotal.WithLabelValues(stageKeyword).Inc()
		log.Warnf("Keyword search failed: %v", err)
		return nil, fmt.Errorf("keyword search: %w", err)
	}

	ids := make([]int64, 0, len(found))
	for _, c := range found {
		ids = append(ids, c.ID)
	}
	return ids, nil
}

// fetch materializes ids in order, serving what it can from the summary
// cache. IDs that no longer exist are dropped. A cached summary may trail an
// edit made outside this service by up to the cache TTL.
func (s *SearchService) fetch(ctx context.Context, ids []int64) ([]CandidateSummary, error) {
	start := time.Now()
	defer func() {
		metrics.SearchStageDuration.WithLabelValues(stageFetch).Observe(time.Since(start).Seconds())
	}()

	found := make(map[int64]CandidateSummary, len(ids))
	missing := make([]int64, 0, len(ids))
	for _, id := range ids {
		if summary, ok := s.summaries.Get(id); ok {
			found[id] = summary
			continue
		}
		missing = append(missing, id)
	}

	if len(missing) > 0 {
		records, err := s.candidates.GetByIDs(ctx, missing, 1)
		if err != nil {
			metrics.SearchStageFailuresTotal.WithLabelValues(stageFetch).Inc()
			return nil, err
		}
		for _, c := range records {
			summary := summarizeCandidate(c)
			found[c.ID] = summary
			s.summaries.Set(c.ID, summary)
		}
	}

	out := make([]CandidateSummary, 0, len(ids))
	for _, id := range ids {
		if summary, ok := found[id]; ok {
			out = append(out, summary)
		}
	}
	return out, nil
}
