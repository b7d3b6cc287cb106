// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/auth"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/embedding"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/events"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/taxonomy"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/vectorstore"
	"gorm.io/gorm"
)

// bioFields are the candidate fields the bio text is built from
var bioFields = map[string]bool{
	model.FieldJobTitle:        true,
	model.FieldPrimarySkillID:  true,
	model.FieldExperienceYears: true,
}

// CandidateService handles the candidate write path: bio embedding
// regeneration under the skip policy, and the vector mirror
type CandidateService struct {
	candidates database.CandidateFacadeInterface
	skills     database.SkillFacadeInterface
	embedder   embedding.Embedder
	mirror     VectorMirror
	policy     *vectorstore.SkipPolicy
	events     events.Publisher
}

// NewCandidateService creates a new CandidateService
func NewCandidateService(
	candidates database.CandidateFacadeInterface,
	skills database.SkillFacadeInterface,
	embedder embedding.Embedder,
	mirror VectorMirror,
	policy *vectorstore.SkipPolicy,
	publisher events.Publisher,
) *CandidateService {
	if policy == nil {
		policy = vectorstore.DefaultSkipPolicy()
	}
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CandidateService{
		candidates: candidates,
		skills:     skills,
		embedder:   embedder,
		mirror:     mirror,
		policy:     policy,
		events:     publisher,
	}
}

// SaveOptions tune a single candidate save
type SaveOptions struct {
	// SkipEmbedding suppresses every provider call and vector write
	SkipEmbedding bool
	// Force regenerates the bio embedding even if no bio field changed
	Force bool
}

// CandidateSaveResult reports what a save did on the embedding path
type CandidateSaveResult struct {
	Candidate   *model.Candidate
	Changed     []string
	Skip        vectorstore.SkipReason
	Regenerated bool
	// Mirror is empty when no mirror write was attempted
	Mirror vectorstore.Outcome
}

// CandidatePatch carries the profile fields a PATCH may change. Nil fields
// are left as they are.
type CandidatePatch struct {
	FirstName       *string `json:"first_name"`
	LastName        *string `json:"last_name"`
	Email           *string `json:"email"`
	JobTitle        *string `json:"job_title"`
	PrimarySkillID  *int64  `json:"primary_skill_id"`
	ExperienceYears *int    `json:"experience_years"`
	SkipEmbedding   bool    `json:"skip_embedding"`
}

// Patch applies a partial profile update and saves it through the
// embedding path
func (s *CandidateService) Patch(ctx context.Context, claims *auth.Claims, id int64, patch CandidatePatch) (*CandidateSaveResult, error) {
	if !claims.CanManageTaxonomy() {
		return nil, fmt.Errorf("%w: only admins can update candidate profiles", ErrAccessDenied)
	}

	current, err := s.candidates.GetByID(ctx, id, 0)
	if err != nil {
		return nil, notFound(err, "candidate", id)
	}
	next := *current

	if patch.FirstName != nil {
		next.FirstName = strings.TrimSpace(*patch.FirstName)
	}
	if patch.LastName != nil {
		next.LastName = strings.TrimSpace(*patch.LastName)
	}
	if patch.Email != nil {
		next.Email = strings.TrimSpace(*patch.Email)
	}
	if patch.JobTitle != nil {
		next.JobTitle = taxonomy.Normalize(*patch.JobTitle)
	}
	if patch.ExperienceYears != nil {
		if *patch.ExperienceYears < 0 {
			return nil, fmt.Errorf("%w: experience years cannot be negative", ErrInvalidArgument)
		}
		years := *patch.ExperienceYears
		next.ExperienceYears = &years
	}
	if patch.PrimarySkillID != nil {
		if _, err := s.skills.GetByID(ctx, *patch.PrimarySkillID, 0); err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, fmt.Errorf("%w: skill %d does not exist", ErrInvalidArgument, *patch.PrimarySkillID)
			}
			return nil, fmt.Errorf("failed to load skill %d: %w", *patch.PrimarySkillID, err)
		}
		skillID := *patch.PrimarySkillID
		next.PrimarySkillID = &skillID
	}

	return s.save(ctx, current, &next, SaveOptions{SkipEmbedding: patch.SkipEmbedding})
}

// Save persists next against the stored version of the same candidate.
// The bio embedding is regenerated only when the skip policy allows it and
// a bio field changed (or there is no embedding yet); the indexed mirror is
// written only after the JSON copy is persisted.
func (s *CandidateService) Save(ctx context.Context, next *model.Candidate, opts SaveOptions) (*CandidateSaveResult, error) {
	prev, err := s.candidates.GetByID(ctx, next.ID, 0)
	if err != nil {
		return nil, notFound(err, "candidate", next.ID)
	}
	return s.save(ctx, prev, next, opts)
}

// Create persists a new candidate. A profile that already carries every bio
// input gets its bio embedding before the insert and is mirrored after it.
func (s *CandidateService) Create(ctx context.Context, c *model.Candidate, opts SaveOptions) (*CandidateSaveResult, error) {
	if c.ExperienceYears != nil && *c.ExperienceYears < 0 {
		return nil, fmt.Errorf("%w: experience years cannot be negative", ErrInvalidArgument)
	}
	c.JobTitle = taxonomy.Normalize(c.JobTitle)
	return s.save(ctx, nil, c, opts)
}

// save runs the embedding path for next. A nil prev means next is new.
func (s *CandidateService) save(ctx context.Context, prev, next *model.Candidate, opts SaveOptions) (*CandidateSaveResult, error) {
	w := vectorstore.WriteContext{
		Explicit: opts.SkipEmbedding,
		Update:   prev != nil,
		Changed:  model.ChangedFields(prev, next),
	}
	result := &CandidateSaveResult{
		Candidate: next,
		Changed:   w.Changed,
		Skip:      s.policy.PreCheck(w),
	}

	if result.Skip == vectorstore.SkipNone && s.needsBio(prev, w, opts.Force) {
		result.Regenerated = s.regenerateBio(ctx, next)
	}

	if w.Update {
		if err := s.candidates.Update(ctx, next); err != nil {
			return nil, fmt.Errorf("failed to update candidate %d: %w", next.ID, err)
		}
	} else if err := s.candidates.Create(ctx, next); err != nil {
		return nil, fmt.Errorf("failed to create candidate: %w", err)
	}

	if result.Skip == vectorstore.SkipNone {
		w.Changed = model.ChangedFields(prev, next)
		result.Skip = s.policy.MirrorCheck(w)
		switch {
		case result.Skip != vectorstore.SkipNone:
		case len(next.BioEmbedding) == 0:
			result.Mirror = vectorstore.OutcomeNoVector
		default:
			result.Mirror = s.mirror.Write(ctx, database.CandidateVectorTarget, next.ID, next.BioEmbedding)
		}
	}
	log.Debugf("Saved candidate %d (changed=%v, skip=%q, regenerated=%t, mirror=%s)",
		next.ID, result.Changed, result.Skip, result.Regenerated, result.Mirror)

	if len(result.Changed) > 0 {
		s.events.Dispatch(ctx, &events.EmbeddingEvent{
			Type:         events.EventTypeCandidateSaved,
			CandidateIDs: []int64{next.ID},
			Embedded:     result.Regenerated,
		})
	}
	return result, nil
}

// Reindex regenerates the bio embedding of one candidate. Without force a
// candidate that already has an embedding only has it mirrored again.
func (s *CandidateService) Reindex(ctx context.Context, id int64, force bool) (bool, error) {
	candidate, err := s.candidates.GetByID(ctx, id, 0)
	if err != nil {
		return false, notFound(err, "candidate", id)
	}

	regenerated := false
	if force || len(candidate.BioEmbedding) == 0 {
		regenerated = s.regenerateBio(ctx, candidate)
		if regenerated {
			if err := s.candidates.Update(ctx, candidate); err != nil {
				return false, fmt.Errorf("failed to update candidate %d: %w", id, err)
			}
			s.events.Dispatch(ctx, &events.EmbeddingEvent{
				Type:         events.EventTypeCandidateSaved,
				CandidateIDs: []int64{id},
				Embedded:     true,
			})
		}
	}

	s.mirror.Write(ctx, database.CandidateVectorTarget, candidate.ID, candidate.BioEmbedding)
	return regenerated, nil
}

// needsBio reports whether the save should attempt a new bio embedding. A
// caller-supplied embedding is kept as is.
func (s *CandidateService) needsBio(prev *model.Candidate, w vectorstore.WriteContext, force bool) bool {
	for _, f := range w.Changed {
		if f == model.FieldBioEmbedding {
			return false
		}
	}
	if force || prev == nil || len(prev.BioEmbedding) == 0 {
		return true
	}
	for _, f := range w.Changed {
		if bioFields[f] {
			return true
		}
	}
	return false
}

// regenerateBio sets BioEmbedding from the candidate's bio text. It returns
// false and leaves the embedding untouched when any input is missing or the
// provider gives nothing back.
func (s *CandidateService) regenerateBio(ctx context.Context, c *model.Candidate) bool {
	if !c.HasMatchingFields() {
		return false
	}

	skill, err := s.skills.GetByID(ctx, *c.PrimarySkillID, 0)
	if err != nil {
		log.Warnf("Candidate %d: cannot load primary skill %d: %v", c.ID, *c.PrimarySkillID, err)
		return false
	}
	skillText := skill.GroupText
	if skillText == "" {
		skillText = skill.Name
	}

	bio := taxonomy.BuildBio(taxonomy.BioInput{
		JobTitle:        c.JobTitle,
		SkillText:       skillText,
		ExperienceYears: c.ExperienceYears,
	})
	if bio == "" {
		return false
	}

	vec, err := s.embedder.Embed(ctx, bio)
	if err != nil {
		log.Errorf("Failed to generate bio embedding for candidate %d: %v", c.ID, err)
		return false
	}
	if vec == nil {
		return false
	}
	c.BioEmbedding = model.Embedding(vec)
	return true
}
