// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
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
)

// SkillService handles the skill write path: hierarchy resolution, group
// text, embedding and the vector mirror
type SkillService struct {
	skills   database.SkillFacadeInterface
	taxonomy database.TaxonomyFacadeInterface
	embedder embedding.Embedder
	mirror   VectorMirror
	events   events.Publisher
}

// NewSkillService creates a new SkillService
func NewSkillService(
	skills database.SkillFacadeInterface,
	taxonomyFacade database.TaxonomyFacadeInterface,
	embedder embedding.Embedder,
	mirror VectorMirror,
	publisher events.Publisher,
) *SkillService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &SkillService{
		skills:   skills,
		taxonomy: taxonomyFacade,
		embedder: embedder,
		mirror:   mirror,
		events:   publisher,
	}
}

// SkillInput is the full writable state of a skill
type SkillInput struct {
	Name          string `json:"name"`
	DisciplineID  *int64 `json:"discipline_id"`
	CategoryID    *int64 `json:"category_id"`
	SubcategoryID *int64 `json:"subcategory_id"`
	BillingTier   string `json:"billing_tier"`
}

func (in SkillInput) apply(skill *model.Skill) error {
	tier := strings.ToUpper(strings.TrimSpace(in.BillingTier))
	if tier == "" {
		tier = model.BillingTierD
	}
	if !model.ValidBillingTier(tier) {
		return fmt.Errorf("%w: billing tier must be one of A, B, C, D", ErrInvalidArgument)
	}
	skill.Name = taxonomy.Normalize(in.Name)
	skill.DisciplineID = in.DisciplineID
	skill.CategoryID = in.CategoryID
	skill.SubcategoryID = in.SubcategoryID
	skill.BillingTier = tier
	return nil
}

// Create creates a skill. Group text and embedding are derived before the
// record is persisted.
func (s *SkillService) Create(ctx context.Context, claims *auth.Claims, in SkillInput) (*model.Skill, error) {
	if !claims.CanManageTaxonomy() {
		return nil, fmt.Errorf("%w: only admins can create skills", ErrAccessDenied)
	}

	skill := &model.Skill{}
	if err := in.apply(skill); err != nil {
		return nil, err
	}
	embedded, err := s.derive(ctx, skill, false)
	if err != nil {
		return nil, err
	}
	if err := s.skills.Create(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to create skill: %w", err)
	}

	s.afterPersist(ctx, skill, embedded)
	return skill, nil
}

// Update replaces the writable state of a skill
func (s *SkillService) Update(ctx context.Context, claims *auth.Claims, id int64, in SkillInput) (*model.Skill, error) {
	if !claims.CanManageTaxonomy() {
		return nil, fmt.Errorf("%w: only admins can update skills", ErrAccessDenied)
	}

	skill, err := s.skills.GetByID(ctx, id, 0)
	if err != nil {
		return nil, notFound(err, "skill", id)
	}
	if err := in.apply(skill); err != nil {
		return nil, err
	}
	embedded, err := s.derive(ctx, skill, false)
	if err != nil {
		return nil, err
	}
	if err := s.skills.Update(ctx, skill); err != nil {
		return nil, fmt.Errorf("failed to update skill: %w", err)
	}

	s.afterPersist(ctx, skill, embedded)
	return skill, nil
}

// Reindex regenerates the derived fields of one skill. Without force a skill
// whose group text is current only has its stored embedding mirrored again.
func (s *SkillService) Reindex(ctx context.Context, id int64, force bool) (bool, error) {
	skill, err := s.skills.GetByID(ctx, id, 0)
	if err != nil {
		return false, notFound(err, "skill", id)
	}
	previousText := skill.GroupText

	embedded, err := s.derive(ctx, skill, force)
	if err != nil {
		return false, err
	}
	if embedded || skill.GroupText != previousText {
		if err := s.skills.Update(ctx, skill); err != nil {
			return false, fmt.Errorf("failed to update skill: %w", err)
		}
	}

	if skill.HasEmbedding() {
		s.mirror.Write(ctx, database.SkillVectorTarget, skill.ID, skill.Embedding)
	}
	if embedded {
		s.events.Dispatch(ctx, &events.EmbeddingEvent{Type: events.EventTypeSkillSaved, SkillID: skill.ID, Embedded: true})
	}
	return embedded, nil
}

// derive resolves the hierarchy and refreshes GroupText and Embedding.
// It returns true when a new embedding was produced. GroupText and Embedding
// change together; when no embedding can be produced the previous pair is
// left untouched, except that a skill without any embedding still gets its
// current group text.
func (s *SkillService) derive(ctx context.Context, skill *model.Skill, force bool) (bool, error) {
	resolved, err := s.taxonomy.Resolve(ctx, database.HierarchyRefs{
		DisciplineID:  skill.DisciplineID,
		CategoryID:    skill.CategoryID,
		SubcategoryID: skill.SubcategoryID,
	})
	if err != nil {
		return false, fmt.Errorf("failed to resolve hierarchy for skill %d: %w", skill.ID, err)
	}
	skill.DisciplineID = resolved.Refs.DisciplineID
	skill.CategoryID = resolved.Refs.CategoryID
	skill.SubcategoryID = resolved.Refs.SubcategoryID

	gt := taxonomy.Build(taxonomy.Hierarchy{
		Discipline:  resolved.DisciplineName,
		Category:    resolved.CategoryName,
		Subcategory: resolved.SubcategoryName,
		Skill:       skill.Name,
		BillingTier: skill.BillingTier,
	})
	if !gt.Valid() {
		log.Debugf("Skill %d has no hierarchy names, skipping embedding", skill.ID)
		if !skill.HasEmbedding() {
			skill.GroupText = ""
		}
		return false, nil
	}

	if !force && gt.Text == skill.GroupText && skill.HasEmbedding() {
		return false, nil
	}

	vec, err := s.embedder.Embed(ctx, gt.Text)
	switch {
	case err != nil:
		log.Errorf("Failed to generate embedding for skill %d: %v", skill.ID, err)
	case vec == nil:
		log.Debugf("Embedding provider unavailable, skill %d keeps its previous embedding", skill.ID)
	default:
		skill.GroupText = gt.Text
		skill.Embedding = model.Embedding(vec)
		return true, nil
	}

	if !skill.HasEmbedding() {
		skill.GroupText = gt.Text
	}
	return false, nil
}

// afterPersist mirrors a fresh embedding and notifies listeners. The JSON
// copy is already committed at this point.
func (s *SkillService) afterPersist(ctx context.Context, skill *model.Skill, embedded bool) {
	outcome := vectorstore.OutcomeSkipped
	if embedded {
		outcome = s.mirror.Write(ctx, database.SkillVectorTarget, skill.ID, skill.Embedding)
	}
	log.Debugf("Saved skill %d (embedded=%t, mirror=%s)", skill.ID, embedded, outcome)

	s.events.Dispatch(ctx, &events.EmbeddingEvent{
		Type:     events.EventTypeSkillSaved,
		SkillID:  skill.ID,
		Embedded: embedded,
	})
}
