// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"gorm.io/gorm"
)

var skillFilterFields = map[string]bool{
	"id":             true,
	"name":           true,
	"group_text":     true,
	"billing_tier":   true,
	"discipline_id":  true,
	"category_id":    true,
	"subcategory_id": true,
}

// SkillFacadeInterface defines the interface for Skill operations
type SkillFacadeInterface interface {
	GetByID(ctx context.Context, id int64, depth int) (*model.Skill, error)
	Find(ctx context.Context, q Query) ([]*model.Skill, error)
	Create(ctx context.Context, skill *model.Skill) error
	Update(ctx context.Context, skill *model.Skill) error
}

// SkillFacade implements SkillFacadeInterface
type SkillFacade struct {
	db *gorm.DB
}

// NewSkillFacade creates a new SkillFacade
func NewSkillFacade(db *gorm.DB) *SkillFacade {
	return &SkillFacade{db: db}
}

func preloadSkill(tx *gorm.DB, depth int) *gorm.DB {
	if depth >= 1 {
		tx = tx.Preload("Discipline").Preload("Category").Preload("Subcategory")
	}
	return tx
}

// GetByID retrieves a skill by ID. depth >= 1 populates the hierarchy.
func (f *SkillFacade) GetByID(ctx context.Context, id int64, depth int) (*model.Skill, error) {
	var skill model.Skill
	err := preloadSkill(f.db.WithContext(ctx), depth).Where("id = ?", id).First(&skill).Error
	if err != nil {
		return nil, err
	}
	return &skill, nil
}

// Find runs a bounded predicate query over skills
func (f *SkillFacade) Find(ctx context.Context, q Query) ([]*model.Skill, error) {
	tx, err := applyQuery(preloadSkill(f.db.WithContext(ctx).Model(&model.Skill{}), q.Depth), q, skillFilterFields)
	if err != nil {
		return nil, err
	}
	var skills []*model.Skill
	if err := tx.Find(&skills).Error; err != nil {
		return nil, err
	}
	return skills, nil
}

// Create creates a new skill.
// If Embedding is empty it is omitted so the column stays NULL.
func (f *SkillFacade) Create(ctx context.Context, skill *model.Skill) error {
	tx := f.db.WithContext(ctx).Omit("Discipline", "Category", "Subcategory")
	if len(skill.Embedding) == 0 {
		tx = tx.Omit("Embedding")
	}
	return tx.Create(skill).Error
}

// Update saves a skill. The vector column is never touched here.
func (f *SkillFacade) Update(ctx context.Context, skill *model.Skill) error {
	skill.UpdatedAt = time.Now()
	return f.db.WithContext(ctx).Omit("Discipline", "Category", "Subcategory").Save(skill).Error
}
