// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"gorm.io/gorm"
)

var candidateFilterFields = map[string]bool{
	"id":               true,
	"first_name":       true,
	"last_name":        true,
	"email":            true,
	"job_title":        true,
	"primary_skill_id": true,
	"experience_years": true,
}

// CandidateFacadeInterface defines the interface for Candidate operations
type CandidateFacadeInterface interface {
	GetByID(ctx context.Context, id int64, depth int) (*model.Candidate, error)
	GetByIDs(ctx context.Context, ids []int64, depth int) ([]*model.Candidate, error)
	Find(ctx context.Context, q Query) ([]*model.Candidate, error)
	Create(ctx context.Context, candidate *model.Candidate) error
	Update(ctx context.Context, candidate *model.Candidate) error
}

// CandidateFacade implements CandidateFacadeInterface
type CandidateFacade struct {
	db *gorm.DB
}

// NewCandidateFacade creates a new CandidateFacade
func NewCandidateFacade(db *gorm.DB) *CandidateFacade {
	return &CandidateFacade{db: db}
}

func preloadCandidate(tx *gorm.DB, depth int) *gorm.DB {
	switch {
	case depth >= 2:
		tx = tx.Preload("PrimarySkill").
			Preload("PrimarySkill.Discipline").
			Preload("PrimarySkill.Category").
			Preload("PrimarySkill.Subcategory")
	case depth == 1:
		tx = tx.Preload("PrimarySkill")
	}
	return tx
}

// GetByID retrieves a candidate by ID
func (f *CandidateFacade) GetByID(ctx context.Context, id int64, depth int) (*model.Candidate, error) {
	var candidate model.Candidate
	err := preloadCandidate(f.db.WithContext(ctx), depth).Where("id = ?", id).First(&candidate).Error
	if err != nil {
		return nil, err
	}
	return &candidate, nil
}

// GetByIDs retrieves candidates by ID. Order is unspecified; missing IDs are
// silently absent from the result.
func (f *CandidateFacade) GetByIDs(ctx context.Context, ids []int64, depth int) ([]*model.Candidate, error) {
	if len(ids) == 0 {
		return []*model.Candidate{}, nil
	}
	var candidates []*model.Candidate
	err := preloadCandidate(f.db.WithContext(ctx), depth).Where("id IN ?", ids).Find(&candidates).Error
	if err != nil {
		return nil, err
	}
	return candidates, nil
}

// Find runs a bounded predicate query over candidates
func (f *CandidateFacade) Find(ctx context.Context, q Query) ([]*model.Candidate, error) {
	tx, err := applyQuery(preloadCandidate(f.db.WithContext(ctx).Model(&model.Candidate{}), q.Depth), q, candidateFilterFields)
	if err != nil {
		return nil, err
	}
	var candidates []*model.Candidate
	if err := tx.Find(&candidates).Error; err != nil {
		return nil, err
	}
	return candidates, nil
}

// Create creates a new candidate.
// If BioEmbedding is empty it is omitted so the column stays NULL.
func (f *CandidateFacade) Create(ctx context.Context, candidate *model.Candidate) error {
	tx := f.db.WithContext(ctx).Omit("PrimarySkill")
	if len(candidate.BioEmbedding) == 0 {
		tx = tx.Omit("BioEmbedding")
	}
	return tx.Create(candidate).Error
}

// Update saves a candidate. The vector column is never touched here.
func (f *CandidateFacade) Update(ctx context.Context, candidate *model.Candidate) error {
	candidate.UpdatedAt = time.Now()
	return f.db.WithContext(ctx).Omit("PrimarySkill").Save(candidate).Error
}
