// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"errors"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"gorm.io/gorm"
)

// HierarchyRefs is the optional containment chain of a skill
type HierarchyRefs struct {
	DisciplineID  *int64
	CategoryID    *int64
	SubcategoryID *int64
}

// ResolvedHierarchy carries the completed refs and the names along the chain
type ResolvedHierarchy struct {
	Refs            HierarchyRefs
	DisciplineName  string
	CategoryName    string
	SubcategoryName string
}

// TaxonomyFacadeInterface defines the interface for taxonomy lookups
type TaxonomyFacadeInterface interface {
	Resolve(ctx context.Context, refs HierarchyRefs) (*ResolvedHierarchy, error)
}

// TaxonomyFacade implements TaxonomyFacadeInterface
type TaxonomyFacade struct {
	db *gorm.DB
}

// NewTaxonomyFacade creates a new TaxonomyFacade
func NewTaxonomyFacade(db *gorm.DB) *TaxonomyFacade {
	return &TaxonomyFacade{db: db}
}

// Resolve walks the containment chain upward from the most specific ref that
// is set. Ancestors found on the chain replace whatever the caller passed,
// so the result is always a consistent subcategory -> category -> discipline
// chain. Dangling refs are dropped.
func (f *TaxonomyFacade) Resolve(ctx context.Context, refs HierarchyRefs) (*ResolvedHierarchy, error) {
	out := &ResolvedHierarchy{}
	categoryID := refs.CategoryID
	disciplineID := refs.DisciplineID

	if refs.SubcategoryID != nil {
		var sub model.Subcategory
		err := f.db.WithContext(ctx).Where("id = ?", *refs.SubcategoryID).First(&sub).Error
		switch {
		case err == nil:
			out.Refs.SubcategoryID = &sub.ID
			out.SubcategoryName = sub.Name
			if sub.CategoryID != nil {
				categoryID = sub.CategoryID
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if categoryID != nil {
		var cat model.Category
		err := f.db.WithContext(ctx).Where("id = ?", *categoryID).First(&cat).Error
		switch {
		case err == nil:
			out.Refs.CategoryID = &cat.ID
			out.CategoryName = cat.Name
			if cat.DisciplineID != nil {
				disciplineID = cat.DisciplineID
			}
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	if disciplineID != nil {
		var disc model.Discipline
		err := f.db.WithContext(ctx).Where("id = ?", *disciplineID).First(&disc).Error
		switch {
		case err == nil:
			out.Refs.DisciplineID = &disc.ID
			out.DisciplineName = disc.Name
		case !errors.Is(err, gorm.ErrRecordNotFound):
			return nil, err
		}
	}

	return out, nil
}
