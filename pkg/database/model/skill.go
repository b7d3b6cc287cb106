// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

const (
	TableNameSkills = "skills"

	// ColumnSkillEmbeddingVec is only ever written by the vector mirror
	ColumnSkillEmbeddingVec = "embedding_vec"
)

// Billing tiers
const (
	BillingTierA = "A"
	BillingTierB = "B"
	BillingTierC = "C"
	BillingTierD = "D"
)

// ValidBillingTier reports whether tier is one of A-D
func ValidBillingTier(tier string) bool {
	switch tier {
	case BillingTierA, BillingTierB, BillingTierC, BillingTierD:
		return true
	}
	return false
}

// Skill is a leaf of the taxonomy. GroupText and Embedding are derived and
// always regenerated together.
type Skill struct {
	ID            int64  `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	Name          string `gorm:"column:name" json:"name"`
	DisciplineID  *int64 `gorm:"column:discipline_id;index" json:"discipline_id"`
	CategoryID    *int64 `gorm:"column:category_id;index" json:"category_id"`
	SubcategoryID *int64 `gorm:"column:subcategory_id;index" json:"subcategory_id"`
	BillingTier   string `gorm:"column:billing_tier;not null;default:D" json:"billing_tier"`

	Discipline  *Discipline  `gorm:"foreignKey:DisciplineID" json:"discipline,omitempty"`
	Category    *Category    `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	Subcategory *Subcategory `gorm:"foreignKey:SubcategoryID" json:"subcategory,omitempty"`

	GroupText string    `gorm:"column:group_text" json:"group_text"`
	Embedding Embedding `gorm:"column:embedding;type:jsonb" json:"-"`

	// Semantic search index, never exposed and never written by ORM saves
	EmbeddingVec *pgvector.Vector `gorm:"column:embedding_vec;type:vector(1536);->:false;<-:false" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*Skill) TableName() string {
	return TableNameSkills
}

// HasEmbedding reports whether the JSON embedding is populated
func (s *Skill) HasEmbedding() bool {
	return len(s.Embedding) > 0
}
