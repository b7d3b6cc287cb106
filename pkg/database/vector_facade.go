// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package database

import (
	"context"
	"fmt"
	"strings"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/pgvector/pgvector-go"
	"gorm.io/gorm"
)

// VectorHit is one nearest-neighbor row ordered by cosine distance
type VectorHit struct {
	ID       int64   `json:"id"`
	Distance float64 `json:"distance"`
}

// SkillHit is a nearest-neighbor skill row
type SkillHit struct {
	ID        int64   `json:"id"`
	Name      string  `json:"name"`
	GroupText string  `json:"group_text"`
	Distance  float64 `json:"distance"`
}

// SkillCandidateRef links a candidate to the skill that matched it
type SkillCandidateRef struct {
	ID             int64 `json:"id"`
	PrimarySkillID int64 `json:"primary_skill_id"`
}

// SkillTextHit is a keyword-matched skill row
type SkillTextHit struct {
	ID        int64  `json:"id"`
	Name      string `json:"name"`
	GroupText string `json:"group_text"`
}

// VectorFacadeInterface defines the raw SQL vector operations
type VectorFacadeInterface interface {
	NearestCandidates(ctx context.Context, query []float32, maxDistance float64, limit int) ([]VectorHit, error)
	NearestSkills(ctx context.Context, query []float32, maxDistance float64, limit int) ([]SkillHit, error)
	CandidatesBySkills(ctx context.Context, skillIDs []int64, limit int) ([]SkillCandidateRef, error)
	SearchSkillsByText(ctx context.Context, text string, limit int) ([]SkillTextHit, error)
	UpdateVectorColumn(ctx context.Context, target VectorTarget, id int64, literal string) error
}

// VectorTarget names a table/column pair that holds a native vector mirror
type VectorTarget struct {
	Table  string
	Column string
}

var (
	// SkillVectorTarget is the indexed mirror of skills.embedding
	SkillVectorTarget = VectorTarget{Table: model.TableNameSkills, Column: model.ColumnSkillEmbeddingVec}
	// CandidateVectorTarget is the indexed mirror of candidates.bio_embedding
	CandidateVectorTarget = VectorTarget{Table: model.TableNameCandidates, Column: model.ColumnCandidateBioEmbeddingVec}
)

func (t VectorTarget) valid() bool {
	return t == SkillVectorTarget || t == CandidateVectorTarget
}

// VectorFacade implements VectorFacadeInterface
type VectorFacade struct {
	db        *gorm.DB
	dimension int
}

// NewVectorFacade creates a new VectorFacade
func NewVectorFacade(db *gorm.DB, dimension int) *VectorFacade {
	return &VectorFacade{db: db, dimension: dimension}
}

// VectorLiteral renders v in pgvector literal syntax
func VectorLiteral(v []float32) string {
	return pgvector.NewVector(v).String()
}

// NearestCandidates returns candidates whose bio vector lies strictly closer
// than maxDistance, nearest first
func (f *VectorFacade) NearestCandidates(ctx context.Context, query []float32, maxDistance float64, limit int) ([]VectorHit, error) {
	vec := VectorLiteral(query)
	var hits []VectorHit
	err := f.db.WithContext(ctx).
		Raw(`SELECT id, bio_embedding_vec <=> ?::vector AS distance
			 FROM candidates
			 WHERE bio_embedding_vec IS NOT NULL
			   AND bio_embedding_vec <=> ?::vector < ?
			 ORDER BY distance ASC
			 LIMIT ?`, vec, vec, maxDistance, limit).
		Scan(&hits).Error
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// NearestSkills returns skills whose vector lies strictly closer than
// maxDistance, nearest first
func (f *VectorFacade) NearestSkills(ctx context.Context, query []float32, maxDistance float64, limit int) ([]SkillHit, error) {
	vec := VectorLiteral(query)
	var hits []SkillHit
	err := f.db.WithContext(ctx).
		Raw(`SELECT id, name, group_text, embedding_vec <=> ?::vector AS distance
			 FROM skills
			 WHERE embedding_vec IS NOT NULL
			   AND embedding_vec <=> ?::vector < ?
			 ORDER BY distance ASC
			 LIMIT ?`, vec, vec, maxDistance, limit).
		Scan(&hits).Error
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// CandidatesBySkills returns candidates whose primary skill is in skillIDs,
// grouped in skillIDs order and by id within a skill
func (f *VectorFacade) CandidatesBySkills(ctx context.Context, skillIDs []int64, limit int) ([]SkillCandidateRef, error) {
	if len(skillIDs) == 0 {
		return []SkillCandidateRef{}, nil
	}

	var rank strings.Builder
	args := make([]interface{}, 0, len(skillIDs)+2)
	rank.WriteString("CASE primary_skill_id")
	for i, id := range skillIDs {
		fmt.Fprintf(&rank, " WHEN ? THEN %d", i)
		args = append(args, id)
	}
	rank.WriteString(" END")

	sql := `SELECT id, primary_skill_id
		 FROM candidates
		 WHERE primary_skill_id IN ?
		 ORDER BY ` + rank.String() + `, id ASC
		 LIMIT ?`
	args = append([]interface{}{skillIDs}, args...)
	args = append(args, limit)

	var refs []SkillCandidateRef
	if err := f.db.WithContext(ctx).Raw(sql, args...).Scan(&refs).Error; err != nil {
		return nil, err
	}
	return refs, nil
}

// SearchSkillsByText is the keyword fallback over skill name and group text.
// Prefix matches on the name rank first.
func (f *VectorFacade) SearchSkillsByText(ctx context.Context, text string, limit int) ([]SkillTextHit, error) {
	escaped := EscapeLike(strings.TrimSpace(text))
	prefix := escaped + "%"
	contains := "%" + escaped + "%"

	var hits []SkillTextHit
	err := f.db.WithContext(ctx).
		Raw(`SELECT id, name, group_text
			 FROM skills
			 WHERE name ILIKE ? OR group_text ILIKE ?
			 ORDER BY CASE WHEN name ILIKE ? THEN 0 ELSE 1 END, name ASC
			 LIMIT ?`, contains, contains, prefix, limit).
		Scan(&hits).Error
	if err != nil {
		return nil, err
	}
	return hits, nil
}

// UpdateVectorColumn writes a vector literal into the native vector column
func (f *VectorFacade) UpdateVectorColumn(ctx context.Context, target VectorTarget, id int64, literal string) error {
	if !target.valid() {
		return fmt.Errorf("unknown vector target %s.%s", target.Table, target.Column)
	}
	sql := fmt.Sprintf("UPDATE %s SET %s = ?::vector(%d) WHERE id = ?", target.Table, target.Column, f.dimension)
	return f.db.WithContext(ctx).Exec(sql, literal, id).Error
}
