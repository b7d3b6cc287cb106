// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"time"

	"github.com/pgvector/pgvector-go"
)

const (
	TableNameCandidates = "candidates"

	// ColumnCandidateBioEmbeddingVec is only ever written by the vector mirror
	ColumnCandidateBioEmbeddingVec = "bio_embedding_vec"
)

// Candidate field names used in changed-field sets
const (
	FieldFirstName          = "first_name"
	FieldLastName           = "last_name"
	FieldEmail              = "email"
	FieldJobTitle           = "job_title"
	FieldPrimarySkillID     = "primary_skill_id"
	FieldExperienceYears    = "experience_years"
	FieldBioEmbedding       = "bio_embedding"
	FieldPasswordHash       = "password_hash"
	FieldPasswordResetToken = "password_reset_token"
	FieldConfirmationToken  = "confirmation_token"
	FieldSessionID          = "session_id"
	FieldLastLoginAt        = "last_login_at"
	FieldProvider           = "provider"
	FieldBlocked            = "blocked"
	FieldConfirmed          = "confirmed"
	FieldRole               = "role"
)

// Candidate is a registered candidate profile. Only the matching fields and
// the derived bio embedding matter to the matching engine; the auth/session
// fields are carried so changed-field sets can be computed.
type Candidate struct {
	ID              int64  `gorm:"column:id;primaryKey;autoIncrement:true" json:"id"`
	FirstName       string `gorm:"column:first_name" json:"first_name"`
	LastName        string `gorm:"column:last_name" json:"last_name"`
	Email           string `gorm:"column:email;index" json:"email"`
	JobTitle        string `gorm:"column:job_title" json:"job_title"`
	PrimarySkillID  *int64 `gorm:"column:primary_skill_id;index" json:"primary_skill_id"`
	ExperienceYears *int   `gorm:"column:experience_years" json:"experience_years"`

	PrimarySkill *Skill `gorm:"foreignKey:PrimarySkillID" json:"primary_skill,omitempty"`

	BioEmbedding Embedding `gorm:"column:bio_embedding;type:jsonb" json:"-"`

	// Semantic search index, never exposed and never written by ORM saves
	BioEmbeddingVec *pgvector.Vector `gorm:"column:bio_embedding_vec;type:vector(1536);->:false;<-:false" json:"-"`

	PasswordHash       string     `gorm:"column:password_hash" json:"-"`
	PasswordResetToken string     `gorm:"column:password_reset_token" json:"-"`
	ConfirmationToken  string     `gorm:"column:confirmation_token" json:"-"`
	SessionID          string     `gorm:"column:session_id" json:"-"`
	LastLoginAt        *time.Time `gorm:"column:last_login_at" json:"-"`
	Provider           string     `gorm:"column:provider;default:local" json:"-"`
	Blocked            bool       `gorm:"column:blocked;default:false" json:"-"`
	Confirmed          bool       `gorm:"column:confirmed;default:false" json:"-"`
	Role               string     `gorm:"column:role;default:candidate" json:"-"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

// TableName returns the table name
func (*Candidate) TableName() string {
	return TableNameCandidates
}

// HasMatchingFields reports whether every bio input is present
func (c *Candidate) HasMatchingFields() bool {
	return c.JobTitle != "" && c.PrimarySkillID != nil && c.ExperienceYears != nil
}

// ChangedFields returns the names of the fields that differ between prev and
// next. A nil prev means a create, in which case every populated field counts
// as changed.
func ChangedFields(prev, next *Candidate) []string {
	if prev == nil {
		prev = &Candidate{}
	}
	var changed []string
	mark := func(name string, differ bool) {
		if differ {
			changed = append(changed, name)
		}
	}

	mark(FieldFirstName, prev.FirstName != next.FirstName)
	mark(FieldLastName, prev.LastName != next.LastName)
	mark(FieldEmail, prev.Email != next.Email)
	mark(FieldJobTitle, prev.JobTitle != next.JobTitle)
	mark(FieldPrimarySkillID, !equalInt64Ptr(prev.PrimarySkillID, next.PrimarySkillID))
	mark(FieldExperienceYears, !equalIntPtr(prev.ExperienceYears, next.ExperienceYears))
	mark(FieldBioEmbedding, !prev.BioEmbedding.Equal(next.BioEmbedding))
	mark(FieldPasswordHash, prev.PasswordHash != next.PasswordHash)
	mark(FieldPasswordResetToken, prev.PasswordResetToken != next.PasswordResetToken)
	mark(FieldConfirmationToken, prev.ConfirmationToken != next.ConfirmationToken)
	mark(FieldSessionID, prev.SessionID != next.SessionID)
	mark(FieldLastLoginAt, !equalTimePtr(prev.LastLoginAt, next.LastLoginAt))
	mark(FieldProvider, prev.Provider != next.Provider)
	mark(FieldBlocked, prev.Blocked != next.Blocked)
	mark(FieldConfirmed, prev.Confirmed != next.Confirmed)
	mark(FieldRole, prev.Role != next.Role)
	return changed
}

func equalInt64Ptr(a, b *int64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalIntPtr(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

func equalTimePtr(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}
