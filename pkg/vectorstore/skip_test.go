// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package vectorstore

import (
	"testing"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/stretchr/testify/assert"
)

func TestSkipPolicy_PreCheck(t *testing.T) {
	p := DefaultSkipPolicy()

	tests := []struct {
		name string
		w    WriteContext
		want SkipReason
	}{
		{
			name: "explicit skip",
			w:    WriteContext{Explicit: true, Update: true, Changed: []string{model.FieldJobTitle}},
			want: SkipExplicit,
		},
		{
			name: "explicit skip wins over embedding change",
			w:    WriteContext{Explicit: true, Update: true, Changed: []string{model.FieldBioEmbedding}},
			want: SkipExplicit,
		},
		{
			name: "update without changes",
			w:    WriteContext{Update: true},
			want: SkipNoChanges,
		},
		{
			name: "password reset token only",
			w:    WriteContext{Update: true, Changed: []string{model.FieldPasswordResetToken}},
			want: SkipAuthOnly,
		},
		{
			name: "several auth fields",
			w:    WriteContext{Update: true, Changed: []string{model.FieldSessionID, model.FieldLastLoginAt}},
			want: SkipAuthOnly,
		},
		{
			name: "auth fields plus embedding",
			w:    WriteContext{Update: true, Changed: []string{model.FieldPasswordHash, model.FieldBioEmbedding}},
			want: SkipNone,
		},
		{
			name: "matching field",
			w:    WriteContext{Update: true, Changed: []string{model.FieldSessionID, model.FieldJobTitle}},
			want: SkipNone,
		},
		{
			name: "create",
			w:    WriteContext{Changed: []string{model.FieldJobTitle}},
			want: SkipNone,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.PreCheck(tt.w))
		})
	}
}

func TestSkipPolicy_MirrorCheck(t *testing.T) {
	p := DefaultSkipPolicy()

	tests := []struct {
		name string
		w    WriteContext
		want SkipReason
	}{
		{
			name: "embedding changed",
			w:    WriteContext{Update: true, Changed: []string{model.FieldJobTitle, model.FieldBioEmbedding}},
			want: SkipNone,
		},
		{
			name: "sensitive field changed",
			w:    WriteContext{Update: true, Changed: []string{model.FieldEmail}},
			want: SkipNone,
		},
		{
			name: "neither embedding nor sensitive field changed",
			w:    WriteContext{Update: true, Changed: []string{model.FieldFirstName}},
			want: SkipUnchanged,
		},
		{
			name: "matching field changed but regeneration produced the same vector",
			w:    WriteContext{Update: true, Changed: []string{model.FieldJobTitle}},
			want: SkipUnchanged,
		},
		{
			name: "no changes",
			w:    WriteContext{Update: true},
			want: SkipNoChanges,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, p.MirrorCheck(tt.w))
		})
	}
}

func TestSkipPolicy_CustomFields(t *testing.T) {
	p := NewSkipPolicy([]string{model.FieldFirstName}, nil)

	assert.Equal(t, SkipAuthOnly, p.PreCheck(WriteContext{Update: true, Changed: []string{model.FieldFirstName}}))
	assert.Equal(t, SkipUnchanged, p.MirrorCheck(WriteContext{Update: true, Changed: []string{model.FieldEmail}}))
}

func TestSkipPolicy_ResaveIsIdempotent(t *testing.T) {
	years := 4
	skill := int64(7)
	stored := &model.Candidate{
		ID:              1,
		JobTitle:        "Welder",
		PrimarySkillID:  &skill,
		ExperienceYears: &years,
	}
	resaved := *stored

	w := WriteContext{Update: true, Changed: model.ChangedFields(stored, &resaved)}
	assert.Equal(t, SkipNoChanges, DefaultSkipPolicy().PreCheck(w))
}
