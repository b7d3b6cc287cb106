// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChangedFields(t *testing.T) {
	skill := int64(3)
	years := 5
	base := &Candidate{
		ID:              1,
		FirstName:       "Ada",
		JobTitle:        "Electrician",
		PrimarySkillID:  &skill,
		ExperienceYears: &years,
		BioEmbedding:    Embedding{0.1, 0.2},
	}

	same := *base
	assert.Empty(t, ChangedFields(base, &same))

	tokenOnly := *base
	tokenOnly.PasswordResetToken = "reset-123"
	assert.Equal(t, []string{FieldPasswordResetToken}, ChangedFields(base, &tokenOnly))

	otherSkill := int64(4)
	moved := *base
	moved.PrimarySkillID = &otherSkill
	moved.BioEmbedding = Embedding{0.3, 0.4}
	assert.ElementsMatch(t, []string{FieldPrimarySkillID, FieldBioEmbedding}, ChangedFields(base, &moved))

	created := ChangedFields(nil, base)
	assert.Contains(t, created, FieldJobTitle)
	assert.Contains(t, created, FieldBioEmbedding)
}

func TestEmbedding_ValueScan(t *testing.T) {
	v, err := Embedding{0.5, -1}.Value()
	require.NoError(t, err)
	assert.Equal(t, "[0.5,-1]", v)

	var e Embedding
	require.NoError(t, e.Scan([]byte("[0.25,0.75]")))
	assert.Equal(t, Embedding{0.25, 0.75}, e)

	require.NoError(t, e.Scan(nil))
	assert.Nil(t, e)

	nilValue, err := Embedding(nil).Value()
	require.NoError(t, err)
	assert.Nil(t, nilValue)

	assert.Error(t, e.Scan(42))
}
