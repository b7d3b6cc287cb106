// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package taxonomy

import (
	"fmt"
	"strings"
)

// BioInput holds the three candidate fields a bio embedding is derived from.
// SkillText is the group text of the primary skill, or its name when the
// skill has no group text yet.
type BioInput struct {
	JobTitle        string
	SkillText       string
	ExperienceYears *int
}

// Complete reports whether all three inputs are present.
func (b BioInput) Complete() bool {
	return Normalize(b.JobTitle) != "" && Normalize(b.SkillText) != "" && b.ExperienceYears != nil
}

// BuildBio returns the bio text, or "" when the input is incomplete. A bio
// is never built from a partial input.
func BuildBio(b BioInput) string {
	if !b.Complete() {
		return ""
	}
	unit := "years"
	if *b.ExperienceYears == 1 {
		unit = "year"
	}
	return strings.Join([]string{
		"Job Title: " + Normalize(b.JobTitle),
		"Skill: " + Normalize(b.SkillText),
		fmt.Sprintf("Experience: %d %s", *b.ExperienceYears, unit),
	}, segmentSeparator)
}
