// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

// Package taxonomy derives the canonical search strings that are fed to the
// embedding provider: the group text of a skill and the bio text of a
// candidate.
package taxonomy

import (
	"fmt"
	"regexp"
	"strings"
)

// Segment labels, in output order.
const (
	LabelDiscipline  = "Major Discipline"
	LabelCategory    = "Category"
	LabelSubcategory = "Subcategory"
	LabelSkill       = "Skill"
	LabelTier        = "Class"

	segmentSeparator = " | "
)

// LeafSource records which hierarchy level supplied the effective leaf name.
type LeafSource string

const (
	LeafFromSkill       LeafSource = "skill"
	LeafFromSubcategory LeafSource = "subcategory"
	LeafFromCategory    LeafSource = "category"
	LeafFromDiscipline  LeafSource = "discipline"
	LeafNone            LeafSource = ""
)

var whitespaceRun = regexp.MustCompile(`\s+`)

// Hierarchy is the four-level position of a skill plus its billing tier.
// Any field may be blank.
type Hierarchy struct {
	Discipline  string
	Category    string
	Subcategory string
	Skill       string
	BillingTier string
}

// GroupText is the output of Build.
type GroupText struct {
	Text          string
	EffectiveLeaf string
	LeafSource    LeafSource
}

// Valid reports whether the builder produced usable text. An invalid result
// means embedding generation must be skipped for the record.
func (g GroupText) Valid() bool {
	return g.Text != "" && g.LeafSource != LeafNone
}

// Normalize trims, spaces out "/" and "&", and collapses whitespace runs.
func Normalize(s string) string {
	s = strings.ReplaceAll(s, "/", " / ")
	s = strings.ReplaceAll(s, "&", " & ")
	s = whitespaceRun.ReplaceAllString(s, " ")
	return strings.TrimSpace(s)
}

// EffectiveLeaf applies the leaf inference order: skill name, then
// subcategory, then category, then discipline. The first non-blank wins.
func EffectiveLeaf(h Hierarchy) (string, LeafSource) {
	candidates := []struct {
		value  string
		source LeafSource
	}{
		{h.Skill, LeafFromSkill},
		{h.Subcategory, LeafFromSubcategory},
		{h.Category, LeafFromCategory},
		{h.Discipline, LeafFromDiscipline},
	}
	for _, c := range candidates {
		if v := Normalize(c.value); v != "" {
			return v, c.source
		}
	}
	return "", LeafNone
}

// Build derives the group text for h. Blank fields are omitted entirely.
// The Skill segment is emitted only for an explicit skill name, and only
// when that name differs, ignoring case, from every ancestor name already
// emitted. An inferred leaf already appears under the level it was inferred
// from, so it never gets a Skill segment of its own.
func Build(h Hierarchy) GroupText {
	leaf, source := EffectiveLeaf(h)
	if source == LeafNone {
		return GroupText{}
	}

	discipline := Normalize(h.Discipline)
	category := Normalize(h.Category)
	subcategory := Normalize(h.Subcategory)

	segments := make([]string, 0, 5)
	seen := make(map[string]struct{}, 4)
	add := func(label, value string) {
		if value == "" {
			return
		}
		seen[strings.ToLower(value)] = struct{}{}
		segments = append(segments, fmt.Sprintf("%s: %s", label, value))
	}

	add(LabelDiscipline, discipline)
	add(LabelCategory, category)
	add(LabelSubcategory, subcategory)
	if source == LeafFromSkill {
		if _, dup := seen[strings.ToLower(leaf)]; !dup {
			add(LabelSkill, leaf)
		}
	}
	if tier := Normalize(h.BillingTier); tier != "" {
		segments = append(segments, fmt.Sprintf("%s: %s", LabelTier, tier))
	}

	return GroupText{
		Text:          strings.Join(segments, segmentSeparator),
		EffectiveLeaf: leaf,
		LeafSource:    source,
	}
}
