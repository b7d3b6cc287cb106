// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

// Provenance records which retrieval stage contributed a match
type Provenance string

const (
	ProvenanceBio     Provenance = "bio"
	ProvenanceSkill   Provenance = "skill"
	ProvenanceKeyword Provenance = "keyword"
)

// Match is one entry of a merged result set
type Match struct {
	ID         int64
	Provenance Provenance
}

// Merge concatenates bio, skill and keyword IDs in that priority, keeping
// the first occurrence of each ID and the order within each group, then
// truncates to limit. A non-positive limit keeps everything.
func Merge(limit int, bio, skill, keyword []int64) []Match {
	groups := []struct {
		ids        []int64
		provenance Provenance
	}{
		{bio, ProvenanceBio},
		{skill, ProvenanceSkill},
		{keyword, ProvenanceKeyword},
	}

	seen := make(map[int64]struct{}, len(bio)+len(skill)+len(keyword))
	merged := make([]Match, 0, len(bio)+len(skill)+len(keyword))
	for _, g := range groups {
		for _, id := range g.ids {
			if _, dup := seen[id]; dup {
				continue
			}
			seen[id] = struct{}{}
			merged = append(merged, Match{ID: id, Provenance: g.provenance})
		}
	}

	if limit > 0 && len(merged) > limit {
		merged = merged[:limit]
	}
	return merged
}

// MatchIDs returns the IDs of matches in order
func MatchIDs(matches []Match) []int64 {
	ids := make([]int64, len(matches))
	for i, m := range matches {
		ids[i] = m.ID
	}
	return ids
}
