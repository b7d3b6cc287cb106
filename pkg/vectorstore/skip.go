// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package vectorstore

import (
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
)

// SkipReason explains why a candidate bio vector write was skipped.
// SkipNone means the write proceeds.
type SkipReason string

const (
	SkipNone      SkipReason = ""
	SkipExplicit  SkipReason = "explicit"
	SkipNoChanges SkipReason = "no_changes"
	SkipAuthOnly  SkipReason = "auth_only"
	SkipUnchanged SkipReason = "unchanged"
)

// WriteContext describes one candidate save as seen by the skip policy
type WriteContext struct {
	// Explicit is set when the caller asked for no vector work
	Explicit bool
	// Update is false for creates
	Update bool
	// Changed is the changed-field set relative to the stored version
	Changed []string
}

func (w WriteContext) has(field string) bool {
	for _, f := range w.Changed {
		if f == field {
			return true
		}
	}
	return false
}

// SkipPolicy decides when a candidate save must not touch the bio vector
type SkipPolicy struct {
	authFields      map[string]struct{}
	sensitiveFields map[string]struct{}
}

// DefaultAuthFields are the auth/session fields whose edits never affect matching
var DefaultAuthFields = []string{
	model.FieldPasswordHash,
	model.FieldPasswordResetToken,
	model.FieldConfirmationToken,
	model.FieldSessionID,
	model.FieldLastLoginAt,
	model.FieldProvider,
}

// DefaultSensitiveFields are the fields whose change forces a mirror rewrite
// even when the embedding itself is unchanged
var DefaultSensitiveFields = []string{
	model.FieldEmail,
	model.FieldBlocked,
	model.FieldConfirmed,
	model.FieldRole,
}

// NewSkipPolicy creates a SkipPolicy over the given field sets
func NewSkipPolicy(authFields, sensitiveFields []string) *SkipPolicy {
	p := &SkipPolicy{
		authFields:      make(map[string]struct{}, len(authFields)),
		sensitiveFields: make(map[string]struct{}, len(sensitiveFields)),
	}
	for _, f := range authFields {
		p.authFields[f] = struct{}{}
	}
	for _, f := range sensitiveFields {
		p.sensitiveFields[f] = struct{}{}
	}
	return p
}

// DefaultSkipPolicy returns the policy over DefaultAuthFields and DefaultSensitiveFields
func DefaultSkipPolicy() *SkipPolicy {
	return NewSkipPolicy(DefaultAuthFields, DefaultSensitiveFields)
}

// PreCheck runs before any provider call. It covers the explicit skip, the
// empty update and the auth-only update. A changed embedding field overrides
// everything but the explicit skip.
func (p *SkipPolicy) PreCheck(w WriteContext) SkipReason {
	if w.Explicit {
		return SkipExplicit
	}
	if w.has(model.FieldBioEmbedding) {
		return SkipNone
	}
	if w.Update && len(w.Changed) == 0 {
		return SkipNoChanges
	}
	if len(w.Changed) > 0 && p.onlyAuth(w.Changed) {
		return SkipAuthOnly
	}
	return SkipNone
}

// MirrorCheck gates the indexed-column write once the embedding has (or has
// not) been regenerated. Changed must be recomputed against the stored
// version after regeneration.
func (p *SkipPolicy) MirrorCheck(w WriteContext) SkipReason {
	if reason := p.PreCheck(w); reason != SkipNone {
		return reason
	}
	if w.has(model.FieldBioEmbedding) {
		return SkipNone
	}
	for _, f := range w.Changed {
		if _, ok := p.sensitiveFields[f]; ok {
			return SkipNone
		}
	}
	return SkipUnchanged
}

func (p *SkipPolicy) onlyAuth(changed []string) bool {
	for _, f := range changed {
		if _, ok := p.authFields[f]; !ok {
			return false
		}
	}
	return true
}
