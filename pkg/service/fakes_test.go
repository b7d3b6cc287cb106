// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package service

import (
	"context"
	"errors"
	"sync"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/events"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/vectorstore"
	"gorm.io/gorm"
)

func testVector(v float32) []float32 {
	out := make([]float32, config.VectorDimension)
	for i := range out {
		out[i] = v
	}
	return out
}

func testSearchConfig() config.SearchConfig {
	return config.SearchConfig{
		DistanceThreshold:   0.7,
		BioLimit:            50,
		SkillLimit:          10,
		SkillCandidateLimit: 50,
		KeywordLimit:        50,
		DefaultLimit:        20,
		MaxLimit:            100,
	}
}

type fakeEmbedder struct {
	mu        sync.Mutex
	available bool
	vec       []float32
	err       error
	inputs    []string
}

func (f *fakeEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.available {
		return nil, nil
	}
	f.inputs = append(f.inputs, text)
	if f.err != nil {
		return nil, f.err
	}
	return f.vec, nil
}

func (f *fakeEmbedder) Available() bool { return f.available }

func (f *fakeEmbedder) ModelName() string { return "fake" }

func (f *fakeEmbedder) calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.inputs...)
}

type mirrorCall struct {
	target database.VectorTarget
	id     int64
	length int
}

type fakeMirror struct {
	mu    sync.Mutex
	calls []mirrorCall
}

func (f *fakeMirror) Write(ctx context.Context, target database.VectorTarget, id int64, vec []float32) vectorstore.Outcome {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, mirrorCall{target: target, id: id, length: len(vec)})
	if _, ok := vectorstore.ValidVector(vec); !ok {
		return vectorstore.OutcomeNoVector
	}
	return vectorstore.OutcomeWritten
}

type fakePublisher struct {
	mu     sync.Mutex
	events []*events.EmbeddingEvent
}

func (f *fakePublisher) Dispatch(ctx context.Context, event *events.EmbeddingEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, event)
}

type fakeTaxonomy struct {
	resolved *database.ResolvedHierarchy
	err      error
}

func (f *fakeTaxonomy) Resolve(ctx context.Context, refs database.HierarchyRefs) (*database.ResolvedHierarchy, error) {
	if f.err != nil {
		return nil, f.err
	}
	if f.resolved == nil {
		return &database.ResolvedHierarchy{Refs: refs}, nil
	}
	return f.resolved, nil
}

type fakeSkillFacade struct {
	mu      sync.Mutex
	skills  map[int64]*model.Skill
	nextID  int64
	creates int
	updates int
}

func newFakeSkillFacade(skills ...*model.Skill) *fakeSkillFacade {
	f := &fakeSkillFacade{skills: map[int64]*model.Skill{}, nextID: 100}
	for _, s := range skills {
		f.skills[s.ID] = s
	}
	return f
}

func (f *fakeSkillFacade) GetByID(ctx context.Context, id int64, depth int) (*model.Skill, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.skills[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *s
	return &cp, nil
}

func (f *fakeSkillFacade) Find(ctx context.Context, q database.Query) ([]*model.Skill, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeSkillFacade) Create(ctx context.Context, skill *model.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.nextID++
	skill.ID = f.nextID
	cp := *skill
	f.skills[skill.ID] = &cp
	return nil
}

func (f *fakeSkillFacade) Update(ctx context.Context, skill *model.Skill) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	cp := *skill
	f.skills[skill.ID] = &cp
	return nil
}

type fakeCandidateFacade struct {
	mu         sync.Mutex
	candidates map[int64]*model.Candidate
	found      []*model.Candidate
	findErr    error
	getErr     error
	finds      int
	creates    int
	updates    int
	nextID     int64
}

func newFakeCandidateFacade(candidates ...*model.Candidate) *fakeCandidateFacade {
	f := &fakeCandidateFacade{candidates: map[int64]*model.Candidate{}}
	for _, c := range candidates {
		f.candidates[c.ID] = c
	}
	return f
}

func (f *fakeCandidateFacade) GetByID(ctx context.Context, id int64, depth int) (*model.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	c, ok := f.candidates[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeCandidateFacade) GetByIDs(ctx context.Context, ids []int64, depth int) ([]*model.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	// reverse order: callers must not rely on store order
	var out []*model.Candidate
	for i := len(ids) - 1; i >= 0; i-- {
		if c, ok := f.candidates[ids[i]]; ok {
			cp := *c
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (f *fakeCandidateFacade) Find(ctx context.Context, q database.Query) ([]*model.Candidate, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.finds++
	if f.findErr != nil {
		return nil, f.findErr
	}
	return f.found, nil
}

func (f *fakeCandidateFacade) Create(ctx context.Context, candidate *model.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.creates++
	f.nextID++
	candidate.ID = 100 + f.nextID
	cp := *candidate
	f.candidates[candidate.ID] = &cp
	return nil
}

func (f *fakeCandidateFacade) Update(ctx context.Context, candidate *model.Candidate) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.updates++
	cp := *candidate
	f.candidates[candidate.ID] = &cp
	return nil
}

func (f *fakeCandidateFacade) findCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.finds
}

type fakeVectors struct {
	candidateHits []database.VectorHit
	candidateErr  error
	skillHits     []database.SkillHit
	skillErr      error
	refs          []database.SkillCandidateRef
	refsErr       error
	textHits      []database.SkillTextHit
	textErr       error

	mu          sync.Mutex
	refSkillIDs []int64
	textQueries int
}

func (f *fakeVectors) NearestCandidates(ctx context.Context, query []float32, maxDistance float64, limit int) ([]database.VectorHit, error) {
	return f.candidateHits, f.candidateErr
}

func (f *fakeVectors) NearestSkills(ctx context.Context, query []float32, maxDistance float64, limit int) ([]database.SkillHit, error) {
	return f.skillHits, f.skillErr
}

func (f *fakeVectors) CandidatesBySkills(ctx context.Context, skillIDs []int64, limit int) ([]database.SkillCandidateRef, error) {
	f.mu.Lock()
	f.refSkillIDs = append([]int64(nil), skillIDs...)
	f.mu.Unlock()
	return f.refs, f.refsErr
}

func (f *fakeVectors) SearchSkillsByText(ctx context.Context, text string, limit int) ([]database.SkillTextHit, error) {
	f.mu.Lock()
	f.textQueries++
	f.mu.Unlock()
	return f.textHits, f.textErr
}

func (f *fakeVectors) UpdateVectorColumn(ctx context.Context, target database.VectorTarget, id int64, literal string) error {
	return nil
}
