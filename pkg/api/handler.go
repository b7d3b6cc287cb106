// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"context"
	"errors"
	"net/http"
	"strconv"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/auth"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/database/model"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/service"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Searcher runs candidate searches and skill diagnostics
type Searcher interface {
	Search(ctx context.Context, claims *auth.Claims, query string, limit int) (*service.SearchResult, error)
	DiagnoseSkills(ctx context.Context, claims *auth.Claims, query string, limit int) (*service.DiagnosticsResult, error)
}

// SkillWriter creates and updates skills
type SkillWriter interface {
	Create(ctx context.Context, claims *auth.Claims, in service.SkillInput) (*model.Skill, error)
	Update(ctx context.Context, claims *auth.Claims, id int64, in service.SkillInput) (*model.Skill, error)
}

// CandidateWriter patches candidate profiles
type CandidateWriter interface {
	Patch(ctx context.Context, claims *auth.Claims, id int64, patch service.CandidatePatch) (*service.CandidateSaveResult, error)
}

// Handler handles API requests for matching and its write path
type Handler struct {
	searcher   Searcher
	skills     SkillWriter
	candidates CandidateWriter
}

// NewHandler creates a new Handler
func NewHandler(searcher Searcher, skills SkillWriter, candidates CandidateWriter) *Handler {
	return &Handler{
		searcher:   searcher,
		skills:     skills,
		candidates: candidates,
	}
}

// RegisterRoutes registers API routes
func RegisterRoutes(router *gin.Engine, h *Handler) {
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	v1 := router.Group("/api/v1")
	{
		// Health check (no auth required)
		v1.GET("/health", h.Health)
	}

	authed := v1.Group("")
	authed.Use(auth.Middleware(true))
	{
		authed.GET("/candidates/search", h.SearchCandidates)
		authed.PATCH("/candidates/:id", h.PatchCandidate)

		authed.GET("/skills/search/diagnostics", h.DiagnoseSkills)
		authed.POST("/skills", h.CreateSkill)
		authed.PUT("/skills/:id", h.UpdateSkill)
	}
}

// --- Response Types ---

// SkillResponse is the public view of a saved skill
type SkillResponse struct {
	ID            int64  `json:"id"`
	Name          string `json:"name"`
	DisciplineID  *int64 `json:"discipline_id"`
	CategoryID    *int64 `json:"category_id"`
	SubcategoryID *int64 `json:"subcategory_id"`
	BillingTier   string `json:"billing_tier"`
	GroupText     string `json:"group_text"`
	HasEmbedding  bool   `json:"has_embedding"`
}

func toSkillResponse(s *model.Skill) SkillResponse {
	return SkillResponse{
		ID:            s.ID,
		Name:          s.Name,
		DisciplineID:  s.DisciplineID,
		CategoryID:    s.CategoryID,
		SubcategoryID: s.SubcategoryID,
		BillingTier:   s.BillingTier,
		GroupText:     s.GroupText,
		HasEmbedding:  s.HasEmbedding(),
	}
}

// diagnosticsFailure is the fixed failure body of the diagnostics endpoint
type diagnosticsFailure struct {
	Error   string                     `json:"error"`
	Skills  []service.SkillSummary     `json:"skills"`
	Method  string                     `json:"method"`
	Timings service.DiagnosticsTimings `json:"timings"`
}

// --- Handler Methods ---

// Health returns service health status
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func parseLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return 0, true
	}
	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 0 {
		respondInvalidParameter(c, "limit", "limit must be a non-negative integer")
		return 0, false
	}
	return limit, true
}

func parseID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondInvalidParameter(c, "id", "ID must be a valid integer")
		return 0, false
	}
	return id, true
}

// SearchCandidates runs the hybrid candidate search. The response never
// reveals which retrieval method served it.
func (h *Handler) SearchCandidates(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	result, err := h.searcher.Search(c.Request.Context(), auth.FromContext(c), c.Query("q"), limit)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"candidates": result.Candidates,
		"total":      result.Total,
	})
}

// DiagnoseSkills runs a skill search and reports timings and the method used
func (h *Handler) DiagnoseSkills(c *gin.Context) {
	limit, ok := parseLimit(c)
	if !ok {
		return
	}

	result, err := h.searcher.DiagnoseSkills(c.Request.Context(), auth.FromContext(c), c.Query("q"), limit)
	if err != nil {
		if !errors.Is(err, service.ErrSearchFailed) {
			respondServiceError(c, err)
			return
		}
		body := diagnosticsFailure{
			Error:  err.Error(),
			Skills: []service.SkillSummary{},
			Method: service.MethodText,
		}
		if result != nil {
			body.Timings = result.Timings
		}
		c.JSON(http.StatusInternalServerError, body)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateSkill creates a skill and derives its group text and embedding
func (h *Handler) CreateSkill(c *gin.Context) {
	var req service.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	skill, err := h.skills.Create(c.Request.Context(), auth.FromContext(c), req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toSkillResponse(skill))
}

// UpdateSkill replaces a skill's writable fields
func (h *Handler) UpdateSkill(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.SkillInput
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	skill, err := h.skills.Update(c.Request.Context(), auth.FromContext(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, toSkillResponse(skill))
}

// PatchCandidate updates candidate profile fields
func (h *Handler) PatchCandidate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	var req service.CandidatePatch
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "Invalid request body", err.Error())
		return
	}

	result, err := h.candidates.Patch(c.Request.Context(), auth.FromContext(c), id, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"id":          result.Candidate.ID,
		"changed":     result.Changed,
		"regenerated": result.Regenerated,
	})
}
