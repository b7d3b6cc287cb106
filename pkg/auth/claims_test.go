// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func TestClaims_CanSearch(t *testing.T) {
	tests := []struct {
		role string
		want bool
	}{
		{RoleAdmin, true},
		{RoleModerator, true},
		{RoleEmployer, true},
		{RoleCandidate, false},
		{"", false},
	}
	for _, tt := range tests {
		t.Run(tt.role, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Claims{UserID: "u", Role: tt.role}).CanSearch())
		})
	}

	var nilClaims *Claims
	assert.False(t, nilClaims.CanSearch())
	assert.False(t, nilClaims.CanManageTaxonomy())
	assert.True(t, System().CanManageTaxonomy())
}

func TestMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/whoami", Middleware(true), func(c *gin.Context) {
		claims := FromContext(c)
		c.JSON(http.StatusOK, gin.H{"id": claims.UserID, "role": claims.Role})
	})

	t.Run("missing user id", func(t *testing.T) {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/whoami", nil))
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("claims from headers", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/whoami", nil)
		req.Header.Set(HeaderUserID, "42")
		req.Header.Set(HeaderUserRole, " Employer ")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.JSONEq(t, `{"id":"42","role":"employer"}`, w.Body.String())
	})
}
