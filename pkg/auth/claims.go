// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// Header keys set by the upstream gateway
	HeaderUserID   = "userId"
	HeaderUserName = "userName"
	HeaderUserRole = "userRole"

	contextKeyClaims = "claims"
)

// Roles
const (
	RoleAdmin     = "admin"
	RoleModerator = "moderator"
	RoleEmployer  = "employer"
	RoleCandidate = "candidate"
)

// Claims identify the caller. They are passed explicitly into services.
type Claims struct {
	UserID   string
	UserName string
	Role     string
}

// System returns the claims used by internal jobs such as the backfill
func System() *Claims {
	return &Claims{UserID: "system", UserName: "system", Role: RoleAdmin}
}

// CanSearch reports whether the caller may run candidate and skill searches
func (c *Claims) CanSearch() bool {
	if c == nil {
		return false
	}
	switch c.Role {
	case RoleAdmin, RoleModerator, RoleEmployer:
		return true
	}
	return false
}

// CanManageTaxonomy reports whether the caller may write skills and
// candidate matching fields
func (c *Claims) CanManageTaxonomy() bool {
	return c != nil && c.Role == RoleAdmin
}

// Middleware extracts the claims from request headers and stores them in
// the gin context. If required and the user id is missing, returns 401.
func Middleware(required bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := &Claims{
			UserID:   c.GetHeader(HeaderUserID),
			UserName: c.GetHeader(HeaderUserName),
			Role:     strings.ToLower(strings.TrimSpace(c.GetHeader(HeaderUserRole))),
		}

		if required && claims.UserID == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"errorCode":    "UNAUTHORIZED",
				"errorMessage": "authentication required: missing userId header",
			})
			return
		}

		c.Set(contextKeyClaims, claims)
		c.Next()
	}
}

// FromContext returns the claims stored by Middleware, or empty claims
func FromContext(c *gin.Context) *Claims {
	v, ok := c.Get(contextKeyClaims)
	if !ok {
		return &Claims{}
	}
	claims, ok := v.(*Claims)
	if !ok {
		return &Claims{}
	}
	return claims
}
