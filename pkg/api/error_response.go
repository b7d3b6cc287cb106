// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package api

import (
	"errors"
	"net/http"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/service"
	"github.com/gin-gonic/gin"
)

// ErrorCode defines standard error codes for the API
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "BAD_REQUEST"
	ErrCodeInvalidParameter ErrorCode = "INVALID_PARAMETER"
	ErrCodeForbidden        ErrorCode = "FORBIDDEN"
	ErrCodeNotFound         ErrorCode = "NOT_FOUND"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "INTERNAL_ERROR"
	ErrCodeSearchFailed  ErrorCode = "SEARCH_FAILED"
)

// ErrorResponse represents a standardized error response
type ErrorResponse struct {
	ErrorCode    string `json:"errorCode"`
	ErrorMessage string `json:"errorMessage"`
}

// respondWithError sends a standardized error response
func respondWithError(c *gin.Context, statusCode int, errorCode ErrorCode, message string) {
	c.JSON(statusCode, ErrorResponse{
		ErrorCode:    string(errorCode),
		ErrorMessage: message,
	})
}

// respondBadRequest sends a 400 Bad Request error
func respondBadRequest(c *gin.Context, message string, detail ...string) {
	if len(detail) > 0 {
		message = message + ": " + detail[0]
	}
	respondWithError(c, http.StatusBadRequest, ErrCodeBadRequest, message)
}

// respondInvalidParameter sends a 400 Bad Request error for invalid parameters
func respondInvalidParameter(c *gin.Context, paramName string, detail ...string) {
	message := "Invalid parameter: " + paramName
	if len(detail) > 0 {
		message = message + ". " + detail[0]
	}
	respondWithError(c, http.StatusBadRequest, ErrCodeInvalidParameter, message)
}

// respondServiceError maps service errors to standardized HTTP error responses
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound):
		respondWithError(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, service.ErrAccessDenied):
		respondWithError(c, http.StatusForbidden, ErrCodeForbidden, err.Error())
	case errors.Is(err, service.ErrInvalidArgument):
		respondWithError(c, http.StatusBadRequest, ErrCodeInvalidParameter, err.Error())
	case errors.Is(err, service.ErrSearchFailed):
		log.WithFields(log.Fields{"request_id": requestID(c)}).Errorf("Search failed: %v", err)
		respondWithError(c, http.StatusInternalServerError, ErrCodeSearchFailed, "Search failed")
	default:
		log.WithFields(log.Fields{"request_id": requestID(c)}).Errorf("Request failed: %v", err)
		respondWithError(c, http.StatusInternalServerError, ErrCodeInternalError, "Internal server error")
	}
}
