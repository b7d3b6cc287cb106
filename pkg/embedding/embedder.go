// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package embedding

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/config"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/log"
	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/metrics"
	openai "github.com/sashabaranov/go-openai"
)

var (
	// ErrEmptyInput is returned for blank input text
	ErrEmptyInput = errors.New("embedding input cannot be empty")
	// ErrProviderFailure wraps any non-success response from the provider
	ErrProviderFailure = errors.New("embedding provider failure")
	// ErrDimensionMismatch is returned when the provider vector has the wrong length
	ErrDimensionMismatch = errors.New("embedding dimension mismatch")
)

// Embedder interface for text embedding generation.
// Embed returns (nil, nil) when no provider is configured.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
	Available() bool
	ModelName() string
}

// OpenAIEmbedder implements Embedder using an OpenAI-compatible API
type OpenAIEmbedder struct {
	client    *openai.Client
	model     string
	dimension int
}

// NewOpenAIEmbedder creates a new OpenAI embedder. The HTTP client is owned
// by the caller. Without an API key the embedder is unavailable and every
// Embed call returns no vector.
func NewOpenAIEmbedder(cfg config.EmbeddingConfig, httpClient *http.Client) *OpenAIEmbedder {
	e := &OpenAIEmbedder{
		model:     cfg.Model,
		dimension: cfg.Dimension,
	}
	if e.dimension == 0 {
		e.dimension = config.VectorDimension
	}
	if cfg.APIKey == "" {
		return e
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	if httpClient != nil {
		clientCfg.HTTPClient = httpClient
	}
	e.client = openai.NewClientWithConfig(clientCfg)
	return e
}

// Available reports whether a provider credential is configured
func (e *OpenAIEmbedder) Available() bool {
	return e != nil && e.client != nil
}

// ModelName returns the model name
func (e *OpenAIEmbedder) ModelName() string {
	return e.model
}

// Embed calls the provider once and validates the vector length. No retry is
// performed.
func (e *OpenAIEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	if !e.Available() {
		metrics.EmbeddingRequestsTotal.WithLabelValues(metrics.StatusUnavailable).Inc()
		log.Debugf("embedding provider not configured, skipping")
		return nil, nil
	}
	if text == "" {
		return nil, ErrEmptyInput
	}

	start := time.Now()
	resp, err := e.client.CreateEmbeddings(ctx, openai.EmbeddingRequest{
		Input: []string{text},
		Model: openai.EmbeddingModel(e.model),
	})
	metrics.EmbeddingDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		metrics.EmbeddingRequestsTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf("%w: %s", ErrProviderFailure, describeError(err))
	}

	if len(resp.Data) == 0 {
		metrics.EmbeddingRequestsTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf("%w: no embedding returned", ErrProviderFailure)
	}

	vec := resp.Data[0].Embedding
	if len(vec) != e.dimension {
		metrics.EmbeddingRequestsTotal.WithLabelValues(metrics.StatusError).Inc()
		return nil, fmt.Errorf("%w: got %d, want %d", ErrDimensionMismatch, len(vec), e.dimension)
	}

	metrics.EmbeddingRequestsTotal.WithLabelValues(metrics.StatusSuccess).Inc()
	return vec, nil
}

func describeError(err error) string {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return fmt.Sprintf("status %d: %s", apiErr.HTTPStatusCode, apiErr.Message)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return fmt.Sprintf("status %d: %v", reqErr.HTTPStatusCode, reqErr.Err)
	}
	return err.Error()
}

// NullEmbedder is a no-op embedder for when embedding is disabled
type NullEmbedder struct{}

// Embed returns nil for NullEmbedder
func (e *NullEmbedder) Embed(ctx context.Context, text string) ([]float32, error) {
	return nil, nil
}

// Available always returns false for NullEmbedder
func (e *NullEmbedder) Available() bool {
	return false
}

// ModelName returns empty string for NullEmbedder
func (e *NullEmbedder) ModelName() string {
	return ""
}
