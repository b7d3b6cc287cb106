// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, VectorDimension, cfg.Embedding.Dimension)
	assert.Equal(t, "", cfg.Embedding.APIKey)
	assert.Equal(t, 0.7, cfg.Search.DistanceThreshold)
	assert.Equal(t, 50, cfg.Search.BioLimit)
	assert.Equal(t, 10, cfg.Search.SkillLimit)
	assert.Equal(t, 50, cfg.Search.SkillCandidateLimit)
	assert.Equal(t, 20, cfg.Search.DefaultLimit)
	assert.Equal(t, 5*time.Second, cfg.VectorStore.MirrorTimeout)
	assert.True(t, cfg.Cache.Enabled)
	assert.Equal(t, time.Minute, cfg.Cache.TTL, "summaries edited outside this service go stale for at most one TTL")
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("SEARCH_DISTANCE_THRESHOLD", "0.5")
	t.Setenv("VECTOR_MIRROR_TIMEOUT", "2s")
	t.Setenv("EMBEDDING_API_KEY", "sk-test")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 0.5, cfg.Search.DistanceThreshold)
	assert.Equal(t, 2*time.Second, cfg.VectorStore.MirrorTimeout)
	assert.Equal(t, "sk-test", cfg.Embedding.APIKey)
}

func TestLoad_FileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`
server:
  port: 9090
search:
  distance_threshold: 0.6
  bio_limit: 25
`)
	require.NoError(t, os.WriteFile(path, content, 0o600))
	t.Setenv("CONFIG_PATH", path)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 0.6, cfg.Search.DistanceThreshold)
	assert.Equal(t, 25, cfg.Search.BioLimit)
	// untouched keys keep env defaults
	assert.Equal(t, 10, cfg.Search.SkillLimit)
}

func TestLoad_RejectsWrongDimension(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("EMBEDDING_DIMENSION", "1024")

	_, err := Load()
	assert.Error(t, err)
}
