// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package log

import (
	"path/filepath"
	"testing"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/conf"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLogger(t *testing.T) {
	cfg := conf.DefaultConfig()
	cfg.Level = conf.DebugLevel
	cfg.Formatter = conf.JSONFormater

	l, err := NewLogger(cfg)
	require.NoError(t, err)
	assert.Equal(t, logrus.DebugLevel, l.GetLevel())
	assert.IsType(t, &logrus.JSONFormatter{}, l.Formatter)
}

func TestNewLogger_InvalidConfig(t *testing.T) {
	cfg := conf.DefaultConfig()
	cfg.Formatter = "xml"
	_, err := NewLogger(cfg)
	assert.Error(t, err)

	cfg = conf.DefaultConfig()
	cfg.Level = "loud"
	_, err = NewLogger(cfg)
	assert.Error(t, err)
}

func TestNewLogger_WithFile(t *testing.T) {
	cfg := conf.DefaultConfig()
	cfg.File = filepath.Join(t.TempDir(), "talent-matcher.log")

	l, err := NewLogger(cfg)
	require.NoError(t, err)
	l.Info("hello")
	assert.FileExists(t, cfg.File)
}
