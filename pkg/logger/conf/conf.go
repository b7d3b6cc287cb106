// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package conf

import "fmt"

type Level string

const (
	TraceLevel Level = "trace"
	DebugLevel Level = "debug"
	InfoLevel  Level = "info"
	WarnLevel  Level = "warn"
	ErrorLevel Level = "error"
	FatalLevel Level = "fatal"
)

// LogConfig controls the global logger.
type LogConfig struct {
	Level     Level     `yaml:"level"`
	Formatter Formatter `yaml:"formatter"`
	// File enables rotated file output in addition to stdout when non-empty.
	File       string `yaml:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb"`
	MaxBackups int    `yaml:"max_backups"`
	MaxAgeDays int    `yaml:"max_age_days"`
}

func DefaultConfig() *LogConfig {
	return &LogConfig{
		Level:      InfoLevel,
		Formatter:  ConsoleFormater,
		MaxSizeMB:  100,
		MaxBackups: 5,
		MaxAgeDays: 14,
	}
}

func (c *LogConfig) Validate() error {
	if !isValidFormatter(c.Formatter) {
		return fmt.Errorf("invalid log formatter: %s", c.Formatter)
	}
	switch c.Level {
	case TraceLevel, DebugLevel, InfoLevel, WarnLevel, ErrorLevel, FatalLevel:
		return nil
	default:
		return fmt.Errorf("invalid log level: %s", c.Level)
	}
}
