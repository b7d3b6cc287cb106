// Copyright (C) 2025-2026, Advanced Micro Devices, Inc. All rights reserved.
// See LICENSE for license information.

package log

import (
	"fmt"
	"io"
	"os"

	"github.com/AMD-AGI/Primus-SaFE/Lens/talent-matcher/pkg/logger/conf"
	"github.com/sirupsen/logrus"
	"gopkg.in/natefinch/lumberjack.v2"
)

type Fields map[string]interface{}

var globalLogger *logrus.Logger
var ErrorLoggerNotInitialize = fmt.Errorf("Logger not initialized")

func init() {
	_ = InitGlobalLogger(conf.DefaultConfig())
}

func InitGlobalLogger(cfg *conf.LogConfig) error {
	l, err := NewLogger(cfg)
	if err != nil {
		return err
	}
	globalLogger = l
	return nil
}

// NewLogger builds an independent logrus logger from cfg.
func NewLogger(cfg *conf.LogConfig) (*logrus.Logger, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	level, err := logrus.ParseLevel(string(cfg.Level))
	if err != nil {
		return nil, err
	}

	l := logrus.New()
	l.SetLevel(level)
	switch cfg.Formatter {
	case conf.JSONFormater:
		l.SetFormatter(&logrus.JSONFormatter{})
	default:
		l.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}

	var out io.Writer = os.Stdout
	if cfg.File != "" {
		out = io.MultiWriter(os.Stdout, &lumberjack.Logger{
			Filename:   cfg.File,
			MaxSize:    cfg.MaxSizeMB,
			MaxBackups: cfg.MaxBackups,
			MaxAge:     cfg.MaxAgeDays,
			Compress:   true,
		})
	}
	l.SetOutput(out)
	return l, nil
}

func GlobalLogger() *logrus.Logger {
	if globalLogger == nil {
		panic(ErrorLoggerNotInitialize)
	}
	return globalLogger
}

func SetGlobalLogger(logger *logrus.Logger) {
	globalLogger = logger
}

func WithFields(fields Fields) *logrus.Entry {
	return GlobalLogger().WithFields(logrus.Fields(fields))
}

func Info(args ...interface{}) {
	GlobalLogger().Info(args...)
}

func Infof(template string, args ...interface{}) {
	GlobalLogger().Infof(template, args...)
}

func Debug(args ...interface{}) {
	GlobalLogger().Debug(args...)
}

func Debugf(template string, args ...interface{}) {
	GlobalLogger().Debugf(template, args...)
}

func Warn(args ...interface{}) {
	GlobalLogger().Warn(args...)
}

func Warnf(template string, args ...interface{}) {
	GlobalLogger().Warnf(template, args...)
}

func Error(args ...interface{}) {
	GlobalLogger().Error(args...)
}

func Errorf(template string, args ...interface{}) {
	GlobalLogger().Errorf(template, args...)
}

func Fatalf(template string, args ...interface{}) {
	GlobalLogger().Errorf(template, args...)
	os.Exit(1)
}
