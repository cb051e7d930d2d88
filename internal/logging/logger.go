// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

type Logger struct {
	*zap.SugaredLogger

	security *SecurityLogger
}

func (l *Logger) Security() SecurityLoggerInterface {
	return l.security
}

// NewLogger creates a zap JSON logger; an unparsable level falls back to info.
func NewLogger(l string) *Logger {
	level, err := zapcore.ParseLevel(l)
	if err != nil {
		level = zapcore.InfoLevel
	}

	c := zap.NewProductionConfig()
	c.Level = zap.NewAtomicLevelAt(level)
	c.EncoderConfig.TimeKey = "@timestamp"
	c.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	if level == zapcore.DebugLevel {
		c.Development = true
	}

	z := zap.Must(c.Build())
	logger := new(Logger)
	logger.SugaredLogger = z.Sugar()
	logger.security = newSecurityLogger(z)

	logger.Debugf("log level set to %s", level)

	return logger
}
