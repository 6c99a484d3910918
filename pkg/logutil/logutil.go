// Copyright 2024 Flint Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package logutil holds the global zap logger shared by the engine.
package logutil

import (
	"os"
	"sync"
	"sync/atomic"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogConfig controls the global logger.
type LogConfig struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string `toml:"level"`
	// Filename routes output to a rotated file when non-empty,
	// otherwise logs go to stderr.
	Filename string `toml:"filename"`
	// MaxSize is the rotation threshold in megabytes.
	MaxSize int `toml:"max-size"`
	// MaxBackups is the number of rotated files to keep.
	MaxBackups int `toml:"max-backups"`
	// DisableStore disables any log output, used by tests.
	DisableStore bool `toml:"disable-store"`
}

var (
	globalLogger atomic.Value // *zap.Logger
	setupOnce    sync.Once
)

// SetupLogger initializes the global logger. Later calls replace the
// logger; a nil config installs the default stderr logger.
func SetupLogger(cfg *LogConfig) {
	globalLogger.Store(newLogger(cfg))
}

// GetGlobalLogger returns the global logger, initializing the default
// one on first use.
func GetGlobalLogger() *zap.Logger {
	if l := globalLogger.Load(); l != nil {
		return l.(*zap.Logger)
	}
	setupOnce.Do(func() {
		if globalLogger.Load() == nil {
			globalLogger.Store(newLogger(nil))
		}
	})
	return globalLogger.Load().(*zap.Logger)
}

func newLogger(cfg *LogConfig) *zap.Logger {
	if cfg == nil {
		cfg = &LogConfig{}
	}
	if cfg.DisableStore {
		return zap.NewNop()
	}

	level := zapcore.InfoLevel
	if cfg.Level != "" {
		if err := level.UnmarshalText([]byte(cfg.Level)); err != nil {
			level = zapcore.InfoLevel
		}
	}

	var sink zapcore.WriteSyncer
	if cfg.Filename != "" {
		sink = zapcore.AddSync(&lumberjack.Logger{
			Filename:   cfg.Filename,
			MaxSize:    cfg.MaxSize,
			MaxBackups: cfg.MaxBackups,
		})
	} else {
		sink = zapcore.AddSync(os.Stderr)
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encCfg), sink, level)
	return zap.New(core, zap.AddCallerSkip(1))
}

func Debug(msg string, fields ...zap.Field) {
	GetGlobalLogger().Debug(msg, fields...)
}

func Info(msg string, fields ...zap.Field) {
	GetGlobalLogger().Info(msg, fields...)
}

func Warn(msg string, fields ...zap.Field) {
	GetGlobalLogger().Warn(msg, fields...)
}

func Error(msg string, fields ...zap.Field) {
	GetGlobalLogger().Error(msg, fields...)
}

// Infof only use in develop mode
func Infof(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Infof(msg, args...)
}

// Debugf only use in develop mode
func Debugf(msg string, args ...interface{}) {
	GetGlobalLogger().Sugar().Debugf(msg, args...)
}
