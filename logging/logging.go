// Copyright (C) 2023 Gobalsky Labs Limited
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as
// published by the Free Software Foundation, either version 3 of the
// License, or (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.

package logging

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// A Level is a logging priority. Higher levels are more important.
type Level int8

// Logging levels (matching zap core internals).
const (
	// DebugLevel logs are typically voluminous, and are usually disabled in
	// production.
	DebugLevel Level = -1
	// InfoLevel is the default logging priority.
	InfoLevel Level = 0
	// WarnLevel logs are more important than Info, but don't need individual
	// human review.
	WarnLevel Level = 1
	// ErrorLevel logs are high-priority. If an application is running smoothly,
	// it shouldn't generate any error-level logs.
	ErrorLevel Level = 2
	// PanicLevel logs a message, then panics.
	PanicLevel Level = 4
	// FatalLevel logs a message, then calls os.Exit(1).
	FatalLevel Level = 5
)

// ZapLevel returns the zap equivalent of the level.
func (l Level) ZapLevel() zapcore.Level {
	return zapcore.Level(l)
}

func (l Level) String() string {
	return l.ZapLevel().String()
}

// ParseLevel maps a textual level to its typed value.
func ParseLevel(s string) (Level, error) {
	var zl zapcore.Level
	if err := zl.UnmarshalText([]byte(s)); err != nil {
		return InfoLevel, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return Level(zl), nil
}

// Logger is a thin, named wrapper over a zap logger so that engines can carry
// hierarchical logger names and tweak levels without touching zap directly.
type Logger struct {
	*zap.Logger
	config *zap.Config
	name   string
}

// New wraps an existing zap core and config into a Logger.
func New(core zapcore.Core, cfg *zap.Config) *Logger {
	return &Logger{
		Logger: zap.New(core),
		config: cfg,
	}
}

// Clone builds an independent copy of the logger, sharing nothing with the
// original so that level changes do not propagate between the two.
func (log *Logger) Clone() *Logger {
	newConfig := cloneConfig(log.config)
	newLogger, err := newConfig.Build()
	if err != nil {
		panic(err)
	}
	return &Logger{
		Logger: newLogger,
		config: newConfig,
		name:   log.name,
	}
}

// Named returns a clone of the logger with the given name appended to the
// logger hierarchy, e.g. "game.matching".
func (log *Logger) Named(name string) *Logger {
	c := log.Clone()
	newName := name
	if log.name != "" {
		newName = fmt.Sprintf("%s.%s", log.name, name)
	}
	return &Logger{
		Logger: c.Logger.Named(newName),
		config: c.config,
		name:   newName,
	}
}

// With returns a clone of the logger carrying the extra fields.
func (log *Logger) With(fields ...zap.Field) *Logger {
	c := log.Clone()
	return &Logger{
		Logger: c.Logger.With(fields...),
		config: c.config,
		name:   c.name,
	}
}

// GetName returns the hierarchical name of this logger.
func (log *Logger) GetName() string {
	return log.name
}

// GetLevel returns the current level of the logger.
func (log *Logger) GetLevel() Level {
	return Level(log.config.Level.Level())
}

// SetLevel changes the level the logger filters at.
func (log *Logger) SetLevel(level Level) {
	if log.config.Level.Level() == level.ZapLevel() {
		return
	}
	log.config.Level.SetLevel(level.ZapLevel())
}

// IsDebug returns true if the logger emits debug entries, engines use this to
// guard expensive debug field construction.
func (log *Logger) IsDebug() bool {
	return log.GetLevel() <= DebugLevel
}

func cloneConfig(cfg *zap.Config) *zap.Config {
	c := zap.Config{
		Level:             zap.NewAtomicLevelAt(cfg.Level.Level()),
		Development:       cfg.Development,
		DisableCaller:     cfg.DisableCaller,
		DisableStacktrace: cfg.DisableStacktrace,
		Sampling:          nil,
		Encoding:          cfg.Encoding,
		EncoderConfig:     cfg.EncoderConfig,
		OutputPaths:       cfg.OutputPaths,
		ErrorOutputPaths:  cfg.ErrorOutputPaths,
		InitialFields:     make(map[string]interface{}),
	}
	for k, v := range cfg.InitialFields {
		c.InitialFields[k] = v
	}
	if cfg.Sampling != nil {
		c.Sampling = &zap.SamplingConfig{
			Initial:    cfg.Sampling.Initial,
			Thereafter: cfg.Sampling.Thereafter,
		}
	}
	return &c
}

// NewLoggerFromEnv builds a logger suited to the given environment, one of
// "dev" (console encoding, debug level) or "prod" (json encoding, info level).
func NewLoggerFromEnv(env string) *Logger {
	switch env {
	case "dev":
		return NewDevLogger()
	default:
		return NewProdLogger()
	}
}

// NewDevLogger creates a console logger at debug level, for local runs.
func NewDevLogger() *Logger {
	encoderConfig := zapcore.EncoderConfig{
		CallerKey:      "C",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		LevelKey:       "L",
		LineEnding:     "\n",
		MessageKey:     "M",
		NameKey:        "N",
		TimeKey:        "T",
	}
	config := &zap.Config{
		Level:            zap.NewAtomicLevelAt(DebugLevel.ZapLevel()),
		Development:      true,
		Encoding:         "console",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(encoderConfig), os.Stdout, config.Level)
	return New(core, config)
}

// NewProdLogger creates a json logger at info level.
func NewProdLogger() *Logger {
	encoderConfig := zapcore.EncoderConfig{
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.SecondsDurationEncoder,
		EncodeLevel:    zapcore.LowercaseLevelEncoder,
		EncodeName:     zapcore.FullNameEncoder,
		EncodeTime:     zapcore.ISO8601TimeEncoder,
		LevelKey:       "level",
		LineEnding:     "\n",
		MessageKey:     "message",
		NameKey:        "logger",
		StacktraceKey:  "stacktrace",
		TimeKey:        "@timestamp",
	}
	config := &zap.Config{
		Level:            zap.NewAtomicLevelAt(InfoLevel.ZapLevel()),
		Development:      false,
		Encoding:         "json",
		EncoderConfig:    encoderConfig,
		OutputPaths:      []string{"stdout"},
		ErrorOutputPaths: []string{"stderr"},
	}
	core := zapcore.NewCore(zapcore.NewJSONEncoder(encoderConfig), os.Stdout, config.Level)
	return New(core, config)
}

// NewTestLogger creates a console logger for use in tests.
func NewTestLogger() *Logger {
	return NewDevLogger()
}
