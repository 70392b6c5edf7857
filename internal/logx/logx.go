// Package logx builds the application zap logger.
package logx

import (
	"fmt"
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

// RotationConfig holds log file rotation settings
type RotationConfig struct {
	MaxSizeMB  int
	MaxBackups int
	MaxAgeDays int
}

// Options describes the logger to build
type Options struct {
	Level    string
	Pretty   bool
	File     string
	Rotation RotationConfig
}

// NewLogger creates a logger writing to stdout and, when File is set, to a
// rotated log file. An empty level means info.
func NewLogger(opts Options) (*zap.Logger, error) {
	core, err := NewCore(opts, zapcore.AddSync(os.Stdout))
	if err != nil {
		return nil, err
	}
	return zap.New(core, zap.AddCaller()), nil
}

// NewCore builds the zap core over the given console sink
func NewCore(opts Options, console zapcore.WriteSyncer) (zapcore.Core, error) {
	level, err := zapcore.ParseLevel(opts.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level %q: %w", opts.Level, err)
	}

	encoder := newEncoder(opts.Pretty)
	cores := []zapcore.Core{zapcore.NewCore(encoder, console, level)}

	if opts.File != "" {
		file := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    opts.Rotation.MaxSizeMB,
			MaxBackups: opts.Rotation.MaxBackups,
			MaxAge:     opts.Rotation.MaxAgeDays,
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(encoder, zapcore.AddSync(file), level))
	}

	return zapcore.NewTee(cores...), nil
}

func newEncoder(pretty bool) zapcore.Encoder {
	var cfg zapcore.EncoderConfig
	if pretty {
		cfg = zap.NewDevelopmentEncoderConfig()
	} else {
		cfg = zap.NewProductionEncoderConfig()
	}
	cfg.TimeKey = "ts"
	cfg.EncodeTime = zapcore.ISO8601TimeEncoder

	if pretty {
		return zapcore.NewConsoleEncoder(cfg)
	}
	return zapcore.NewJSONEncoder(cfg)
}
