package logger

import (
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	lumberjack "gopkg.in/natefinch/lumberjack.v2"
)

// Options configures the process logger.
type Options struct {
	// Level is one of debug, info, warn, error. Empty means info.
	Level string
	// File, when set, receives a JSON copy of every entry with size based rotation.
	File string
	// Development switches the console output to a human readable encoder.
	Development bool
	// Stderr sends console output to stderr instead of stdout, keeping stdout
	// free for command output.
	Stderr bool
}

// New builds the zap logger used across the service.
func New(opts Options) (*zap.Logger, error) {
	level, err := ParseLevel(opts.Level)
	if err != nil {
		return nil, err
	}

	encCfg := zap.NewProductionEncoderConfig()
	encCfg.TimeKey = "timestamp"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	var stdoutEnc zapcore.Encoder
	if opts.Development {
		devCfg := zap.NewDevelopmentEncoderConfig()
		stdoutEnc = zapcore.NewConsoleEncoder(devCfg)
	} else {
		stdoutEnc = zapcore.NewJSONEncoder(encCfg)
	}

	console := os.Stdout
	if opts.Stderr {
		console = os.Stderr
	}

	cores := []zapcore.Core{
		zapcore.NewCore(stdoutEnc, zapcore.Lock(console), level),
	}

	if opts.File != "" {
		rotator := &lumberjack.Logger{
			Filename:   opts.File,
			MaxSize:    100, // megabytes
			MaxBackups: 5,
			MaxAge:     14, // days
			Compress:   true,
		}
		cores = append(cores, zapcore.NewCore(zapcore.NewJSONEncoder(encCfg), zapcore.AddSync(rotator), level))
	}

	return zap.New(zapcore.NewTee(cores...), zap.AddCaller()), nil
}

// ParseLevel maps a config string onto a zap level.
func ParseLevel(s string) (zapcore.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return zapcore.InfoLevel, nil
	case "debug":
		return zapcore.DebugLevel, nil
	case "warn", "warning":
		return zapcore.WarnLevel, nil
	case "error":
		return zapcore.ErrorLevel, nil
	default:
		return zapcore.InfoLevel, fmt.Errorf("invalid log level %q", s)
	}
}
