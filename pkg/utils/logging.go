package utils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the process-wide logger. JSON goes to stdout and, when
// LOG_FILE is set, also to a size-rotated file.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		logger = NewLogger(os.Getenv("LOG_FILE"), os.Getenv("LOG_LEVEL"))
	})
	return logger
}

// NewLogger builds a logger without touching the process-wide instance.
func NewLogger(logFile, level string) *zap.Logger {
	lvl := ParseLevel(level)
	encCfg := zap.NewProductionEncoderConfig()
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	enc := zapcore.NewJSONEncoder(encCfg)
	consoleCore := zapcore.NewCore(enc, zapcore.AddSync(os.Stdout), lvl)
	if logFile == "" {
		return zap.New(consoleCore, zap.AddCaller())
	}
	if err := os.MkdirAll(filepath.Dir(logFile), 0o755); err != nil {
		l := zap.New(consoleCore, zap.AddCaller())
		l.Warn("log dir unavailable, logging to stdout only", zap.String("file", logFile), zap.Error(err))
		return l
	}
	rotator := &lumberjack.Logger{
		Filename:   logFile,
		MaxSize:    50,
		MaxBackups: 3,
		MaxAge:     28,
	}
	fileCore := zapcore.NewCore(enc, zapcore.AddSync(rotator), lvl)
	return zap.New(zapcore.NewTee(fileCore, consoleCore), zap.AddCaller())
}

func ParseLevel(s string) zapcore.Level {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return zapcore.DebugLevel
	case "warn", "warning":
		return zapcore.WarnLevel
	case "error":
		return zapcore.ErrorLevel
	default:
		return zapcore.InfoLevel
	}
}
