package utils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"":        zapcore.InfoLevel,
		"info":    zapcore.InfoLevel,
		"DEBUG":   zapcore.DebugLevel,
		"warning": zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"bogus":   zapcore.InfoLevel,
	}
	for in, want := range cases {
		if got := ParseLevel(in); got != want {
			t.Fatalf("ParseLevel(%q)=%v want %v", in, got, want)
		}
	}
}

func TestNewLoggerWritesFile(t *testing.T) {
	p := filepath.Join(t.TempDir(), "logs", "api.log")
	l := NewLogger(p, "info")
	l.Info("model loaded", zap.String("path", "app/iris_model.gob"))
	l.Debug("dropped at info level")
	_ = l.Sync()
	b, err := os.ReadFile(p)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	s := string(b)
	if !strings.Contains(s, `"msg":"model loaded"`) || !strings.Contains(s, `"path":"app/iris_model.gob"`) {
		t.Fatalf("unexpected log contents: %s", s)
	}
	if strings.Contains(s, "dropped at info level") {
		t.Fatalf("debug entry written at info level")
	}
}
