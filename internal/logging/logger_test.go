package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/smileynet/register/internal/config"
)

func TestNew_TextFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Log{Level: "info", Format: "text"}, &buf)

	log.Info("submitted", "kind", "success")

	if !strings.Contains(buf.String(), "msg=submitted") || !strings.Contains(buf.String(), "kind=success") {
		t.Errorf("text output = %q", buf.String())
	}
}

func TestNew_JSONFormat(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Log{Level: "info", Format: "JSON"}, &buf)

	log.Error("submit registration", "err", "boom")

	var rec map[string]any
	if err := json.Unmarshal(buf.Bytes(), &rec); err != nil {
		t.Fatalf("output is not JSON: %v (%q)", err, buf.String())
	}
	if rec["msg"] != "submit registration" || rec["err"] != "boom" {
		t.Errorf("record = %v", rec)
	}
}

func TestNew_LevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := New(config.Log{Level: "warn", Format: "text"}, &buf)

	log.Info("hidden")
	log.Warn("shown")

	if strings.Contains(buf.String(), "hidden") {
		t.Errorf("info record should be filtered at warn level: %q", buf.String())
	}
	if !strings.Contains(buf.String(), "shown") {
		t.Errorf("warn record missing: %q", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" INFO ":  slog.LevelInfo,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"bogus":   slog.LevelInfo,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestOpen_Fallback(t *testing.T) {
	var fallback bytes.Buffer
	w, closeFn, err := Open(config.Log{}, &fallback)
	if err != nil {
		t.Fatal(err)
	}
	if w != &fallback {
		t.Error("Open() without a file should return the fallback writer")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close = %v", err)
	}
}

func TestOpen_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "register.log")
	w, closeFn, err := Open(config.Log{File: path}, nil)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	New(config.Log{Level: "info", Format: "text"}, w).Info("hello")
	if err := closeFn(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "hello") {
		t.Errorf("log file = %q, want record", data)
	}
}

func TestOpen_ErrorStillReturnsClose(t *testing.T) {
	// Given: a log path whose parent is a regular file
	parent := filepath.Join(t.TempDir(), "not-a-dir")
	if err := os.WriteFile(parent, nil, 0o644); err != nil {
		t.Fatal(err)
	}

	// When: Open fails to create the directory
	_, closeFn, err := Open(config.Log{File: filepath.Join(parent, "register.log")}, nil)

	// Then: the error is reported and close is still callable
	if err == nil {
		t.Fatal("Open() should fail when the parent is a file")
	}
	if closeFn == nil {
		t.Fatal("Open() returned a nil close func")
	}
	if err := closeFn(); err != nil {
		t.Errorf("close = %v", err)
	}
}
