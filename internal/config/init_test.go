package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestInit_WritesTemplate(t *testing.T) {
	// Given: a target path inside a directory that does not exist yet
	path := filepath.Join(t.TempDir(), ".register", "config.yaml")

	// When: Init is called
	if err := Init(path, []byte("log:\n  level: debug\n"), false); err != nil {
		t.Fatalf("Init() error = %v", err)
	}

	// Then: the file loads as a config layer
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, "debug")
	}
}

func TestInit_ExistingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("original"), 0o644); err != nil {
		t.Fatal(err)
	}

	t.Run("refuses without force", func(t *testing.T) {
		err := Init(path, []byte("replacement"), false)
		if !errors.Is(err, ErrAlreadyExists) {
			t.Fatalf("Init() error = %v, want ErrAlreadyExists", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "original" {
			t.Errorf("file = %q, want untouched", data)
		}
	})

	t.Run("overwrites with force", func(t *testing.T) {
		if err := Init(path, []byte("replacement"), true); err != nil {
			t.Fatalf("Init() error = %v", err)
		}
		data, _ := os.ReadFile(path)
		if string(data) != "replacement" {
			t.Errorf("file = %q, want %q", data, "replacement")
		}
	})
}

func TestInit_EmptyPath(t *testing.T) {
	if err := Init("", nil, false); err == nil {
		t.Error("Init(\"\") should fail")
	}
}
