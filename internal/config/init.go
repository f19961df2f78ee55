package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrAlreadyExists is returned by Init when the target file exists and
// overwriting was not requested.
var ErrAlreadyExists = errors.New("config: already exists")

// Init writes tmpl to path, creating parent directories. An existing file is
// left untouched unless force is set.
func Init(path string, tmpl []byte, force bool) error {
	if path == "" {
		return errors.New("config: init path cannot be empty")
	}
	if !force {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrAlreadyExists, path)
		}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: creating directory: %w", err)
	}
	if err := os.WriteFile(path, tmpl, 0o644); err != nil {
		return fmt.Errorf("config: writing %s: %w", path, err)
	}
	return nil
}
