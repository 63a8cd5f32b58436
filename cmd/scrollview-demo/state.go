package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/ayn2op/scrollview"
)

// loadState reads a saved list state. The boolean is false if there is no
// state file yet.
func loadState(path string) (scrollview.SavedState, bool, error) {
	var ss scrollview.SavedState
	if path == "" {
		return ss, false, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return ss, false, nil
		}
		return ss, false, fmt.Errorf("failed to read state: %w", err)
	}
	if err := yaml.Unmarshal(data, &ss); err != nil {
		return ss, false, fmt.Errorf("failed to parse state %s: %w", path, err)
	}
	return ss, true, nil
}

// saveState writes the list state to path, replacing the previous file
// atomically.
func saveState(path string, ss scrollview.SavedState) error {
	if path == "" {
		return nil
	}
	data, err := yaml.Marshal(ss)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".scrollview-state-*")
	if err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	defer os.Remove(tmp.Name())
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("failed to write state: %w", err)
	}
	return nil
}
