// Copyright 2025
// SPDX-License-Identifier: Apache-2.0

// Package manifest reads and writes the JSON (or YAML) files that list
// models to download.
package manifest

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/carteakey/lllms/pkg/modelfetch"
)

// Manifest is a list of download jobs plus global overrides.
type Manifest struct {
	// BaseModelsDir overrides the base directory derived destinations
	// are placed under.
	BaseModelsDir string           `json:"base_models_dir,omitempty" yaml:"base_models_dir,omitempty"`
	Models        []modelfetch.Job `json:"models" yaml:"models"`
}

// Empty reports whether nothing was read. A manifest with an explicit but
// empty "models" list is not empty; it simply has no jobs.
func (m Manifest) Empty() bool {
	return m.BaseModelsDir == "" && m.Models == nil
}

// Read loads the manifest at path. Files ending in .yaml or .yml are parsed
// as YAML, anything else as JSON.
func Read(path string) (Manifest, error) {
	var m Manifest
	b, err := os.ReadFile(path)
	if err != nil {
		return m, err
	}
	if isYAML(path) {
		if err := yaml.Unmarshal(b, &m); err != nil {
			return Manifest{}, fmt.Errorf("invalid YAML manifest: %w", err)
		}
		return m, nil
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return Manifest{}, fmt.Errorf("invalid JSON manifest: %w", err)
	}
	return m, nil
}

// Load is Read for callers that treat a bad manifest as an empty one: a
// missing or unparsable file is logged and an empty Manifest is returned.
func Load(path string, logger *slog.Logger) Manifest {
	if logger == nil {
		logger = slog.Default()
	}
	m, err := Read(path)
	switch {
	case err == nil:
		return m
	case errors.Is(err, fs.ErrNotExist):
		logger.Error("config file not found", "path", path)
	default:
		logger.Error("error parsing config file", "path", path, "err", err)
	}
	return Manifest{}
}

// Write stores m at path, as YAML for .yaml/.yml and indented JSON
// otherwise. Parent directories are created.
func Write(path string, m Manifest) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(m)
	} else {
		data, err = json.MarshalIndent(m, "", "  ")
		data = append(data, '\n')
	}
	if err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("could not create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("could not write config file: %w", err)
	}
	return nil
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}
