// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads domtreectl's on-disk defaults: which mode to run by
// default and whether to emit per-block trace logging.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gopkg.in/yaml.v3"
)

// DomtreeConfig holds the persisted CLI defaults.
type DomtreeConfig struct {
	// DefaultMode is "dominators" or "postdominators", used when a
	// subcommand's --mode flag is not given.
	DefaultMode string `yaml:"default_mode"`

	// Trace enables verbose per-block logging during Build by default.
	Trace bool `yaml:"trace"`
}

// DefaultConfig returns the configuration written on first run.
func DefaultConfig() DomtreeConfig {
	return DomtreeConfig{
		DefaultMode: "dominators",
		Trace:       false,
	}
}

var (
	// Global is the process-wide singleton populated by Load.
	Global DomtreeConfig
	once   sync.Once
)

// Load reads the on-disk config into Global, creating a default one on
// first run. Safe to call repeatedly; only the first call does work.
func Load() error {
	var err error
	once.Do(func() {
		err = loadInternal()
	})
	return err
}

func loadInternal() error {
	home, err := os.UserHomeDir()
	if err != nil {
		return fmt.Errorf("could not find the user's home directory: %w", err)
	}
	configPath := filepath.Join(home, ".domtree", "domtree.yaml")

	if _, statErr := os.Stat(configPath); os.IsNotExist(statErr) {
		fmt.Printf("first run detected, creating config at %s\n", configPath)
		if err := createDefault(configPath); err != nil {
			return err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &Global); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
