// Package config loads the detector tuning file.
//
// The file is JSON with the same field names as vision.Config. Fields left out
// of the file keep their vision.DefaultConfig values, so a tuning file only needs
// to list what it changes.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ironsheep/tapevision/internal/vision"
)

// Environment variables read by the binary.
const (
	// EnvConfigPath points to a JSON tuning file.
	EnvConfigPath = "TAPEVISION_CONFIG"
	// EnvBackend selects the image-processing backend; "opencv" enables gocv.
	EnvBackend = "TAPEVISION_BACKEND"
	// EnvLogLevel enables debug logging when set to "debug".
	EnvLogLevel = "TAPEVISION_LOG_LEVEL"
)

const maxFileSize = 1 * 1024 * 1024 // 1MB

// Load reads a tuning file on top of the defaults and validates the result.
func Load(path string) (vision.Config, error) {
	cleanPath := filepath.Clean(path)
	if ext := filepath.Ext(cleanPath); ext != ".json" {
		return vision.Config{}, fmt.Errorf("config file must have .json extension, got %q", ext)
	}

	fileInfo, err := os.Stat(cleanPath)
	if err != nil {
		return vision.Config{}, fmt.Errorf("failed to stat config file: %w", err)
	}
	if fileInfo.Size() > maxFileSize {
		return vision.Config{}, fmt.Errorf("config file too large: %d bytes (max %d)", fileInfo.Size(), maxFileSize)
	}

	data, err := os.ReadFile(cleanPath)
	if err != nil {
		return vision.Config{}, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes tuning JSON on top of the defaults and validates the result.
func Parse(data []byte) (vision.Config, error) {
	cfg := vision.DefaultConfig()
	if err := json.Unmarshal(data, &cfg); err != nil {
		return vision.Config{}, fmt.Errorf("failed to parse config JSON: %w", err)
	}
	if cfg.Selection == "" {
		cfg.Selection = vision.SelectionArea
	}
	if err := cfg.Validate(); err != nil {
		return vision.Config{}, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// FromEnv loads the file named by TAPEVISION_CONFIG, or returns the defaults
// when the variable is unset.
func FromEnv() (vision.Config, error) {
	path := os.Getenv(EnvConfigPath)
	if path == "" {
		return vision.DefaultConfig(), nil
	}
	return Load(path)
}

// Marshal renders cfg as indented JSON, the format Load reads.
func Marshal(cfg vision.Config) ([]byte, error) {
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode config: %w", err)
	}
	return append(data, '\n'), nil
}
