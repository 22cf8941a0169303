// Package engine wires the logic IR, builtin dispatcher, groundness
// analyzer, SLD resolver, translator, proof walker and build-plan
// generator into one call surface, per SPEC_FULL.md §1/§0's "new"
// internal/engine entry. It is the only package that owns a logrus
// logger and a yaml-loaded Config; every package it wires stays free of
// both, matching the layering the teacher's own cmd/example draws
// between the minikanren library and its demonstration binary.
package engine

import (
	"os"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// Config is the engine's deployment-time configuration, loaded from a
// YAML file (SPEC_FULL.md §1.3).
type Config struct {
	// MaxDepth bounds the SLD resolver's recursion, per spec §4.4/§5.
	MaxDepth int `yaml:"max_depth"`
	// DeduplicateProofs makes the §4.6/§9 "dedup by solution only"
	// policy an explicit, deployment-level default rather than a
	// hardcoded true, matching the design note's own recommendation.
	DeduplicateProofs bool `yaml:"deduplicate_proofs"`
	// Builtins lists which registered builtin signatures are enabled,
	// by name ("string_concat", "image_exists", "merge"). A nil or
	// empty list enables all of them.
	Builtins []string `yaml:"builtins"`
}

// DefaultConfig returns the engine's out-of-the-box configuration: a
// generous but finite search depth, proofs deduplicated by solution,
// and every builtin enabled.
func DefaultConfig() Config {
	return Config{
		MaxDepth:          1000,
		DeduplicateProofs: true,
	}
}

// LoadConfig reads and parses a YAML config file at path, starting from
// DefaultConfig so that a partial file only overrides what it mentions.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, errors.Wrapf(err, "engine: failed to read config %s", path)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, errors.Wrapf(err, "engine: failed to parse config %s", path)
	}
	return cfg, nil
}
