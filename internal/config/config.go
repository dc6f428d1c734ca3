// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

// Package config loads convgraph configuration from YAML.
//
// A configuration names the unit vocabulary, the conversion facts, the
// path search strategy, and the ambient settings for logging, the HTTP
// server and telemetry. A file that defines neither units nor facts gets
// the reference scenario (m, in, ft, hr, min, sec with four facts).
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/AleutianAI/convgraph/internal/conversion"
	"github.com/AleutianAI/convgraph/internal/graph"
	"github.com/AleutianAI/convgraph/pkg/logging"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig wraps every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid config")

var validate = validator.New(validator.WithRequiredStructEnabled())

// Defaults.
const (
	DefaultPort         = 12310
	DefaultRateLimit    = 50.0
	DefaultBurst        = 100
	DefaultServiceName  = "convgraph"
	DefaultOTLPEndpoint = "localhost:4317"
)

// Config is the root configuration document.
type Config struct {
	// Units is the closed unit vocabulary.
	Units []string `yaml:"units" validate:"required,min=1,dive,required"`

	// Facts are the known conversions; every token must be in Units.
	Facts []FactConfig `yaml:"facts" validate:"dive"`

	// Strategy is the path search order: bfs (default) or dfs.
	Strategy string `yaml:"strategy" validate:"omitempty,oneof=bfs dfs"`

	Logging   LoggingConfig   `yaml:"logging"`
	Server    ServerConfig    `yaml:"server"`
	Telemetry TelemetryConfig `yaml:"telemetry"`
}

// FactConfig is "1 From = Rate To". Rate is not range-checked.
type FactConfig struct {
	From string  `yaml:"from" validate:"required"`
	To   string  `yaml:"to" validate:"required"`
	Rate float64 `yaml:"rate"`
}

// LoggingConfig configures pkg/logging.
type LoggingConfig struct {
	Level string `yaml:"level" validate:"omitempty,oneof=debug info warn warning error"`
	JSON  bool   `yaml:"json"`
	Dir   string `yaml:"dir"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Port int `yaml:"port" validate:"gte=0,lte=65535"`

	// RateLimit is requests per second across all clients. Default: 50
	RateLimit float64 `yaml:"rate_limit" validate:"gte=0"`
	Burst     int     `yaml:"burst" validate:"gte=0"`

	GinMode string `yaml:"gin_mode" validate:"omitempty,oneof=debug release test"`
}

// TelemetryConfig selects OpenTelemetry exporters.
type TelemetryConfig struct {
	Traces       string `yaml:"traces" validate:"omitempty,oneof=none stdout otlp"`
	Metrics      string `yaml:"metrics" validate:"omitempty,oneof=none stdout prometheus"`
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// DefaultConfig returns the reference scenario with default settings.
func DefaultConfig() *Config {
	cfg := &Config{
		Units: append([]string(nil), conversion.DefaultUnits...),
		Facts: []FactConfig{
			{From: "m", To: "ft", Rate: 3.28},
			{From: "ft", To: "in", Rate: 12.0},
			{From: "hr", To: "min", Rate: 60.0},
			{From: "min", To: "sec", Rate: 60.0},
		},
	}
	cfg.applyDefaults()
	return cfg
}

// Load reads and validates the YAML file at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes and validates a YAML document. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	if len(cfg.Units) == 0 && len(cfg.Facts) == 0 {
		ref := DefaultConfig()
		cfg.Units = ref.Units
		cfg.Facts = ref.Facts
	}
	cfg.applyDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Strategy == "" {
		c.Strategy = graph.BreadthFirst.String()
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
	if c.Server.Port == 0 {
		c.Server.Port = DefaultPort
	}
	if c.Server.RateLimit == 0 {
		c.Server.RateLimit = DefaultRateLimit
	}
	if c.Server.Burst == 0 {
		c.Server.Burst = DefaultBurst
	}
	if c.Telemetry.Traces == "" {
		c.Telemetry.Traces = "none"
	}
	if c.Telemetry.Metrics == "" {
		c.Telemetry.Metrics = "none"
	}
	if c.Telemetry.OTLPEndpoint == "" {
		c.Telemetry.OTLPEndpoint = DefaultOTLPEndpoint
	}
	if c.Telemetry.ServiceName == "" {
		c.Telemetry.ServiceName = DefaultServiceName
	}
}

// Validate checks struct constraints and that every fact uses a known
// unit. Errors wrap ErrInvalidConfig; unknown units also wrap
// conversion.ErrInvalidUnit.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	vocab, err := c.Vocabulary()
	if err != nil {
		return err
	}
	if _, err := conversion.ParseFacts(vocab, c.ConversionFacts()); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Vocabulary builds the unit vocabulary.
func (c *Config) Vocabulary() (*conversion.Vocabulary, error) {
	vocab, err := conversion.NewVocabulary(c.Units...)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return vocab, nil
}

// ConversionFacts returns the facts as unvalidated triples.
func (c *Config) ConversionFacts() []conversion.Fact {
	facts := make([]conversion.Fact, len(c.Facts))
	for i, f := range c.Facts {
		facts[i] = conversion.Fact{From: f.From, To: f.To, Rate: f.Rate}
	}
	return facts
}

// SearchStrategy parses Strategy.
func (c *Config) SearchStrategy() (graph.Strategy, error) {
	s, err := graph.ParseStrategy(c.Strategy)
	if err != nil {
		return s, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return s, nil
}

// LogLevel parses Logging.Level.
func (c *Config) LogLevel() logging.Level {
	level, err := logging.ParseLevel(c.Logging.Level)
	if err != nil {
		return logging.LevelInfo
	}
	return level
}

// BuildGraph builds the conversion graph described by the configuration.
func (c *Config) BuildGraph(logger *logging.Logger) (*conversion.ConversionGraph, error) {
	vocab, err := c.Vocabulary()
	if err != nil {
		return nil, err
	}
	strategy, err := c.SearchStrategy()
	if err != nil {
		return nil, err
	}

	opts := []conversion.Option{conversion.WithStrategy(strategy)}
	if logger != nil {
		opts = append(opts, conversion.WithLogger(logger))
	}
	return conversion.Build(vocab, c.ConversionFacts(), opts...)
}
