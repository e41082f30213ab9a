package config

import (
	"fmt"
	"os"

	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/models"
)

// LoadConfig loads and parses a configuration file
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	cfg, err := ParseConfigYAML(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrDefault loads the file at path, or returns Default when path is
// empty.
func LoadOrDefault(path string) (*Config, error) {
	if path == "" {
		return Default(), nil
	}
	return LoadConfig(path)
}

// validateConfig performs validation on the configuration
func validateConfig(cfg *Config) error {
	if !logger.ValidLevel(cfg.LogLevel) {
		return fmt.Errorf("invalid log_level: %s (must be debug, info, warn, or error)", cfg.LogLevel)
	}
	if err := validateServer(&cfg.Server); err != nil {
		return fmt.Errorf("server validation failed: %w", err)
	}
	if err := validateSearch(&cfg.Search); err != nil {
		return fmt.Errorf("search validation failed: %w", err)
	}
	if err := validateInstruments(cfg.Instruments); err != nil {
		return fmt.Errorf("instruments validation failed: %w", err)
	}
	return nil
}

// validateServer validates the server configuration
func validateServer(s *Server) error {
	if s.GRPCAddr == "" && s.HTTPAddr == "" {
		return fmt.Errorf("at least one of grpc_addr and http_addr must be set")
	}
	if s.MaxStoredRuns <= 0 {
		return fmt.Errorf("max_stored_runs must be positive, got %d", s.MaxStoredRuns)
	}
	d, err := s.GetShutdownTimeout()
	if err != nil {
		return fmt.Errorf("invalid shutdown_timeout %s: %w", s.ShutdownTimeout, err)
	}
	if d < 0 {
		return fmt.Errorf("shutdown_timeout cannot be negative, got %s", s.ShutdownTimeout)
	}
	return nil
}

// validateSearch validates the search configuration
func validateSearch(s *Search) error {
	if s.Restarts < 0 {
		return fmt.Errorf("restarts cannot be negative, got %d", s.Restarts)
	}
	if s.RestartDisruption <= 0 {
		return fmt.Errorf("restart_disruption must be positive, got %d", s.RestartDisruption)
	}
	if s.LocalSearchDisruption <= 0 {
		return fmt.Errorf("local_search_disruption must be positive, got %d", s.LocalSearchDisruption)
	}
	if s.Budget.BaseSteps < 0 {
		return fmt.Errorf("budget base_steps cannot be negative, got %d", s.Budget.BaseSteps)
	}
	if s.Budget.ReferenceNotes <= 0 || s.Budget.ReferenceCandidates <= 0 {
		return fmt.Errorf("budget reference_notes and reference_candidates must be positive")
	}
	if s.Window.Size <= 0 || s.Window.Step <= 0 {
		return fmt.Errorf("window size and step must be positive, got %d and %d", s.Window.Size, s.Window.Step)
	}
	if s.Window.StaticContext < 1 || s.Window.StaticContext > s.Window.Size {
		return fmt.Errorf("window static_context must be between 1 and size %d, got %d", s.Window.Size, s.Window.StaticContext)
	}
	if s.Window.Depth < 0 {
		return fmt.Errorf("window depth cannot be negative, got %d", s.Window.Depth)
	}
	if s.PolishDepth < 0 {
		return fmt.Errorf("polish_depth cannot be negative, got %d", s.PolishDepth)
	}
	// weight names are checked against the metrics when options are built
	for name, w := range s.Weights {
		if w < 0 {
			return fmt.Errorf("weight %s cannot be negative, got %d", name, w)
		}
	}
	seen := make(map[int]bool)
	for _, f := range s.Fingers {
		if f < 1 || f > models.MaxFinger {
			return fmt.Errorf("finger %d outside 1-%d", f, models.MaxFinger)
		}
		if seen[f] {
			return fmt.Errorf("duplicate finger: %d", f)
		}
		seen[f] = true
	}
	return nil
}

// validateInstruments validates the custom instruments
func validateInstruments(instruments []Instrument) error {
	names := make(map[string]bool)
	for i, in := range instruments {
		if in.Name == "" {
			return fmt.Errorf("instrument %d: name cannot be empty", i)
		}
		if names[in.Name] {
			return fmt.Errorf("duplicate instrument name: %s", in.Name)
		}
		names[in.Name] = true
		if in.Frets < 0 {
			return fmt.Errorf("instrument %s: frets cannot be negative", in.Name)
		}
		if len(in.Strings) == 0 {
			return fmt.Errorf("instrument %s: at least one string must be defined", in.Name)
		}
		for s, hz := range in.Strings {
			if s < 1 {
				return fmt.Errorf("instrument %s: string numbers start at 1, got %d", in.Name, s)
			}
			if hz <= 0 {
				return fmt.Errorf("instrument %s: string %d frequency must be positive", in.Name, s)
			}
		}
	}
	return nil
}
