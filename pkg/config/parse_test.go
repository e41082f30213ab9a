package config

import "testing"

func TestParseConfigYAMLStringKeepsDefaults(t *testing.T) {
	cfg, err := ParseConfigYAMLString(`
log_level: debug
search:
  seed: 7
  window:
    depth: 1
`)
	if err != nil {
		t.Fatalf("ParseConfigYAMLString failed: %v", err)
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("expected log level debug, got %q", cfg.LogLevel)
	}
	if cfg.Search.Seed != 7 || cfg.Search.Window.Depth != 1 {
		t.Fatalf("expected overrides to apply, got %+v", cfg.Search)
	}
	if cfg.Search.Window.Size != 7 || cfg.Search.Restarts != 10 {
		t.Fatalf("expected defaults to survive, got %+v", cfg.Search)
	}
	if cfg.Server.GRPCAddr != ":50051" {
		t.Fatalf("expected default grpc addr, got %q", cfg.Server.GRPCAddr)
	}
}

func TestParseConfigYAMLStringInvalid(t *testing.T) {
	tests := []struct {
		name     string
		yamlText string
	}{
		{name: "Malformed YAML", yamlText: "log_level: [info"},
		{name: "Invalid log level", yamlText: "log_level: loud"},
		{name: "No listeners", yamlText: "server: {grpc_addr: '', http_addr: ''}"},
		{name: "Zero stored runs", yamlText: "server: {max_stored_runs: 0}"},
		{name: "Bad shutdown timeout", yamlText: "server: {shutdown_timeout: soon}"},
		{name: "Negative shutdown timeout", yamlText: "server: {shutdown_timeout: -1s}"},
		{name: "Negative restarts", yamlText: "search: {restarts: -1}"},
		{name: "Zero restart disruption", yamlText: "search: {restart_disruption: 0}"},
		{name: "Zero local disruption", yamlText: "search: {local_search_disruption: 0}"},
		{name: "Negative base steps", yamlText: "search: {budget: {base_steps: -5}}"},
		{name: "Zero reference notes", yamlText: "search: {budget: {reference_notes: 0}}"},
		{name: "Zero window", yamlText: "search: {window: {size: 0}}"},
		{name: "Context wider than window", yamlText: "search: {window: {static_context: 9}}"},
		{name: "Zero context", yamlText: "search: {window: {static_context: 0}}"},
		{name: "Negative polish depth", yamlText: "search: {polish_depth: -1}"},
		{name: "Negative weight", yamlText: "search: {weights: {hand_movement: -3}}"},
		{name: "Finger out of range", yamlText: "search: {fingers: [1, 5]}"},
		{name: "Duplicate finger", yamlText: "search: {fingers: [2, 2]}"},
		{name: "Unnamed instrument", yamlText: "instruments: [{frets: 5, strings: {1: 440}}]"},
		{name: "Duplicate instrument", yamlText: "instruments: [{name: a, strings: {1: 440}}, {name: a, strings: {1: 220}}]"},
		{name: "Negative frets", yamlText: "instruments: [{name: a, frets: -1, strings: {1: 440}}]"},
		{name: "No strings", yamlText: "instruments: [{name: a, frets: 3}]"},
		{name: "String zero", yamlText: "instruments: [{name: a, strings: {0: 440}}]"},
		{name: "Zero frequency", yamlText: "instruments: [{name: a, strings: {1: 0}}]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := ParseConfigYAMLString(tt.yamlText); err == nil {
				t.Fatalf("expected error for %s", tt.name)
			}
		})
	}
}
