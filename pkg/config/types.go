package config

import "time"

// Config represents the fingering service configuration
type Config struct {
	LogLevel    string       `yaml:"log_level"`
	Server      Server       `yaml:"server"`
	Search      Search       `yaml:"search"`
	Instruments []Instrument `yaml:"instruments,omitempty"`
}

// Server represents the gRPC and HTTP listeners of `guitar serve`
type Server struct {
	GRPCAddr        string `yaml:"grpc_addr"`
	HTTPAddr        string `yaml:"http_addr"`
	MaxStoredRuns   int    `yaml:"max_stored_runs"`
	ShutdownTimeout string `yaml:"shutdown_timeout"` // e.g., "10s"
}

// Search represents the optimization pipeline parameters
type Search struct {
	Seed                  int64          `yaml:"seed"` // 0 seeds from the clock
	Restarts              int            `yaml:"restarts"`
	RestartDisruption     int            `yaml:"restart_disruption"`
	LocalSearchDisruption int            `yaml:"local_search_disruption"`
	Budget                Budget         `yaml:"budget"`
	Window                Window         `yaml:"window"`
	PolishDepth           int            `yaml:"polish_depth"`
	Weights               map[string]int `yaml:"weights,omitempty"` // overrides of the default weights
	Fingers               []int          `yaml:"fingers,omitempty"`
}

// Budget represents the local search step budget
type Budget struct {
	BaseSteps           int `yaml:"base_steps"`
	ReferenceNotes      int `yaml:"reference_notes"`
	ReferenceCandidates int `yaml:"reference_candidates"`
}

// Window represents the sliding-window exhaustive search
type Window struct {
	Size          int `yaml:"size"`
	StaticContext int `yaml:"static_context"`
	Step          int `yaml:"step"`
	Depth         int `yaml:"depth"`
}

// Instrument represents a custom instrument
type Instrument struct {
	Name    string          `yaml:"name"`
	Frets   int             `yaml:"frets"`
	Strings map[int]float64 `yaml:"strings"` // string number -> open frequency in Hz
}

// GetShutdownTimeout parses the shutdown timeout string to time.Duration
func (s *Server) GetShutdownTimeout() (time.Duration, error) {
	return time.ParseDuration(s.ShutdownTimeout)
}
