package config

// Default returns the configuration used when no file is given. Parsed
// files are decoded on top of it, so omitted keys keep these values.
func Default() *Config {
	return &Config{
		LogLevel: "info",
		Server: Server{
			GRPCAddr:        ":50051",
			HTTPAddr:        ":8080",
			MaxStoredRuns:   100,
			ShutdownTimeout: "10s",
		},
		Search: Search{
			Restarts:              10,
			RestartDisruption:     5,
			LocalSearchDisruption: 3,
			Budget: Budget{
				BaseSteps:           20000,
				ReferenceNotes:      67,
				ReferenceCandidates: 26,
			},
			Window: Window{
				Size:          7,
				StaticContext: 3,
				Step:          3,
				Depth:         2,
			},
			PolishDepth: 1,
		},
	}
}
