// Command guitar computes playable fingerings for MIDI tracks and serves the
// fingering engine over gRPC and HTTP.
package main

import (
	"os"

	"github.com/Isinlor/guitar/pkg/logger"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		logger.Error("command failed", "error", err)
		os.Exit(1)
	}
}
