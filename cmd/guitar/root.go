package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Isinlor/guitar/pkg/config"
	"github.com/Isinlor/guitar/pkg/logger"
)

// app carries state shared by the subcommands.
type app struct {
	configPath string
	logLevel   string
	cfg        *config.Config
}

func newRootCmd() *cobra.Command {
	a := &app{}
	root := &cobra.Command{
		Use:           "guitar",
		Short:         "Find easy fingerings for melodies on fretted instruments",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd)
		},
	}
	root.PersistentFlags().StringVar(&a.configPath, "config", "", "path to a YAML config file")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	root.AddCommand(newTabCmd(a), newServeCmd(a), newInstrumentsCmd(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.LoadOrDefault(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		if !logger.ValidLevel(a.logLevel) {
			return fmt.Errorf("invalid log level: %s", a.logLevel)
		}
		cfg.LogLevel = a.logLevel
	}
	a.cfg = cfg
	logger.SetDefault(logger.NewText(cfg.LogLevel, os.Stderr))
	return nil
}
