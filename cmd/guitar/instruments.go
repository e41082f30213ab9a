package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Isinlor/guitar/internal/server"
	"github.com/Isinlor/guitar/internal/setup"
)

func newInstrumentsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "instruments",
		Short: "List the known instruments",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			registry, err := setup.Registry(a.cfg)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tSTRINGS\tFRETS\tRANGE")
			for _, in := range registry.All() {
				info := server.NewInstrumentInfo(in)
				fmt.Fprintf(w, "%s\t%d\t%d\t%s-%s\n", info.Name, info.Strings, info.Frets,
					info.LowestPitch.Name(), info.HighestPitch.Name())
			}
			return w.Flush()
		},
	}
}
