package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/internal/midi"
	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/internal/server"
	"github.com/Isinlor/guitar/internal/setup"
	"github.com/Isinlor/guitar/internal/tab"
	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/models"
)

type tabOptions struct {
	track     int
	seed      int64
	json      bool
	writeMIDI string
	remote    string
}

func newTabCmd(a *app) *cobra.Command {
	opts := &tabOptions{}
	cmd := &cobra.Command{
		Use:   "tab <midi-file> [instrument]",
		Short: "Print a tablature for a MIDI track",
		Long: `Reads a Standard MIDI File, transposes the selected track so it fits the
instrument and prints the easiest fingering found as tablature.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			instrument := fretboard.GuitarName
			if len(args) > 1 {
				instrument = args[1]
			}
			return a.runTab(cmd.Context(), cmd.OutOrStdout(), args[0], instrument, opts)
		},
	}
	cmd.Flags().IntVar(&opts.track, "track", -1, "track number to read (default: first track with notes)")
	cmd.Flags().Int64Var(&opts.seed, "seed", 0, "random seed (overrides config)")
	cmd.Flags().BoolVar(&opts.json, "json", false, "print the result as JSON")
	cmd.Flags().StringVar(&opts.writeMIDI, "write-midi", "", "write the transposed track to this MIDI file")
	cmd.Flags().StringVar(&opts.remote, "remote", "", "address of a running server to delegate to")
	return cmd
}

func (a *app) runTab(ctx context.Context, out io.Writer, path, name string, opts *tabOptions) error {
	registry, err := setup.Registry(a.cfg)
	if err != nil {
		return err
	}
	instrument, err := registry.Lookup(name)
	if err != nil {
		return err
	}

	tracks, err := midi.ReadFile(path)
	if err != nil {
		return err
	}
	track, err := midi.SelectTrack(tracks, opts.track)
	if err != nil {
		return err
	}
	logger.Debug("track selected", "track", track.Number, "notes", len(track.Notes))

	var notes []models.FingeredNote
	var result any
	if opts.remote != "" {
		resp, err := fingerRemote(ctx, opts.remote, &server.FingerTrackRequest{
			InstrumentName: instrument.Name(),
			NoteEvents:     track.Notes,
			Seed:           opts.seed,
		})
		if err != nil {
			return err
		}
		notes, result = resp.Notes, resp
	} else {
		searchOpts, err := setup.SearchOptions(a.cfg.Search)
		if err != nil {
			return err
		}
		if opts.seed != 0 {
			searchOpts.Seed = opts.seed
		}
		res, err := search.NewOptimizer(searchOpts).Run(ctx, instrument, track.Notes)
		if err != nil {
			return err
		}
		notes, result = res.Notes, res
	}

	if opts.writeMIDI != "" {
		events := make([]models.NoteEvent, len(notes))
		for i, n := range notes {
			events[i] = n.NoteEvent
		}
		if err := midi.WriteFile(opts.writeMIDI, events); err != nil {
			return err
		}
		logger.Info("transposed track written", "path", opts.writeMIDI)
	}

	if opts.json {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}
	return tab.Write(out, instrument, notes)
}

func fingerRemote(ctx context.Context, addr string, req *server.FingerTrackRequest) (*server.FingerTrackResponse, error) {
	client, err := server.Dial(addr)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	resp, err := client.FingerTrack(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("remote fingering failed: %w", err)
	}
	return resp, nil
}
