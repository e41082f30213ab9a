// Package server exposes the fingering engine over gRPC and HTTP/JSON.
// Both transports share one Service; finished runs are kept in a bounded
// RunStore so they can be fetched again by id.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/Isinlor/guitar/internal/fretboard"
	"github.com/Isinlor/guitar/internal/metrics"
	"github.com/Isinlor/guitar/internal/search"
	"github.com/Isinlor/guitar/pkg/logger"
)

// Service fingers tracks on registered instruments.
type Service struct {
	registry *fretboard.Registry
	opts     search.Options
	store    *RunStore
	trace    *metrics.Collector
	recorder *metrics.Recorder
	log      *slog.Logger
}

// NewService creates a service running the pipeline with opts.
func NewService(registry *fretboard.Registry, opts search.Options, store *RunStore) *Service {
	return &Service{
		registry: registry,
		opts:     opts,
		store:    store,
		trace:    metrics.NewCollector(),
		log:      logger.Component("server"),
	}
}

// WithRecorder exports run metrics to Prometheus.
func (s *Service) WithRecorder(r *metrics.Recorder) *Service {
	s.recorder = r
	return s
}

// WithLogger sets the service logger.
func (s *Service) WithLogger(l *slog.Logger) *Service {
	s.log = l
	return s
}

// Trace returns the collector holding stage and run statistics.
func (s *Service) Trace() *metrics.Collector { return s.trace }

// FingerTrack computes and stores the fingering of a track.
func (s *Service) FingerTrack(ctx context.Context, req *FingerTrackRequest) (*FingerTrackResponse, error) {
	start := time.Now()
	resp, err := s.fingerTrack(ctx, req)
	elapsed := time.Since(start)

	if s.recorder != nil {
		var res *search.Result
		if resp != nil {
			res = &search.Result{Instrument: resp.InstrumentName, Complexity: resp.Complexity, Notes: resp.Notes}
		}
		s.recorder.ObserveRun(req.InstrumentName, res, err, elapsed)
	}
	if err != nil {
		s.log.Warn("fingering failed",
			"instrument", req.InstrumentName,
			"notes", len(req.NoteEvents),
			"result", metrics.ResultLabel(err),
			"error", err)
		return nil, err
	}
	s.log.Info("fingering computed",
		"run_id", resp.RunID,
		"instrument", resp.InstrumentName,
		"notes", len(resp.Notes),
		"complexity", resp.Complexity,
		"duration", elapsed)
	return resp, nil
}

func (s *Service) fingerTrack(ctx context.Context, req *FingerTrackRequest) (*FingerTrackResponse, error) {
	instrument, err := s.registry.Lookup(req.InstrumentName)
	if err != nil {
		return nil, err
	}

	opts := s.opts
	if req.Seed != 0 {
		opts.Seed = req.Seed
	}
	optimizer := search.NewOptimizer(opts).
		WithLogger(s.log).
		WithProgressReporter(func(sr search.StageResult) {
			metrics.RecordStage(s.trace, instrument.Name(), sr)
			if s.recorder != nil {
				s.recorder.ObserveStage(sr)
			}
		})

	start := time.Now()
	res, err := optimizer.Run(ctx, instrument, req.NoteEvents)
	if err != nil {
		return nil, err
	}
	metrics.RecordRun(s.trace, res, time.Since(start))

	resp := &FingerTrackResponse{
		InstrumentName: res.Instrument,
		Transposition:  res.Transposition,
		Complexity:     res.Complexity,
		Notes:          res.Notes,
		Seed:           res.Seed,
	}
	if _, err := s.store.Put(resp); err != nil {
		return nil, fmt.Errorf("failed to store run: %w", err)
	}
	return resp, nil
}

// GetFingering returns a stored run.
func (s *Service) GetFingering(runID string) (*FingerTrackResponse, error) {
	if runID == "" {
		return nil, fmt.Errorf("%w: run id is required", ErrRunNotFound)
	}
	resp, ok := s.store.Get(runID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, runID)
	}
	return resp, nil
}

// Instruments lists the registered instruments in registration order.
func (s *Service) Instruments() []InstrumentInfo {
	all := s.registry.All()
	out := make([]InstrumentInfo, len(all))
	for i, in := range all {
		out[i] = NewInstrumentInfo(in)
	}
	return out
}
