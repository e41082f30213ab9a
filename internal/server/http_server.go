package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"google.golang.org/protobuf/encoding/protojson"
	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/types/dynamicpb"

	"github.com/Isinlor/guitar/pkg/logger"
	"github.com/Isinlor/guitar/pkg/utils"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 8 << 20

var (
	marshalOptions   = protojson.MarshalOptions{EmitUnpopulated: true}
	unmarshalOptions = protojson.UnmarshalOptions{}
)

// HTTPServer serves a Service over HTTP/JSON: fingering runs, their
// lookup by id, instruments, stats, health and optionally metrics.
type HTTPServer struct {
	mux     *http.ServeMux
	service *Service
}

// NewHTTPServer serves service over HTTP/JSON. When gatherer is not nil its
// metrics are exposed on /metrics.
func NewHTTPServer(service *Service, gatherer prometheus.Gatherer) *HTTPServer {
	s := &HTTPServer{
		mux:     http.NewServeMux(),
		service: service,
	}

	s.mux.HandleFunc("/healthz", s.handleHealthz)
	s.mux.HandleFunc("/v1/instruments", s.handleInstruments)
	s.mux.HandleFunc("/v1/fingerings", s.handleFingerings)
	s.mux.HandleFunc("/v1/fingerings/", s.handleFingeringByID)
	s.mux.HandleFunc("/v1/stats", s.handleStats)
	if gatherer != nil {
		s.mux.Handle("/metrics", promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return s
}

// Handler returns the HTTP handler. Every response carries an X-Request-ID
// header, which is also logged.
func (s *HTTPServer) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := r.Header.Get("X-Request-ID")
		if requestID == "" {
			requestID = utils.GenerateRequestID()
		}
		w.Header().Set("X-Request-ID", requestID)
		s.mux.ServeHTTP(w, r)
		logger.Debug("http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(start))
	})
}

func (s *HTTPServer) handleHealthz(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// handleInstruments handles GET /v1/instruments
func (s *HTTPServer) handleInstruments(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeProto(w, http.StatusOK, EncodeInstruments(s.service.Instruments()))
}

// handleFingerings handles POST /v1/fingerings
func (s *HTTPServer) handleFingerings(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "failed to read request body: "+err.Error())
		return
	}

	in := dynamicpb.NewMessage(schema.FingerTrackRequest)
	if err := unmarshalOptions.Unmarshal(body, in); err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	req := DecodeFingerTrackRequest(in)
	if req.InstrumentName == "" {
		s.writeError(w, http.StatusBadRequest, "instrumentName is required")
		return
	}

	resp, err := s.service.FingerTrack(r.Context(), req)
	if err != nil {
		s.writeError(w, httpStatus(err), err.Error())
		return
	}
	s.writeResponse(w, http.StatusCreated, resp)
}

// handleFingeringByID handles GET /v1/fingerings/{id}
func (s *HTTPServer) handleFingeringByID(w http.ResponseWriter, r *http.Request) {
	runID := strings.TrimPrefix(r.URL.Path, "/v1/fingerings/")
	if runID == "" || strings.Contains(runID, "/") {
		s.writeError(w, http.StatusBadRequest, "run ID is required")
		return
	}
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	resp, err := s.service.GetFingering(runID)
	if err != nil {
		s.writeError(w, httpStatus(err), err.Error())
		return
	}
	s.writeResponse(w, http.StatusOK, resp)
}

// handleStats handles GET /v1/stats: aggregated stage and run statistics
func (s *HTTPServer) handleStats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		s.writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	s.writeJSON(w, http.StatusOK, s.service.Trace().GetSummary())
}

func (s *HTTPServer) writeResponse(w http.ResponseWriter, status int, resp *FingerTrackResponse) {
	m, err := EncodeFingerTrackResponse(resp)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeProto(w, status, m)
}

func (s *HTTPServer) writeProto(w http.ResponseWriter, status int, m proto.Message) {
	data, err := marshalOptions.Marshal(m)
	if err != nil {
		logger.Error("failed to encode JSON response", "error", err)
		s.writeError(w, http.StatusInternalServerError, "encode failed")
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if _, err := w.Write(data); err != nil {
		logger.Error("failed to write response", "error", err)
	}
}

func (s *HTTPServer) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		logger.Error("failed to encode JSON response", "error", err)
	}
}

func (s *HTTPServer) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]any{
		"error": message,
	})
}
