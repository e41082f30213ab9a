package server

import (
	"fmt"
	"sync"

	"github.com/Isinlor/guitar/pkg/utils"
)

// RunStore keeps the most recent fingering results, evicting the oldest
// once capacity is reached.
type RunStore struct {
	mu       sync.RWMutex
	capacity int
	runs     map[string]*FingerTrackResponse
	order    []string // oldest first
}

// NewRunStore creates a store holding at most capacity runs.
func NewRunStore(capacity int) *RunStore {
	if capacity <= 0 {
		capacity = 1
	}
	return &RunStore{
		capacity: capacity,
		runs:     make(map[string]*FingerTrackResponse, capacity),
	}
}

// Put stores resp, assigning a run id when it has none, and returns the id.
func (s *RunStore) Put(resp *FingerTrackResponse) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if resp.RunID == "" {
		resp.RunID = utils.GenerateRunID()
	}
	if _, exists := s.runs[resp.RunID]; exists {
		return "", fmt.Errorf("run already exists: %s", resp.RunID)
	}
	for len(s.order) >= s.capacity {
		delete(s.runs, s.order[0])
		s.order = s.order[1:]
	}
	s.runs[resp.RunID] = resp
	s.order = append(s.order, resp.RunID)
	return resp.RunID, nil
}

// Get returns the run with the given id.
func (s *RunStore) Get(runID string) (*FingerTrackResponse, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	resp, ok := s.runs[runID]
	return resp, ok
}

// List returns up to limit runs, newest first.
func (s *RunStore) List(limit int) []*FingerTrackResponse {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 || limit > len(s.order) {
		limit = len(s.order)
	}
	out := make([]*FingerTrackResponse, 0, limit)
	for i := len(s.order) - 1; i >= 0 && len(out) < limit; i-- {
		out = append(out, s.runs[s.order[i]])
	}
	return out
}

// Len returns the number of stored runs.
func (s *RunStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.order)
}
