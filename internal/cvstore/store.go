package cvstore

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cv-builder/internal/cv"
	"cv-builder/internal/shared/metrics"
	"cv-builder/internal/shared/telemetry"
)

// ErrLoadFailed is returned by LoadResumeData when the fetch fails outright.
var ErrLoadFailed = errors.New("resume data failed to load")

const unknownErrorMessage = "unknown error"

// State is a point-in-time copy of the store.
type State struct {
	ResumeData *cv.Resume `json:"resumeData"`
	IsLoading  bool       `json:"isLoading"`
	Error      *string    `json:"error"`
}

// Store holds the current résumé and its load status. It is safe for concurrent use.
type Store struct {
	fetcher Fetcher

	mu        sync.Mutex
	resume    *cv.Resume
	loading   bool
	errMsg    *string
	gen       uint64
	attempted bool
}

// New creates a store with no résumé and the loading flag set.
func New(fetcher Fetcher) *Store {
	return &Store{
		fetcher: fetcher,
		loading: true,
	}
}

// State returns a copy of the current state. The returned Resume must be treated as read-only.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	st := State{IsLoading: s.loading}
	if s.resume != nil {
		r := *s.resume
		st.ResumeData = &r
	}
	if s.errMsg != nil {
		msg := *s.errMsg
		st.Error = &msg
	}
	return st
}

// Resume returns the current résumé and whether one is set.
func (s *Store) Resume() (cv.Resume, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.resume == nil {
		return cv.Resume{}, false
	}
	return *s.resume, true
}

// LoadResumeData fetches the résumé once. A non-success response leaves the current
// résumé in place without recording an error. Only the most recently started load
// commits its outcome; earlier overlapping loads are discarded when they finish.
func (s *Store) LoadResumeData(ctx context.Context) error {
	s.mu.Lock()
	s.gen++
	gen := s.gen
	s.attempted = true
	s.loading = true
	s.errMsg = nil
	s.mu.Unlock()

	metrics.IncLoad()
	start := time.Now()
	resume, err := s.fetcher.Fetch(ctx)
	metrics.ObserveLoadDurationMs(float64(time.Since(start).Microseconds()) / 1000.0)

	s.mu.Lock()
	defer s.mu.Unlock()

	if gen != s.gen {
		telemetry.Info("cv.load.superseded", map[string]any{
			"generation": gen,
			"latest":     s.gen,
		})
		return nil
	}
	s.loading = false

	switch {
	case err == nil:
		s.resume = &resume
		telemetry.Info("cv.load.ok", map[string]any{
			"name":        resume.Personal.Name,
			"experiences": len(resume.Experience),
			"educations":  len(resume.Education),
		})
		return nil
	case errors.Is(err, ErrNoData):
		metrics.IncLoadNotFound()
		telemetry.Info("cv.load.not_found", map[string]any{
			"detail": err.Error(),
			"note":   "no cv-data.json found, using defaults",
		})
		return nil
	default:
		metrics.IncLoadFailed()
		msg := err.Error()
		if msg == "" {
			msg = unknownErrorMessage
		}
		s.errMsg = &msg
		telemetry.Warn("cv.load.failed", map[string]any{
			"error": msg,
			"note":  "no cv-data.json found, using defaults",
		})
		return fmt.Errorf("%w: %v", ErrLoadFailed, err)
	}
}

// EnsureLoaded performs the first load if none has been attempted yet.
func (s *Store) EnsureLoaded(ctx context.Context) error {
	s.mu.Lock()
	attempted := s.attempted
	s.mu.Unlock()
	if attempted {
		return nil
	}
	return s.LoadResumeData(ctx)
}

// UpdateResumeData replaces the whole résumé. No merging, no validation.
func (s *Store) UpdateResumeData(r cv.Resume) {
	s.mu.Lock()
	s.resume = &r
	s.mu.Unlock()
	metrics.IncUpdate()
}

// ResetResumeData clears the résumé and any stored error. The loading flag is untouched.
func (s *Store) ResetResumeData() {
	s.mu.Lock()
	s.resume = nil
	s.errMsg = nil
	s.mu.Unlock()
	metrics.IncReset()
}
