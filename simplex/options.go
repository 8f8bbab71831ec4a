package simplex

import (
	"log/slog"

	"q.log/tableau/logging"
	"q.log/tableau/penalty"
)

type settings struct {
	resolver      penalty.Resolver
	tol           float64
	maxIterations int
	logger        *slog.Logger
	observer      func(Event)

	// set by Solve, not by callers
	phase       int
	numOriginal int
}

type Option func(*settings)

// WithResolver sets how the entering column is chosen when reduced costs
// carry M terms. The default is penalty.Lexicographic.
func WithResolver(r penalty.Resolver) Option {
	return func(s *settings) {
		s.resolver = r
	}
}

// WithTolerance sets the threshold below which magnitudes count as zero.
func WithTolerance(tol float64) Option {
	return func(s *settings) {
		if tol > 0 {
			s.tol = tol
		}
	}
}

// WithMaxIterations replaces the combinatorial iteration cap. Zero keeps
// the default.
func WithMaxIterations(n int) Option {
	return func(s *settings) {
		if n > 0 {
			s.maxIterations = n
		}
	}
}

func WithLogger(l *slog.Logger) Option {
	return func(s *settings) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithObserver registers fn to receive a snapshot after the basis
// reduction and after every pivot.
func WithObserver(fn func(Event)) Option {
	return func(s *settings) {
		s.observer = fn
	}
}

func withPhase(phase int) Option {
	return func(s *settings) {
		s.phase = phase
	}
}

func withOriginal(n int) Option {
	return func(s *settings) {
		s.numOriginal = n
	}
}

func newSettings(opts ...Option) settings {
	s := settings{
		tol:         penalty.DefaultTolerance,
		logger:      logging.Discard(),
		numOriginal: -1,
	}
	for _, opt := range opts {
		opt(&s)
	}
	if s.resolver == nil {
		s.resolver = penalty.Lexicographic{Tol: s.tol}
	}
	return s
}

// Event reports engine progress to an observer.
type Event struct {
	Phase     int
	Iteration int
	State     State

	// Entering and Leaving are 1-based variable indices, 0 before the
	// first pivot.
	Entering int
	Leaving  int

	Snapshot Snapshot
}
