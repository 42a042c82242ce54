// Package service implements the test runner: the orchestrator that owns
// the algorithm registry, short-circuits trivial candidates, dispatches to
// one or all algorithms, and assembles timed result records.
package service

import (
	"context"
	"fmt"
	"log/slog"
	"math/big"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"primelab/internal/primality/algorithm"
	"primelab/internal/primality/metrics"
	"primelab/internal/primality/models"
	"primelab/internal/primality/probability"
	dErrors "primelab/pkg/domain-errors"
)

// minElapsed clamps measured durations so sub-resolution runs never display
// as zero.
const minElapsed = time.Microsecond

var two = big.NewInt(2)

type Service struct {
	registry *algorithm.Registry
	logger   *slog.Logger
	metrics  *metrics.Metrics
	newRand  func() *rand.Rand
	parallel bool
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithRandFactory injects the random source constructor, one fresh source
// per algorithm run. Tests pass a seeded factory for reproducible draws.
func WithRandFactory(f func() *rand.Rand) Option {
	return func(s *Service) {
		s.newRand = f
	}
}

// WithParallelComparison makes RunAllTests execute algorithms concurrently.
// Algorithm runs share no mutable state, so this only changes wall-clock
// behavior; result order stays registry order.
func WithParallelComparison(parallel bool) Option {
	return func(s *Service) {
		s.parallel = parallel
	}
}

func New(registry *algorithm.Registry, opts ...Option) (*Service, error) {
	if registry == nil {
		return nil, fmt.Errorf("algorithm registry is required")
	}

	svc := &Service{
		registry: registry,
		logger:   slog.Default(),
		newRand: func() *rand.Rand {
			return rand.New(rand.NewSource(time.Now().UnixNano()))
		},
	}

	for _, opt := range opts {
		opt(svc)
	}

	return svc, nil
}

// ListTests returns the descriptors of all registered algorithms in registry
// order.
func (s *Service) ListTests() []models.AlgorithmInfo {
	tests := s.registry.All()
	out := make([]models.AlgorithmInfo, len(tests))
	for i, t := range tests {
		out[i] = t.Info()
	}
	return out
}

// IsSupported reports whether a test id is registered.
func (s *Service) IsSupported(id string) bool {
	_, ok := s.registry.Lookup(models.AlgorithmID(id))
	return ok
}

// RecommendedRounds returns the fixed per-algorithm default round count.
func (s *Service) RecommendedRounds(id string) (int, error) {
	test, ok := s.registry.Lookup(models.AlgorithmID(id))
	if !ok {
		return 0, dErrors.Newf(dErrors.CodeNotFound, "unknown test id: %s", id)
	}
	return test.Info().DefaultRounds, nil
}

// RoundsForReliability returns the smallest round count meeting the target
// reliability percentage for the given algorithm, and whether the search cap
// forced a fallback.
func (s *Service) RoundsForReliability(id string, target float64) (rounds int, capped bool, err error) {
	test, ok := s.registry.Lookup(models.AlgorithmID(id))
	if !ok {
		return 0, false, dErrors.Newf(dErrors.CodeNotFound, "unknown test id: %s", id)
	}
	if target <= 0 || target > 100 {
		return 0, false, dErrors.Newf(dErrors.CodeInvalidInput, "target reliability must be in (0, 100], got %v", target)
	}
	rounds, capped = probability.RecommendRounds(test.Info().ID, target)
	return rounds, capped, nil
}

// RunTest runs one named algorithm against a candidate.
func (s *Service) RunTest(ctx context.Context, id string, number string, rounds int) (*models.TestResult, error) {
	test, ok := s.registry.Lookup(models.AlgorithmID(id))
	if !ok {
		return nil, dErrors.Newf(dErrors.CodeNotFound, "unknown test id: %s", id)
	}

	candidate, err := models.ParseCandidate(number)
	if err != nil {
		return nil, err
	}
	rounds, err = models.ParseRounds(rounds)
	if err != nil {
		return nil, err
	}

	result, runErr := s.runOne(test, candidate, rounds)
	if runErr != nil {
		s.logger.ErrorContext(ctx, "algorithm run failed",
			"algorithm", id,
			"candidate", candidate.String(),
			"error", runErr,
		)
		return nil, dErrors.Wrap(runErr, dErrors.CodeInternal, "algorithm run failed")
	}

	s.metrics.ObserveRun(result.Algorithm, result.Verdict, result.Elapsed)
	s.logger.InfoContext(ctx, "primality test finished",
		"algorithm", id,
		"candidate", candidate.String(),
		"verdict", result.Verdict,
		"iterations", result.Iterations,
		"duration_ms", result.Elapsed.Milliseconds(),
	)
	return &result, nil
}

// RunAllTests runs every registered algorithm against the candidate, in
// registry order. One algorithm failing degrades only its own entry; the
// batch never aborts.
func (s *Service) RunAllTests(ctx context.Context, number string, rounds int) (*models.ComparisonResult, error) {
	candidate, err := models.ParseCandidate(number)
	if err != nil {
		return nil, err
	}
	rounds, err = models.ParseRounds(rounds)
	if err != nil {
		return nil, err
	}

	tests := s.registry.All()
	results := make([]models.TestResult, len(tests))
	start := time.Now()

	if s.parallel {
		g, _ := errgroup.WithContext(ctx)
		for i, test := range tests {
			i, test := i, test
			g.Go(func() error {
				results[i] = s.runOrDegrade(ctx, test, candidate, rounds)
				return nil
			})
		}
		// Runs never return errors; failures are degraded in place.
		_ = g.Wait()
	} else {
		for i, test := range tests {
			results[i] = s.runOrDegrade(ctx, test, candidate, rounds)
		}
	}

	total := time.Since(start)
	if total < minElapsed {
		total = minElapsed
	}

	s.metrics.ObserveComparison()
	s.logger.InfoContext(ctx, "comparison finished",
		"candidate", candidate.String(),
		"algorithms", len(results),
		"duration_ms", total.Milliseconds(),
	)

	return &models.ComparisonResult{
		Candidate:    candidate.String(),
		Results:      results,
		TotalElapsed: total,
	}, nil
}

// runOrDegrade converts an unexpected failure into a degraded result entry
// so sibling algorithms in a comparison still complete.
func (s *Service) runOrDegrade(ctx context.Context, test algorithm.Test, candidate models.Candidate, rounds int) models.TestResult {
	result, err := s.runOne(test, candidate, rounds)
	if err == nil {
		s.metrics.ObserveRun(result.Algorithm, result.Verdict, result.Elapsed)
		return result
	}

	s.metrics.ObserveDegraded()
	s.logger.ErrorContext(ctx, "algorithm failed during comparison",
		"algorithm", test.Info().ID,
		"candidate", candidate.String(),
		"error", err,
	)
	return models.TestResult{
		ID:              uuid.NewString(),
		Candidate:       candidate.String(),
		Algorithm:       test.Info().ID,
		Verdict:         models.VerdictUnknown,
		Elapsed:         minElapsed,
		Confidence:      0,
		ConfidenceLabel: "0%",
		Message:         fmt.Sprintf("algorithm failed: %v", err),
	}
}

// runOne executes the full per-invocation state machine: trivial-case gate,
// applicability check, timed execution, confidence derivation, and result
// assembly.
func (s *Service) runOne(test algorithm.Test, candidate models.Candidate, rounds int) (result models.TestResult, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", test.Info().ID, r)
		}
	}()

	info := test.Info()
	n := candidate.Value()

	if trivial, ok := s.trivialResult(info.ID, candidate, n); ok {
		return trivial, nil
	}

	if !test.Applicable(n) {
		s.metrics.ObserveDegraded()
		return models.TestResult{
			ID:              uuid.NewString(),
			Candidate:       candidate.String(),
			Algorithm:       info.ID,
			Verdict:         models.VerdictUnknown,
			Elapsed:         minElapsed,
			Iterations:      0,
			Confidence:      0,
			ConfidenceLabel: "0%",
			Message:         fmt.Sprintf("%s is not applicable to %s", info.Name, candidate),
		}, nil
	}

	start := time.Now()
	outcome := test.Run(n, rounds, s.newRand())
	elapsed := time.Since(start)
	if elapsed < minElapsed {
		elapsed = minElapsed
	}

	confidence, label := s.deriveConfidence(info, outcome)

	return models.TestResult{
		ID:              uuid.NewString(),
		Candidate:       candidate.String(),
		Algorithm:       info.ID,
		Verdict:         outcome.Verdict,
		Elapsed:         elapsed,
		Iterations:      outcome.Rounds,
		Confidence:      confidence,
		ConfidenceLabel: label,
		Message:         describeOutcome(candidate, info, outcome),
		LimitHit:        outcome.LimitHit,
		Trace:           outcome.Steps,
	}, nil
}

// trivialResult short-circuits candidates decidable by inspection, uniformly
// for every algorithm: n < 2 composite, n = 2 prime, even n > 2 composite.
func (s *Service) trivialResult(id models.AlgorithmID, candidate models.Candidate, n *big.Int) (models.TestResult, bool) {
	var (
		verdict models.Verdict
		message string
	)
	switch {
	case n.Cmp(two) < 0:
		verdict = models.VerdictComposite
		message = fmt.Sprintf("%s is less than 2 and therefore not prime", candidate)
	case n.Cmp(two) == 0:
		verdict = models.VerdictPrime
		message = "2 is the only even prime"
	case n.Bit(0) == 0:
		verdict = models.VerdictComposite
		message = fmt.Sprintf("%s is even and greater than 2, divisible by 2", candidate)
	default:
		return models.TestResult{}, false
	}

	return models.TestResult{
		ID:              uuid.NewString(),
		Candidate:       candidate.String(),
		Algorithm:       id,
		Verdict:         verdict,
		Elapsed:         minElapsed,
		Iterations:      1,
		Confidence:      100,
		ConfidenceLabel: "100%",
		Message:         message,
		Trace: []models.Step{
			{Kind: models.StepNote, Detail: "trivial case: " + message},
		},
	}, true
}

// deriveConfidence applies the result invariant: deterministic algorithms
// and certain outcomes (composite witnesses, directly decided small
// candidates) report 100; probable-prime verdicts report the algorithm's
// reliability bound; degraded outcomes report zero.
func (s *Service) deriveConfidence(info models.AlgorithmInfo, outcome algorithm.Outcome) (float64, string) {
	switch {
	case outcome.Verdict == models.VerdictUnknown:
		return 0, "0%"
	case info.Deterministic || outcome.Certain:
		return 100, "100%"
	default:
		r := probability.Reliability(info.ID, outcome.Rounds)
		return r, probability.FormatReliability(r)
	}
}

func describeOutcome(candidate models.Candidate, info models.AlgorithmInfo, outcome algorithm.Outcome) string {
	switch outcome.Verdict {
	case models.VerdictComposite:
		if outcome.Witness != nil {
			// Rounds == 0 means the witness came from a pre-check, not a
			// witness round.
			if outcome.Rounds > 0 {
				return fmt.Sprintf("%s is composite (witness %s, found in round %d)", candidate, outcome.Witness, outcome.Rounds)
			}
			return fmt.Sprintf("%s is composite (witness %s)", candidate, outcome.Witness)
		}
		return fmt.Sprintf("%s is composite", candidate)
	case models.VerdictPrime:
		if outcome.Certain || info.Certified {
			return fmt.Sprintf("%s is prime", candidate)
		}
		if info.Deterministic {
			return fmt.Sprintf("%s is prime by %s (heuristic, not a certified proof)", candidate, info.Name)
		}
		return fmt.Sprintf("%s is probably prime after %d rounds", candidate, outcome.Rounds)
	default:
		return fmt.Sprintf("%s could not be decided by %s", candidate, info.Name)
	}
}
