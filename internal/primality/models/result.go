package models

import "time"

// TestResult is the record assembled by the runner at the end of one
// algorithm invocation. Never mutated after creation.
type TestResult struct {
	ID         string
	Candidate  string
	Algorithm  AlgorithmID
	Verdict    Verdict
	Elapsed    time.Duration
	Iterations int
	// Confidence is a percentage. Deterministic algorithms and composite
	// verdicts report 100; probable-prime verdicts report the
	// algorithm-specific reliability bound.
	Confidence      float64
	ConfidenceLabel string
	Message         string
	// LimitHit is set when a hard iteration ceiling forced a fallback
	// somewhere in the run, so callers can tell a best-effort value from
	// a fully computed one.
	LimitHit bool
	Trace    []Step
}

// ComparisonResult holds one result per registered algorithm, in registry
// order, plus the total wall-clock spent. A single algorithm failing
// degrades its own entry without disturbing the others.
type ComparisonResult struct {
	Candidate    string
	Results      []TestResult
	TotalElapsed time.Duration
}
