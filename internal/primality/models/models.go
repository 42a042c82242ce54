// Package models defines the primality domain types: candidates, round
// counts, algorithm descriptors, structured execution traces, and result
// records. Validation lives here so every entry point enforces the same
// invariants.
package models

import (
	"math/big"

	dErrors "primelab/pkg/domain-errors"
)

// AlgorithmID identifies a registered primality test.
type AlgorithmID string

const (
	AlgorithmTrialDivision AlgorithmID = "trial-division"
	AlgorithmFermat        AlgorithmID = "fermat"
	AlgorithmMillerRabin   AlgorithmID = "miller-rabin"
	AlgorithmAKS           AlgorithmID = "aks"
)

// AlgorithmInfo is the immutable descriptor for one algorithm. Created once
// at registry construction and never mutated.
type AlgorithmInfo struct {
	ID            AlgorithmID
	Name          string
	Description   string
	Deterministic bool
	// Certified distinguishes a proven deterministic decision procedure
	// from a deterministic heuristic. The AKS variant here samples its
	// polynomial-identity checks, so it is deterministic but not certified.
	Certified     bool
	DefaultRounds int
}

// Verdict is the outcome of one primality decision.
type Verdict string

const (
	VerdictPrime     Verdict = "prime"
	VerdictComposite Verdict = "composite"
	// VerdictUnknown marks degraded results: inapplicable algorithm or a
	// failure captured during a comparison run.
	VerdictUnknown Verdict = "unknown"
)

// MaxRounds bounds probabilistic iterations at the boundary. Algorithms
// themselves tolerate any positive round count.
const MaxRounds = 100

// Candidate is an arbitrary-precision candidate number, parsed from decimal
// text at the boundary.
type Candidate struct {
	value *big.Int
	text  string
}

// ParseCandidate validates decimal text as a positive integer. Values that
// fail to parse fully, or that are zero or negative, are rejected with an
// invalid_input error before any algorithm sees them.
func ParseCandidate(s string) (Candidate, error) {
	if s == "" {
		return Candidate{}, dErrors.New(dErrors.CodeInvalidInput, "candidate must not be empty")
	}
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return Candidate{}, dErrors.Newf(dErrors.CodeInvalidInput, "candidate is not a decimal integer: %q", s)
	}
	if n.Sign() <= 0 {
		return Candidate{}, dErrors.Newf(dErrors.CodeInvalidInput, "candidate must be positive, got %s", n)
	}
	return Candidate{value: n, text: n.String()}, nil
}

// Value returns a copy of the candidate so algorithm code can never mutate
// the parsed original.
func (c Candidate) Value() *big.Int {
	return new(big.Int).Set(c.value)
}

func (c Candidate) String() string {
	return c.text
}

// ParseRounds validates a requested round count against [1, MaxRounds].
func ParseRounds(n int) (int, error) {
	if n < 1 || n > MaxRounds {
		return 0, dErrors.Newf(dErrors.CodeInvalidInput, "rounds must be between 1 and %d, got %d", MaxRounds, n)
	}
	return n, nil
}
