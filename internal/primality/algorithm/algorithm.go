// Package algorithm implements the interchangeable primality tests behind a
// single capability interface, plus the ordered registry the runner
// dispatches against. Adding an algorithm means adding an implementation and
// a registry entry; the runner never changes.
package algorithm

import (
	"math/big"
	"math/rand"

	"primelab/internal/primality/models"
)

// Outcome is what one algorithm run reports back to the runner. Iteration
// counts and witnesses travel structurally; nothing downstream parses trace
// text to recover them.
type Outcome struct {
	Verdict models.Verdict
	// Rounds is the number of iterations actually executed. On early
	// composite termination this is the round index the witness was
	// found at, not the requested count.
	Rounds int
	// Witness proves compositeness when non-nil.
	Witness *big.Int
	// Certain marks verdicts that hold with certainty regardless of the
	// algorithm being probabilistic: composite witnesses, and small
	// candidates decided directly.
	Certain bool
	// LimitHit marks a hard iteration ceiling having forced a fallback.
	LimitHit bool
	Steps    []models.Step
}

// Test is the capability set every primality algorithm implements.
type Test interface {
	Info() models.AlgorithmInfo
	// Applicable reports whether the algorithm can decide this candidate.
	// The runner's trivial-case gate normally screens candidates first;
	// implementations must still degrade safely when called directly.
	Applicable(n *big.Int) bool
	// Run executes the test. rounds bounds probabilistic iterations and
	// is ignored by deterministic tests. rnd supplies all randomness so
	// runs are reproducible under a seeded source.
	Run(n *big.Int, rounds int, rnd *rand.Rand) Outcome
}

// Registry is the ordered, immutable set of available algorithms. Built
// once at startup; read-only afterwards, so concurrent readers need no
// locking.
type Registry struct {
	order []models.AlgorithmID
	tests map[models.AlgorithmID]Test
}

// NewRegistry builds a registry preserving the given order. Duplicate IDs
// keep the first registration.
func NewRegistry(tests ...Test) *Registry {
	r := &Registry{tests: make(map[models.AlgorithmID]Test, len(tests))}
	for _, t := range tests {
		id := t.Info().ID
		if _, exists := r.tests[id]; exists {
			continue
		}
		r.order = append(r.order, id)
		r.tests[id] = t
	}
	return r
}

// Default returns the production registry: trial division, Fermat,
// Miller-Rabin, AKS.
func Default() *Registry {
	return NewRegistry(
		NewTrialDivision(),
		NewFermat(),
		NewMillerRabin(),
		NewAKS(),
	)
}

// Lookup finds a registered algorithm by id.
func (r *Registry) Lookup(id models.AlgorithmID) (Test, bool) {
	t, ok := r.tests[id]
	return t, ok
}

// All returns the registered algorithms in registration order.
func (r *Registry) All() []Test {
	out := make([]Test, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.tests[id])
	}
	return out
}

// IDs returns the registered algorithm IDs in registration order.
func (r *Registry) IDs() []models.AlgorithmID {
	out := make([]models.AlgorithmID, len(r.order))
	copy(out, r.order)
	return out
}

// Len reports how many algorithms are registered.
func (r *Registry) Len() int {
	return len(r.order)
}

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// oddAndAtLeastThree is the applicability rule shared by the probabilistic
// tests: the trivial gate owns n < 2, n = 2, and even candidates.
func oddAndAtLeastThree(n *big.Int) bool {
	return n.Sign() > 0 && n.Cmp(two) > 0 && n.Bit(0) == 1
}
