package algorithm

import (
	"math/big"
	"math/rand"

	"primelab/internal/numtheory"
	"primelab/internal/primality/models"
)

// knownCarmichael is a small fixed set of Carmichael numbers: composites
// satisfying Fermat's congruence for every coprime base. Membership is
// flagged in the trace for visibility; it never changes the verdict logic,
// which is the documented weakness of this test.
var knownCarmichael = []int64{561, 1105, 1729, 2465, 2821, 6601, 8911}

// Fermat is the Fermat primality test: a^(n-1) must be 1 mod n for prime n.
type Fermat struct{}

func NewFermat() *Fermat {
	return &Fermat{}
}

func (f *Fermat) Info() models.AlgorithmInfo {
	return models.AlgorithmInfo{
		ID:            models.AlgorithmFermat,
		Name:          "Fermat Test",
		Description:   "Checks Fermat's little theorem a^(n-1) = 1 (mod n) for random bases; Carmichael numbers defeat it.",
		Deterministic: false,
		Certified:     false,
		DefaultRounds: 20,
	}
}

func (f *Fermat) Applicable(n *big.Int) bool {
	return oddAndAtLeastThree(n)
}

func (f *Fermat) Run(n *big.Int, rounds int, rnd *rand.Rand) Outcome {
	var trace models.Trace

	if out, done := guardSmall(n, &trace); done {
		return out
	}

	for _, c := range knownCarmichael {
		if n.Cmp(big.NewInt(c)) == 0 {
			trace.Notef("%s is a known Carmichael number: Fermat's congruence holds for every coprime base, so a prime verdict here is unreliable", n)
			break
		}
	}

	nMinusOne := new(big.Int).Sub(n, one)
	nMinusTwo := new(big.Int).Sub(n, two)

	for i := 1; i <= rounds; i++ {
		a, err := numtheory.RandInRange(rnd, two, nMinusTwo)
		if err != nil {
			trace.Notef("base draw failed: %v", err)
			return Outcome{Verdict: models.VerdictUnknown, Rounds: i - 1, Steps: trace.Steps()}
		}

		r := numtheory.ModPow(a, nMinusOne, n)
		if r.Cmp(one) != 0 {
			trace.Add(models.Step{Kind: models.StepWitness, Round: i, Base: a.String(), Value: r.String(), Detail: "a^(n-1) mod n is not 1"})
			return Outcome{
				Verdict: models.VerdictComposite,
				Rounds:  i,
				Witness: a,
				Certain: true,
				Steps:   trace.Steps(),
			}
		}
		trace.Add(models.Step{Kind: models.StepPass, Round: i, Base: a.String(), Value: "1", Detail: "congruence holds"})
	}

	trace.Notef("all %d rounds passed, probably prime", rounds)
	return Outcome{
		Verdict: models.VerdictPrime,
		Rounds:  rounds,
		Steps:   trace.Steps(),
	}
}

// guardSmall decides candidates too small to draw a random base from
// [2, n-2]. The trivial gate normally screens these; this keeps direct
// invocation safe.
func guardSmall(n *big.Int, trace *models.Trace) (Outcome, bool) {
	if n.Cmp(big.NewInt(5)) >= 0 {
		return Outcome{}, false
	}
	trace.Notef("%s is too small for random base sampling, decided directly", n)
	verdict := models.VerdictComposite
	if n.Cmp(two) == 0 || n.Cmp(big.NewInt(3)) == 0 {
		verdict = models.VerdictPrime
	}
	return Outcome{Verdict: verdict, Certain: true, Steps: trace.Steps()}, true
}
