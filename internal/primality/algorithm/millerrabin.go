package algorithm

import (
	"math/big"
	"math/rand"

	"primelab/internal/numtheory"
	"primelab/internal/primality/models"
)

// lowPrimes short-circuits the main loop: equality proves prime,
// divisibility proves composite, both without any witness search.
var lowPrimes = []int64{2, 3, 5, 7, 11, 13, 17, 19, 23, 29, 31, 37}

// MillerRabin is the strong pseudoprime test. No composite survives a round
// with probability above 1/4, Carmichael numbers included.
type MillerRabin struct{}

func NewMillerRabin() *MillerRabin {
	return &MillerRabin{}
}

func (m *MillerRabin) Info() models.AlgorithmInfo {
	return models.AlgorithmInfo{
		ID:            models.AlgorithmMillerRabin,
		Name:          "Miller-Rabin Test",
		Description:   "Strong pseudoprime test over random bases; per-round error bound 1/4, immune to Carmichael numbers.",
		Deterministic: false,
		Certified:     false,
		DefaultRounds: 40,
	}
}

func (m *MillerRabin) Applicable(n *big.Int) bool {
	return oddAndAtLeastThree(n)
}

func (m *MillerRabin) Run(n *big.Int, rounds int, rnd *rand.Rand) Outcome {
	var trace models.Trace

	for _, p := range lowPrimes {
		bp := big.NewInt(p)
		if n.Cmp(bp) == 0 {
			trace.Notef("%s is a known small prime", n)
			return Outcome{Verdict: models.VerdictPrime, Certain: true, Steps: trace.Steps()}
		}
		if new(big.Int).Mod(n, bp).Sign() == 0 {
			trace.Add(models.Step{Kind: models.StepWitness, Value: bp.String(), Detail: "small prime divides the candidate"})
			return Outcome{
				Verdict: models.VerdictComposite,
				Witness: bp,
				Certain: true,
				Steps:   trace.Steps(),
			}
		}
	}

	if out, done := guardSmall(n, &trace); done {
		return out
	}

	// Decompose n-1 = 2^s * d with d odd.
	nMinusOne := new(big.Int).Sub(n, one)
	d := new(big.Int).Set(nMinusOne)
	s := 0
	for d.Bit(0) == 0 {
		d.Rsh(d, 1)
		s++
	}
	trace.Notef("n-1 = 2^%d * %s", s, d)

	nMinusTwo := new(big.Int).Sub(n, two)

	for i := 1; i <= rounds; i++ {
		a, err := numtheory.RandInRange(rnd, two, nMinusTwo)
		if err != nil {
			trace.Notef("base draw failed: %v", err)
			return Outcome{Verdict: models.VerdictUnknown, Rounds: i - 1, Steps: trace.Steps()}
		}

		x := numtheory.ModPow(a, d, n)
		if x.Cmp(one) == 0 || x.Cmp(nMinusOne) == 0 {
			trace.Add(models.Step{Kind: models.StepPass, Round: i, Base: a.String(), Value: x.String(), Detail: "a^d is trivial"})
			continue
		}

		passed := false
		for j := 0; j < s-1; j++ {
			x.Mul(x, x)
			x.Mod(x, n)
			if x.Cmp(nMinusOne) == 0 {
				passed = true
				trace.Add(models.Step{Kind: models.StepPass, Round: i, Base: a.String(), Value: x.String(), Detail: "squaring chain reached n-1"})
				break
			}
			if x.Cmp(one) == 0 {
				// A nontrivial square root of 1 appeared mid-chain.
				trace.Add(models.Step{Kind: models.StepWitness, Round: i, Base: a.String(), Value: "1", Detail: "nontrivial square root of 1 in squaring chain"})
				return Outcome{
					Verdict: models.VerdictComposite,
					Rounds:  i,
					Witness: a,
					Certain: true,
					Steps:   trace.Steps(),
				}
			}
		}
		if !passed {
			trace.Add(models.Step{Kind: models.StepWitness, Round: i, Base: a.String(), Value: x.String(), Detail: "squaring chain never reached n-1"})
			return Outcome{
				Verdict: models.VerdictComposite,
				Rounds:  i,
				Witness: a,
				Certain: true,
				Steps:   trace.Steps(),
			}
		}
	}

	trace.Notef("all %d rounds passed, probably prime", rounds)
	return Outcome{
		Verdict: models.VerdictPrime,
		Rounds:  rounds,
		Steps:   trace.Steps(),
	}
}
