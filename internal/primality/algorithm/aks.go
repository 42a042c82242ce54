package algorithm

import (
	"math"
	"math/big"
	"math/rand"
	"strconv"

	"primelab/internal/numtheory"
	"primelab/internal/primality/models"
)

const (
	// rSearchCap is the hard ceiling on the AKS parameter search. Hitting
	// it falls back to the current candidate r and flags the outcome so
	// the caller can tell a best-effort parameter from a computed one.
	rSearchCap = 1_000_000
	// aksBaseCap caps the number of bases in the polynomial-identity
	// stage; the effective count is min(aksBaseCap, sqrt(r)*50).
	aksBaseCap = 100
	// aksXSamples bounds how many x values each polynomial identity is
	// evaluated at.
	aksXSamples = 100
)

// AKS is an AKS-inspired deterministic test. Stage 4 samples the polynomial
// identity (x+a)^n = x^n + a at a bounded set of points instead of doing
// full polynomial-ring arithmetic, so a prime verdict is deterministic but
// NOT a mathematical proof. The descriptor reports Certified: false for
// exactly this reason; do not "fix" the sampling into looking sound.
type AKS struct{}

func NewAKS() *AKS {
	return &AKS{}
}

func (a *AKS) Info() models.AlgorithmInfo {
	return models.AlgorithmInfo{
		ID:            models.AlgorithmAKS,
		Name:          "AKS Test (sampled)",
		Description:   "Perfect-power check, parameter search, small-factor sieve, and a sampled polynomial-identity check; deterministic but approximate.",
		Deterministic: true,
		Certified:     false,
		DefaultRounds: 1,
	}
}

func (a *AKS) Applicable(n *big.Int) bool {
	return n.Sign() > 0
}

func (a *AKS) Run(n *big.Int, rounds int, rnd *rand.Rand) Outcome {
	var trace models.Trace
	work := 0

	if n.Cmp(big.NewInt(4)) < 0 {
		if out, done := guardSmall(n, &trace); done {
			return out
		}
	}

	// Stage 1: perfect powers are composite.
	trace.Notef("stage 1: perfect-power check up to exponent %d", n.BitLen())
	if base, exp, found := perfectPower(n, &work); found {
		trace.Add(models.Step{Kind: models.StepWitness, Round: work, Base: base.String(), Value: exp.String(), Detail: "candidate is a perfect power"})
		return Outcome{
			Verdict: models.VerdictComposite,
			Rounds:  work,
			Witness: base,
			Certain: true,
			Steps:   trace.Steps(),
		}
	}

	// Stage 2: find the smallest r coprime to n whose multiplicative
	// order of n exceeds ceil((ln n)^2).
	lnN := float64(n.BitLen()) * math.Ln2
	maxOrd := int64(math.Ceil(lnN * lnN))
	r, limitHit := searchParameter(n, maxOrd, &work)
	if limitHit {
		trace.Add(models.Step{Kind: models.StepLimit, Round: work, Value: strconv.FormatInt(r, 10), Detail: "parameter search ceiling hit, using current r as fallback"})
	} else {
		trace.Notef("stage 2: r = %d (order bound %d)", r, maxOrd)
	}

	// Stage 3: sieve small factors. The sieve runs before the n <= r
	// short-circuit: when the searched r reaches n, a proper divisor of n
	// sits below n and must still be caught. Cap at n-1 so the sieve never
	// divides n by itself.
	sieveTop := r
	if nMinusOne := new(big.Int).Sub(n, one); nMinusOne.IsInt64() && nMinusOne.Int64() < sieveTop {
		sieveTop = nMinusOne.Int64()
	}
	if w, found := sieve(n, sieveTop, &work); found {
		trace.Add(models.Step{Kind: models.StepWitness, Round: work, Value: w.String(), Detail: "small factor found in sieve"})
		return Outcome{
			Verdict:  models.VerdictComposite,
			Rounds:   work,
			Witness:  w,
			Certain:  true,
			LimitHit: limitHit,
			Steps:    trace.Steps(),
		}
	}
	trace.Notef("stage 3: no factor in [2, %d]", sieveTop)

	if n.Cmp(big.NewInt(r)) <= 0 {
		trace.Notef("stage 3: candidate does not exceed r, sieve was exhaustive: prime")
		return Outcome{Verdict: models.VerdictPrime, Rounds: work, Certain: true, LimitHit: limitHit, Steps: trace.Steps()}
	}

	// Stage 4: sampled polynomial-identity checks. The base and sample
	// bounds are heuristic, not derived from a published AKS correctness
	// bound; passing them all is evidence, not proof.
	numBases := aksBaseCap
	if scaled := int(math.Sqrt(float64(r)) * 50); scaled < numBases {
		numBases = scaled
	}
	if numBases < 1 {
		numBases = 1
	}
	trace.Notef("stage 4: sampled identity checks for %d bases", numBases)

	if w := sampledIdentityCheck(n, numBases, &work); w != nil {
		trace.Add(models.Step{Kind: models.StepWitness, Round: work, Base: w.String(), Detail: "(x+a)^n != x^n + a at a sampled point"})
		return Outcome{
			Verdict:  models.VerdictComposite,
			Rounds:   work,
			Witness:  w,
			Certain:  true,
			LimitHit: limitHit,
			Steps:    trace.Steps(),
		}
	}

	trace.Notef("all sampled identity checks passed: reported prime (not a certified proof)")
	return Outcome{
		Verdict:  models.VerdictPrime,
		Rounds:   work,
		LimitHit: limitHit,
		Steps:    trace.Steps(),
	}
}

// perfectPower searches for b, e >= 2 with b^e = n by binary search on b
// for each exponent up to ceil(log2 n).
func perfectPower(n *big.Int, work *int) (*big.Int, *big.Int, bool) {
	maxExp := n.BitLen()
	for e := 2; e <= maxExp; e++ {
		*work++
		bigE := big.NewInt(int64(e))

		lo := big.NewInt(2)
		hi := new(big.Int).Lsh(one, uint(n.BitLen()/e)+1)
		for lo.Cmp(hi) <= 0 {
			mid := new(big.Int).Add(lo, hi)
			mid.Rsh(mid, 1)
			p := new(big.Int).Exp(mid, bigE, nil)
			switch p.Cmp(n) {
			case 0:
				return mid, bigE, true
			case -1:
				lo = mid.Add(mid, one)
			default:
				hi = mid.Sub(mid, one)
			}
		}
	}
	return nil, nil, false
}

// searchParameter finds the smallest r coprime to n whose multiplicative
// order of n modulo r exceeds maxOrd. Bounded by rSearchCap; on the ceiling
// it returns the current r and reports the hit.
func searchParameter(n *big.Int, maxOrd int64, work *int) (int64, bool) {
	r := int64(2)
	for ; r < rSearchCap; r++ {
		*work++
		bigR := big.NewInt(r)
		if numtheory.GCD(n, bigR).Cmp(one) != 0 {
			continue
		}
		if multiplicativeOrderExceeds(n, r, maxOrd) {
			return r, false
		}
	}
	return r, true
}

// multiplicativeOrderExceeds reports whether ord_r(n) > maxOrd. Arithmetic
// stays in int64: r is at most rSearchCap so products fit comfortably.
func multiplicativeOrderExceeds(n *big.Int, r, maxOrd int64) bool {
	x := new(big.Int).Mod(n, big.NewInt(r)).Int64()
	if x <= 1 {
		// Order 1, or undefined; either way it cannot exceed maxOrd >= 1.
		return false
	}
	acc := x
	for k := int64(1); k <= maxOrd; k++ {
		if acc == 1 {
			return false
		}
		acc = acc * x % r
	}
	return true
}

// sieve trial-divides n by every integer in [2, r].
func sieve(n *big.Int, r int64, work *int) (*big.Int, bool) {
	rem := new(big.Int)
	for i := int64(2); i <= r; i++ {
		*work++
		d := big.NewInt(i)
		if rem.Mod(n, d).Sign() == 0 {
			return d, true
		}
	}
	return nil, false
}

// sampledIdentityCheck verifies (x+a)^n = x^n + a (mod n) for bases
// a = 1..numBases at up to aksXSamples points each. Returns the failing base
// as a compositeness witness, or nil when every sample passes.
func sampledIdentityCheck(n *big.Int, numBases int, work *int) *big.Int {
	for a := 1; a <= numBases; a++ {
		bigA := big.NewInt(int64(a))
		for x := 1; x <= aksXSamples; x++ {
			*work++
			bigX := big.NewInt(int64(x))

			lhs := new(big.Int).Add(bigX, bigA)
			lhs = numtheory.ModPow(lhs, n, n)

			rhs := numtheory.ModPow(bigX, n, n)
			rhs.Add(rhs, bigA)
			rhs.Mod(rhs, n)

			if lhs.Cmp(rhs) != 0 {
				return bigA
			}
		}
	}
	return nil
}
