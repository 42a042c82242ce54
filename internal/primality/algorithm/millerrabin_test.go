package algorithm

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/suite"

	"primelab/internal/primality/models"
)

type MillerRabinSuite struct {
	suite.Suite
	alg *MillerRabin
	rnd *rand.Rand
}

func TestMillerRabinSuite(t *testing.T) {
	suite.Run(t, new(MillerRabinSuite))
}

func (s *MillerRabinSuite) SetupTest() {
	s.alg = NewMillerRabin()
	s.rnd = rand.New(rand.NewSource(1))
}

func (s *MillerRabinSuite) TestInfo() {
	info := s.alg.Info()
	s.Equal(models.AlgorithmMillerRabin, info.ID)
	s.False(info.Deterministic)
	s.Equal(40, info.DefaultRounds)
}

func (s *MillerRabinSuite) TestLowPrimeShortCircuit() {
	s.Run("equal to a low prime is certainly prime", func() {
		for _, n := range []int64{3, 13, 37} {
			out := s.alg.Run(big.NewInt(n), 10, s.rnd)
			s.Equal(models.VerdictPrime, out.Verdict, "n=%d", n)
			s.True(out.Certain)
			s.Zero(out.Rounds, "short-circuit performs no witness rounds")
		}
	})

	s.Run("divisible by a low prime is certainly composite", func() {
		out := s.alg.Run(big.NewInt(35), 10, s.rnd) // 5 * 7
		s.Equal(models.VerdictComposite, out.Verdict)
		s.Equal("5", out.Witness.String())
		s.Zero(out.Rounds)
	})
}

func (s *MillerRabinSuite) TestKnownPrimes() {
	primes := []string{"97", "7919", "104729", "32416190071"}
	for _, p := range primes {
		n, ok := new(big.Int).SetString(p, 10)
		s.Require().True(ok)

		out := s.alg.Run(n, 10, s.rnd)
		s.Equal(models.VerdictPrime, out.Verdict, "n=%s", p)
		s.Equal(10, out.Rounds)
	}
}

func (s *MillerRabinSuite) TestCarmichaelNumbersAreComposite() {
	// Unlike Fermat, Miller-Rabin is not defeated by Carmichael numbers.
	for _, n := range []int64{561, 1105, 1729} {
		out := s.alg.Run(big.NewInt(n), 10, s.rnd)
		s.Equal(models.VerdictComposite, out.Verdict, "n=%d", n)
		s.NotNil(out.Witness, "n=%d", n)
		s.True(out.Certain)
	}
}

func (s *MillerRabinSuite) TestWitnessRoundIsReported() {
	// 7917 = 3 * 29 * 91 is screened by the low-prime sieve, so use a
	// semiprime with large factors: 10403 = 101 * 103.
	out := s.alg.Run(big.NewInt(10403), 25, s.rnd)
	s.Equal(models.VerdictComposite, out.Verdict)
	s.GreaterOrEqual(out.Rounds, 1)
	s.LessOrEqual(out.Rounds, 25)

	// The reported round must match the witness step in the trace.
	var witnessRound int
	for _, step := range out.Steps {
		if step.Kind == models.StepWitness {
			witnessRound = step.Round
		}
	}
	s.Equal(witnessRound, out.Rounds)
}

func (s *MillerRabinSuite) TestSeededRunsAreReproducible() {
	n := big.NewInt(104729)
	a := s.alg.Run(n, 12, rand.New(rand.NewSource(5)))
	b := s.alg.Run(n, 12, rand.New(rand.NewSource(5)))

	s.Equal(a.Verdict, b.Verdict)
	s.Equal(a.Rounds, b.Rounds)
	s.Equal(models.RenderSteps(a.Steps), models.RenderSteps(b.Steps))
}

func (s *MillerRabinSuite) TestDegradedInputs() {
	out := s.alg.Run(big.NewInt(1), 10, s.rnd)
	s.Equal(models.VerdictComposite, out.Verdict)
}
