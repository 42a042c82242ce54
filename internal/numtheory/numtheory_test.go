package numtheory

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bi(s string) *big.Int {
	n, ok := new(big.Int).SetString(s, 10)
	if !ok {
		panic("bad test integer: " + s)
	}
	return n
}

func TestSqrt(t *testing.T) {
	cases := []struct {
		n, want string
	}{
		{"0", "0"},
		{"1", "1"},
		{"2", "1"},
		{"3", "1"},
		{"4", "2"},
		{"15", "3"},
		{"16", "4"},
		{"17", "4"},
		{"10000", "100"},
		{"999999999999999999999999", "999999999999"},
		{"1000000000000000000000000", "1000000000000"},
	}
	for _, tc := range cases {
		got, err := Sqrt(bi(tc.n))
		require.NoError(t, err, "Sqrt(%s)", tc.n)
		assert.Equal(t, tc.want, got.String(), "Sqrt(%s)", tc.n)
	}

	t.Run("negative input fails", func(t *testing.T) {
		_, err := Sqrt(big.NewInt(-4))
		assert.ErrorIs(t, err, ErrNegative)
	})

	t.Run("result brackets n", func(t *testing.T) {
		n := bi("123456789123456789123456789")
		r, err := Sqrt(n)
		require.NoError(t, err)

		rSq := new(big.Int).Mul(r, r)
		assert.True(t, rSq.Cmp(n) <= 0, "r^2 must not exceed n")

		r1 := new(big.Int).Add(r, big.NewInt(1))
		r1Sq := new(big.Int).Mul(r1, r1)
		assert.True(t, r1Sq.Cmp(n) > 0, "(r+1)^2 must exceed n")
	})
}

func TestModPow(t *testing.T) {
	cases := []struct {
		base, exp, mod, want string
	}{
		{"2", "10", "1000", "24"},
		{"3", "0", "7", "1"},       // exponent zero yields 1 mod m
		{"5", "100", "1", "0"},     // modulus one yields 0
		{"2", "560", "561", "1"},   // 561 is a base-2 Fermat pseudoprime
		{"7", "7918", "7919", "1"}, // Fermat congruence on a prime
	}
	for _, tc := range cases {
		got := ModPow(bi(tc.base), bi(tc.exp), bi(tc.mod))
		assert.Equal(t, tc.want, got.String(), "ModPow(%s, %s, %s)", tc.base, tc.exp, tc.mod)
	}

	t.Run("agrees with big.Int Exp", func(t *testing.T) {
		base := bi("12345678901234567890")
		exp := bi("98765")
		mod := bi("1000003")
		want := new(big.Int).Exp(base, exp, mod)
		assert.Equal(t, want.String(), ModPow(base, exp, mod).String())
	})
}

func TestGCD(t *testing.T) {
	cases := []struct {
		a, b, want string
	}{
		{"12", "18", "6"},
		{"17", "5", "1"},
		{"0", "9", "9"},
		{"9", "0", "9"},
		{"270", "192", "6"},
	}
	for _, tc := range cases {
		got := GCD(bi(tc.a), bi(tc.b))
		assert.Equal(t, tc.want, got.String(), "GCD(%s, %s)", tc.a, tc.b)
	}
}

func TestModInverse(t *testing.T) {
	t.Run("inverse exists", func(t *testing.T) {
		cases := []struct {
			a, n string
		}{
			{"3", "7"},
			{"10", "17"},
			{"7919", "104729"},
			{"123456789", "1000000007"},
		}
		for _, tc := range cases {
			a, n := bi(tc.a), bi(tc.n)
			inv, err := ModInverse(a, n)
			require.NoError(t, err, "ModInverse(%s, %s)", tc.a, tc.n)

			prod := new(big.Int).Mul(a, inv)
			prod.Mod(prod, n)
			assert.Equal(t, "1", prod.String(), "a * a^-1 mod n must be 1")
		}
	})

	t.Run("no inverse when gcd != 1", func(t *testing.T) {
		_, err := ModInverse(big.NewInt(6), big.NewInt(9))
		assert.ErrorIs(t, err, ErrNoInverse)
	})

	t.Run("non-positive modulus fails", func(t *testing.T) {
		_, err := ModInverse(big.NewInt(3), big.NewInt(0))
		assert.Error(t, err)
	})
}

func TestRandInRange(t *testing.T) {
	rnd := rand.New(rand.NewSource(42))

	t.Run("stays inside inclusive bounds", func(t *testing.T) {
		min, max := big.NewInt(2), big.NewInt(17)
		for i := 0; i < 500; i++ {
			v, err := RandInRange(rnd, min, max)
			require.NoError(t, err)
			assert.True(t, v.Cmp(min) >= 0 && v.Cmp(max) <= 0, "draw %s outside [2, 17]", v)
		}
	})

	t.Run("degenerate range returns min", func(t *testing.T) {
		v, err := RandInRange(rnd, big.NewInt(5), big.NewInt(5))
		require.NoError(t, err)
		assert.Equal(t, "5", v.String())
	})

	t.Run("empty range fails", func(t *testing.T) {
		_, err := RandInRange(rnd, big.NewInt(9), big.NewInt(3))
		assert.Error(t, err)
	})

	t.Run("same seed yields same sequence", func(t *testing.T) {
		min, max := big.NewInt(2), bi("1000000000000000000000")
		a := rand.New(rand.NewSource(7))
		b := rand.New(rand.NewSource(7))
		for i := 0; i < 50; i++ {
			va, err := RandInRange(a, min, max)
			require.NoError(t, err)
			vb, err := RandInRange(b, min, max)
			require.NoError(t, err)
			assert.Equal(t, va.String(), vb.String())
		}
	})
}
