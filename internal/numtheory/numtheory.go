// Package numtheory implements the arbitrary-precision integer utilities the
// primality algorithms are built on: integer square root, GCD, modular
// inverse, modular exponentiation, and uniform random sampling in a range.
package numtheory

import (
	"errors"
	"fmt"
	"math/big"
	"math/rand"
)

var (
	one = big.NewInt(1)
	two = big.NewInt(2)
)

// ErrNegative is returned by Sqrt for negative input.
var ErrNegative = errors.New("square root of negative number")

// ErrNoInverse is returned by ModInverse when gcd(a, n) != 1.
var ErrNoInverse = errors.New("no modular inverse")

// Sqrt returns the largest integer r with r*r <= n. Newton's method, seeded
// from 1 << (bitlen/2) so convergence is a handful of iterations even for
// very large n.
func Sqrt(n *big.Int) (*big.Int, error) {
	if n.Sign() < 0 {
		return nil, ErrNegative
	}
	if n.Sign() == 0 {
		return big.NewInt(0), nil
	}
	if n.Cmp(two) <= 0 {
		return big.NewInt(1), nil
	}

	r := new(big.Int).Lsh(one, uint(n.BitLen())/2+1)
	next := new(big.Int)
	for {
		// r <- (r + n/r) / 2
		next.Div(n, r)
		next.Add(next, r)
		next.Rsh(next, 1)
		if next.Cmp(r) >= 0 {
			break
		}
		r.Set(next)
	}

	// Newton overshoots by at most one step near perfect squares.
	for new(big.Int).Mul(r, r).Cmp(n) > 0 {
		r.Sub(r, one)
	}
	return r, nil
}

// ModPow computes base^exponent mod modulus by square-and-multiply.
// exponent = 0 yields 1 mod modulus; modulus = 1 yields 0.
func ModPow(base, exponent, modulus *big.Int) *big.Int {
	if modulus.Cmp(one) == 0 {
		return big.NewInt(0)
	}

	result := big.NewInt(1)
	b := new(big.Int).Mod(base, modulus)
	for i := 0; i < exponent.BitLen(); i++ {
		if exponent.Bit(i) == 1 {
			result.Mul(result, b)
			result.Mod(result, modulus)
		}
		b.Mul(b, b)
		b.Mod(b, modulus)
	}
	return result
}

// GCD computes the greatest common divisor by the Euclidean algorithm.
func GCD(a, b *big.Int) *big.Int {
	x := new(big.Int).Abs(a)
	y := new(big.Int).Abs(b)
	for y.Sign() != 0 {
		x, y = y, x.Mod(x, y)
	}
	return x
}

// ModInverse computes a^-1 mod n via the extended Euclidean algorithm.
// Returns ErrNoInverse when gcd(a, n) != 1.
func ModInverse(a, n *big.Int) (*big.Int, error) {
	if n.Sign() <= 0 {
		return nil, fmt.Errorf("modulus must be positive: %s", n)
	}

	// Extended Euclid: track the x coefficient in g = a*x + n*y; y is
	// never needed for the inverse.
	oldR := new(big.Int).Mod(a, n)
	r := new(big.Int).Set(n)
	oldX := big.NewInt(1)
	x := big.NewInt(0)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)
		oldR, r = r, new(big.Int).Sub(oldR, new(big.Int).Mul(q, r))
		oldX, x = x, new(big.Int).Sub(oldX, new(big.Int).Mul(q, x))
	}

	if oldR.Cmp(one) != 0 {
		return nil, ErrNoInverse
	}

	oldX.Mod(oldX, n)
	if oldX.Sign() < 0 {
		oldX.Add(oldX, n)
	}
	return oldX, nil
}

// maxRandRetries bounds the rejection-sampling loop in RandInRange. On the
// (astronomically unlikely) cap hit the draw falls back to modulo reduction,
// trading a bounded bias for guaranteed termination.
const maxRandRetries = 1000

// RandInRange draws a uniform integer in [min, max] inclusive from rnd.
// Sampling rejects draws outside the range width rather than reducing
// modulo, so the distribution carries no boundary bias.
func RandInRange(rnd *rand.Rand, min, max *big.Int) (*big.Int, error) {
	if min.Cmp(max) > 0 {
		return nil, fmt.Errorf("empty range [%s, %s]", min, max)
	}

	width := new(big.Int).Sub(max, min)
	width.Add(width, one)
	if width.Cmp(one) == 0 {
		return new(big.Int).Set(min), nil
	}

	bits := width.BitLen()
	nbytes := (bits + 7) / 8
	buf := make([]byte, nbytes)
	v := new(big.Int)

	for attempt := 0; attempt < maxRandRetries; attempt++ {
		if _, err := rnd.Read(buf); err != nil {
			return nil, fmt.Errorf("read random bytes: %w", err)
		}
		// Mask excess high bits so rejection stays cheap.
		if excess := nbytes*8 - bits; excess > 0 {
			buf[0] &= 0xFF >> excess
		}
		v.SetBytes(buf)
		if v.Cmp(width) < 0 {
			return v.Add(v, min), nil
		}
	}

	// Fallback keeps the hard iteration ceiling honest.
	v.Mod(v, width)
	return v.Add(v, min), nil
}
