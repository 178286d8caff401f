// Package yamath holds the number theory GoYaRSA is built on: gcd, extended
// gcd, modular inverse and square-and-multiply exponentiation over *big.Int.
//
// math/big is used for integer arithmetic only. Every function returns fresh
// values and never modifies its arguments.
package yamath

import (
	"fmt"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

const bitsInByte = 8

var bigOne = big.NewInt(1)

// Gcd returns the greatest common divisor of a and b using the iterative
// Euclidean algorithm. Gcd(a, 0) is a. Remainders are Euclidean, so for
// negative inputs only the absolute value of the result is meaningful.
//
// Example:
//
//	yamath.Gcd(big.NewInt(48), big.NewInt(18)) // 6
func Gcd(a, b *big.Int) *big.Int {
	x := new(big.Int).Set(a)
	y := new(big.Int).Set(b)

	for y.Sign() != 0 {
		x.Mod(x, y)
		x, y = y, x
	}

	return x
}

// ExtendedGcd returns (g, x, y) such that a*x + b*y = g, where g is the gcd
// of a and b. It is iterative and accepts any integers; ExtendedGcd(a, 0) is
// (a, 1, 0).
//
// Example:
//
//	g, x, y := yamath.ExtendedGcd(big.NewInt(48), big.NewInt(18))
//	// g = 6, 48*x + 18*y = 6
func ExtendedGcd(a, b *big.Int) (*big.Int, *big.Int, *big.Int) {
	oldR, r := new(big.Int).Set(a), new(big.Int).Set(b)
	oldS, s := big.NewInt(1), big.NewInt(0)
	oldT, t := big.NewInt(0), big.NewInt(1)

	for r.Sign() != 0 {
		q := new(big.Int).Div(oldR, r)

		oldR, r = r, step(oldR, q, r)
		oldS, s = s, step(oldS, q, s)
		oldT, t = t, step(oldT, q, t)
	}

	return oldR, oldS, oldT
}

// step returns prev - q*cur.
func step(prev, q, cur *big.Int) *big.Int {
	return new(big.Int).Sub(prev, new(big.Int).Mul(q, cur))
}

// ModInverse returns d in [0, phi) with e*d ≡ 1 (mod phi).
//
// Errors:
//   - ErrInvalidArgument if phi <= 0
//   - ErrNoModularInverse if gcd(e, phi) != 1
func ModInverse(e, phi *big.Int) (*big.Int, yaerrors.Error) {
	if phi.Sign() <= 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[MATH] modulus must be positive, got %s", phi),
		)
	}

	g, x, _ := ExtendedGcd(e, phi)
	if g.Cmp(bigOne) != 0 {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			ErrNoModularInverse,
			fmt.Sprintf("[MATH] gcd(e, phi) = %s", g),
		)
	}

	return x.Mod(x, phi), nil
}

// ModPow computes base^exponent mod modulus by square-and-multiply, using
// O(log exponent) multiplications. The base is reduced into [0, modulus)
// first and exponent 0 yields 1 mod modulus.
//
// Errors with ErrInvalidArgument for a negative exponent or a modulus <= 0.
//
// Example:
//
//	r, _ := yamath.ModPow(big.NewInt(2), big.NewInt(10), big.NewInt(1000)) // 24
func ModPow(base, exponent, modulus *big.Int) (*big.Int, yaerrors.Error) {
	if modulus.Sign() <= 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[MATH] modulus must be positive, got %s", modulus),
		)
	}

	if exponent.Sign() < 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			"[MATH] negative exponents are not supported",
		)
	}

	result := new(big.Int).Mod(bigOne, modulus)
	square := new(big.Int).Mod(base, modulus)

	for i := range exponent.BitLen() {
		if exponent.Bit(i) == 1 {
			result.Mul(result, square)
			result.Mod(result, modulus)
		}

		square.Mul(square, square)
		square.Mod(square, modulus)
	}

	return result, nil
}

// ByteLength returns ceil(bitlen(x) / 8), the width of x in big-endian bytes.
func ByteLength(x *big.Int) int {
	return (x.BitLen() + bitsInByte - 1) / bitsInByte
}

// ToFixedBytes serializes x big-endian into exactly size bytes, left-padded
// with zeros. Errors with ErrInvalidArgument if x is negative or too wide.
func ToFixedBytes(x *big.Int, size int) ([]byte, yaerrors.Error) {
	if x.Sign() < 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			"[MATH] cannot serialize a negative integer",
		)
	}

	if ByteLength(x) > size {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrInvalidArgument,
			fmt.Sprintf("[MATH] integer needs %d bytes, only %d available", ByteLength(x), size),
		)
	}

	return x.FillBytes(make([]byte, size)), nil
}

// FromBytes reads b as a big-endian unsigned integer.
func FromBytes(b []byte) *big.Int {
	return new(big.Int).SetBytes(b)
}
