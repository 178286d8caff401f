// Package yarandom provides the randomness sources consumed by prime and key
// generation. Every generator takes an io.Reader explicitly, so tests can pass
// a seeded DeterministicReader and production code uses Default().
package yarandom

import (
	"crypto/rand"
	"errors"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
)

var (
	ErrEmptyRange = errors.New("empty random range")
	ErrReadFailed = errors.New("random source read failed")
)

const (
	bitsInByte  = 8
	topByteMask = 0xFF
)

var bigOne = big.NewInt(1)

// Default returns the operating system CSPRNG.
func Default() io.Reader {
	return rand.Reader
}

// OrDefault returns r, or Default() when r is nil.
func OrDefault(r io.Reader) io.Reader {
	if r == nil {
		return Default()
	}

	return r
}

// Int returns a uniform integer in [0, upper) drawn from r by rejection
// sampling on a bit-masked buffer, so every byte consumed comes from r.
//
// Errors with ErrEmptyRange if upper <= 0 and ErrReadFailed if r fails.
func Int(r io.Reader, upper *big.Int) (*big.Int, yaerrors.Error) {
	if upper.Sign() <= 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrEmptyRange,
			fmt.Sprintf("[RANDOM] upper bound must be positive, got %s", upper),
		)
	}

	limit := new(big.Int).Sub(upper, bigOne)
	bits := limit.BitLen()

	if bits == 0 {
		return new(big.Int), nil
	}

	buf := make([]byte, (bits+bitsInByte-1)/bitsInByte)
	topMask := byte(topByteMask)

	if m := bits % bitsInByte; m != 0 {
		topMask = topByteMask >> (bitsInByte - m)
	}

	n := new(big.Int)

	for {
		if _, err := io.ReadFull(r, buf); err != nil {
			return nil, yaerrors.FromError(
				http.StatusInternalServerError,
				errors.Join(ErrReadFailed, err),
				"[RANDOM] failed to draw integer",
			)
		}

		buf[0] &= topMask

		if n.SetBytes(buf).Cmp(upper) < 0 {
			return n, nil
		}
	}
}

// IntRange returns a uniform integer in the closed range [lo, hi].
func IntRange(r io.Reader, lo, hi *big.Int) (*big.Int, yaerrors.Error) {
	if lo.Cmp(hi) > 0 {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			ErrEmptyRange,
			fmt.Sprintf("[RANDOM] range [%s, %s] is empty", lo, hi),
		)
	}

	width := new(big.Int).Sub(hi, lo)
	width.Add(width, bigOne)

	n, err := Int(r, width)
	if err != nil {
		return nil, err.Wrap("[RANDOM] failed to draw from range")
	}

	return n.Add(n, lo), nil
}

// Bytes fills a new buffer of size n from r.
func Bytes(r io.Reader, n int) ([]byte, yaerrors.Error) {
	buf := make([]byte, n)

	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, yaerrors.FromError(
			http.StatusInternalServerError,
			errors.Join(ErrReadFailed, err),
			"[RANDOM] failed to read full buffer",
		)
	}

	return buf, nil
}
