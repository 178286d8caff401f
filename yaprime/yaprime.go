// Package yaprime implements the Miller–Rabin probabilistic primality test and
// random prime generation of an exact bit length.
//
// Prime search is unbounded by nature. GeneratePrime therefore takes a context
// (cancellation, deadline) and an optional attempt budget:
//
//	gen := yaprime.NewGenerator(yaprime.Opts{MaxAttempts: 100_000})
//
//	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
//	defer cancel()
//
//	p, err := gen.GeneratePrime(ctx, 1024)
package yaprime

import (
	"context"
	"fmt"
	"io"
	"math/big"
	"net/http"

	"github.com/YaCodeDev/GoYaRSA/yaerrors"
	"github.com/YaCodeDev/GoYaRSA/yamath"
	"github.com/YaCodeDev/GoYaRSA/yarandom"
)

// DefaultRounds keeps the false positive probability below 4^-20.
const DefaultRounds = 20

const (
	bitsInByte = 8
	minBits    = 2
)

var (
	bigOne   = big.NewInt(1)
	bigTwo   = big.NewInt(2)
	bigThree = big.NewInt(3)
)

// Opts configures a Generator. Zero values pick the defaults:
//   - Random: yarandom.Default()
//   - Rounds: DefaultRounds
//   - MaxAttempts: 0, meaning no limit
//   - Observer: NopObserver
type Opts struct {
	Random      io.Reader
	Rounds      int
	MaxAttempts int
	Observer    Observer
}

type Generator struct {
	random      io.Reader
	rounds      int
	maxAttempts int
	observer    Observer
}

func NewGenerator(opts Opts) *Generator {
	if opts.Rounds == 0 {
		opts.Rounds = DefaultRounds
	}

	if opts.Observer == nil {
		opts.Observer = NopObserver{}
	}

	return &Generator{
		random:      yarandom.OrDefault(opts.Random),
		rounds:      opts.Rounds,
		maxAttempts: opts.MaxAttempts,
		observer:    opts.Observer,
	}
}

// Rounds returns the number of Miller–Rabin rounds this generator applies.
func (g *Generator) Rounds() int {
	return g.rounds
}

// IsProbablePrime runs IsProbablePrime with the generator's source and rounds.
func (g *Generator) IsProbablePrime(n *big.Int) (bool, yaerrors.Error) {
	return IsProbablePrime(g.random, n, g.rounds)
}

// IsProbablePrime reports whether n passes rounds rounds of Miller–Rabin with
// witnesses drawn uniformly from [2, n-2]. A composite passes with probability
// at most 4^-rounds; a prime always passes.
//
// Errors with yamath.ErrInvalidArgument if rounds < 1, or with the random
// source's failure.
//
// Example:
//
//	ok, _ := yaprime.IsProbablePrime(yarandom.Default(), big.NewInt(7919), 20) // true
//	ok, _ = yaprime.IsProbablePrime(yarandom.Default(), big.NewInt(561), 20)   // false
func IsProbablePrime(random io.Reader, n *big.Int, rounds int) (bool, yaerrors.Error) {
	if rounds < 1 {
		return false, yaerrors.FromError(
			http.StatusBadRequest,
			yamath.ErrInvalidArgument,
			fmt.Sprintf("[PRIME] rounds must be positive, got %d", rounds),
		)
	}

	if n.Cmp(bigTwo) < 0 {
		return false, nil
	}

	if n.Cmp(bigThree) <= 0 {
		return true, nil
	}

	if n.Bit(0) == 0 {
		return false, nil
	}

	nMinusOne := new(big.Int).Sub(n, bigOne)

	r := nMinusOne.TrailingZeroBits()
	d := new(big.Int).Rsh(nMinusOne, r)

	nMinusTwo := new(big.Int).Sub(n, bigTwo)

	for range rounds {
		a, err := yarandom.IntRange(random, bigTwo, nMinusTwo)
		if err != nil {
			return false, err.Wrap("[PRIME] failed to draw witness")
		}

		composite, err := witnessesComposite(a, d, n, nMinusOne, r)
		if err != nil {
			return false, err.Wrap("[PRIME] witness round failed")
		}

		if composite {
			return false, nil
		}
	}

	return true, nil
}

// witnessesComposite runs one Miller–Rabin round for witness a, where
// n-1 = 2^r * d with d odd.
func witnessesComposite(a, d, n, nMinusOne *big.Int, r uint) (bool, yaerrors.Error) {
	x, err := yamath.ModPow(a, d, n)
	if err != nil {
		return false, err
	}

	if x.Cmp(bigOne) == 0 || x.Cmp(nMinusOne) == 0 {
		return false, nil
	}

	for i := uint(1); i < r; i++ {
		x, err = yamath.ModPow(x, bigTwo, n)
		if err != nil {
			return false, err
		}

		if x.Cmp(nMinusOne) == 0 {
			return false, nil
		}
	}

	return true, nil
}

// GeneratePrime returns a probable prime of exactly bits bits. Each candidate
// is drawn from the random source with its top and bottom bits forced to one,
// so it has the right magnitude and is odd.
//
// The search has no internal bound. It stops when ctx is done (the error wraps
// ctx.Err()) or, if MaxAttempts > 0, after that many rejected candidates
// (ErrAttemptBudgetExceeded).
func (g *Generator) GeneratePrime(ctx context.Context, bits int) (*big.Int, yaerrors.Error) {
	if bits < minBits {
		return nil, yaerrors.FromError(
			http.StatusBadRequest,
			yamath.ErrInvalidArgument,
			fmt.Sprintf("[PRIME] bits must be at least %d, got %d", minBits, bits),
		)
	}

	for attempt := 1; ; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, yaerrors.FromError(
				http.StatusRequestTimeout,
				err,
				fmt.Sprintf("[PRIME] search for %d-bit prime stopped after %d attempts", bits, attempt-1),
			)
		}

		if g.maxAttempts > 0 && attempt > g.maxAttempts {
			return nil, yaerrors.FromError(
				http.StatusInternalServerError,
				ErrAttemptBudgetExceeded,
				fmt.Sprintf("[PRIME] no %d-bit prime within %d attempts", bits, g.maxAttempts),
			)
		}

		candidate, err := g.candidate(bits)
		if err != nil {
			return nil, err.Wrap("[PRIME] failed to draw candidate")
		}

		prime, err := g.IsProbablePrime(candidate)
		if err != nil {
			return nil, err.Wrap("[PRIME] failed to test candidate")
		}

		if prime {
			g.observer.PrimeFound(bits, attempt, candidate)

			return candidate, nil
		}

		g.observer.PrimeRejected(bits, attempt)
	}
}

// candidate draws a bits-wide odd integer with its most significant bit set.
func (g *Generator) candidate(bits int) (*big.Int, yaerrors.Error) {
	buf, err := yarandom.Bytes(g.random, (bits+bitsInByte-1)/bitsInByte)
	if err != nil {
		return nil, err
	}

	const mask = 0xFF

	top := uint((bits - 1) % bitsInByte)

	buf[0] &= mask >> (bitsInByte - 1 - top)
	buf[0] |= 1 << top
	buf[len(buf)-1] |= 1

	return new(big.Int).SetBytes(buf), nil
}
