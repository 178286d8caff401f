package yaprime

import "math/big"

// Observer receives progress of a prime search. Implementations must not
// retain or log the prime unless they are test fixtures.
type Observer interface {
	PrimeRejected(bits, attempt int)
	PrimeFound(bits, attempts int, prime *big.Int)
}

// NopObserver ignores every event.
type NopObserver struct{}

func (NopObserver) PrimeRejected(int, int) {}

func (NopObserver) PrimeFound(int, int, *big.Int) {}
