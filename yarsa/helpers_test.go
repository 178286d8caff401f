package yarsa_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yarandom"
	"github.com/YaCodeDev/GoYaRSA/yarsa"
)

func seeded(seed string) *yarandom.DeterministicReader {
	return yarandom.NewDeterministicReader([]byte(seed))
}

func generate(t *testing.T, bits int, seed string) *yarsa.KeyPair {
	t.Helper()

	kp, err := yarsa.GenerateKeyPair(context.Background(), yarsa.KeyOpts{
		Bits:   bits,
		Random: seeded(seed),
	})
	require.Nil(t, err)

	return kp
}

// smallKeyPair is the classic p = 61, q = 53 example. phi = 3120 is below
// 65537, so the exponent always comes from the random fallback.
func smallKeyPair(t *testing.T) *yarsa.KeyPair {
	t.Helper()

	kp, err := yarsa.NewKeyPairFromPrimes(
		context.Background(),
		big.NewInt(61),
		big.NewInt(53),
		yarsa.KeyOpts{Random: seeded("small")},
	)
	require.Nil(t, err)

	return kp
}

type recordingObserver struct {
	mu        sync.Mutex
	primes    []*big.Int
	rejected  int
	exponents []*big.Int
	fallback  []bool
	generated int
}

func (o *recordingObserver) PrimeRejected(int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.rejected++
}

func (o *recordingObserver) PrimeFound(_ int, _ int, prime *big.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.primes = append(o.primes, prime)
}

func (o *recordingObserver) ExponentSelected(e *big.Int, _ int, fallback bool) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.exponents = append(o.exponents, e)
	o.fallback = append(o.fallback, fallback)
}

func (o *recordingObserver) KeyPairGenerated(int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.generated++
}

// teeObserver forwards every event to all observers in order.
type teeObserver []yarsa.Observer

func (t teeObserver) PrimeRejected(bits, attempt int) {
	for _, o := range t {
		o.PrimeRejected(bits, attempt)
	}
}

func (t teeObserver) PrimeFound(bits, attempts int, prime *big.Int) {
	for _, o := range t {
		o.PrimeFound(bits, attempts, prime)
	}
}

func (t teeObserver) ExponentSelected(e *big.Int, attempts int, fallback bool) {
	for _, o := range t {
		o.ExponentSelected(e, attempts, fallback)
	}
}

func (t teeObserver) KeyPairGenerated(bits, modulusBits int) {
	for _, o := range t {
		o.KeyPairGenerated(bits, modulusBits)
	}
}
