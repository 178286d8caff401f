package yaprime_test

import (
	"context"
	"math/big"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/YaCodeDev/GoYaRSA/yamath"
	"github.com/YaCodeDev/GoYaRSA/yaprime"
	"github.com/YaCodeDev/GoYaRSA/yarandom"
)

type recordingObserver struct {
	mu       sync.Mutex
	rejected int
	found    []*big.Int
}

func (o *recordingObserver) PrimeRejected(int, int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.rejected++
}

func (o *recordingObserver) PrimeFound(_ int, _ int, prime *big.Int) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.found = append(o.found, prime)
}

func seeded(seed string) *yarandom.DeterministicReader {
	return yarandom.NewDeterministicReader([]byte(seed))
}

func TestIsProbablePrime_Flow(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		n     int64
		prime bool
	}{
		{"[Small] Zero", 0, false},
		{"[Small] One", 1, false},
		{"[Small] Two", 2, true},
		{"[Small] Three", 3, true},
		{"[Small] Four", 4, false},
		{"[Prime] 17", 17, true},
		{"[Prime] 7919", 7919, true},
		{"[Composite] 18", 18, false},
		{"[Composite] Carmichael 561", 561, false},
		{"[Composite] Carmichael 41041", 41041, false},
		{"[Composite] Square of prime", 7919 * 7919, false},
		{"[Negative] Minus seven", -7, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ok, err := yaprime.IsProbablePrime(seeded(tt.name), big.NewInt(tt.n), yaprime.DefaultRounds)
			require.Nil(t, err)

			assert.Equal(t, tt.prime, ok)
		})
	}
}

func TestIsProbablePrime_AgreesWithReference(t *testing.T) {
	t.Parallel()

	random := seeded("reference")

	for n := int64(0); n < 2000; n++ {
		want := big.NewInt(n).ProbablyPrime(20)

		got, err := yaprime.IsProbablePrime(random, big.NewInt(n), yaprime.DefaultRounds)
		require.Nil(t, err)

		assert.Equal(t, want, got, "n = %d", n)
	}
}

func TestIsProbablePrime_LargeKnownPrime(t *testing.T) {
	t.Parallel()

	// 2^127 - 1
	mersenne := new(big.Int).Lsh(big.NewInt(1), 127)
	mersenne.Sub(mersenne, big.NewInt(1))

	ok, err := yaprime.IsProbablePrime(seeded("mersenne"), mersenne, yaprime.DefaultRounds)
	require.Nil(t, err)
	assert.True(t, ok)

	composite := new(big.Int).Mul(mersenne, big.NewInt(3))

	ok, err = yaprime.IsProbablePrime(seeded("mersenne"), composite, yaprime.DefaultRounds)
	require.Nil(t, err)
	assert.False(t, ok)
}

func TestIsProbablePrime_InvalidRounds(t *testing.T) {
	t.Parallel()

	_, err := yaprime.IsProbablePrime(seeded("rounds"), big.NewInt(7), 0)
	require.NotNil(t, err)

	assert.ErrorIs(t, err, yamath.ErrInvalidArgument)
}

func TestGeneratePrime_BitLengths(t *testing.T) {
	t.Parallel()

	for _, bits := range []int{2, 3, 8, 16, 32, 64, 128} {
		gen := yaprime.NewGenerator(yaprime.Opts{Random: seeded("bits")})

		p, err := gen.GeneratePrime(context.Background(), bits)
		require.Nil(t, err, "bits = %d", bits)

		assert.Equal(t, bits, p.BitLen())
		assert.True(t, p.ProbablyPrime(20), "p = %s", p)
	}
}

func TestGeneratePrime_Deterministic(t *testing.T) {
	t.Parallel()

	first, err := yaprime.NewGenerator(yaprime.Opts{Random: seeded("same")}).
		GeneratePrime(context.Background(), 64)
	require.Nil(t, err)

	second, err := yaprime.NewGenerator(yaprime.Opts{Random: seeded("same")}).
		GeneratePrime(context.Background(), 64)
	require.Nil(t, err)

	assert.Equal(t, 0, first.Cmp(second))
}

func TestGeneratePrime_ReportsToObserver(t *testing.T) {
	t.Parallel()

	observer := &recordingObserver{}
	gen := yaprime.NewGenerator(yaprime.Opts{Random: seeded("observer"), Observer: observer})

	p, err := gen.GeneratePrime(context.Background(), 64)
	require.Nil(t, err)

	require.Len(t, observer.found, 1)
	assert.Equal(t, 0, p.Cmp(observer.found[0]))
}

func TestGeneratePrime_Errors(t *testing.T) {
	t.Parallel()

	t.Run("[Bits] Too small", func(t *testing.T) {
		t.Parallel()

		_, err := yaprime.NewGenerator(yaprime.Opts{}).GeneratePrime(context.Background(), 1)
		require.NotNil(t, err)

		assert.ErrorIs(t, err, yamath.ErrInvalidArgument)
	})

	t.Run("[Context] Already cancelled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := yaprime.NewGenerator(yaprime.Opts{}).GeneratePrime(ctx, 64)
		require.NotNil(t, err)

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("[Budget] Exhausted", func(t *testing.T) {
		t.Parallel()

		observer := &recordingObserver{}
		gen := yaprime.NewGenerator(yaprime.Opts{
			Random:      seeded("budget"),
			MaxAttempts: 1,
			Observer:    observer,
		})

		// A single 512-bit candidate is prime with probability around 1/177.
		for range 50 {
			_, err := gen.GeneratePrime(context.Background(), 512)
			if err != nil {
				assert.ErrorIs(t, err, yaprime.ErrAttemptBudgetExceeded)
				assert.Positive(t, observer.rejected)

				return
			}
		}

		t.Fatal("expected the attempt budget to be exhausted at least once")
	})
}
